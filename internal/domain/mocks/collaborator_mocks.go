package mocks

import (
	"context"
	"sync"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
)

// MockTagFetcher is a mock implementation of domain.TagFetcher for testing.
type MockTagFetcher struct {
	mu            sync.Mutex
	TagsByLocator map[string]domain.TagMap
	Err           error
	Calls         []string
}

func (m *MockTagFetcher) ResourceTags(ctx context.Context, kind domain.ResourceKind, name, locator string) (domain.TagMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, locator)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TagsByLocator[locator], nil
}

// MockStorageSizer is a mock implementation of domain.StorageSizer.
type MockStorageSizer struct {
	mu        sync.Mutex
	Gibibytes int32
	Err       error
	Calls     []string
}

func (m *MockStorageSizer) AllocatedStorage(ctx context.Context, instanceID string) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, instanceID)
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Gibibytes, nil
}

// StoredObject records one Put against the MockBulkStore.
type StoredObject struct {
	Key  string
	Body []byte
}

// MockBulkStore is a mock implementation of domain.BulkStore.
type MockBulkStore struct {
	mu      sync.Mutex
	Objects []StoredObject
	Err     error
}

func (m *MockBulkStore) Put(ctx context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Objects = append(m.Objects, StoredObject{Key: key, Body: body})
	return nil
}

// FilterCall records one PutSubscriptionFilter against the MockSubscriptionClient.
type FilterCall struct {
	LogGroup       string
	FilterName     string
	Pattern        string
	DestinationARN string
	RoleARN        string
}

// MockSubscriptionClient is a mock implementation of domain.SubscriptionClient.
type MockSubscriptionClient struct {
	mu    sync.Mutex
	Calls []FilterCall
	Err   error
}

func (m *MockSubscriptionClient) PutSubscriptionFilter(ctx context.Context, logGroup, filterName, pattern, destinationARN, roleARN string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Calls = append(m.Calls, FilterCall{
		LogGroup:       logGroup,
		FilterName:     filterName,
		Pattern:        pattern,
		DestinationARN: destinationARN,
		RoleARN:        roleARN,
	})
	return nil
}
