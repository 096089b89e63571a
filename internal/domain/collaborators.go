package domain

import (
	"context"
	"errors"
)

// ErrSubscriptionExists reports that a delivery subscription with the managed
// filter name is already attached to a log group. Provisioning is expected to
// be idempotent-checked upstream, so a collision is surfaced, not swallowed.
var ErrSubscriptionExists = errors.New("subscription filter already exists")

// TagFetcher resolves a resource's tag set. Kind selects the tag API, name is
// the bare resource name (buckets are looked up by name), and locator is the
// fully-qualified ARN. Implementations live in the cloud adapter and are
// mocked in tests.
type TagFetcher interface {
	ResourceTags(ctx context.Context, kind ResourceKind, name, locator string) (TagMap, error)
}

// StorageSizer reports a database instance's allocated storage in gibibytes.
type StorageSizer interface {
	AllocatedStorage(ctx context.Context, instanceID string) (int32, error)
}

// BulkStore persists one aggregated batch object per invocation.
type BulkStore interface {
	Put(ctx context.Context, key string, body []byte) error
}

// SubscriptionClient attaches a log delivery subscription to a log group.
// Implementations return ErrSubscriptionExists (wrapped) on a name collision.
type SubscriptionClient interface {
	PutSubscriptionFilter(ctx context.Context, logGroup, filterName, pattern, destinationARN, roleARN string) error
}
