package tagcache

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cloud-gov/firehose-tagger/internal/domain"
)

// CapacityCache memoizes database allocated-storage lookups, keyed by
// instance identifier. A failed lookup caches zero, which callers treat as
// "size unknown".
type CapacityCache struct {
	entries *lru.Cache[string, int32]
	sizer   domain.StorageSizer
	log     *slog.Logger
}

func NewCapacityCache(sizer domain.StorageSizer, size int, log *slog.Logger) (*CapacityCache, error) {
	entries, err := lru.New[string, int32](size)
	if err != nil {
		return nil, err
	}
	return &CapacityCache{entries: entries, sizer: sizer, log: log}, nil
}

// AllocatedStorage returns the instance's allocated storage in gibibytes, or
// zero when it cannot be determined.
func (c *CapacityCache) AllocatedStorage(ctx context.Context, instanceID string) int32 {
	if size, ok := c.entries.Get(instanceID); ok {
		return size
	}
	size, err := c.sizer.AllocatedStorage(ctx, instanceID)
	if err != nil {
		c.log.Error("allocated storage lookup failed", "instance", instanceID, "error", err)
		size = 0
	}
	c.entries.Add(instanceID, size)
	return size
}
