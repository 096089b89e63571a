// Package tagcache memoizes resource tag lookups behind a capacity-bounded
// LRU. The cache wraps the composition of a fetch and a per-family filter, so
// the filtered result is what persists: a database resource fetched once
// without its required ownership tag stays empty for that entry's cache
// lifetime. Entries never expire; tags are assumed immutable for the life of
// the process. That also means a transient fetch failure is remembered as
// "no tags" until the entry is evicted or the process is recycled.
package tagcache

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cloud-gov/firehose-tagger/internal/adapter/metrics"
	"github.com/cloud-gov/firehose-tagger/internal/classify"
	"github.com/cloud-gov/firehose-tagger/internal/domain"
)

// DefaultSize is the entry capacity of both caches.
const DefaultSize = 256

// Filter is a pure post-fetch transform applied before a result is cached.
type Filter func(domain.TagMap) domain.TagMap

// RequireTag returns a Filter that rejects any tag set missing key: the
// whole set is forced to empty, discarding whatever else the fetch returned.
func RequireTag(key string) Filter {
	return func(tags domain.TagMap) domain.TagMap {
		if _, ok := tags[key]; !ok {
			return domain.TagMap{}
		}
		return tags
	}
}

// defaultFilters applies the required-tag policy to the database family only.
func defaultFilters() map[domain.ResourceKind]Filter {
	return map[domain.ResourceKind]Filter{
		domain.KindRDS: RequireTag(domain.OrganizationGUIDTagKey),
	}
}

// Cache memoizes tag lookups by target. Get never fails: fetch errors are
// logged, counted and converted to an empty tag set so a single resource's
// lookup trouble drops only that resource's records, never the batch.
type Cache struct {
	entries *lru.Cache[string, domain.TagMap]
	fetch   domain.TagFetcher
	filters map[domain.ResourceKind]Filter
	met     *metrics.Pipeline
	log     *slog.Logger
}

func New(fetch domain.TagFetcher, size int, met *metrics.Pipeline, log *slog.Logger) (*Cache, error) {
	entries, err := lru.New[string, domain.TagMap](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		entries: entries,
		fetch:   fetch,
		filters: defaultFilters(),
		met:     met,
		log:     log,
	}, nil
}

// Get returns the target's tag set, fetching and caching it on a miss.
func (c *Cache) Get(ctx context.Context, target classify.Target) domain.TagMap {
	key := target.CacheKey()
	if tags, ok := c.entries.Get(key); ok {
		c.met.TagCacheHits.Inc()
		return tags
	}
	c.met.TagCacheMisses.Inc()

	tags, err := c.fetch.ResourceTags(ctx, target.Kind, target.Name, target.Locator)
	if err != nil {
		c.met.TagFetchErrors.Inc()
		c.log.Error("tag lookup failed, treating resource as untagged",
			"locator", target.Locator, "error", err)
		tags = nil
	}
	if filter, ok := c.filters[target.Kind]; ok {
		tags = filter(tags)
	}
	if tags == nil {
		tags = domain.TagMap{}
	}
	c.entries.Add(key, tags)
	return tags
}
