package cache

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// TagCache is a read-through cache whose entries are pinned to the tag
// versions observed when they were filled. An entry is discarded as soon as
// any of its tags has been invalidated since, or its TTL has elapsed. There is
// no atomicity between an invalidation and a racing read; readers settle on
// fresh data on their next access.
type TagCache struct {
	bus     TagBus
	ttl     time.Duration
	metrics *metrics.CacheMetrics

	mu      sync.RWMutex
	entries map[string]entry

	now func() time.Time
}

type entry struct {
	payload  []byte
	tags     []string
	versions map[string]uint64
	storedAt time.Time
}

// NewTagCache builds a cache over the given bus; metrics may be nil.
func NewTagCache(bus TagBus, ttl time.Duration, m *metrics.CacheMetrics) *TagCache {
	return &TagCache{
		bus:     bus,
		ttl:     ttl,
		metrics: m,
		entries: map[string]entry{},
		now:     time.Now,
	}
}

// Get returns the cached payload for key if it is still live.
func (c *TagCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	ent, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		c.metrics.IncMiss(key)
		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(ent.storedAt) > c.ttl {
		c.evict(key)
		c.metrics.IncMiss(key)
		return nil, false
	}

	for _, tag := range ent.tags {
		current, err := c.bus.Version(ctx, tag)
		if err != nil || current != ent.versions[tag] {
			c.evict(key)
			c.metrics.IncMiss(key)
			return nil, false
		}
	}

	c.metrics.IncHit(key)
	return ent.payload, true
}

// Snapshot records the current version of each tag. Fill-path callers take
// the snapshot before fetching upstream; an invalidation that lands while the
// response is in flight then leaves the entry pinned behind the bumped tag,
// and the next read evicts it.
func (c *TagCache) Snapshot(ctx context.Context, tags []string) (map[string]uint64, error) {
	versions := make(map[string]uint64, len(tags))
	for _, tag := range tags {
		version, err := c.bus.Version(ctx, tag)
		if err != nil {
			return nil, err
		}
		versions[tag] = version
	}
	return versions, nil
}

// Set stores the payload under key, pinned to the given tag-version snapshot.
func (c *TagCache) Set(key string, tags []string, payload []byte, versions map[string]uint64) {
	c.mu.Lock()
	c.entries[key] = entry{
		payload:  payload,
		tags:     tags,
		versions: versions,
		storedAt: c.now(),
	}
	c.mu.Unlock()
}

func (c *TagCache) evict(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
