package cache

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Well-known tags grouping the upstream reads they cover.
const (
	TagCart        = "cart"
	TagProducts    = "products"
	TagCollections = "collections"
	TagPages       = "pages"
	TagMenu        = "menu"
)

// TagBus is the invalidation bus: a mapping from tag to a monotonically
// increasing version that readers consult. A tag that was never invalidated
// reports version 0.
type TagBus interface {
	Version(ctx context.Context, tag string) (uint64, error)
	Invalidate(ctx context.Context, tag string) (uint64, error)
}

// MemoryBus is the single-process TagBus used by default and in tests.
type MemoryBus struct {
	mu       sync.RWMutex
	versions map[string]uint64
	metrics  *metrics.CacheMetrics
}

// NewMemoryBus builds an in-memory bus; metrics may be nil.
func NewMemoryBus(m *metrics.CacheMetrics) *MemoryBus {
	return &MemoryBus{
		versions: map[string]uint64{},
		metrics:  m,
	}
}

func (b *MemoryBus) Version(_ context.Context, tag string) (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.versions[tag], nil
}

func (b *MemoryBus) Invalidate(_ context.Context, tag string) (uint64, error) {
	b.mu.Lock()
	b.versions[tag]++
	next := b.versions[tag]
	b.mu.Unlock()
	b.metrics.IncInvalidation(tag)
	return next, nil
}

// InvalidateAll bumps every given tag, aggregating failures.
func InvalidateAll(ctx context.Context, bus TagBus, tags ...string) error {
	var errs error
	for _, tag := range tags {
		if _, err := bus.Invalidate(ctx, tag); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
