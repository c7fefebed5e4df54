package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBusVersionsStartAtZero(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	ctx := context.Background()

	version, err := bus.Version(ctx, TagProducts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 0 {
		t.Fatalf("expected version 0 for untouched tag, got %d", version)
	}

	next, err := bus.Invalidate(ctx, TagProducts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 1 {
		t.Fatalf("expected version 1 after first invalidation, got %d", next)
	}

	version, _ = bus.Version(ctx, TagProducts)
	if version != 1 {
		t.Fatalf("expected readers to observe version 1, got %d", version)
	}
}

func TestInvalidateAllBumpsEveryTag(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	ctx := context.Background()

	if err := InvalidateAll(ctx, bus, TagProducts, TagCollections); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tag := range []string{TagProducts, TagCollections} {
		if version, _ := bus.Version(ctx, tag); version != 1 {
			t.Fatalf("tag %s expected version 1, got %d", tag, version)
		}
	}
	if version, _ := bus.Version(ctx, TagCart); version != 0 {
		t.Fatalf("untouched tag should stay at 0, got %d", version)
	}
}

func fill(t *testing.T, cache *TagCache, key string, tags []string, payload []byte) {
	t.Helper()
	versions, err := cache.Snapshot(context.Background(), tags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Set(key, tags, payload, versions)
}

func TestTagCacheServesLiveEntry(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	cache := NewTagCache(bus, time.Minute, nil)
	ctx := context.Background()

	fill(t, cache, "products", []string{TagProducts}, []byte(`[]`))

	payload, ok := cache.Get(ctx, "products")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(payload) != `[]` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestTagCacheDropsEntryAfterInvalidation(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	cache := NewTagCache(bus, time.Minute, nil)
	ctx := context.Background()

	fill(t, cache, "products", []string{TagProducts}, []byte(`old`))
	if _, err := bus.Invalidate(ctx, TagProducts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := cache.Get(ctx, "products"); ok {
		t.Fatal("expected entry to be dropped after invalidation")
	}
}

func TestTagCacheEvictsEntryFilledFromPreInvalidationSnapshot(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	cache := NewTagCache(bus, time.Minute, nil)
	ctx := context.Background()

	// Snapshot first, invalidate while the upstream response is "in flight",
	// then store. The entry must count as stale on the next read.
	versions, err := cache.Snapshot(ctx, []string{TagProducts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := bus.Invalidate(ctx, TagProducts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Set("products", []string{TagProducts}, []byte(`stale`), versions)

	if _, ok := cache.Get(ctx, "products"); ok {
		t.Fatal("expected entry pinned behind the invalidation to be evicted")
	}
}

func TestTagCacheHonorsTTL(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	cache := NewTagCache(bus, time.Minute, nil)
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	fill(t, cache, "menu", []string{TagMenu}, []byte(`[]`))

	current = current.Add(2 * time.Minute)
	if _, ok := cache.Get(ctx, "menu"); ok {
		t.Fatal("expected entry to expire after ttl")
	}
}
