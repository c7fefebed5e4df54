package cache

import (
	"context"
	"strconv"
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]int64{}}
}

func (f *fakeStore) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(strconv.FormatInt(val, 10), nil)
}

func (f *fakeStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func (f *fakeStore) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func TestRedisBusMissingTagIsVersionZero(t *testing.T) {
	t.Parallel()

	bus := newRedisBusWithStore(newFakeStore(), nil)
	version, err := bus.Version(context.Background(), TagCart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 0 {
		t.Fatalf("expected version 0, got %d", version)
	}
}

func TestRedisBusInvalidateIncrements(t *testing.T) {
	t.Parallel()

	bus := newRedisBusWithStore(newFakeStore(), nil)
	ctx := context.Background()

	if next, err := bus.Invalidate(ctx, TagCart); err != nil || next != 1 {
		t.Fatalf("expected first bump to 1, got %d err=%v", next, err)
	}
	if next, err := bus.Invalidate(ctx, TagCart); err != nil || next != 2 {
		t.Fatalf("expected second bump to 2, got %d err=%v", next, err)
	}

	version, err := bus.Version(ctx, TagCart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}
}
