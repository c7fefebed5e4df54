package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

const tagKeyPrefix = "storefront:tag:"

// cmdable is the slice of the redis client the bus needs; kept narrow so tests
// can substitute a fake.
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisBus shares tag versions across storefront instances.
type RedisBus struct {
	store   cmdable
	raw     *redis.Client
	metrics *metrics.CacheMetrics
}

// NewRedisBus connects to Redis and verifies connectivity.
func NewRedisBus(ctx context.Context, cfg config.RedisConfig, m *metrics.CacheMetrics) (*RedisBus, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisBus{store: raw, raw: raw, metrics: m}, nil
}

// newRedisBusWithStore exists for tests.
func newRedisBusWithStore(store cmdable, m *metrics.CacheMetrics) *RedisBus {
	return &RedisBus{store: store, metrics: m}
}

func tagKey(tag string) string {
	return tagKeyPrefix + tag
}

func (b *RedisBus) Version(ctx context.Context, tag string) (uint64, error) {
	val, err := b.store.Get(ctx, tagKey(tag)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading tag version %q: %w", tag, err)
	}
	version, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing tag version %q: %w", tag, err)
	}
	return version, nil
}

func (b *RedisBus) Invalidate(ctx context.Context, tag string) (uint64, error) {
	next, err := b.store.Incr(ctx, tagKey(tag)).Result()
	if err != nil {
		return 0, fmt.Errorf("bumping tag %q: %w", tag, err)
	}
	b.metrics.IncInvalidation(tag)
	return uint64(next), nil
}

// Close releases the underlying connection pool.
func (b *RedisBus) Close() error {
	if b == nil || b.raw == nil {
		return nil
	}
	return b.raw.Close()
}
