package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics records tag-cache behavior.
type CacheMetrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewCacheMetrics registers the tag-cache metrics on the provided registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		return &CacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tag_cache_hits",
		Help: "Tag cache reads served from a live entry.",
	}, []string{"key"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tag_cache_misses",
		Help: "Tag cache reads that fell through to the upstream.",
	}, []string{"key"})
	invalidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tag_invalidations",
		Help: "Invalidation bus bumps per tag.",
	}, []string{"tag"})
	reg.MustRegister(hits, misses, invalidations)
	return &CacheMetrics{
		hits:          hits,
		misses:        misses,
		invalidations: invalidations,
	}
}

// IncHit increments the hit counter for the named cache key.
func (c *CacheMetrics) IncHit(key string) {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.WithLabelValues(normalizeLabel(key)).Inc()
}

// IncMiss increments the miss counter for the named cache key.
func (c *CacheMetrics) IncMiss(key string) {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.WithLabelValues(normalizeLabel(key)).Inc()
}

// IncInvalidation increments the invalidation counter for the named tag.
func (c *CacheMetrics) IncInvalidation(tag string) {
	if c == nil || c.invalidations == nil {
		return
	}
	c.invalidations.WithLabelValues(normalizeLabel(tag)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
