package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records calls against the commerce backend API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream client metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of backend API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "method"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_failures",
		Help: "Backend API requests that errored or returned a non-2xx status.",
	}, []string{"endpoint", "method"})
	reg.MustRegister(duration, failures)
	return &UpstreamMetrics{
		duration: duration,
		failures: failures,
	}
}

// ObserveDuration records the duration for the endpoint/method pair.
func (u *UpstreamMetrics) ObserveDuration(endpoint, method string, d time.Duration) {
	if u == nil || u.duration == nil {
		return
	}
	u.duration.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(method)).Observe(d.Seconds())
}

// IncFailure increments the failure counter for the endpoint/method pair.
func (u *UpstreamMetrics) IncFailure(endpoint, method string) {
	if u == nil || u.failures == nil {
		return
	}
	u.failures.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(method)).Inc()
}
