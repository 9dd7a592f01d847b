package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection. A nil *Collector is
// valid and records nothing.
type Collector struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream Metrics
	UpstreamRequestsTotal *prometheus.CounterVec
	CacheLookupsTotal     *prometheus.CounterVec

	// Chart Metrics
	ChartRendersTotal   prometheus.Counter
	ChartRenderDuration prometheus.Histogram

	ActiveSessions prometheus.Gauge
}

// NewCollector creates a new metrics collector registered with reg
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"route"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream API calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),

		ChartRendersTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chart_renders_total",
				Help:      "Total number of hourly charts rendered",
			},
		),

		ChartRenderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "chart_render_duration_seconds",
				Help:      "Duration of hourly chart rendering in seconds",
				Buckets:   []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2},
			},
		),

		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of dashboard sessions held in memory",
			},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordHTTPRequest records a finished request
func (c *Collector) RecordHTTPRequest(route, method, status string, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	c.HTTPRequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// RecordUpstream counts an upstream call by its outcome
func (c *Collector) RecordUpstream(endpoint string, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCache counts a cache lookup; result is "hit", "miss" or "error"
func (c *Collector) RecordCache(cache, result string) {
	if c == nil {
		return
	}
	c.CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// ChartTimer starts timing a chart render
func (c *Collector) ChartTimer() *Timer {
	if c == nil {
		return &Timer{start: time.Now()}
	}
	c.ChartRendersTotal.Inc()
	return c.NewTimer(c.ChartRenderDuration)
}

// SetActiveSessions updates the session gauge
func (c *Collector) SetActiveSessions(n int) {
	if c == nil {
		return
	}
	c.ActiveSessions.Set(float64(n))
}
