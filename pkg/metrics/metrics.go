package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream provider metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	// Classifier metrics
	UnknownWeatherCodesTotal prometheus.Counter

	// Journal metrics
	JournalWritesTotal *prometheus.CounterVec
}

// NewCollector creates and registers the gateway's metrics. The server
// passes prometheus.DefaultRegisterer; tests pass an isolated registry.
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
				Help:      "HTTP request duration in seconds by route",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"route"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream provider requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),

		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream provider request duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"provider"},
		),

		UnknownWeatherCodesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unknown_weather_codes_total",
				Help:      "Total number of weather codes missing from the description table",
			},
		),

		JournalWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journal_writes_total",
				Help:      "Total number of lookup journal writes by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(observer prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: observer,
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

// RecordHTTPRequest increments the HTTP request counter
func (c *Collector) RecordHTTPRequest(route, method, status string) {
	c.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
}

// RecordUpstreamRequest increments the upstream provider counter
func (c *Collector) RecordUpstreamRequest(provider, outcome string) {
	c.UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordUnknownWeatherCode counts a code the description table cannot resolve
func (c *Collector) RecordUnknownWeatherCode() {
	c.UnknownWeatherCodesTotal.Inc()
}

// RecordJournalWrite increments the journal write counter
func (c *Collector) RecordJournalWrite(outcome string) {
	c.JournalWritesTotal.WithLabelValues(outcome).Inc()
}
