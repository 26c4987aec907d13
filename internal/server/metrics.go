package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments exposed by the observability
// server. Each Metrics instance carries its own registry so that several
// instances can coexist in tests without duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests  prometheus.Gauge
	requestsTotal   prometheus.Counter
	combinesTotal   *prometheus.CounterVec
	combineDuration *prometheus.HistogramVec
	elementsTotal   *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all instruments registered.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dsadd_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "dsadd_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		combinesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dsadd_combines_total",
			Help: "Total number of dataset combine operations completed.",
		}, []string{"strategy"}),
		combineDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dsadd_combine_duration_seconds",
			Help:    "Wall-clock duration of dataset combine operations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"strategy"}),
		elementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dsadd_elements_combined_total",
			Help: "Total number of output elements produced by combines.",
		}, []string{"strategy"}),
	}
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// IncrementActiveRequests increments the active requests gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveCombine records a completed combine operation under the strategy
// that produced the result.
//
// Parameters:
//   - strategy: Name of the winning combine strategy.
//   - seconds: Wall-clock duration of the combine in seconds.
//   - elements: Number of output elements produced.
func (m *Metrics) ObserveCombine(strategy string, seconds float64, elements int) {
	m.combinesTotal.WithLabelValues(strategy).Inc()
	m.combineDuration.WithLabelValues(strategy).Observe(seconds)
	m.elementsTotal.WithLabelValues(strategy).Add(float64(elements))
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
