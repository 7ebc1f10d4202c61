package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climate_dashboard"

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	// Repository metrics.
	RepositoryOps      *prometheus.CounterVec   // labels: operation, outcome={success,validation_error,storage_error}
	RepositoryDuration *prometheus.HistogramVec // labels: operation

	// HTTP metrics.
	HTTPRequests        *prometheus.CounterVec   // labels: method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, route

	// Change feed metrics.
	ChangesPublished *prometheus.CounterVec // labels: type, outcome={success,error}
	ChangeFeedActive prometheus.Gauge

	// Import metrics.
	ImportRows *prometheus.CounterVec // labels: outcome={inserted,rejected}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RepositoryOps,
		m.RepositoryDuration,
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.ChangesPublished,
		m.ChangeFeedActive,
		m.ImportRows,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RepositoryOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_operations_total",
			Help:      "Repository calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		RepositoryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_duration_seconds",
			Help:      "Duration of a single repository statement, including connection acquisition.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		ChangesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_published_total",
			Help:      "Change events sent to the change feed by type and outcome.",
		}, []string{"type", "outcome"}),
		ChangeFeedActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "change_feed_enabled",
			Help:      "1 when change events are published to Kafka, 0 otherwise.",
		}),
		ImportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "CSV rows processed by the importer by outcome.",
		}, []string{"outcome"}),
	}
}
