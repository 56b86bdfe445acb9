package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics exports metrics on its own registry
type PrometheusMetrics struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	diagnostics        *prometheus.CounterVec
	diagnosticDuration *prometheus.HistogramVec
	llmCalls           *prometheus.CounterVec
	breakerChanges     *prometheus.CounterVec
	dbConnections      prometheus.Gauge
	dbQueries          *prometheus.CounterVec
}

// NewPrometheusMetrics registers all collectors on a fresh registry
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diagnostics_total",
				Help: "Total number of classifications by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		diagnosticDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diagnostic_duration_seconds",
				Help:    "Duration of classifications in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),
		llmCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_calls_total",
				Help: "Total number of upstream model calls",
			},
			[]string{"provider", "status"},
		),
		breakerChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_transitions_total",
				Help: "Circuit breaker state transitions",
			},
			[]string{"name", "state"},
		),
		dbConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_active",
				Help: "Number of active database connections",
			},
		),
		dbQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "status"},
		),
	}
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, endpoint, statusLabel(statusCode)).Inc()
	m.httpDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordDiagnostic(kind, outcome string) {
	m.diagnostics.WithLabelValues(kind, outcome).Inc()
}

func (m *PrometheusMetrics) RecordDiagnosticDuration(kind string, duration time.Duration) {
	m.diagnosticDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordLLMCall(provider, status string) {
	m.llmCalls.WithLabelValues(provider, status).Inc()
}

func (m *PrometheusMetrics) RecordBreakerChange(name, state string) {
	m.breakerChanges.WithLabelValues(name, state).Inc()
}

func (m *PrometheusMetrics) SetDBConnectionsActive(count float64) {
	m.dbConnections.Set(count)
}

func (m *PrometheusMetrics) RecordDBQuery(operation, status string) {
	m.dbQueries.WithLabelValues(operation, status).Inc()
}

// Handler serves the registry in the Prometheus text format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
