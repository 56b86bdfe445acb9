package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Metrics interface for dependency injection
type Metrics interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)
	RecordDiagnostic(kind, outcome string)
	RecordDiagnosticDuration(kind string, duration time.Duration)
	RecordLLMCall(provider, status string)
	RecordBreakerChange(name, state string)
	SetDBConnectionsActive(count float64)
	RecordDBQuery(operation, status string)
	Handler() http.Handler
}

// NoOpMetrics provides a no-op implementation
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
}
func (m *NoOpMetrics) RecordDiagnostic(kind, outcome string)                        {}
func (m *NoOpMetrics) RecordDiagnosticDuration(kind string, duration time.Duration) {}
func (m *NoOpMetrics) RecordLLMCall(provider, status string)                        {}
func (m *NoOpMetrics) RecordBreakerChange(name, state string)                       {}
func (m *NoOpMetrics) SetDBConnectionsActive(count float64)                         {}
func (m *NoOpMetrics) RecordDBQuery(operation, status string)                       {}
func (m *NoOpMetrics) Handler() http.Handler                                        { return http.NotFoundHandler() }

// Global metrics instance
var globalMetrics Metrics = &NoOpMetrics{}

// Init installs Prometheus metrics when enabled, otherwise keeps the no-op implementation
func Init(enabled bool) {
	if !enabled {
		globalMetrics = &NoOpMetrics{}
		return
	}
	globalMetrics = NewPrometheusMetrics()
}

// Set replaces the global metrics implementation
func Set(m Metrics) {
	globalMetrics = m
}

// Handler returns the metrics handler
func Handler() http.Handler {
	return globalMetrics.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	globalMetrics.RecordHTTPRequest(method, endpoint, statusCode, duration)
}

// RecordDiagnostic counts one classification by kind (text, selection, chat) and outcome
func RecordDiagnostic(kind, outcome string) {
	globalMetrics.RecordDiagnostic(kind, outcome)
}

// RecordDiagnosticDuration records how long a classification took, simulated delay included
func RecordDiagnosticDuration(kind string, duration time.Duration) {
	globalMetrics.RecordDiagnosticDuration(kind, duration)
}

// RecordLLMCall records an upstream model call
func RecordLLMCall(provider, status string) {
	globalMetrics.RecordLLMCall(provider, status)
}

// RecordBreakerChange records a circuit breaker state transition
func RecordBreakerChange(name, state string) {
	globalMetrics.RecordBreakerChange(name, state)
}

// SetDBConnectionsActive sets the number of active database connections
func SetDBConnectionsActive(count float64) {
	globalMetrics.SetDBConnectionsActive(count)
}

// RecordDBQuery records database query metrics
func RecordDBQuery(operation, status string) {
	globalMetrics.RecordDBQuery(operation, status)
}

func statusLabel(code int) string {
	return strconv.Itoa(code)
}
