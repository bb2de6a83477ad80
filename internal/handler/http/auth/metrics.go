package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts credential operations by kind and result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total credential operations by operation and result",
		},
		[]string{"operation", "result"}, // operation: signin | signup | signout
	)

	// authDuration tracks credential operation duration.
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Credential operation duration by operation",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	// forbiddenAttempts counts requests rejected by the content policy.
	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Forbidden access attempts by role and method",
		},
		[]string{"role", "method"},
	)
)

// RecordAuthRequest records a credential operation outcome.
func RecordAuthRequest(operation, result string) {
	authRequestsTotal.WithLabelValues(operation, result).Inc()
}

// RecordAuthDuration records credential operation duration.
func RecordAuthDuration(operation string, durationSeconds float64) {
	authDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordForbiddenAttempt records a forbidden access attempt.
func RecordForbiddenAttempt(role, method string) {
	forbiddenAttempts.WithLabelValues(role, method).Inc()
}
