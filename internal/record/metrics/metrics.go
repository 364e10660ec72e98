// Package metrics provides observability for the record module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects counters and latencies for record operations. All methods
// are nil-safe so tests can pass a nil receiver.
type Metrics struct {
	// Operations by name and outcome
	Operations *prometheus.CounterVec

	// Aggregated validation failures by field
	ValidationFailures *prometheus.CounterVec

	// Store call latency by operation
	StoreLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all record module metrics registered.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "revo_record_operations_total",
			Help: "Record operations by operation and outcome",
		}, []string{"operation", "outcome"}), // outcome: "ok", "invalid", "denied", "error"

		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "revo_record_validation_failures_total",
			Help: "Validation rule failures by field",
		}, []string{"field"}),

		StoreLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "revo_record_store_duration_seconds",
			Help:    "Duration of record store calls by operation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementOperation records one operation outcome.
func (m *Metrics) IncrementOperation(operation, outcome string) {
	if m != nil {
		m.Operations.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementValidationFailure records one failed field.
func (m *Metrics) IncrementValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(field).Inc()
	}
}

// ObserveStoreLatency records the duration of a store call.
func (m *Metrics) ObserveStoreLatency(operation string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
