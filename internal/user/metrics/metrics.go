// Package metrics provides observability for the user module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts account activity. All methods are nil-safe so tests can pass
// a nil receiver.
type Metrics struct {
	UsersRegistered prometheus.Counter

	// Login attempts by outcome
	Logins *prometheus.CounterVec
}

// New creates a Metrics instance with all user module metrics registered.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "revo_users_registered_total",
			Help: "Total number of registered accounts",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "revo_user_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}), // outcome: "ok", "rejected", "error"
	}
}

// IncrementRegistered counts one new account.
func (m *Metrics) IncrementRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

// IncrementLogin counts one login attempt outcome.
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(outcome).Inc()
	}
}
