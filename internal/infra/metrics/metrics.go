// Package metrics collects and exposes Prometheus metrics for the
// authentication flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"passport/internal/domain/service"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Collector implements service.AuthMetrics backed by Prometheus counters.
type Collector struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	refreshes     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_token_refreshes_total",
			Help: "Token refresh attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.registrations, c.logins, c.refreshes)

	return c
}

// NewAuthMetrics provides the default collector on the global registry.
func NewAuthMetrics() service.AuthMetrics {
	return NewCollector(prometheus.DefaultRegisterer)
}

// RegistrationAttempt records a registration outcome.
func (c *Collector) RegistrationAttempt(success bool) {
	c.registrations.WithLabelValues(outcome(success)).Inc()
}

// LoginAttempt records a login outcome.
func (c *Collector) LoginAttempt(success bool) {
	c.logins.WithLabelValues(outcome(success)).Inc()
}

// TokenRefresh records a token refresh outcome.
func (c *Collector) TokenRefresh(success bool) {
	c.refreshes.WithLabelValues(outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return outcomeSuccess
	}

	return outcomeFailure
}
