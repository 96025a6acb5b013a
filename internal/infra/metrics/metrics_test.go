package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_CountsByOutcome(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RegistrationAttempt(true)
	c.RegistrationAttempt(false)
	c.RegistrationAttempt(false)
	c.LoginAttempt(true)
	c.TokenRefresh(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.registrations.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.registrations.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.refreshes.WithLabelValues("failure")))
}
