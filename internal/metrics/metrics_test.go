package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m.Registry)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.EstimatesTotal)
	assert.NotNil(t, m.RoutingRequestDuration)
	assert.NotNil(t, m.RoutingFallbacksTotal)
	assert.NotNil(t, m.RouteCacheLookups)
}

func TestEstimatesTotal_Outcomes(t *testing.T) {
	m := New()

	m.EstimatesTotal.WithLabelValues(OutcomeOK).Inc()
	m.EstimatesTotal.WithLabelValues(OutcomeOK).Inc()
	m.EstimatesTotal.WithLabelValues(OutcomeDegraded).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EstimatesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EstimatesTotal.WithLabelValues(OutcomeDegraded)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EstimatesTotal.WithLabelValues(OutcomeError)))
}

func TestFallbackCounter(t *testing.T) {
	m := New()

	m.RoutingFallbacksTotal.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoutingFallbacksTotal))
}

func TestIndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.RoutingFallbacksTotal.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.RoutingFallbacksTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RoutingFallbacksTotal))
}
