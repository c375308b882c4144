package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTurn()
		m.RecordHandoff("coordinator", "pricing")
		m.RecordToolCall("pricing", "ndc_lookup", "success")
		m.RecordChainOverflow()
		m.RecordLoopFailsafe("pricing")
		m.ObserveCompletion("pricing", time.Second)
	})
}

func TestCountersRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordTurn()
	m.RecordTurn()
	m.RecordHandoff("coordinator", "pricing")
	m.RecordToolCall("pricing", "ndc_lookup", "success")
	m.RecordChainOverflow()
	m.RecordLoopFailsafe("pricing")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.turnsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.handoffsTotal.WithLabelValues("coordinator", "pricing")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.toolCallsTotal.WithLabelValues("pricing", "ndc_lookup", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.chainOverflows))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.loopFailsafes.WithLabelValues("pricing")))
}
