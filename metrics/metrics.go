// Package metrics exposes Prometheus instrumentation for the orchestrator:
// turn, handoff and tool call counters plus completion latencies. A nil
// *Metrics is a valid no-op recorder, so callers never need to branch.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the orchestrator's Prometheus collectors.
type Metrics struct {
	turnsTotal         prometheus.Counter
	handoffsTotal      *prometheus.CounterVec
	toolCallsTotal     *prometheus.CounterVec
	chainOverflows     prometheus.Counter
	loopFailsafes      *prometheus.CounterVec
	completionDuration *prometheus.HistogramVec
}

// New registers the orchestrator collectors with reg and returns the bundle.
// Pass prometheus.DefaultRegisterer for the usual global registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		turnsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "agentswarm",
			Name:      "turns_total",
			Help:      "Total number of user turns processed",
		}),
		handoffsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentswarm",
			Name:      "handoffs_total",
			Help:      "Total number of executed handoffs",
		}, []string{"from", "to"}),
		toolCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentswarm",
			Name:      "tool_calls_total",
			Help:      "Total number of tool invocations",
		}, []string{"agent", "tool", "outcome"}),
		chainOverflows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "agentswarm",
			Name:      "handoff_chain_overflows_total",
			Help:      "Turns that hit the handoff chain limit",
		}),
		loopFailsafes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentswarm",
			Name:      "tool_loop_failsafes_total",
			Help:      "Agent turns that exhausted the tool call loop",
		}, []string{"agent"}),
		completionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agentswarm",
			Name:      "completion_duration_seconds",
			Help:      "Completion call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"agent"}),
	}
}

// RecordTurn counts one processed user turn.
func (m *Metrics) RecordTurn() {
	if m == nil {
		return
	}
	m.turnsTotal.Inc()
}

// RecordHandoff counts one executed handoff.
func (m *Metrics) RecordHandoff(from, to string) {
	if m == nil {
		return
	}
	m.handoffsTotal.WithLabelValues(from, to).Inc()
}

// RecordToolCall counts one tool invocation with its outcome
// ("success", "error" or "handoff").
func (m *Metrics) RecordToolCall(agent, tool, outcome string) {
	if m == nil {
		return
	}
	m.toolCallsTotal.WithLabelValues(agent, tool, outcome).Inc()
}

// RecordChainOverflow counts a turn that hit the handoff chain limit.
func (m *Metrics) RecordChainOverflow() {
	if m == nil {
		return
	}
	m.chainOverflows.Inc()
}

// RecordLoopFailsafe counts an agent turn that exhausted its tool call loop.
func (m *Metrics) RecordLoopFailsafe(agent string) {
	if m == nil {
		return
	}
	m.loopFailsafes.WithLabelValues(agent).Inc()
}

// ObserveCompletion records the duration of one completion call.
func (m *Metrics) ObserveCompletion(agent string, d time.Duration) {
	if m == nil {
		return
	}
	m.completionDuration.WithLabelValues(agent).Observe(d.Seconds())
}
