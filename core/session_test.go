package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionDefaults(t *testing.T) {
	s := NewSession("sess-1")
	assert.Equal(t, AgentCoordinator, s.CurrentAgent())
	assert.Equal(t, 0, s.HistoryLen())
	assert.False(t, s.HasPendingHandoff())
}

func TestSessionCurrentAgent(t *testing.T) {
	s := NewSession("sess-1")
	s.SetCurrentAgent(AgentPricing)
	assert.Equal(t, AgentPricing, s.CurrentAgent())
}

func TestSessionHistoryCopies(t *testing.T) {
	s := NewSession("sess-1")
	s.Append(NewUserTurn("one"), NewAssistantTurn(AgentPricing, "two"))

	h := s.History()
	assert.Len(t, h, 2)

	// Mutating the returned slice must not affect the session.
	h[0] = NewUserTurn("changed")
	assert.True(t, s.History()[0].EqualTo(NewUserTurn("one")))
}

func TestPendingHandoffSingleConsumption(t *testing.T) {
	s := NewSession("sess-1")
	s.SetPendingHandoff(HandoffRequest{FromAgent: AgentPricing, ToAgent: AgentBenefits, Reason: "coverage question"})

	assert.True(t, s.HasPendingHandoff())

	req, ok := s.TakePendingHandoff()
	assert.True(t, ok)
	assert.Equal(t, AgentBenefits, req.ToAgent)

	// Consumed: a second take finds nothing.
	_, ok = s.TakePendingHandoff()
	assert.False(t, ok)
	assert.False(t, s.HasPendingHandoff())
}

func TestClearPendingHandoff(t *testing.T) {
	s := NewSession("sess-1")
	s.SetPendingHandoff(HandoffRequest{ToAgent: AgentBenefits})
	s.ClearPendingHandoff()
	_, ok := s.TakePendingHandoff()
	assert.False(t, ok)
}

func TestSessionContext(t *testing.T) {
	s := NewSession("sess-1")
	_, ok := s.GetContext("member_id")
	assert.False(t, ok)

	s.SetContext("member_id", "DEMO123456")
	v, ok := s.GetContext("member_id")
	assert.True(t, ok)
	assert.Equal(t, "DEMO123456", v)

	snap := s.ContextSnapshot()
	assert.Equal(t, "DEMO123456", snap["member_id"])

	// The snapshot is detached from the session.
	snap["member_id"] = "other"
	v, _ = s.GetContext("member_id")
	assert.Equal(t, "DEMO123456", v)
}

func TestSessionReset(t *testing.T) {
	s := NewSession("sess-1")
	s.SetCurrentAgent(AgentPricing)
	s.Append(NewUserTurn("hello"))
	s.SetContext("member_id", "DEMO123456")
	s.SetPendingHandoff(HandoffRequest{ToAgent: AgentBenefits})

	s.Reset()

	assert.Equal(t, AgentCoordinator, s.CurrentAgent())
	assert.Equal(t, 0, s.HistoryLen())
	assert.False(t, s.HasPendingHandoff())
	_, ok := s.GetContext("member_id")
	assert.False(t, ok)
}
