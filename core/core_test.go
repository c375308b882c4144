package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// -------------------- Agent types --------------------

func TestParseAgentType(t *testing.T) {
	at, err := ParseAgentType("pricing")
	assert.NoError(t, err)
	assert.Equal(t, AgentPricing, at)

	_, err = ParseAgentType("janitor")
	assert.Error(t, err)
}

func TestHandoffTargetsDirect(t *testing.T) {
	roster := []AgentType{AgentPricing, AgentBenefits, AgentClinical}
	targets := HandoffTargets(AddressingDirect, AgentPricing, roster)
	assert.ElementsMatch(t, []AgentType{AgentBenefits, AgentClinical}, targets)
}

func TestHandoffTargetsCoordinator(t *testing.T) {
	roster := []AgentType{AgentPricing, AgentBenefits}
	targets := HandoffTargets(AddressingCoordinator, AgentPricing, roster)
	assert.Equal(t, []AgentType{AgentCoordinator}, targets)
}

// -------------------- Call limiter --------------------

func TestCallLimiter(t *testing.T) {
	cl := NewCallLimiter(3)
	assert.Equal(t, 3, cl.Remaining())

	assert.NoError(t, cl.Increment())
	assert.NoError(t, cl.Increment())
	assert.NoError(t, cl.Increment())
	assert.Error(t, cl.Increment())
	assert.Equal(t, 3, cl.Count())
}

func TestCallLimiterUnlimited(t *testing.T) {
	cl := NewCallLimiter(0)
	for i := 0; i < DefaultMaxToolIterations*3; i++ {
		assert.NoError(t, cl.Increment())
	}
	assert.Equal(t, -1, cl.Remaining())
}

// -------------------- Handoff requests --------------------

func TestNewHandoffRequestMergesHistories(t *testing.T) {
	shared := []Entry{NewUserTurn("question")}
	local := []Entry{
		NewUserTurn("question"),
		NewToolResult("fc-1", "ndc_lookup", `{"found":true}`),
	}

	req := NewHandoffRequest(AgentPricing, AgentBenefits, "coverage", "asked about humira", "question", shared, local)
	assert.Equal(t, AgentPricing, req.FromAgent)
	assert.Equal(t, AgentBenefits, req.ToAgent)
	assert.Len(t, req.CarriedHistory, 2)
}

// -------------------- Turn context --------------------

func TestTurnContextPrimingNote(t *testing.T) {
	tc := &TurnContext{
		Summary:       "member asked about humira coverage",
		Reason:        "coverage question",
		PreviousAgent: AgentPricing,
	}
	note := tc.PrimingNote()
	assert.Contains(t, note, "Original context summary: member asked about humira coverage")
	assert.Contains(t, note, "Handoff reason: coverage question")
	assert.Contains(t, note, "Previous agent: pricing")
	assert.True(t, tc.FromHandoff())
}

func TestTurnContextEmpty(t *testing.T) {
	tc := &TurnContext{}
	assert.Empty(t, tc.PrimingNote())
	assert.False(t, tc.FromHandoff())

	var nilTC *TurnContext
	assert.Empty(t, nilTC.PrimingNote())
	assert.False(t, nilTC.FromHandoff())
}
