package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgazmuri/agentswarm/core"
)

func TestInstructionFromText(t *testing.T) {
	instr := NewInstructionFromText("You are the pricing agent.")
	assert.True(t, instr.IsStatic())

	text, err := instr.Resolve(nil)
	assert.NoError(t, err)
	assert.Equal(t, "You are the pricing agent.", text)
}

func TestInstructionFromTemplate(t *testing.T) {
	instr, err := NewInstructionFromTemplate("You are the {{.role}} agent.", map[string]any{"role": "pricing"})
	assert.NoError(t, err)

	text, err := instr.Resolve(nil)
	assert.NoError(t, err)
	assert.Equal(t, "You are the pricing agent.", text)
}

func TestInstructionFromTemplateError(t *testing.T) {
	_, err := NewInstructionFromTemplate("{{.broken", nil)
	assert.Error(t, err)
}

func TestInstructionFromFunc(t *testing.T) {
	instr := NewInstructionFromFunc(func(tc *core.TurnContext) (string, error) {
		if tc.FromHandoff() {
			return "handoff instructions", nil
		}
		return "fresh instructions", nil
	})
	assert.False(t, instr.IsStatic())

	text, err := instr.Resolve(&core.TurnContext{PreviousAgent: core.AgentPricing})
	assert.NoError(t, err)
	assert.Equal(t, "handoff instructions", text)

	text, err = instr.Resolve(&core.TurnContext{})
	assert.NoError(t, err)
	assert.Equal(t, "fresh instructions", text)
}
