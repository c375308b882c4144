package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgazmuri/agentswarm/core"
)

func TestHandoffToolSchemaEnumeratesTargets(t *testing.T) {
	ht := NewHandoffTool([]core.AgentType{core.AgentPricing, core.AgentBenefits})

	params := ht.Parameters()
	props := params["properties"].(map[string]any)
	agentType := props["agent_type"].(map[string]any)
	assert.ElementsMatch(t, []any{"pricing", "benefits"}, agentType["enum"])
	assert.ElementsMatch(t, []string{"agent_type", "reason", "context_summary"}, params["required"])
}

func TestHandoffToolParseArguments(t *testing.T) {
	ht := NewHandoffTool([]core.AgentType{core.AgentPricing})

	args, err := ht.ParseArguments(`{"agent_type":"pricing","reason":"cost question","context_summary":"user asked about metformin"}`)
	assert.NoError(t, err)
	assert.Equal(t, "pricing", args.AgentType)
	assert.Equal(t, "cost question", args.Reason)
}

func TestHandoffToolRejectsUnknownTarget(t *testing.T) {
	ht := NewHandoffTool([]core.AgentType{core.AgentPricing})

	_, err := ht.ParseArguments(`{"agent_type":"janitor","reason":"r","context_summary":"s"}`)
	assert.Error(t, err)

	// Known agent type but outside this tool's target set.
	_, err = ht.ParseArguments(`{"agent_type":"benefits","reason":"r","context_summary":"s"}`)
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestHandoffToolRejectsMalformedJSON(t *testing.T) {
	ht := NewHandoffTool([]core.AgentType{core.AgentPricing})
	_, err := ht.ParseArguments(`{"agent_type":`)
	assert.Error(t, err)
}

func TestHandoffToolMissingAgentType(t *testing.T) {
	ht := NewHandoffTool([]core.AgentType{core.AgentPricing})
	_, err := ht.ParseArguments(`{"reason":"r","context_summary":"s"}`)
	assert.Error(t, err)
}
