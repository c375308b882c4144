package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/logging"
)

func newToolContext() *core.ToolContext {
	return core.NewToolContext(context.Background(), core.AgentPricing, "fc-1", core.NewSession("sess-1"), logging.NoOpLogger{})
}

// -------------------- FunctionTool --------------------

func TestFunctionToolCall(t *testing.T) {
	ft := NewFunctionTool("echo", "Echo the input",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []string{"text"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			return map[string]any{"echo": args["text"]}, nil
		},
	)

	result, err := ft.Call(newToolContext(), map[string]any{"text": "hi"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"echo": "hi"}, result)
}

func TestFunctionToolValidation(t *testing.T) {
	ft := NewFunctionTool("strict", "Requires x",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"x": map[string]any{"type": "number"},
			},
			"required": []string{"x"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			t.Fatal("function must not run on validation failure")
			return nil, nil
		},
	)

	_, err := ft.Call(newToolContext(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestFunctionToolExecutionError(t *testing.T) {
	ft := NewFunctionTool("boom", "Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	)

	_, err := ft.Call(newToolContext(), map[string]any{})
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Contains(t, toolErr.Message, "backend unavailable")
}

func TestFunctionToolErrorPassthrough(t *testing.T) {
	custom := NewToolError("lookup", "not found", "NOT_FOUND")
	ft := NewFunctionTool("lookup", "Returns a custom error",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			return nil, custom
		},
	)

	_, err := ft.Call(newToolContext(), map[string]any{})
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "NOT_FOUND", toolErr.Code)
}

type lookupArgs struct {
	DrugName string `json:"drug_name" description:"Drug to look up"`
	Strength string `json:"strength,omitempty" description:"Optional strength"`
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	ft := NewFunctionToolFromStruct("ndc_lookup", "Look up a drug", lookupArgs{},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			return "ok", nil
		},
	)

	params := ft.Parameters()
	props := params["properties"].(map[string]any)
	assert.Contains(t, props, "drug_name")
	assert.Contains(t, props, "strength")

	_, err := ft.Call(newToolContext(), map[string]any{})
	assert.Error(t, err) // drug_name required

	_, err = ft.Call(newToolContext(), map[string]any{"drug_name": "metformin"})
	assert.NoError(t, err)
}

// -------------------- Tool context state --------------------

func TestToolContextSharesSessionState(t *testing.T) {
	sess := core.NewSession("sess-1")
	tc := core.NewToolContext(context.Background(), core.AgentAuthentication, "fc-1", sess, logging.NoOpLogger{})

	tc.SetState("member_id", "DEMO123456")

	v, ok := sess.GetContext("member_id")
	assert.True(t, ok)
	assert.Equal(t, "DEMO123456", v)
}
