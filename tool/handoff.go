package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pgazmuri/agentswarm/core"
)

// HandoffToolName is the reserved name of the conversation transfer tool.
// Agents intercept calls to this tool instead of executing them.
const HandoffToolName = "request_handoff"

// HandoffArgs are the arguments the model supplies when requesting a
// transfer to another specialist.
type HandoffArgs struct {
	AgentType      string `json:"agent_type"`
	Reason         string `json:"reason"`
	ContextSummary string `json:"context_summary"`
}

// HandoffTool exposes conversation transfer to the model. The tool itself
// never runs business logic; it carries the schema that constrains which
// targets an agent may name, and validates arguments when invoked directly.
type HandoffTool struct {
	targets []core.AgentType
}

// NewHandoffTool builds a transfer tool whose agent_type parameter is
// constrained to the given targets.
func NewHandoffTool(targets []core.AgentType) *HandoffTool {
	return &HandoffTool{targets: targets}
}

// Name implements Tool.
func (t *HandoffTool) Name() string { return HandoffToolName }

// Description implements Tool.
func (t *HandoffTool) Description() string {
	names := make([]string, len(t.targets))
	for i, target := range t.targets {
		names[i] = string(target)
	}
	return "Transfer the conversation to another specialist agent when the user's need " +
		"falls outside your domain. Available targets: " + strings.Join(names, ", ") + ". " +
		"Provide the reason for the transfer and a summary of the conversation so far."
}

// Parameters implements Tool.
func (t *HandoffTool) Parameters() map[string]any {
	enum := make([]any, len(t.targets))
	for i, target := range t.targets {
		enum[i] = string(target)
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent_type": map[string]any{
				"type":        "string",
				"description": "The specialist agent to transfer the conversation to.",
				"enum":        enum,
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "Why the transfer is needed.",
			},
			"context_summary": map[string]any{
				"type":        "string",
				"description": "Summary of the conversation context for the receiving agent.",
			},
		},
		"required": []string{"agent_type", "reason", "context_summary"},
	}
}

// Call validates the transfer arguments and returns an acknowledgment.
// Agents normally intercept this tool by name before execution; Call exists
// so the tool behaves sensibly if invoked like any other.
func (t *HandoffTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	parsed, err := t.parse(args)
	if err != nil {
		return nil, err
	}
	toolCtx.Logger().Info("tool.handoff.requested",
		"from", string(toolCtx.Agent()),
		"to", parsed.AgentType,
		"reason", parsed.Reason,
	)
	return map[string]any{
		"status":     "handoff_requested",
		"agent_type": parsed.AgentType,
	}, nil
}

// ParseArguments decodes and validates a raw JSON argument payload from a
// model tool call.
func (t *HandoffTool) ParseArguments(raw string) (HandoffArgs, error) {
	var args map[string]any
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return HandoffArgs{}, NewToolError(HandoffToolName,
				fmt.Sprintf("invalid arguments: %v", err), "VALIDATION_ERROR")
		}
	}
	return t.parse(args)
}

func (t *HandoffTool) parse(args map[string]any) (HandoffArgs, error) {
	agentType, _ := args["agent_type"].(string)
	reason, _ := args["reason"].(string)
	summary, _ := args["context_summary"].(string)

	if agentType == "" {
		return HandoffArgs{}, NewToolError(HandoffToolName, "agent_type is required", "VALIDATION_ERROR")
	}
	target, err := core.ParseAgentType(agentType)
	if err != nil {
		return HandoffArgs{}, NewToolError(HandoffToolName,
			fmt.Sprintf("unknown agent type %q", agentType), "VALIDATION_ERROR")
	}
	allowed := false
	for _, candidate := range t.targets {
		if candidate == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return HandoffArgs{}, NewToolError(HandoffToolName,
			fmt.Sprintf("agent %q is not a permitted transfer target", agentType), "VALIDATION_ERROR")
	}
	return HandoffArgs{AgentType: agentType, Reason: reason, ContextSummary: summary}, nil
}
