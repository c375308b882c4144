package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/model"
	"github.com/pgazmuri/agentswarm/tool"
)

type captureSink struct {
	requests []core.HandoffRequest
}

func (s *captureSink) SubmitHandoff(req core.HandoffRequest) {
	s.requests = append(s.requests, req)
}

func collect(ch <-chan string) []string {
	var out []string
	for f := range ch {
		out = append(out, f)
	}
	return out
}

func echoTool(name string) tool.Tool {
	return tool.NewFunctionTool(name, "Echo tool",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			return map[string]any{"ok": true}, nil
		},
	)
}

func TestAgentStreamsTextWordByWord(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueText("Your copay is $15.00")

	a := New(core.AgentPricing, client)
	fragments := collect(a.Process(context.Background(), "how much?", &core.TurnContext{}))

	assert.Equal(t, []string{"Your ", "copay ", "is ", "$15.00 "}, fragments)
	assert.Equal(t, "Your copay is $15.00", strings.TrimSpace(strings.Join(fragments, "")))
}

func TestAgentAppendsUserTurnFirst(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueText("hi")

	a := New(core.AgentPricing, client)
	collect(a.Process(context.Background(), "hello", &core.TurnContext{}))

	req := client.LastRequest()
	assert.NotEmpty(t, req.Entries)
	assert.True(t, req.Entries[0].EqualTo(core.NewUserTurn("hello")))
}

func TestAgentDoesNotDuplicateCarriedUserTurn(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueText("continuing")

	carried := []core.Entry{
		core.NewUserTurn("earlier question"),
		core.NewAssistantTurn(core.AgentPricing, "earlier answer"),
		core.NewUserTurn("current question"),
	}
	a := New(core.AgentBenefits, client)
	collect(a.Process(context.Background(), "current question", &core.TurnContext{History: carried}))

	req := client.LastRequest()
	assert.Len(t, req.Entries, 3)
}

func TestAgentToolLoop(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueToolCalls(core.ToolCall{ID: "fc-1", Name: "lookup", Arguments: "{}"})
	client.EnqueueText("done")

	a := New(core.AgentPricing, client, func(o *Options) {
		o.Tools = []tool.Tool{echoTool("lookup")}
	})
	fragments := collect(a.Process(context.Background(), "look it up", &core.TurnContext{}))
	assert.Equal(t, []string{"done "}, fragments)

	// Second completion sees the tool call and its result.
	reqs := client.Requests()
	assert.Len(t, reqs, 2)
	entries := reqs[1].Entries
	assert.True(t, entries[len(entries)-1].EqualTo(core.NewToolResult("fc-1", "lookup", `{"ok":true}`)))
}

func TestAgentUnknownToolFeedsErrorBack(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueToolCalls(core.ToolCall{ID: "fc-1", Name: "missing_tool", Arguments: "{}"})
	client.EnqueueText("recovered")

	a := New(core.AgentPricing, client)
	fragments := collect(a.Process(context.Background(), "go", &core.TurnContext{}))
	assert.Equal(t, []string{"recovered "}, fragments)

	entries := client.Requests()[1].Entries
	last, ok := entries[len(entries)-1].(core.ToolResult)
	assert.True(t, ok)
	assert.Contains(t, last.Content, "no handler for function missing_tool")
}

func TestAgentToolErrorFeedsErrorBack(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueToolCalls(core.ToolCall{ID: "fc-1", Name: "flaky", Arguments: "{}"})
	client.EnqueueText("recovered")

	flaky := tool.NewFunctionTool("flaky", "Fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			return nil, errors.New("upstream timeout")
		},
	)
	a := New(core.AgentPricing, client, func(o *Options) {
		o.Tools = []tool.Tool{flaky}
	})
	collect(a.Process(context.Background(), "go", &core.TurnContext{}))

	entries := client.Requests()[1].Entries
	last, ok := entries[len(entries)-1].(core.ToolResult)
	assert.True(t, ok)
	assert.Contains(t, last.Content, "error")
	assert.Contains(t, last.Content, "upstream timeout")
}

func TestAgentFailsafeAfterLoopExhaustion(t *testing.T) {
	client := model.NewMockClient("mock")
	for i := 0; i < core.DefaultMaxToolIterations; i++ {
		client.EnqueueToolCalls(core.ToolCall{ID: "fc", Name: "lookup", Arguments: "{}"})
	}

	a := New(core.AgentPricing, client, func(o *Options) {
		o.Tools = []tool.Tool{echoTool("lookup")}
	})
	fragments := collect(a.Process(context.Background(), "loop forever", &core.TurnContext{}))

	assert.Equal(t, []string{FailsafeMessage}, fragments)
	assert.Len(t, client.Requests(), core.DefaultMaxToolIterations)
}

func TestAgentHandoffEndsTurnSilently(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueToolCalls(core.ToolCall{
		ID:        "fc-1",
		Name:      tool.HandoffToolName,
		Arguments: `{"agent_type":"benefits","reason":"coverage question","context_summary":"member asked about humira"}`,
	})

	sink := &captureSink{}
	a := New(core.AgentPricing, client, func(o *Options) {
		o.HandoffTargets = []core.AgentType{core.AgentBenefits}
	})
	a.SetHandoffSink(sink)

	fragments := collect(a.Process(context.Background(), "is humira covered?", &core.TurnContext{}))

	assert.Empty(t, fragments)
	assert.Len(t, sink.requests, 1)
	req := sink.requests[0]
	assert.Equal(t, core.AgentPricing, req.FromAgent)
	assert.Equal(t, core.AgentBenefits, req.ToAgent)
	assert.Equal(t, "is humira covered?", req.UserMessage)
	assert.NotEmpty(t, req.CarriedHistory)

	// The acknowledgment tool result is recorded before the transfer.
	last := req.CarriedHistory[len(req.CarriedHistory)-1]
	tr, ok := last.(core.ToolResult)
	assert.True(t, ok)
	assert.Contains(t, tr.Content, "handoff_requested")
}

func TestAgentInvalidHandoffContinuesLoop(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueToolCalls(core.ToolCall{
		ID:        "fc-1",
		Name:      tool.HandoffToolName,
		Arguments: `{"agent_type":"janitor","reason":"r","context_summary":"s"}`,
	})
	client.EnqueueText("I can help with that myself.")

	sink := &captureSink{}
	a := New(core.AgentPricing, client, func(o *Options) {
		o.HandoffTargets = []core.AgentType{core.AgentBenefits}
	})
	a.SetHandoffSink(sink)

	fragments := collect(a.Process(context.Background(), "help", &core.TurnContext{}))

	assert.Empty(t, sink.requests)
	assert.Equal(t, "I can help with that myself.", strings.TrimSpace(strings.Join(fragments, "")))
}

func TestAgentCompletionErrorEmitsErrorMessage(t *testing.T) {
	a := New(core.AgentPricing, &model.ErrClient{Err: errors.New("connection refused")})
	fragments := collect(a.Process(context.Background(), "hello", &core.TurnContext{}))
	assert.Equal(t, []string{ErrorMessage}, fragments)
}

func TestAgentHandoffPrimingReachesInstructions(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueText("picked up")

	a := New(core.AgentBenefits, client)
	tc := &core.TurnContext{
		Summary:       "member wants humira coverage details",
		Reason:        "coverage question",
		PreviousAgent: core.AgentPricing,
	}
	collect(a.Process(context.Background(), "is humira covered?", tc))

	req := client.LastRequest()
	assert.Contains(t, req.Instructions, "member wants humira coverage details")
	assert.Contains(t, req.Instructions, "Previous agent: pricing")
}

func TestAgentResetHistory(t *testing.T) {
	client := model.NewMockClient("mock")
	client.EnqueueText("one")
	client.EnqueueText("two")

	a := New(core.AgentPricing, client)
	collect(a.Process(context.Background(), "first", &core.TurnContext{}))
	assert.NotEmpty(t, a.History())

	a.ResetHistory()
	assert.Empty(t, a.History())
}
