package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/pgazmuri/agentswarm/core"
)

// ToolChoice controls whether the model may, must or must not call a tool.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide between text and tool calls.
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceRequired forces the model to emit at least one tool call.
	ToolChoiceRequired ToolChoice = "required"
	// ToolChoiceNone disables tool calling for the request.
	ToolChoiceNone ToolChoice = "none"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Request captures the normalized model input produced by agents and the
// coordinator's routing step.
type Request struct {
	Instructions string           `json:"instructions"`
	Entries      []core.Entry     `json:"entries"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
	ToolChoice   ToolChoice       `json:"tool_choice,omitempty"`
	Stream       bool             `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a completion client.
// Final responses carry either text content, tool calls, or both.
type Response struct {
	ID           string          `json:"id"`
	Partial      bool            `json:"partial"`
	Content      string          `json:"content"`
	ToolCalls    []core.ToolCall `json:"tool_calls,omitempty"`
	FinishReason string          `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
	Usage        *TokenUsage     `json:"usage,omitempty"`
}

// Info contains metadata about a client implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// CompletionClient is the minimal interface agents and the coordinator use
// to drive generation.
type CompletionClient interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the client implementation.
	Info() Info
}

// MockClient is a lightweight in-memory CompletionClient useful for tests
// and examples. Responses are scripted and consumed in order; once the
// script is exhausted it falls back to echoing the last user entry.
type MockClient struct {
	mu       sync.Mutex
	info     Info
	script   []Response
	requests []Request
}

// NewMockClient constructs a MockClient with tool support enabled.
func NewMockClient(name string) *MockClient {
	return &MockClient{
		info: Info{
			Name:          name,
			Provider:      "mock",
			SupportsTools: true,
		},
	}
}

// EnqueueText scripts a plain text completion.
func (m *MockClient) EnqueueText(content string) {
	m.Enqueue(Response{Content: content, FinishReason: "stop"})
}

// EnqueueToolCalls scripts a completion that requests the given tool calls.
func (m *MockClient) EnqueueToolCalls(calls ...core.ToolCall) {
	m.Enqueue(Response{ToolCalls: calls, FinishReason: "tool_calls"})
}

// Enqueue appends a fully specified response to the script.
func (m *MockClient) Enqueue(resp Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// Requests returns a copy of every request seen so far.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or a zero Request.
func (m *MockClient) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}
	}
	return m.requests[len(m.requests)-1]
}

func (m *MockClient) next(req Request) Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.script) > 0 {
		resp := m.script[0]
		m.script = m.script[1:]
		return resp
	}
	var input string
	for i := len(req.Entries) - 1; i >= 0; i-- {
		if ut, ok := req.Entries[i].(core.UserTurn); ok {
			input = ut.Content
			break
		}
	}
	return Response{
		Content:      fmt.Sprintf("Mock response to: %s", input),
		FinishReason: "stop",
	}
}

// Generate implements CompletionClient; emits optional streaming chunks
// followed by the final scripted response.
func (m *MockClient) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		final := m.next(req)
		if req.Stream && final.Content != "" && len(final.ToolCalls) == 0 {
			for _, r := range final.Content {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{Partial: true, Content: string(r)}:
				}
			}
		}
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- final:
		}
	}()
	return respCh, errCh
}

// Info implements CompletionClient.
func (m *MockClient) Info() Info { return m.info }

// ErrClient is a CompletionClient that always fails. Useful for exercising
// failure paths in tests.
type ErrClient struct {
	Err error
}

// Generate implements CompletionClient.
func (e *ErrClient) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response)
	errCh := make(chan error, 1)
	go func() {
		defer close(respCh)
		defer close(errCh)
		errCh <- e.Err
	}()
	return respCh, errCh
}

// Info implements CompletionClient.
func (e *ErrClient) Info() Info {
	return Info{Name: "error", Provider: "mock"}
}
