package testutil

import (
	"github.com/pgazmuri/agentswarm/core"
)

// HistoryBuilder provides a fluent helper for constructing conversation
// histories in tests. Example:
//
//	h := NewHistoryBuilder().
//		User("hello").
//		Assistant(core.AgentPricing, "hi there").
//		Build()
//
// Chain only the turns you need; entries keep their insertion order.
type HistoryBuilder struct {
	entries []core.Entry
}

// NewHistoryBuilder creates an empty builder.
func NewHistoryBuilder() *HistoryBuilder { return &HistoryBuilder{} }

// User appends a user turn (chainable).
func (b *HistoryBuilder) User(content string) *HistoryBuilder {
	b.entries = append(b.entries, core.NewUserTurn(content))
	return b
}

// Assistant appends an assistant text turn (chainable).
func (b *HistoryBuilder) Assistant(agent core.AgentType, content string) *HistoryBuilder {
	b.entries = append(b.entries, core.NewAssistantTurn(agent, content))
	return b
}

// ToolCall appends an assistant turn carrying a single tool call (chainable).
func (b *HistoryBuilder) ToolCall(agent core.AgentType, callID, name, arguments string) *HistoryBuilder {
	b.entries = append(b.entries, core.NewAssistantToolCall(agent, "", []core.ToolCall{
		{ID: callID, Name: name, Arguments: arguments},
	}))
	return b
}

// ToolResult appends a tool result turn (chainable).
func (b *HistoryBuilder) ToolResult(callID, name, content string) *HistoryBuilder {
	b.entries = append(b.entries, core.NewToolResult(callID, name, content))
	return b
}

// Entry appends an arbitrary entry (chainable).
func (b *HistoryBuilder) Entry(e core.Entry) *HistoryBuilder {
	b.entries = append(b.entries, e)
	return b
}

// Build returns the accumulated history. The builder can keep being used;
// later Builds include earlier entries.
func (b *HistoryBuilder) Build() []core.Entry {
	return append([]core.Entry(nil), b.entries...)
}
