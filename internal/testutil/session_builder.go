package testutil

import (
	"github.com/pgazmuri/agentswarm/core"
)

// SessionBuilder helps construct sessions with fluent chaining for tests.
// Example:
//
//	sess := NewSessionBuilder("sess-1").
//		Context("member_id", "DEMO123456").
//		History(NewHistoryBuilder().User("hi").Build()...).
//		Build()
type SessionBuilder struct {
	id      string
	agent   core.AgentType
	context map[string]any
	history []core.Entry
}

// NewSessionBuilder creates a new builder for a session with the given id.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{id: id, context: map[string]any{}}
}

// Agent sets the active agent on the resulting session (chainable).
func (b *SessionBuilder) Agent(at core.AgentType) *SessionBuilder {
	b.agent = at
	return b
}

// Context sets a shared context key/value pair (chainable).
func (b *SessionBuilder) Context(key string, val any) *SessionBuilder {
	b.context[key] = val
	return b
}

// History appends entries to the session history (chainable).
func (b *SessionBuilder) History(entries ...core.Entry) *SessionBuilder {
	b.history = append(b.history, entries...)
	return b
}

// Build materializes the session.
func (b *SessionBuilder) Build() *core.Session {
	sess := core.NewSession(b.id)
	if b.agent != "" {
		sess.SetCurrentAgent(b.agent)
	}
	for k, v := range b.context {
		sess.SetContext(k, v)
	}
	if len(b.history) > 0 {
		sess.Append(b.history...)
	}
	return sess
}
