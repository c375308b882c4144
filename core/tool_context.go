package core

import (
	"context"

	"github.com/pgazmuri/agentswarm/logging"
)

// ToolContext is the constrained surface handed to tool implementations. It
// exposes the invocation's cancellation context, correlation ids and the
// session's shared key/value context, without giving tools access to the
// transcript or orchestration state.
type ToolContext struct {
	ctx     context.Context
	agent   AgentType
	callID  string
	session *Session

	*loggerAdapter
}

// NewToolContext binds a tool invocation to its agent, function-call id and
// session.
func NewToolContext(ctx context.Context, agent AgentType, callID string, sess *Session, logger logging.Logger) *ToolContext {
	return &ToolContext{
		ctx:           ctx,
		agent:         agent,
		callID:        callID,
		session:       sess,
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Context returns the cancellation context of the invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// Agent returns the identity of the agent making the call.
func (tc *ToolContext) Agent() AgentType { return tc.agent }

// CallID returns the function-call id correlating request and result.
func (tc *ToolContext) CallID() string { return tc.callID }

// GetState reads a value from the session's shared context.
func (tc *ToolContext) GetState(key string) (any, bool) {
	if tc.session == nil {
		return nil, false
	}
	return tc.session.GetContext(key)
}

// SetState writes a value to the session's shared context, making it visible
// to later turns and other agents (e.g. a verified member id).
func (tc *ToolContext) SetState(key string, value any) {
	if tc.session == nil {
		return
	}
	tc.session.SetContext(key, value)
}
