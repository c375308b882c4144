package core

import "time"

// Entry is one turn in a conversation transcript. Concrete entry kinds
// implement the unexported isEntry marker, forming a closed set that the
// completion adapters can match exhaustively. Entries are append-only values:
// never mutated after creation.
type Entry interface {
	isEntry()

	// EqualTo reports structural equality with another entry, ignoring
	// timestamps. Two entries recorded independently for the same logical
	// turn (the coordinator's copy and an agent's local copy) must compare
	// equal so that history merging on handoff does not duplicate them.
	EqualTo(other Entry) bool
}

// ToolCall describes a tool invocation requested by the model. Arguments is
// the raw JSON argument payload; validation happens at the external endpoint
// and again in the tool layer.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// UserTurn is a message from the end user.
type UserTurn struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (UserTurn) isEntry() {}

// EqualTo implements Entry.
func (u UserTurn) EqualTo(other Entry) bool {
	o, ok := other.(UserTurn)
	return ok && o.Content == u.Content
}

// AssistantTurn is a textual reply produced by a specialist (or the
// coordinator itself). Agent records which swarm member answered.
type AssistantTurn struct {
	Agent     AgentType `json:"agent,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (AssistantTurn) isEntry() {}

// EqualTo implements Entry.
func (a AssistantTurn) EqualTo(other Entry) bool {
	o, ok := other.(AssistantTurn)
	return ok && o.Agent == a.Agent && o.Content == a.Content
}

// AssistantToolCall records the raw tool-call requests an assistant response
// carried, kept for audit and for rebuilding valid call/response pairings at
// the completion boundary.
type AssistantToolCall struct {
	Agent     AgentType  `json:"agent,omitempty"`
	Content   string     `json:"content,omitempty"`
	Calls     []ToolCall `json:"calls"`
	Timestamp time.Time  `json:"timestamp"`
}

func (AssistantToolCall) isEntry() {}

// EqualTo implements Entry.
func (a AssistantToolCall) EqualTo(other Entry) bool {
	o, ok := other.(AssistantToolCall)
	if !ok || o.Agent != a.Agent || o.Content != a.Content || len(o.Calls) != len(a.Calls) {
		return false
	}
	for i := range a.Calls {
		if a.Calls[i] != o.Calls[i] {
			return false
		}
	}
	return true
}

// ToolResult is the outcome of a single tool call, correlated to its
// originating request by CallID so completion endpoints can validate the
// call/response pairing.
type ToolResult struct {
	CallID    string    `json:"tool_call_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (ToolResult) isEntry() {}

// EqualTo implements Entry.
func (t ToolResult) EqualTo(other Entry) bool {
	o, ok := other.(ToolResult)
	return ok && o.CallID == t.CallID && o.Name == t.Name && o.Content == t.Content
}

// NewUserTurn creates a user entry stamped with the current UTC time.
func NewUserTurn(content string) UserTurn {
	return UserTurn{Content: content, Timestamp: time.Now().UTC()}
}

// NewAssistantTurn creates an assistant entry tagged with the responding agent.
func NewAssistantTurn(agent AgentType, content string) AssistantTurn {
	return AssistantTurn{Agent: agent, Content: content, Timestamp: time.Now().UTC()}
}

// NewAssistantToolCall records a batch of tool-call requests.
func NewAssistantToolCall(agent AgentType, content string, calls []ToolCall) AssistantToolCall {
	return AssistantToolCall{Agent: agent, Content: content, Calls: calls, Timestamp: time.Now().UTC()}
}

// NewToolResult records a tool outcome correlated by call id.
func NewToolResult(callID, name, content string) ToolResult {
	return ToolResult{CallID: callID, Name: name, Content: content, Timestamp: time.Now().UTC()}
}

// ContainsEntry reports whether history already holds an entry structurally
// equal to e.
func ContainsEntry(history []Entry, e Entry) bool {
	for _, h := range history {
		if h.EqualTo(e) {
			return true
		}
	}
	return false
}

// MergeHistories returns authoritative followed by every entry of local not
// already present in authoritative, preserving relative order. This is the
// carried-history construction used on handoff: the shared transcript wins,
// agent-local divergence (extra context entries, tool traces) is appended
// once, and nothing is duplicated.
func MergeHistories(authoritative, local []Entry) []Entry {
	merged := make([]Entry, 0, len(authoritative)+len(local))
	merged = append(merged, authoritative...)
	for _, e := range local {
		if !ContainsEntry(merged, e) {
			merged = append(merged, e)
		}
	}
	return merged
}
