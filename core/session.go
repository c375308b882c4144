package core

import (
	"sync"
	"time"
)

// Session is the conversational state owned by one coordinator: the
// authoritative transcript, the active agent pointer, at most one pending
// handoff, and a small shared key/value context. It is safe for concurrent
// access, though the turn model guarantees a single logical writer at a time.
//
// Contract:
//   - History is append-only within a session except on Reset
//   - At most one pending handoff is outstanding at any instant
//   - CurrentAgent is always a registered specialist or AgentCoordinator
type Session struct {
	ID      string
	Created time.Time
	Updated time.Time

	mu             sync.RWMutex
	currentAgent   AgentType
	history        []Entry
	pendingHandoff *HandoffRequest
	sharedContext  map[string]any
}

// NewSession creates an empty session routed to the coordinator.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            id,
		Created:       now,
		Updated:       now,
		currentAgent:  AgentCoordinator,
		sharedContext: map[string]any{},
	}
}

// CurrentAgent returns the active agent pointer.
func (s *Session) CurrentAgent() AgentType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentAgent
}

// SetCurrentAgent moves the active agent pointer.
func (s *Session) SetCurrentAgent(at AgentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentAgent = at
	s.Updated = time.Now().UTC()
}

// Append adds fully-formed entries to the authoritative transcript. Partial
// writes are avoided by only ever appending complete entries.
func (s *Session) Append(entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entries...)
	s.Updated = time.Now().UTC()
}

// History returns a defensive copy of the transcript.
func (s *Session) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryLen returns the transcript length without copying.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// SetPendingHandoff stages a handoff request. Any previous pending request is
// replaced; the coordinator consumes it before the next inbound user message.
func (s *Session) SetPendingHandoff(req HandoffRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingHandoff = &req
	s.Updated = time.Now().UTC()
}

// TakePendingHandoff returns and clears the pending handoff, enforcing
// single consumption.
func (s *Session) TakePendingHandoff() (HandoffRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingHandoff == nil {
		return HandoffRequest{}, false
	}
	req := *s.pendingHandoff
	s.pendingHandoff = nil
	return req, true
}

// ClearPendingHandoff discards any staged handoff without consuming it.
func (s *Session) ClearPendingHandoff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingHandoff = nil
}

// HasPendingHandoff reports whether a handoff is staged.
func (s *Session) HasPendingHandoff() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingHandoff != nil
}

// GetContext returns a shared-context value and its existence flag.
func (s *Session) GetContext(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sharedContext[key]
	return v, ok
}

// SetContext stores a shared-context value.
func (s *Session) SetContext(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sharedContext[key] = value
	s.Updated = time.Now().UTC()
}

// ContextSnapshot returns a copy of the shared context map.
func (s *Session) ContextSnapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.sharedContext))
	for k, v := range s.sharedContext {
		out[k] = v
	}
	return out
}

// Reset atomically clears transcript, shared context and any pending handoff,
// and points the session back at the coordinator. Agent registrations live on
// the coordinator and are untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.sharedContext = map[string]any{}
	s.pendingHandoff = nil
	s.currentAgent = AgentCoordinator
	s.Updated = time.Now().UTC()
}

// Clone returns a deep copy safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{
		ID:            s.ID,
		Created:       s.Created,
		Updated:       s.Updated,
		currentAgent:  s.currentAgent,
		history:       make([]Entry, len(s.history)),
		sharedContext: make(map[string]any, len(s.sharedContext)),
	}
	copy(clone.history, s.history)
	for k, v := range s.sharedContext {
		clone.sharedContext[k] = v
	}
	if s.pendingHandoff != nil {
		req := *s.pendingHandoff
		clone.pendingHandoff = &req
	}
	return clone
}

// SessionStore persists sessions keyed by id. Implementations must isolate
// sessions from each other; there is no shared mutable state across them.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
}
