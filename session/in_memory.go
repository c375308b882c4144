// Package session provides SessionStore implementations. The in-memory
// store suits tests, CLIs and single-process deployments; persistent
// backends can implement core.SessionStore without touching callers.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pgazmuri/agentswarm/core"
)

// InMemoryStore is a volatile core.SessionStore keeping live sessions in a
// process-local map. Sessions are shared, not cloned: the coordinator
// mutates them in place and every holder of the pointer observes the same
// state. Safe for concurrent access.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Create allocates a new session. An empty id gets a generated UUID.
// Creating an id that already exists fails rather than silently clobbering
// live conversation state.
func (s *InMemoryStore) Create(id string) (*core.Session, error) {
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[id]; exists {
		return nil, fmt.Errorf("session %q already exists", id)
	}
	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess, nil
}

// Get returns the live session for id, or an error if it does not exist.
func (s *InMemoryStore) Get(id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q not found", id)
	}
	return sess, nil
}

// GetOrCreate returns the live session for id, creating it when absent.
func (s *InMemoryStore) GetOrCreate(id string) (*core.Session, error) {
	if id == "" {
		return s.Create(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	sess := core.NewSession(id)
	s.sessions[id] = sess
	return sess, nil
}

// Delete removes a session. Deleting a missing id is a no-op.
func (s *InMemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of stored sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
