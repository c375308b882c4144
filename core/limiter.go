package core

import (
	"fmt"
	"sync"
)

// DefaultMaxToolIterations bounds a single agent tool-call loop: at most this
// many completion calls per Process invocation before the failsafe fires.
const DefaultMaxToolIterations = 5

// CallLimiter enforces a maximum number of completion calls per turn. The
// orchestrator bounds iteration counts, never wall-clock time; upstream
// timeouts belong to the completion client.
type CallLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewCallLimiter creates a limiter allowing max calls. If max == 0, the
// limiter never trips.
func NewCallLimiter(max int) *CallLimiter {
	return &CallLimiter{max: max}
}

// Increment counts one call and returns an error once the bound is exceeded.
func (cl *CallLimiter) Increment() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cl.count++
	if cl.max > 0 && cl.count > cl.max {
		return fmt.Errorf("exceeded max completion calls: %d", cl.max)
	}
	return nil
}

// Count returns the number of calls made so far.
func (cl *CallLimiter) Count() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.count
}

// Remaining returns how many calls are left, or -1 when unlimited.
func (cl *CallLimiter) Remaining() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.max == 0 {
		return -1
	}
	return cl.max - cl.count
}
