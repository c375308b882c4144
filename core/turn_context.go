package core

// TurnContext carries the conversational context an agent needs for one
// turn: the authoritative transcript plus, when the turn originated from a
// handoff, the priming details of that handoff. It replaces the untyped
// context map of earlier designs; every field is explicit and optional
// fields are zero-valued when absent.
type TurnContext struct {
	// History is the coordinator's authoritative transcript at the start of
	// the turn. Agents read it to rebuild context; they never mutate it.
	History []Entry

	// Handoff priming. Set only when a previous agent transferred the turn.
	Summary       string
	Reason        string
	PreviousAgent AgentType

	// Session grants tools access to the shared key/value context. May be
	// nil in tests that exercise an agent in isolation.
	Session *Session
}

// FromHandoff reports whether this turn reached the agent through a handoff.
func (tc *TurnContext) FromHandoff() bool {
	return tc != nil && tc.PreviousAgent != ""
}

// PrimingNote renders the synthetic system entry summarizing handoff context.
// It is inserted immediately after the system prompt so it primes the model
// ahead of the transcript. Empty when the turn did not come from a handoff.
func (tc *TurnContext) PrimingNote() string {
	if tc == nil {
		return ""
	}
	var note string
	if tc.Summary != "" {
		note += "Original context summary: " + tc.Summary
	}
	if tc.Reason != "" {
		if note != "" {
			note += "\n"
		}
		note += "Handoff reason: " + tc.Reason
	}
	if tc.PreviousAgent != "" {
		if note != "" {
			note += "\n"
		}
		note += "Previous agent: " + tc.PreviousAgent.String()
	}
	return note
}
