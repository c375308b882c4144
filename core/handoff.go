package core

// HandoffRequest asks the coordinator to transfer the conversation to another
// swarm member. It is built exactly once per handoff decision and consumed
// exactly once; the coordinator discards it after the transfer (or after
// rejecting an unknown target).
type HandoffRequest struct {
	FromAgent      AgentType
	ToAgent        AgentType
	Reason         string
	ContextSummary string

	// UserMessage is the original user message of the turn. The receiving
	// agent is re-invoked with this text, not with the handoff's internal
	// reason.
	UserMessage string

	// CarriedHistory is the deduplicated union of the coordinator's
	// authoritative history and the requesting agent's local history,
	// coordinator entries first.
	CarriedHistory []Entry
}

// NewHandoffRequest assembles a handoff, merging the requesting agent's local
// history into the authoritative transcript (see MergeHistories).
func NewHandoffRequest(
	from, to AgentType,
	reason, summary, userMessage string,
	authoritative, local []Entry,
) HandoffRequest {
	return HandoffRequest{
		FromAgent:      from,
		ToAgent:        to,
		Reason:         reason,
		ContextSummary: summary,
		UserMessage:    userMessage,
		CarriedHistory: MergeHistories(authoritative, local),
	}
}

// HandoffSink receives handoff requests raised inside an agent's tool-call
// loop. The coordinator implements it; agents hold it as their only channel
// back into orchestration.
type HandoffSink interface {
	SubmitHandoff(req HandoffRequest)
}
