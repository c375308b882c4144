// Package core provides the foundational domain types of the swarm: the
// closed AgentType set, the Entry tagged union modelling conversation turns,
// HandoffRequest and its carried-history construction, the typed TurnContext
// passed to agents, and the Session state owned by a coordinator.
//
// Everything here is orchestration-agnostic: agents and the coordinator
// build on these types, while completion adapters translate Entry values to
// and from provider message formats with exhaustive type switches.
package core
