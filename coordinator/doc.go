// Package coordinator implements conversation orchestration across a set of
// specialist agents: forced-tool routing of new conversations, sticky
// dispatch to the active specialist, and bounded handoff chains with carried
// transcripts.
package coordinator
