// Package model defines the provider-neutral completion interface used by
// agents and the coordinator, along with shared request and response types.
// Provider adapters live in the openai and anthropic subpackages; MockClient
// supports deterministic tests without network access.
package model
