package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryEqualToIgnoresTimestamps(t *testing.T) {
	a := UserTurn{Content: "hello", Timestamp: time.Now()}
	b := UserTurn{Content: "hello", Timestamp: time.Now().Add(time.Hour)}
	assert.True(t, a.EqualTo(b))

	c := NewAssistantTurn(AgentPricing, "answer")
	d := AssistantTurn{Agent: AgentPricing, Content: "answer"}
	assert.True(t, c.EqualTo(d))
}

func TestEntryEqualToDistinguishesKinds(t *testing.T) {
	user := NewUserTurn("hello")
	assistant := NewAssistantTurn(AgentPricing, "hello")
	assert.False(t, user.EqualTo(assistant))
	assert.False(t, assistant.EqualTo(user))
}

func TestEntryEqualToAssistantAgentMatters(t *testing.T) {
	a := NewAssistantTurn(AgentPricing, "same text")
	b := NewAssistantTurn(AgentBenefits, "same text")
	assert.False(t, a.EqualTo(b))
}

func TestAssistantToolCallEqualTo(t *testing.T) {
	calls := []ToolCall{{ID: "fc-1", Name: "ndc_lookup", Arguments: `{"drug_name":"metformin"}`}}
	a := NewAssistantToolCall(AgentPricing, "", calls)
	b := NewAssistantToolCall(AgentPricing, "", []ToolCall{calls[0]})
	assert.True(t, a.EqualTo(b))

	c := NewAssistantToolCall(AgentPricing, "", []ToolCall{{ID: "fc-2", Name: "ndc_lookup"}})
	assert.False(t, a.EqualTo(c))
}

func TestToolResultEqualTo(t *testing.T) {
	a := NewToolResult("fc-1", "ndc_lookup", `{"found":true}`)
	b := NewToolResult("fc-1", "ndc_lookup", `{"found":true}`)
	c := NewToolResult("fc-1", "ndc_lookup", `{"found":false}`)
	assert.True(t, a.EqualTo(b))
	assert.False(t, a.EqualTo(c))
}

func TestContainsEntry(t *testing.T) {
	history := []Entry{
		NewUserTurn("first"),
		NewAssistantTurn(AgentPricing, "reply"),
	}
	assert.True(t, ContainsEntry(history, NewUserTurn("first")))
	assert.False(t, ContainsEntry(history, NewUserTurn("second")))
}

func TestMergeHistoriesDeduplicates(t *testing.T) {
	shared := []Entry{
		NewUserTurn("how much is metformin?"),
		NewAssistantTurn(AgentPricing, "let me check"),
	}
	// Local diverges with a tool trace plus the shared entries recorded at
	// different times.
	local := []Entry{
		NewUserTurn("how much is metformin?"),
		NewAssistantToolCall(AgentPricing, "", []ToolCall{{ID: "fc-1", Name: "ndc_lookup"}}),
		NewToolResult("fc-1", "ndc_lookup", `{"found":true}`),
		NewAssistantTurn(AgentPricing, "let me check"),
	}

	merged := MergeHistories(shared, local)
	assert.Len(t, merged, 4)
	assert.True(t, merged[0].EqualTo(shared[0]))
	assert.True(t, merged[1].EqualTo(shared[1]))
	assert.True(t, merged[2].EqualTo(local[1]))
	assert.True(t, merged[3].EqualTo(local[2]))
}

func TestMergeHistoriesEmptyAuthoritative(t *testing.T) {
	local := []Entry{NewUserTurn("hi")}
	merged := MergeHistories(nil, local)
	assert.Len(t, merged, 1)
}
