package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgazmuri/agentswarm/core"
)

func finalResponse(t *testing.T, respCh <-chan Response, errCh <-chan error) Response {
	t.Helper()
	var final Response
	for r := range respCh {
		if !r.Partial {
			final = r
		}
	}
	assert.NoError(t, <-errCh)
	return final
}

func TestMockClientScript(t *testing.T) {
	m := NewMockClient("mock")
	m.EnqueueText("first")
	m.EnqueueToolCalls(core.ToolCall{ID: "fc-1", Name: "lookup"})

	respCh, errCh := sendRequest(m, Request{})
	resp := finalResponse(t, respCh, errCh)
	assert.Equal(t, "first", resp.Content)

	respCh, errCh = sendRequest(m, Request{})
	resp = finalResponse(t, respCh, errCh)
	assert.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "tool_calls", resp.FinishReason)
}

func TestMockClientFallbackEchoesUser(t *testing.T) {
	m := NewMockClient("mock")
	respCh, errCh := sendRequest(m, Request{
		Entries: []core.Entry{core.NewUserTurn("hello")},
	})
	resp := finalResponse(t, respCh, errCh)
	assert.Equal(t, "Mock response to: hello", resp.Content)
}

func TestMockClientStreaming(t *testing.T) {
	m := NewMockClient("mock")
	m.EnqueueText("ab")

	respCh, errCh := m.Generate(context.Background(), Request{Stream: true})
	var partials []string
	var final Response
	for r := range respCh {
		if r.Partial {
			partials = append(partials, r.Content)
		} else {
			final = r
		}
	}
	assert.NoError(t, <-errCh)
	assert.Equal(t, []string{"a", "b"}, partials)
	assert.Equal(t, "ab", final.Content)
}

func TestMockClientRecordsRequests(t *testing.T) {
	m := NewMockClient("mock")
	m.EnqueueText("ok")

	req := Request{Instructions: "be brief", ToolChoice: ToolChoiceRequired}
	respCh, errCh := sendRequest(m, req)
	finalResponse(t, respCh, errCh)

	assert.Len(t, m.Requests(), 1)
	assert.Equal(t, "be brief", m.LastRequest().Instructions)
	assert.Equal(t, ToolChoiceRequired, m.LastRequest().ToolChoice)
}

func sendRequest(c CompletionClient, req Request) (<-chan Response, <-chan error) {
	return c.Generate(context.Background(), req)
}
