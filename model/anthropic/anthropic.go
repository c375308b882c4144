// Package anthropic provides a completion client for the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/pgazmuri/agentswarm/core"
	"github.com/pgazmuri/agentswarm/model"
)

// Options configures the Anthropic client adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Client wraps the Anthropic Messages API behind the generic
// model.CompletionClient interface.
type Client struct {
	client *anthropic.Client
	opts   Options
}

// NewClient creates a new Anthropic client using the official SDK.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Client{
		client: &client,
		opts:   opts,
	}
}

// NewClientFromSDK creates a new Anthropic client from an existing SDK client.
func NewClientFromSDK(client *anthropic.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		client: client,
		opts:   opts,
	}
}

// Generate implements unified generation against the Anthropic Messages API.
func (c *Client) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		params := anthropic.MessageNewParams{
			Model:       c.opts.Model,
			Messages:    buildMessages(req.Entries),
			MaxTokens:   c.opts.MaxTokens,
			Temperature: anthropic.Float(c.opts.Temperature),
		}

		if req.Instructions != "" {
			params.System = []anthropic.TextBlockParam{{Text: req.Instructions}}
		}

		if len(req.Tools) > 0 {
			params.Tools = buildTools(req.Tools)
			if req.ToolChoice == model.ToolChoiceRequired {
				params.ToolChoice = anthropic.ToolChoiceUnionParam{
					OfAny: &anthropic.ToolChoiceAnyParam{},
				}
			}
		}

		if req.Stream {
			// TODO: implement streaming via anthropic.MessageStreamEvent
			errCh <- fmt.Errorf("streaming not yet implemented for Anthropic client")
			return
		}

		resp, err := c.client.Messages.New(ctx, params)
		if err != nil {
			errCh <- fmt.Errorf("anthropic api error: %w", err)
			return
		}

		var content string
		var calls []core.ToolCall

		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				content += block.AsText().Text
			case "tool_use":
				toolBlock := block.AsToolUse()
				args := ""
				if toolBlock.Input != nil {
					if argsBytes, err := json.Marshal(toolBlock.Input); err == nil {
						args = string(argsBytes)
					}
				}
				calls = append(calls, core.ToolCall{
					ID:        toolBlock.ID,
					Name:      toolBlock.Name,
					Arguments: args,
				})
			}
		}

		finishReason := "stop"
		if resp.StopReason != "" {
			finishReason = string(resp.StopReason)
		}

		out <- model.Response{
			Partial:      false,
			Content:      content,
			ToolCalls:    calls,
			FinishReason: finishReason,
		}
	}()

	return out, errCh
}

// buildMessages converts conversation entries to Anthropic message format.
// Tool results become user-role tool_result blocks, which is how the
// Messages API expects them.
func buildMessages(entries []core.Entry) []anthropic.MessageParam {
	var messages []anthropic.MessageParam

	for _, e := range entries {
		switch v := e.(type) {
		case core.UserTurn:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(v.Content)))
		case core.AssistantTurn:
			if v.Content != "" {
				messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(v.Content)))
			}
		case core.AssistantToolCall:
			var content []anthropic.ContentBlockParamUnion
			if v.Content != "" {
				content = append(content, anthropic.NewTextBlock(v.Content))
			}
			for _, tc := range v.Calls {
				var input any
				if tc.Arguments != "" {
					if err := json.Unmarshal([]byte(tc.Arguments), &input); err != nil {
						input = tc.Arguments
					}
				}
				content = append(content, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
			}
			if len(content) > 0 {
				messages = append(messages, anthropic.NewAssistantMessage(content...))
			}
		case core.ToolResult:
			messages = append(messages, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(v.CallID, v.Content, false),
			))
		}
	}

	return messages
}

// buildTools converts tool definitions to the Anthropic tool format.
func buildTools(tools []model.ToolDefinition) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))

	for i, tool := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}

		if params := tool.Function.Parameters; params != nil {
			if properties, exists := params["properties"]; exists {
				inputSchema.Properties = properties
			}
			if required, exists := params["required"]; exists {
				if reqSlice, ok := required.([]string); ok {
					inputSchema.Required = reqSlice
				} else if reqAny, ok := required.([]any); ok {
					var reqStrings []string
					for _, r := range reqAny {
						if s, ok := r.(string); ok {
							reqStrings = append(reqStrings, s)
						}
					}
					inputSchema.Required = reqStrings
				}
			}
		}

		anthropicTools[i] = anthropic.ToolUnionParamOfTool(inputSchema, tool.Function.Name)
	}

	return anthropicTools
}

// Info returns metadata describing this Anthropic client implementation.
func (c *Client) Info() model.Info {
	return model.Info{
		Name:          string(c.opts.Model),
		Provider:      "anthropic",
		SupportsTools: true,
	}
}
