package commands

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pgazmuri/agentswarm/config"
	"github.com/pgazmuri/agentswarm/model"
	"github.com/pgazmuri/agentswarm/model/anthropic"
	"github.com/pgazmuri/agentswarm/model/openai"
)

// newCompletionClient builds the completion backend selected by the config.
func newCompletionClient(cfg config.Config) (model.CompletionClient, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		sdk := openaisdk.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		return openai.NewClientFromSDK(&sdk, func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			if cfg.Temperature != nil {
				o.Temperature = *cfg.Temperature
			}
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewClient(func(o *anthropic.Options) {
			o.APIKey = cfg.AnthropicAPIKey
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			if cfg.Temperature != nil {
				o.Temperature = *cfg.Temperature
			}
		}), nil
	case config.ProviderMock:
		return model.NewMockClient("mock"), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
