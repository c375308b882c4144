// Package config loads CLI and runtime configuration from a YAML file with
// environment variable fallbacks for credentials.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Provider selects which completion backend to use.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderMock      Provider = "mock"
)

// Config is the full runtime configuration.
type Config struct {
	Provider    Provider `koanf:"provider"`
	Model       string   `koanf:"model"`
	Temperature *float64 `koanf:"temperature"`

	OpenAIAPIKey    string `koanf:"openai_api_key"`
	AnthropicAPIKey string `koanf:"anthropic_api_key"`

	// MaxHandoffs bounds coordinator handoff chains per user turn.
	// Zero means the coordinator default.
	MaxHandoffs int `koanf:"max_handoffs"`

	// MaxToolIterations bounds each agent's tool loop per turn.
	// Zero means the agent default.
	MaxToolIterations int `koanf:"max_tool_iterations"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// MetricsAddr, when set, serves Prometheus metrics on this address,
	// e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Provider:  ProviderOpenAI,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads cfg from a YAML file. An empty path returns Default with
// environment fallbacks applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %q: %w", path, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv fills credentials from the environment when the file left them
// empty. Environment values never override explicit file values.
func (c *Config) applyEnv() {
	if c.OpenAIAPIKey == "" {
		c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.AnthropicAPIKey == "" {
		c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if v := os.Getenv("AGENTSWARM_PROVIDER"); v != "" && c.Provider == Default().Provider {
		c.Provider = Provider(strings.ToLower(v))
	}
}

// Validate checks the configuration for values that would fail later in a
// less obvious way.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("provider %q requires an OpenAI API key (set openai_api_key or OPENAI_API_KEY)", c.Provider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("provider %q requires an Anthropic API key (set anthropic_api_key or ANTHROPIC_API_KEY)", c.Provider)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if c.MaxHandoffs < 0 {
		return fmt.Errorf("max_handoffs must not be negative, got %d", c.MaxHandoffs)
	}
	if c.MaxToolIterations < 0 {
		return fmt.Errorf("max_tool_iterations must not be negative, got %d", c.MaxToolIterations)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}
