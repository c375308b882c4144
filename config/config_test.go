package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
provider: mock
model: test-model
max_handoffs: 5
log_level: debug
log_format: json
`)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, ProviderMock, cfg.Provider)
	assert.Equal(t, "test-model", cfg.Model)
	assert.Equal(t, 5, cfg.MaxHandoffs)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFileKeyBeatsEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	path := writeConfig(t, `
provider: openai
openai_api_key: sk-file
`)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.OpenAIAPIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidateMissingCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := Load("")
	assert.Error(t, err)

	path := writeConfig(t, "provider: anthropic\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	assert.Error(t, Config{Provider: "carrier-pigeon"}.Validate())
	assert.Error(t, Config{Provider: ProviderMock, MaxHandoffs: -1}.Validate())
	assert.Error(t, Config{Provider: ProviderMock, LogLevel: "verbose"}.Validate())
	assert.Error(t, Config{Provider: ProviderMock, LogFormat: "xml"}.Validate())
	assert.NoError(t, Config{Provider: ProviderMock}.Validate())
}
