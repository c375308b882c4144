package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplatePlainText(t *testing.T) {
	out, err := RenderTemplate("no markers here", nil)
	assert.NoError(t, err)
	assert.Equal(t, "no markers here", out)
}

func TestRenderTemplateVars(t *testing.T) {
	out, err := RenderTemplate("Hello {{.name}}, you are {{upper .role}}.", map[string]any{
		"name": "Demo",
		"role": "member",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Hello Demo, you are MEMBER.", out)
}

func TestRenderTemplateDefault(t *testing.T) {
	out, err := RenderTemplate(`{{default "guest" .name}}`, map[string]any{})
	assert.NoError(t, err)
	assert.Equal(t, "guest", out)
}

func TestRenderTemplateParseError(t *testing.T) {
	_, err := RenderTemplate("{{.broken", nil)
	assert.Error(t, err)
}
