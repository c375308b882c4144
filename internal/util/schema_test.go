package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleSchema struct {
	A string   `json:"a" description:"Field A"`
	B *int     `json:"b" description:"Optional pointer field"`
	C int      `json:"c,omitempty" description:"Omit empty field"`
	D string   `json:"d" enum:"one,two,three"`
	E []string `json:"e,omitempty"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleSchema{})
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	assert.Contains(t, props, "d")

	a := props["a"].(map[string]any)
	assert.Equal(t, "string", a["type"])
	assert.Equal(t, "Field A", a["description"])

	d := props["d"].(map[string]any)
	assert.Equal(t, []any{"one", "two", "three"}, d["enum"])

	e := props["e"].(map[string]any)
	assert.Equal(t, "array", e["type"])
	assert.Equal(t, map[string]any{"type": "string"}, e["items"])

	// Required excludes pointer and omitempty fields.
	req, _ := schema["required"].([]any)
	assert.ElementsMatch(t, []any{"a", "d"}, req)
}

func TestCreateSchemaNonStruct(t *testing.T) {
	schema := CreateSchema(42)
	assert.Equal(t, "object", schema["type"])
	assert.Empty(t, schema["properties"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		"required": []any{"x"},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"x": 5}, schema))

	// JSON decoding yields float64 for numbers; whole floats pass integer
	// checks.
	assert.NoError(t, ValidateParameters(map[string]any{"x": float64(5)}, schema))

	err := ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "x", vErr.Field)

	err = ValidateParameters(map[string]any{"x": "five"}, schema)
	assert.Error(t, err)
}

func TestValidateParametersEnum(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"method": map[string]any{"type": "string", "enum": []any{"sms", "email"}},
		},
	}

	assert.NoError(t, ValidateParameters(map[string]any{"method": "sms"}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"method": "carrier pigeon"}, schema))
}

func TestValidateParametersUnknownFieldIgnored(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"extra": 1}, schema))
}
