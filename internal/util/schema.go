package util

import (
	"fmt"
	"reflect"
	"strings"
)

// CreateSchema generates a JSON schema from a struct type using reflection.
// Struct tags control the output: `json` names the property, `description`
// documents it, `enum` constrains string values to a comma-separated set.
// Non-struct input yields an empty object schema.
func CreateSchema(structType any) map[string]any {
	t := reflect.TypeOf(structType)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	properties := make(map[string]any)
	var required []any

	if t == nil || t.Kind() != reflect.Struct {
		return map[string]any{"type": "object", "properties": properties}
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		jsonTag := field.Tag.Get("json")
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
		}

		prop := map[string]any{
			"type": jsonType(field.Type),
		}
		if desc := field.Tag.Get("description"); desc != "" {
			prop["description"] = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			vals := strings.Split(enum, ",")
			anyVals := make([]any, len(vals))
			for i, v := range vals {
				anyVals[i] = strings.TrimSpace(v)
			}
			prop["enum"] = anyVals
		}
		if field.Type.Kind() == reflect.Slice {
			prop["items"] = map[string]any{"type": jsonType(field.Type.Elem())}
		}

		properties[name] = prop

		if !hasOmitEmpty(jsonTag) && field.Type.Kind() != reflect.Ptr {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ValidationError describes a single parameter validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
}

// ValidateParameters checks params against schema, verifying required
// fields, basic types and enum membership.
func ValidateParameters(params map[string]any, schema map[string]any) error {
	properties, _ := schema["properties"].(map[string]any)

	switch required := schema["required"].(type) {
	case []string:
		for _, name := range required {
			if _, present := params[name]; !present {
				return &ValidationError{Field: name, Message: "required field missing"}
			}
		}
	case []any:
		for _, r := range required {
			name, _ := r.(string)
			if _, present := params[name]; !present {
				return &ValidationError{Field: name, Message: "required field missing"}
			}
		}
	}

	for name, value := range params {
		propAny, ok := properties[name]
		if !ok {
			continue
		}
		prop, ok := propAny.(map[string]any)
		if !ok {
			continue
		}
		if want, ok := prop["type"].(string); ok {
			if !matchesType(value, want) {
				return &ValidationError{
					Field:   name,
					Message: fmt.Sprintf("expected %s, got %T", want, value),
				}
			}
		}
		if enum, ok := prop["enum"].([]any); ok {
			if !enumContains(enum, value) {
				return &ValidationError{
					Field:   name,
					Message: fmt.Sprintf("value %v not in allowed set", value),
				}
			}
		}
	}
	return nil
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(value) {
			return true
		}
	}
	return false
}

func matchesType(value any, want string) bool {
	if value == nil {
		return true
	}
	switch want {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int64, int32:
			return true
		}
		return false
	case "integer":
		switch v := value.(type) {
		case int, int64, int32:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		return reflect.TypeOf(value).Kind() == reflect.Slice
	case "object":
		_, ok := value.(map[string]any)
		return ok
	}
	return true
}

func jsonType(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}

func hasOmitEmpty(jsonTag string) bool {
	for _, part := range strings.Split(jsonTag, ",")[1:] {
		if part == "omitempty" {
			return true
		}
	}
	return false
}
