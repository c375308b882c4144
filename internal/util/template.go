package util

import (
	"fmt"
	"strings"
	"text/template"
)

// RenderTemplate renders a Go text/template against vars. Instruction
// strings without template markers are returned unchanged.
func RenderTemplate(tmpl string, vars map[string]any) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}

	t, err := template.New("instruction").Funcs(template.FuncMap{
		"default": func(def, val any) any {
			if val == nil || val == "" {
				return def
			}
			return val
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"join": func(sep string, items []string) string {
			return strings.Join(items, sep)
		},
	}).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse instruction template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render instruction template: %w", err)
	}
	return sb.String(), nil
}
