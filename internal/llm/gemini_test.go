package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "maxLength": 60},
			"tone":     map[string]any{"type": "string", "enum": []any{"warm", "dry"}},
			"tags":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"headline"},
	})

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	if got := s.Properties["headline"]; got.Type != genai.TypeString || got.MaxLength == nil || *got.MaxLength != 60 {
		t.Fatalf("headline = %+v", got)
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Fatalf("enum = %v", s.Properties["tone"].Enum)
	}
	if s.Properties["tags"].Items.Type != genai.TypeString {
		t.Fatalf("items = %+v", s.Properties["tags"].Items)
	}
	if len(s.Required) != 1 || s.Required[0] != "headline" {
		t.Fatalf("required = %v", s.Required)
	}
}

func TestGeminiSchemaUnknownTypeDefaultsToString(t *testing.T) {
	if s := geminiSchema(map[string]any{"type": "null"}); s.Type != genai.TypeString {
		t.Fatalf("type = %s", s.Type)
	}
}
