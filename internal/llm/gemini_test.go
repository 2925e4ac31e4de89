package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questionNumber": map[string]any{"type": "integer"},
			"questionText":   map[string]any{"type": "string"},
			"difficulty":     map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			"topics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"questionNumber", "questionText"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["questionText"].Type != "STRING" {
		t.Fatalf("expected STRING for questionText, got %s", schema.Properties["questionText"].Type)
	}
	if schema.Properties["questionNumber"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for questionNumber, got %s", schema.Properties["questionNumber"].Type)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["topics"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for topics, got %s", schema.Properties["topics"].Type)
	}
	if schema.Properties["topics"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for topics items, got %s", schema.Properties["topics"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Errorf("claude-haiku resolved to %q", got)
	}
	if got := resolveModel("claude-sonnet-4-5", anthropicModels); got != "claude-sonnet-4-5" {
		t.Errorf("pass-through resolved to %q", got)
	}
}
