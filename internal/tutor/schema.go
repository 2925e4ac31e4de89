package tutor

import "github.com/abhisek/pam/internal/llm"

// TopicsSchema defines the JSON schema for topic extraction responses.
var TopicsSchema = &llm.Schema{
	Name:        "conversation-topics",
	Description: "Physics topics extracted from a tutoring conversation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Distinct physics topics, concepts, or formulas discussed",
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}

// WorksheetSchema defines the JSON schema for worksheet generation responses.
var WorksheetSchema = &llm.Schema{
	Name:        "practice-worksheet",
	Description: "A practice worksheet with questions and a separate answer key",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Worksheet title in the tutoring language",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionNumber": map[string]any{"type": "integer"},
						"questionText":   map[string]any{"type": "string"},
					},
					"required":             []any{"questionNumber", "questionText"},
					"additionalProperties": false,
				},
			},
			"answerKey": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionNumber": map[string]any{"type": "integer"},
						"answerText":     map[string]any{"type": "string"},
					},
					"required":             []any{"questionNumber", "answerText"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions", "answerKey"},
		"additionalProperties": false,
	},
}
