package draftgen

import (
	"encoding/json"

	"github.com/abhisek/quizbox/internal/llm"
)

// sampleDraft satisfies DraftSchema. The mock provider answers with it.
const sampleDraft = `{
  "title": "Sample: Planets",
  "questions": [
    {"text": "Which planet is closest to the Sun?", "options": ["Venus", "Mercury", "Mars", "Earth"], "correctAnswer": 1},
    {"text": "Which planet has the most moons?", "options": ["Jupiter", "Mars", "Saturn", "Neptune"], "correctAnswer": 2}
  ]
}`

// DraftSchema is the structured output requested from the model.
var DraftSchema = &llm.Schema{
	Name:        "quiz-draft",
	Description: "A multiple-choice quiz with a title and questions of exactly four options each",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short quiz title, at most 60 characters",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question prompt in plain text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly four distinct answer options",
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "0-based index of the correct option",
						},
					},
					"required":             []any{"text", "options", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
	Example: json.RawMessage(sampleDraft),
}
