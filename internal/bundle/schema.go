package bundle

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://quiz-bundle.json"

// schemaDefinition describes the bundle wire format. Question lists are only
// checked for shape here; emptiness and answer ranges are enforced when a
// test is opened.
var schemaDefinition = map[string]any{
	"type":     "object",
	"required": []any{"tests"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"tests": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title"},
				"properties": map[string]any{
					"id":    map[string]any{"type": "string"},
					"title": map[string]any{"type": "string", "minLength": 1},
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"text", "options", "correctAnswer"},
							"properties": map[string]any{
								"id":   map[string]any{"type": "integer"},
								"text": map[string]any{"type": "string"},
								"options": map[string]any{
									"type":     "array",
									"items":    map[string]any{"type": "string"},
									"minItems": 4,
									"maxItems": 4,
								},
								"correctAnswer": map[string]any{"type": "integer"},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(schemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
