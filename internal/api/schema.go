package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Response payloads that feed the workflow engine are validated at the
// ingress point rather than trusted as free-form JSON throughout.
var (
	progressSchema = &schema{
		name: "progress",
		definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"current_step": map[string]any{"type": "string"},
				"steps": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"key":       map[string]any{"type": "string"},
							"label":     map[string]any{"type": "string"},
							"completed": map[string]any{"type": "boolean"},
						},
					},
				},
				"progress_percent": map[string]any{"type": "integer"},
			},
		},
	}

	learningPathSchema = &schema{
		name: "learning-path",
		definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":              map[string]any{"type": "integer"},
							"title":           map[string]any{"type": "string"},
							"skill":           map[string]any{"type": "string"},
							"url":             map[string]any{"type": "string"},
							"thumbnail":       map[string]any{"type": "string"},
							"estimated_hours": map[string]any{"type": "number"},
							"status":          map[string]any{"type": "string"},
						},
						"required": []any{"id", "title"},
					},
				},
			},
			"required": []any{"items"},
		},
	}
)

type schema struct {
	name       string
	definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload validates raw JSON against the given schema.
func validatePayload(s *schema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(s)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(s *schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s.name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(s.definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", s.name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(s.name, compiled)
	return compiled, nil
}
