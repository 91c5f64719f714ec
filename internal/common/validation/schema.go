// Package validation checks stored widget payloads against JSON schemas
// before they are trusted. Invalid payloads degrade to the empty fallback
// rather than failing the request.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const todoListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"text": {"type": "string"},
			"completed": {"type": "boolean"}
		},
		"required": ["id", "text", "completed"]
	}
}`

const scheduleListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"date": {"type": "string", "minLength": 1},
			"title": {"type": "string"}
		},
		"required": ["id", "date", "title"]
	}
}`

const newsListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"content": {"type": "string"},
			"timestamp": {"type": "integer"}
		},
		"required": ["id", "content", "timestamp"]
	}
}`

var widgetSchemas = map[string]*gojsonschema.Schema{}

func init() {
	for name, raw := range map[string]string{
		"todos":     todoListSchema,
		"schedules": scheduleListSchema,
		"news":      newsListSchema,
	} {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid widget schema %q: %v", name, err))
		}
		widgetSchemas[name] = schema
	}
}

// ValidateWidgetPayload checks a raw JSON document against the named widget
// schema. Unknown widget names are rejected.
func ValidateWidgetPayload(widget, payload string) error {
	schema, ok := widgetSchemas[widget]
	if !ok {
		return fmt.Errorf("unknown widget kind: %s", widget)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return fmt.Errorf("widget payload is not valid JSON: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("widget payload failed schema check: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// ValidateDocument checks an arbitrary Go value against a schema supplied as
// a JSON string. Used for request body validation.
func ValidateDocument(doc interface{}, schemaJSON string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return err
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	return nil
}
