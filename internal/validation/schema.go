// Package validation checks untyped create-event payloads against a fixed JSON Schema.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dhima/event-records/internal/models"
	"github.com/xeipuuv/gojsonschema"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	// MaxDuration is one day in minutes.
	MaxDuration = 24 * 60
)

// eventSchema is the full rule set for a create payload.
var eventSchema = fmt.Sprintf(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"title":       {"type": "string", "minLength": 1, "maxLength": %d},
		"description": {"type": "string", "minLength": 1, "maxLength": %d},
		"duration":    {"type": "integer", "minimum": 1, "maximum": %d},
		"isPrivate":   {"type": "boolean"}
	},
	"required": ["title", "duration", "isPrivate"],
	"additionalProperties": false
}`, MaxTitleLength, MaxDescriptionLength, MaxDuration)

// EventSchema validates create payloads.
type EventSchema struct {
	schema *gojsonschema.Schema
}

// NewEventSchema compiles the event schema.
func NewEventSchema() (*EventSchema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(eventSchema))
	if err != nil {
		return nil, fmt.Errorf("compile event schema: %w", err)
	}
	return &EventSchema{schema: schema}, nil
}

// MustEventSchema is NewEventSchema for package initialisation; the schema is a constant.
func MustEventSchema() *EventSchema {
	s, err := NewEventSchema()
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks payload and returns the structured input, or a ValidationError.
// Text fields are trimmed before the length rules apply.
func (s *EventSchema) Validate(payload map[string]any) (models.EventInput, error) {
	if payload == nil {
		return models.EventInput{}, ValidationError{Fields: []FieldError{{Field: "(root)", Message: "payload is required"}}}
	}

	normalized := trimText(payload)
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(normalized))
	if err != nil {
		return models.EventInput{}, ValidationError{Fields: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}

	var fields []FieldError
	for _, desc := range result.Errors() {
		fields = append(fields, FieldError{Field: fieldName(desc), Message: desc.Description()})
	}
	if len(fields) > 0 {
		sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		return models.EventInput{}, ValidationError{Fields: fields}
	}

	in, ok := toInput(normalized)
	if !ok {
		return models.EventInput{}, ValidationError{Fields: []FieldError{{Field: "duration", Message: "Must be a whole number of minutes"}}}
	}
	return in, nil
}

// trimText returns a shallow copy of payload with its text fields trimmed.
func trimText(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if str, ok := v.(string); ok && (k == "title" || k == "description") {
			v = strings.TrimSpace(str)
		}
		out[k] = v
	}
	return out
}

// toInput assumes payload already passed the schema.
func toInput(payload map[string]any) (models.EventInput, bool) {
	duration, ok := toInt(payload["duration"])
	if !ok || duration < 1 || duration > MaxDuration {
		return models.EventInput{}, false
	}
	in := models.EventInput{
		Title:     payload["title"].(string),
		Duration:  duration,
		IsPrivate: payload["isPrivate"].(bool),
	}
	if d, ok := payload["description"].(string); ok {
		in.Description = &d
	}
	return in, true
}

// toInt converts a decoded JSON number, refusing fractions and values outside int32.
func toInt(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		if x != math.Trunc(x) || x < math.MinInt32 || x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func fieldName(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == gojsonschema.STRING_CONTEXT_ROOT || field == "" {
		if p, ok := desc.Details()["property"].(string); ok && p != "" {
			return p
		}
		return gojsonschema.STRING_CONTEXT_ROOT
	}
	return field
}
