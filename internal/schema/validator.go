// Package schema wraps JSON Schema validation behind a small capability
// interface so the request pipeline stays independent of the concrete
// validation library.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Validator validates structured values and renders a machine-readable
// description of its schema.
type Validator interface {
	// Validate checks value against the schema and returns the normalized
	// value, or a validation error describing the failure.
	Validate(value any) (any, error)
	// Describe returns the schema as a JSON document.
	Describe() json.RawMessage
}

// JSONSchema implements Validator using github.com/google/jsonschema-go.
// The schema is resolved once at construction; Describe output is cached.
type JSONSchema struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
	rendered json.RawMessage
}

// Compile resolves a schema for validation.
func Compile(s *jsonschema.Schema) (*JSONSchema, error) {
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}

	rendered, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}

	return &JSONSchema{
		schema:   s,
		resolved: resolved,
		rendered: rendered,
	}, nil
}

// CompileJSON parses a raw JSON Schema document and resolves it.
func CompileJSON(raw []byte) (*JSONSchema, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return Compile(&s)
}

// Validate checks value against the schema.
func (j *JSONSchema) Validate(value any) (any, error) {
	if err := j.resolved.Validate(value); err != nil {
		return nil, &ValidationError{Cause: err}
	}
	return value, nil
}

// Describe returns the schema as a JSON document.
func (j *JSONSchema) Describe() json.RawMessage {
	return j.rendered
}

// ValidationError carries the structured detail of a schema validation
// failure. It is a client error, never a server error.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
