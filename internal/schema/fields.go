package schema

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// FieldType is the type of a declared user-configuration field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// ConfigField declares one user-configuration field: a key and its type.
// Field order is preserved in the rendered schema's required list and in
// the metadata document.
type ConfigField struct {
	Key  string    `json:"key"`
	Type FieldType `json:"type"`
}

// ForConfigFields builds an object schema with one property per declared
// field. All declared fields are required.
func ForConfigFields(fields []ConfigField) (*JSONSchema, error) {
	properties := make(map[string]*jsonschema.Schema, len(fields))
	required := make([]string, 0, len(fields))

	for _, f := range fields {
		switch f.Type {
		case FieldString, FieldNumber, FieldBoolean:
		default:
			return nil, fmt.Errorf("config field %q has unsupported type %q", f.Key, f.Type)
		}
		if _, exists := properties[f.Key]; exists {
			return nil, fmt.Errorf("config field %q declared twice", f.Key)
		}
		properties[f.Key] = &jsonschema.Schema{Type: string(f.Type)}
		required = append(required, f.Key)
	}

	return Compile(&jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	})
}
