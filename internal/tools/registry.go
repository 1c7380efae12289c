package tools

import (
	"errors"
	"fmt"

	"github.com/xtrnai/toolgate/internal/schema"
)

// Construction-time declaration conflicts. These are fatal: registration
// happens before the server accepts traffic, so callers should fail loudly.
var (
	ErrDuplicateTool = errors.New("duplicate tool name")
	ErrReservedName  = errors.New("reserved name collision")
)

// Registry holds the declared operation set. Registration is append-only
// at configuration time; the registry is read-only once the server starts
// accepting requests.
type Registry struct {
	decl         ServerDeclaration
	configSchema schema.Validator
	tools        []*Tool
	byName       map[string]*Tool
}

// NewRegistry validates the server declaration and creates an empty
// registry. The user-config schema is built once here, not per request.
func NewRegistry(decl ServerDeclaration) (*Registry, error) {
	if err := decl.validate(); err != nil {
		return nil, err
	}

	var configSchema schema.Validator
	if len(decl.ConfigFields) > 0 {
		cs, err := schema.ForConfigFields(decl.ConfigFields)
		if err != nil {
			return nil, fmt.Errorf("failed to build config schema: %w", err)
		}
		configSchema = cs
	}

	return &Registry{
		decl:         decl,
		configSchema: configSchema,
		byName:       make(map[string]*Tool),
	}, nil
}

// Register adds a tool to the registry. Tool names are unique within a
// server; registering a duplicate is a construction-time error.
func (r *Registry) Register(t *Tool) error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if t.Input == nil {
		return fmt.Errorf("tool %q has no input schema", t.Name)
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %q has no handler", t.Name)
	}
	if _, exists := r.byName[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
	}

	r.byName[t.Name] = t
	r.tools = append(r.tools, t)
	return nil
}

// Tool looks up a registered tool by name.
func (r *Registry) Tool(name string) (*Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	return r.tools
}

// Declaration returns the server declaration.
func (r *Registry) Declaration() ServerDeclaration {
	return r.decl
}

// ConfigSchema returns the validator for declared user-config fields,
// or nil if none are declared.
func (r *Registry) ConfigSchema() schema.Validator {
	return r.configSchema
}
