package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/xtrnai/toolgate/internal/schema"
)

func testValidator(t *testing.T) schema.Validator {
	t.Helper()
	v, err := schema.CompileJSON([]byte(`{"type":"object"}`))
	if err != nil {
		t.Fatalf("failed to compile test schema: %v", err)
	}
	return v
}

func noopHandler(_ context.Context, _ *Request) (*Response, error) {
	return Text("ok"), nil
}

// TestNewRegistry_RejectsReservedNames verifies reserved-prefix
// collisions in env names and config keys fail construction.
func TestNewRegistry_RejectsReservedNames(t *testing.T) {
	_, err := NewRegistry(ServerDeclaration{
		Name:        "srv",
		RequiredEnv: []string{"TOOLGATE_SECRET"},
	})
	if !errors.Is(err, ErrReservedName) {
		t.Errorf("expected ErrReservedName for reserved env name, got %v", err)
	}

	_, err = NewRegistry(ServerDeclaration{
		Name:         "srv",
		ConfigFields: []schema.ConfigField{{Key: "TOOLGATE_mode", Type: schema.FieldString}},
	})
	if !errors.Is(err, ErrReservedName) {
		t.Errorf("expected ErrReservedName for reserved config key, got %v", err)
	}
}

// TestRegistry_RejectsDuplicateTool verifies registering the same name
// twice is a construction-time error.
func TestRegistry_RejectsDuplicateTool(t *testing.T) {
	r, err := NewRegistry(ServerDeclaration{Name: "srv", Version: "1.0.0"})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	tool := &Tool{Name: "search", Input: testValidator(t), Handler: noopHandler}
	if err := r.Register(tool); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(tool); !errors.Is(err, ErrDuplicateTool) {
		t.Errorf("expected ErrDuplicateTool, got %v", err)
	}
}

// TestRegistry_LookupAndOrder verifies lookup by name and registration
// order in Tools.
func TestRegistry_LookupAndOrder(t *testing.T) {
	r, err := NewRegistry(ServerDeclaration{Name: "srv"})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if err := r.Register(&Tool{Name: name, Input: testValidator(t), Handler: noopHandler}); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}

	if _, ok := r.Tool("beta"); !ok {
		t.Error("expected beta to be registered")
	}
	if _, ok := r.Tool("delta"); ok {
		t.Error("expected delta lookup to miss")
	}

	names := make([]string, 0, 3)
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}
	if len(names) != 3 || names[0] != "alpha" || names[2] != "gamma" {
		t.Errorf("unexpected registration order: %v", names)
	}
}

// TestRegistry_ConfigSchemaOnlyWhenDeclared verifies the config schema is
// built exactly when config fields exist.
func TestRegistry_ConfigSchemaOnlyWhenDeclared(t *testing.T) {
	bare, err := NewRegistry(ServerDeclaration{Name: "bare"})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	if bare.ConfigSchema() != nil {
		t.Error("expected no config schema without declared fields")
	}

	configured, err := NewRegistry(ServerDeclaration{
		Name:         "configured",
		ConfigFields: []schema.ConfigField{{Key: "region", Type: schema.FieldString}},
	})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	if configured.ConfigSchema() == nil {
		t.Error("expected config schema for declared fields")
	}
}

// TestRequest_CapabilityAccessors verifies credential access reports
// absence instead of returning silent zero values.
func TestRequest_CapabilityAccessors(t *testing.T) {
	open := NewRequest(nil, nil, nil, false, "", nil)
	if _, ok := open.Credential(); ok {
		t.Error("expected no credential on an open request")
	}
	if _, ok := open.Auth(); ok {
		t.Error("expected no auth descriptor on an open request")
	}
	if open.Config == nil || open.Env == nil {
		t.Error("expected empty config and env maps, not nil")
	}

	auth := &AuthInfo{CredentialDescriptor: CredentialDescriptor{Provider: "github"}}
	secured := NewRequest(nil, nil, nil, true, "tok-123", auth)
	cred, ok := secured.Credential()
	if !ok || cred != "tok-123" {
		t.Errorf("expected credential tok-123, got %q (ok=%v)", cred, ok)
	}
	if got, ok := secured.Auth(); !ok || got.Provider != "github" {
		t.Errorf("unexpected auth descriptor: %+v (ok=%v)", got, ok)
	}
}
