package tools

import (
	"encoding/json"
	"testing"

	"github.com/xtrnai/toolgate/internal/schema"
)

// TestDetails_AssemblesDocument verifies the self-description carries
// server identity, config fields, tools, and rendered schemas.
func TestDetails_AssemblesDocument(t *testing.T) {
	r, err := NewRegistry(ServerDeclaration{
		Name:         "weather",
		Version:      "2.1.0",
		ConfigFields: []schema.ConfigField{{Key: "units", Type: schema.FieldString}},
	})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	if err := r.Register(&Tool{
		Name:        "forecast",
		Description: "Fetch a forecast",
		Input:       testValidator(t),
		Tags:        []Tag{TagMutation},
		Handler:     noopHandler,
	}); err != nil {
		t.Fatalf("failed to register tool: %v", err)
	}

	details := r.Details()

	if details.Name != "weather" || details.Version != "2.1.0" {
		t.Errorf("unexpected identity: %s %s", details.Name, details.Version)
	}
	if details.Credential != nil {
		t.Error("expected nil credential descriptor when none declared")
	}
	if len(details.ConfigFields) != 1 || details.ConfigFields[0].Key != "units" {
		t.Errorf("unexpected config fields: %+v", details.ConfigFields)
	}
	if len(details.Tools) != 1 {
		t.Fatalf("expected 1 tool, got %d", len(details.Tools))
	}

	tool := details.Tools[0]
	if tool.Name != "forecast" || tool.Description != "Fetch a forecast" {
		t.Errorf("unexpected tool info: %+v", tool)
	}
	if len(tool.Tags) != 1 || tool.Tags[0] != TagMutation {
		t.Errorf("unexpected tags: %v", tool.Tags)
	}
	var rendered map[string]any
	if err := json.Unmarshal(tool.Schema, &rendered); err != nil {
		t.Errorf("tool schema is not valid JSON: %v", err)
	}
}

// TestDetails_ResolvesCredentialSecretsFromEnv verifies secret material
// is merged from the environment at call time, not cached.
func TestDetails_ResolvesCredentialSecretsFromEnv(t *testing.T) {
	r, err := NewRegistry(ServerDeclaration{
		Name:    "gh",
		Version: "1.0.0",
		Credential: &CredentialDescriptor{
			Provider:         "github",
			AuthorizationURL: "https://github.com/login/oauth/authorize",
			TokenURL:         "https://github.com/login/oauth/access_token",
			Scopes:           []string{"repo"},
		},
	})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	t.Setenv(EnvOAuthClientID, "client-abc")
	t.Setenv(EnvOAuthClientSecret, "secret-xyz")

	details := r.Details()
	if details.Credential == nil {
		t.Fatal("expected credential descriptor in details")
	}
	if details.Credential.Provider != "github" {
		t.Errorf("unexpected provider %q", details.Credential.Provider)
	}
	if details.Credential.ClientID != "client-abc" || details.Credential.ClientSecret != "secret-xyz" {
		t.Errorf("expected env-resolved secrets, got %+v", details.Credential)
	}

	// A later change to the environment shows up on the next call.
	t.Setenv(EnvOAuthClientID, "client-rotated")
	if r.Details().Credential.ClientID != "client-rotated" {
		t.Error("expected secrets to be re-resolved per call")
	}
}

// TestDetails_EmptyCollectionsMarshalAsArrays verifies the document
// serializes empty config/tool lists as [] rather than null.
func TestDetails_EmptyCollectionsMarshalAsArrays(t *testing.T) {
	r, err := NewRegistry(ServerDeclaration{Name: "bare", Version: "0.1.0"})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	raw, err := json.Marshal(r.Details())
	if err != nil {
		t.Fatalf("failed to marshal details: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("failed to unmarshal details: %v", err)
	}
	if string(doc["configFields"]) != "[]" {
		t.Errorf("expected configFields [], got %s", doc["configFields"])
	}
	if string(doc["tools"]) != "[]" {
		t.Errorf("expected tools [], got %s", doc["tools"])
	}
	if string(doc["credentialDescriptor"]) != "null" {
		t.Errorf("expected credentialDescriptor null, got %s", doc["credentialDescriptor"])
	}
}
