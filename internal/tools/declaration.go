// Package tools holds the declared operation set of a server: the server
// declaration, the tool registry, and the per-request context passed to
// tool handlers.
package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xtrnai/toolgate/internal/schema"
)

// ReservedPrefix is the platform-reserved namespace. Declared environment
// names and user-config keys must not collide with it.
const ReservedPrefix = "TOOLGATE_"

// Environment bindings for credential secret material. Resolved at request
// or metadata-build time, never stored on the declaration.
const (
	EnvOAuthClientID     = "OAUTH_CLIENT_ID"
	EnvOAuthClientSecret = "OAUTH_CLIENT_SECRET"
	EnvOAuthCallbackURL  = "OAUTH_CALLBACK_URL"
)

// Tag marks a behavioral property of a tool.
type Tag string

const (
	TagMutation    Tag = "mutation"
	TagDestructive Tag = "destructive"
)

// CredentialDescriptor declares the non-secret shape of an external
// authorization scheme a server may require.
type CredentialDescriptor struct {
	Provider         string   `json:"provider"`
	AuthorizationURL string   `json:"authorizationUrl"`
	TokenURL         string   `json:"tokenUrl"`
	Scopes           []string `json:"scopes"`
}

// AuthInfo is a credential descriptor merged with environment-resolved
// secret material.
type AuthInfo struct {
	CredentialDescriptor
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	CallbackURL  string `json:"callbackUrl,omitempty"`
}

// ServerDeclaration describes a server: its identity, user-configuration
// shape, optional credential scheme, and required environment names.
// Immutable once the registry is constructed.
type ServerDeclaration struct {
	Name         string
	Version      string
	ConfigFields []schema.ConfigField
	Credential   *CredentialDescriptor
	RequiredEnv  []string
}

// validate checks the declaration for reserved-namespace collisions.
func (d *ServerDeclaration) validate() error {
	if d.Name == "" {
		return fmt.Errorf("server declaration: name is required")
	}
	for _, f := range d.ConfigFields {
		if strings.HasPrefix(f.Key, ReservedPrefix) {
			return fmt.Errorf("%w: config field %q collides with reserved prefix %s", ErrReservedName, f.Key, ReservedPrefix)
		}
	}
	for _, name := range d.RequiredEnv {
		if strings.HasPrefix(name, ReservedPrefix) {
			return fmt.Errorf("%w: required env %q collides with reserved prefix %s", ErrReservedName, name, ReservedPrefix)
		}
	}
	return nil
}

// ResolveEnv reads each declared required environment name from the
// process environment. Called per request, not at registration.
func (d *ServerDeclaration) ResolveEnv() map[string]string {
	env := make(map[string]string, len(d.RequiredEnv))
	for _, name := range d.RequiredEnv {
		env[name] = os.Getenv(name)
	}
	return env
}

// ResolveAuth merges the credential descriptor with environment-sourced
// secret fields. Returns nil when no descriptor is declared.
func (d *ServerDeclaration) ResolveAuth() *AuthInfo {
	if d.Credential == nil {
		return nil
	}
	return &AuthInfo{
		CredentialDescriptor: *d.Credential,
		ClientID:             os.Getenv(EnvOAuthClientID),
		ClientSecret:         os.Getenv(EnvOAuthClientSecret),
		CallbackURL:          os.Getenv(EnvOAuthCallbackURL),
	}
}

// Handler is a tool's implementation. It receives the assembled request
// context and returns a terminal response. A returned error (or a panic)
// is mapped to a 500 by the pipeline.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Tool is a single named, schema-validated callable operation.
type Tool struct {
	Name        string
	Description string
	Input       schema.Validator
	Tags        []Tag
	Handler     Handler
}
