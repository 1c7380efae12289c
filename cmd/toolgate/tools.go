package main

import (
	"context"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/xtrnai/toolgate/internal/config"
	"github.com/xtrnai/toolgate/internal/schema"
	"github.com/xtrnai/toolgate/internal/tools"
)

// buildRegistry declares the built-in demonstration tool set. A real
// deployment replaces this with its own declaration and handlers.
func buildRegistry() (*tools.Registry, error) {
	registry, err := tools.NewRegistry(tools.ServerDeclaration{
		Name:    "toolgate-demo",
		Version: config.GetVersion(),
	})
	if err != nil {
		return nil, err
	}

	echoSchema, err := schema.Compile(&jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"message": {Type: "string", Description: "Text to echo back"},
		},
		Required: []string{"message"},
	})
	if err != nil {
		return nil, err
	}

	if err := registry.Register(&tools.Tool{
		Name:        "echo",
		Description: "Echo the supplied message back to the caller",
		Input:       echoSchema,
		Handler: func(_ context.Context, req *tools.Request) (*tools.Response, error) {
			params := req.Params.(map[string]any)
			return tools.JSON(map[string]any{"message": params["message"]}), nil
		},
	}); err != nil {
		return nil, err
	}

	nowSchema, err := schema.Compile(&jsonschema.Schema{Type: "object"})
	if err != nil {
		return nil, err
	}

	if err := registry.Register(&tools.Tool{
		Name:        "now",
		Description: "Return the current server time in RFC 3339 format",
		Input:       nowSchema,
		Handler: func(_ context.Context, _ *tools.Request) (*tools.Response, error) {
			return tools.Text(time.Now().UTC().Format(time.RFC3339)), nil
		},
	}); err != nil {
		return nil, err
	}

	return registry, nil
}
