package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/gate"
	"github.com/xtrnai/toolgate/internal/tools"
)

// RegisterTools registers every tool in the registry with the MCP server.
func RegisterTools(s *server.MCPServer, registry *tools.Registry, g *gate.Gate, logger *common.Logger) int {
	for _, t := range registry.Tools() {
		s.AddTool(BuildMCPTool(t), ToolHandler(registry, g, t, logger))
	}
	return len(registry.Tools())
}

// BuildMCPTool converts a registered tool into an mcp.Tool, carrying the
// rendered input schema across.
func BuildMCPTool(t *tools.Tool) mcp.Tool {
	var rendered struct {
		Type       string                 `json:"type"`
		Properties map[string]interface{} `json:"properties"`
		Required   []string               `json:"required"`
	}
	// The rendering came from a compiled schema, so this cannot fail for
	// object schemas; anything else degrades to an unconstrained object.
	_ = json.Unmarshal(t.Input.Describe(), &rendered)
	if rendered.Type == "" {
		rendered.Type = "object"
	}

	return mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       rendered.Type,
			Properties: rendered.Properties,
			Required:   rendered.Required,
		},
	}
}

// ToolHandler bridges an MCP tool call into the admission and validation
// pipeline. The MCP transport carries no configuration or credential
// headers, so servers that declare either capability report a tool error
// instead of invoking the handler.
func ToolHandler(registry *tools.Registry, g *gate.Gate, t *tools.Tool, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		decl := registry.Declaration()

		if registry.ConfigSchema() != nil {
			return mcp.NewToolResultError("this server requires user configuration; call it over the /tools HTTP surface"), nil
		}
		if decl.Credential != nil {
			return mcp.NewToolResultError("this server requires a credential; call it over the /tools HTTP surface"), nil
		}

		admission := g.TryAcquire()
		if !admission.Allowed {
			return mcp.NewToolResultError("server is draining, not accepting new requests"), nil
		}
		defer g.Release()

		params, err := t.Input.Validate(any(r.GetArguments()))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}

		resp := invoke(ctx, t, tools.NewRequest(params, nil, decl.ResolveEnv(), false, "", nil), logger)

		if resp.Status >= 400 {
			return mcp.NewToolResultError(string(resp.Body)), nil
		}
		return mcp.NewToolResultText(string(resp.Body)), nil
	}
}

// invoke calls the tool handler inside the same failure boundary the HTTP
// pipeline uses: errors and panics become terminal error responses.
func invoke(ctx context.Context, t *tools.Tool, req *tools.Request, logger *common.Logger) (resp *tools.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().
				Str("tool", t.Name).
				Str("error", fmt.Sprintf("%v", rec)).
				Msg("tool handler panicked")
			resp = tools.Error(fmt.Sprintf("%v", rec))
		}
	}()

	out, err := t.Handler(ctx, req)
	if err != nil {
		return tools.Error(err.Error())
	}
	if out == nil {
		return tools.Error("tool returned no response")
	}
	return out
}
