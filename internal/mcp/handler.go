// Package mcp exposes the registered tool set as an MCP server, so MCP
// clients can call the same operations the plain HTTP surface serves.
// Invocations pass through the same admission gate and input validation.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/gate"
	"github.com/xtrnai/toolgate/internal/tools"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler serving the registry's tools.
func NewHandler(registry *tools.Registry, g *gate.Gate, logger *common.Logger) *Handler {
	decl := registry.Declaration()

	mcpSrv := mcpserver.NewMCPServer(
		decl.Name,
		decl.Version,
		mcpserver.WithToolCapabilities(true),
	)

	toolCount := RegisterTools(mcpSrv, registry, g, logger)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount).
		Str("server", decl.Name).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the streamable MCP server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
