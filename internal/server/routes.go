package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Tool invocations (admission-gated)
	mux.Handle("/tools/", s.app.InvokeHandler)

	// Server self-description (never gated, answerable while draining)
	mux.Handle("/details", s.app.DetailsHandler)

	// Gate operations (bypass the gate)
	mux.HandleFunc("/wind-down", s.app.GateHandler.WindDown)
	mux.HandleFunc("/active-requests", s.app.GateHandler.ActiveRequests)
	mux.HandleFunc("/reset", s.app.GateHandler.Reset)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for everything else
	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
