package handlers

import (
	"net/http"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/tools"
)

// DetailsHandler serves GET /details: the server's self-description
// document. No admission check applies; the endpoint is answerable even
// while the gate is draining.
type DetailsHandler struct {
	registry *tools.Registry
	logger   *common.Logger
}

// NewDetailsHandler creates the details handler.
func NewDetailsHandler(registry *tools.Registry, logger *common.Logger) *DetailsHandler {
	return &DetailsHandler{
		registry: registry,
		logger:   logger,
	}
}

// ServeHTTP handles GET /details.
func (h *DetailsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.registry.Details())
}
