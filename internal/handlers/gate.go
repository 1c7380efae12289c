package handlers

import (
	"net/http"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/gate"
)

// GateHandler exposes the admission gate's operational endpoints:
// POST /wind-down, GET /active-requests, POST /reset. None of them pass
// through the gate themselves.
type GateHandler struct {
	gate   *gate.Gate
	logger *common.Logger
}

// NewGateHandler creates the gate operations handler.
func NewGateHandler(g *gate.Gate, logger *common.Logger) *GateHandler {
	return &GateHandler{
		gate:   g,
		logger: logger,
	}
}

// WindDown handles POST /wind-down. Transitions the gate to draining and
// persists the flag; existing invocations run to completion. A storage
// failure is a server error, never silently swallowed.
func (h *GateHandler) WindDown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	active, err := h.gate.WindDown(r.Context())
	if err != nil {
		h.logger.Error().Str("error", err.Error()).Msg("wind-down failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message":        "winding down, no new requests will be accepted",
		"activeRequests": active,
	})
}

// ActiveRequests handles GET /active-requests.
func (h *GateHandler) ActiveRequests(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.gate.State())
}

// Reset handles POST /reset. Forces the gate back to accepting with a
// zero counter and clears the durable flag.
func (h *GateHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if err := h.gate.Reset(r.Context()); err != nil {
		h.logger.Error().Str("error", err.Error()).Msg("gate reset failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "gate reset, accepting requests",
	})
}
