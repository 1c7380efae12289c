package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/gate"
	"github.com/xtrnai/toolgate/internal/tools"
)

// Headers carrying caller-supplied configuration and credential material.
// Both values are base64-encoded for transport; any decode failure is a
// client error, never a server error.
const (
	ConfigHeader     = "X-Config"
	CredentialHeader = "X-Credential"
)

// InvokeHandler serves POST /tools/{name}: the admission and
// context-assembly pipeline around a registered tool handler.
type InvokeHandler struct {
	registry *tools.Registry
	gate     *gate.Gate
	logger   *common.Logger
}

// NewInvokeHandler creates the tool invocation handler.
func NewInvokeHandler(registry *tools.Registry, g *gate.Gate, logger *common.Logger) *InvokeHandler {
	return &InvokeHandler{
		registry: registry,
		gate:     g,
		logger:   logger,
	}
}

// ServeHTTP runs the fixed pipeline: admission, config header decode and
// validation, credential header decode, body decode and validation,
// context assembly, handler invocation. Each step may short-circuit with
// a client error. Once admission succeeds the slot is released exactly
// once on every exit path.
func (h *InvokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/tools/")
	if name == "" || strings.Contains(name, "/") {
		WriteError(w, http.StatusNotFound, "unknown tool route")
		return
	}

	tool, ok := h.registry.Tool(name)
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", name))
		return
	}

	// Admission: a refused acquire never consumed a slot, so there is
	// nothing to release on this path.
	admission := h.gate.TryAcquire()
	if !admission.Allowed {
		h.logger.Warn().
			Str("tool", name).
			Int("active_requests", admission.ActiveRequests).
			Msg("invocation refused: gate is draining")
		serviceUnavailable().Write(w)
		return
	}
	defer h.gate.Release()

	resp := h.run(r.Context(), tool, r)

	h.logger.Debug().
		Str("tool", name).
		Int("status", resp.Status).
		Msg("tool invocation complete")

	resp.Write(w)
}

// run executes pipeline steps 2-8 and always produces a terminal response.
func (h *InvokeHandler) run(ctx context.Context, tool *tools.Tool, r *http.Request) *tools.Response {
	decl := h.registry.Declaration()

	// Configuration header: base64, then JSON object.
	config := map[string]any{}
	if header := r.Header.Get(ConfigHeader); header != "" {
		raw, err := base64.StdEncoding.DecodeString(header)
		if err != nil {
			return tools.BadRequest("invalid %s header: %v", ConfigHeader, err)
		}
		if err := json.Unmarshal(raw, &config); err != nil {
			return tools.BadRequest("invalid %s header: %v", ConfigHeader, err)
		}
	}

	// Configuration validation against the declared field schema. A
	// missing header with declared required fields fails here.
	if cs := h.registry.ConfigSchema(); cs != nil {
		normalized, err := cs.Validate(any(config))
		if err != nil {
			return tools.BadRequest("invalid configuration: %v", err)
		}
		if m, ok := normalized.(map[string]any); ok {
			config = m
		}
	}

	// Credential header: required whenever a descriptor is declared.
	var credential string
	if decl.Credential != nil {
		header := r.Header.Get(CredentialHeader)
		if header == "" {
			return tools.BadRequest("%s header is required", CredentialHeader)
		}
		raw, err := base64.StdEncoding.DecodeString(header)
		if err != nil {
			return tools.BadRequest("invalid %s header: %v", CredentialHeader, err)
		}
		credential = string(raw)
	}

	// Body decode.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return tools.BadRequest("failed to read request body: %v", err)
	}
	var params any
	if err := json.Unmarshal(body, &params); err != nil {
		return tools.BadRequest("invalid request body: %v", err)
	}

	// Body validation against the tool's input schema.
	params, err = tool.Input.Validate(params)
	if err != nil {
		return tools.BadRequest("invalid parameters: %v", err)
	}

	return h.invoke(ctx, tool, params, config, credential)
}

// invoke assembles the request context and calls the tool handler inside
// a failure boundary: any error or panic from assembly or the handler
// becomes a 500 and never escapes the serving process.
func (h *InvokeHandler) invoke(ctx context.Context, tool *tools.Tool, params any, config map[string]any, credential string) (resp *tools.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().
				Str("tool", tool.Name).
				Str("error", fmt.Sprintf("%v", rec)).
				Msg("tool handler panicked")
			resp = tools.Error(fmt.Sprintf("%v", rec))
		}
	}()

	decl := h.registry.Declaration()
	req := tools.NewRequest(params, config, decl.ResolveEnv(), decl.Credential != nil, credential, decl.ResolveAuth())

	out, err := tool.Handler(ctx, req)
	if err != nil {
		h.logger.Error().
			Str("tool", tool.Name).
			Str("error", err.Error()).
			Msg("tool handler failed")
		return tools.Error(err.Error())
	}
	if out == nil {
		return tools.Error("tool returned no response")
	}
	return out
}

// serviceUnavailable is the admission-refused response.
func serviceUnavailable() *tools.Response {
	return &tools.Response{
		Status:      http.StatusServiceUnavailable,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte("server is draining, not accepting new requests"),
	}
}
