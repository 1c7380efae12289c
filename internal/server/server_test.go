package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xtrnai/toolgate/internal/app"
	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/config"
	"github.com/xtrnai/toolgate/internal/gate"
	"github.com/xtrnai/toolgate/internal/schema"
	"github.com/xtrnai/toolgate/internal/tools"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Storage.Driver = "memory"

	registry, err := tools.NewRegistry(tools.ServerDeclaration{
		Name:    "test-" + t.Name(),
		Version: "0.0.1",
	})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	input, err := schema.CompileJSON([]byte(`{"type":"object"}`))
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}
	err = registry.Register(&tools.Tool{
		Name:        "ping",
		Description: "Responds with pong",
		Input:       input,
		Handler: func(_ context.Context, _ *tools.Request) (*tools.Response, error) {
			return tools.Text("pong"), nil
		},
	})
	if err != nil {
		t.Fatalf("failed to register tool: %v", err)
	}
	t.Cleanup(func() { gate.Drop("test-" + t.Name()) })

	application, err := app.New(cfg, common.NewSilentLogger(), registry)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	t.Cleanup(func() { application.Close() })

	return New(application)
}

// TestServer_Routes exercises the wired mux end to end through the
// middleware chain.
func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"POST", "/tools/ping", `{}`, http.StatusOK},
		{"POST", "/tools/nope", `{}`, http.StatusNotFound},
		{"GET", "/details", "", http.StatusOK},
		{"GET", "/active-requests", "", http.StatusOK},
		{"GET", "/api/health", "", http.StatusOK},
		{"GET", "/api/version", "", http.StatusOK},
		{"GET", "/no-such-route", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

// TestServer_WindDownFlow drives the drain lifecycle over HTTP.
func TestServer_WindDownFlow(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/wind-down", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("wind-down failed: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/tools/ping", strings.NewReader(`{}`)))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 while draining, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/active-requests", nil))
	var st gate.State
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("state response is not JSON: %v", err)
	}
	if !st.Refusing || st.ActiveRequests != 0 {
		t.Errorf("unexpected state while draining: %+v", st)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/reset", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("reset failed: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/tools/ping", strings.NewReader(`{}`)))
	if w.Code != http.StatusOK {
		t.Errorf("expected invocations restored after reset, got %d", w.Code)
	}
}

// TestServer_Middleware verifies correlation IDs, CORS preflight, and
// security headers.
func TestServer_Middleware(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected a generated correlation ID header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on responses")
	}

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if got := w.Header().Get("X-Correlation-ID"); got != "req-42" {
		t.Errorf("expected caller-supplied correlation ID to be echoed, got %q", got)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/tools/ping", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected preflight to short-circuit with 200, got %d", w.Code)
	}
	if allowed := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(allowed, "X-Config") {
		t.Errorf("expected X-Config in allowed headers, got %q", allowed)
	}
}
