// Package app wires configuration, storage, the admission gate, and the
// HTTP handlers into one application.
package app

import (
	"context"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/config"
	"github.com/xtrnai/toolgate/internal/gate"
	"github.com/xtrnai/toolgate/internal/handlers"
	"github.com/xtrnai/toolgate/internal/interfaces"
	"github.com/xtrnai/toolgate/internal/mcp"
	"github.com/xtrnai/toolgate/internal/storage"
	"github.com/xtrnai/toolgate/internal/tools"
)

// App holds all application components and dependencies.
type App struct {
	Config   *config.Config
	Logger   *common.Logger
	Storage  interfaces.StorageManager
	Gate     *gate.Gate
	Registry *tools.Registry

	// HTTP handlers
	InvokeHandler  *handlers.InvokeHandler
	DetailsHandler *handlers.DetailsHandler
	GateHandler    *handlers.GateHandler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application around a registered tool set. The gate
// is initialized before any handler exists, so no request can reach an
// unloaded draining flag.
func New(cfg *config.Config, logger *common.Logger, registry *tools.Registry) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
	}

	sm, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, err
	}
	a.Storage = sm

	deployment := registry.Declaration().Name
	g, err := gate.For(context.Background(), deployment, sm.KeyValueStorage(), logger)
	if err != nil {
		sm.Close()
		return nil, err
	}
	a.Gate = g

	a.initHandlers()

	logger.Info().
		Str("deployment", deployment).
		Int("tools", len(registry.Tools())).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.InvokeHandler = handlers.NewInvokeHandler(a.Registry, a.Gate, a.Logger)
	a.DetailsHandler = handlers.NewDetailsHandler(a.Registry, a.Logger)
	a.GateHandler = handlers.NewGateHandler(a.Gate, a.Logger)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.MCPHandler = mcp.NewHandler(a.Registry, a.Gate, a.Logger)
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
