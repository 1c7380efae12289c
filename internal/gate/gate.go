// Package gate implements the per-deployment admission gate: the single
// source of truth for whether new tool invocations may begin and how many
// are currently in flight.
//
// The gate is a mutex-guarded singleton obtained by deployment name. The
// in-flight counter lives only in memory and resets when the process
// restarts; the draining flag is persisted to key-value storage and
// survives restarts. That asymmetry is deliberate and load-bearing.
package gate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/interfaces"
)

// State is a read-only snapshot of the gate.
type State struct {
	ActiveRequests int  `json:"activeRequests"`
	Refusing       bool `json:"refusing"`
}

// Admission is the result of a TryAcquire call.
type Admission struct {
	Allowed        bool
	ActiveRequests int
}

// Gate admits or refuses new invocations for one deployment. All
// operations are atomic relative to each other; request handlers never
// touch its state directly.
type Gate struct {
	mu       sync.Mutex
	name     string
	store    interfaces.KeyValueStorage
	logger   *common.Logger
	active   int
	refusing bool
}

// registry maps deployment names to their gate singletons, so every
// caller using the same name reaches the same serialization point.
var (
	registryMu sync.Mutex
	registry   = make(map[string]*Gate)
)

// For returns the gate singleton for the named deployment, creating and
// initializing it on first use. Initialization blocks until the durable
// draining flag has been loaded, so no caller can observe an
// uninitialized gate.
func For(ctx context.Context, name string, store interfaces.KeyValueStorage, logger *common.Logger) (*Gate, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if g, ok := registry[name]; ok {
		return g, nil
	}

	g, err := New(ctx, name, store, logger)
	if err != nil {
		return nil, err
	}
	registry[name] = g
	return g, nil
}

// New creates a gate for the named deployment and loads the durable
// draining flag before returning. Prefer For, which deduplicates by name.
func New(ctx context.Context, name string, store interfaces.KeyValueStorage, logger *common.Logger) (*Gate, error) {
	g := &Gate{
		name:   name,
		store:  store,
		logger: logger,
	}

	value, err := store.Get(ctx, g.key())
	switch {
	case err == nil:
		g.refusing = value == "true"
	case errors.Is(err, interfaces.ErrKeyNotFound):
		g.refusing = false
	default:
		return nil, fmt.Errorf("failed to load draining flag for %s: %w", name, err)
	}

	if g.refusing {
		logger.Warn().Str("deployment", name).Msg("gate starting in draining state from persisted flag")
	}

	return g, nil
}

func (g *Gate) key() string {
	return "gate:" + g.name + ":draining"
}

// TryAcquire admits the request and increments the in-flight counter, or
// refuses without mutation when the gate is draining.
func (g *Gate) TryAcquire() Admission {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.refusing {
		return Admission{Allowed: false, ActiveRequests: g.active}
	}
	g.active++
	return Admission{Allowed: true, ActiveRequests: g.active}
}

// Release decrements the in-flight counter, floored at zero, and returns
// the new count. Extra releases never drive the counter negative.
func (g *Gate) Release() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active > 0 {
		g.active--
	}
	return g.active
}

// WindDown transitions the gate to draining and persists the flag.
// Idempotent; no operation moves the gate back to accepting except Reset.
// A storage failure propagates and must surface as a server error.
func (g *Gate) WindDown(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Set(ctx, g.key(), "true"); err != nil {
		return g.active, fmt.Errorf("failed to persist draining flag for %s: %w", g.name, err)
	}
	g.refusing = true

	g.logger.Info().
		Str("deployment", g.name).
		Int("active_requests", g.active).
		Msg("gate winding down")

	return g.active, nil
}

// State returns a snapshot without mutation.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return State{ActiveRequests: g.active, Refusing: g.refusing}
}

// Reset forces the gate back to accepting with a zero counter and clears
// the durable flag. Operational recovery, not part of normal request flow.
func (g *Gate) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Delete(ctx, g.key()); err != nil {
		return fmt.Errorf("failed to clear draining flag for %s: %w", g.name, err)
	}
	g.active = 0
	g.refusing = false

	g.logger.Info().Str("deployment", g.name).Msg("gate reset to accepting")

	return nil
}

// Drop removes the named gate from the singleton registry. Test helper:
// lets a test simulate an actor restart against the same storage.
func Drop(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}
