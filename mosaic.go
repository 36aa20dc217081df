package mosaic

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/mosaic/internal/reducer"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/aretw0/mosaic/pkg/registry"
)

// Version is the library version reported by the CLI and the MCP server.
const Version = "0.4.0"

// DefaultCoincidenceWindow is the default tolerance within which two swipes
// count as one gesture.
const DefaultCoincidenceWindow = reducer.DefaultCoincidenceWindow

// Engine is the high-level entry point for the Mosaic library.
// It binds a host policy to the reducer and provides a simplified API for
// consumers: one Apply call per event.
type Engine struct {
	reducer *reducer.Reducer
	actions *registry.Registry
	clock   ports.Clock
	window  time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock injects a custom clock, making the swipe coincidence window
// deterministic in tests.
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithCoincidenceWindow overrides the default 100ms swipe pairing window.
func WithCoincidenceWindow(window time.Duration) Option {
	return func(e *Engine) {
		e.window = window
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithActionHandler registers a CLIENT_ACTION handler for the given action
// type. Handlers can also be registered later through Actions().
func WithActionHandler(name string, fn ports.ActionHandler) Option {
	return func(e *Engine) {
		e.actions.Register(name, fn)
	}
}

// New initializes a new Mosaic Engine bound to the given policy.
// InitClient, InitCluster and MergeClusters are mandatory; the update hooks
// may be nil.
func New(policy ports.Policy, opts ...Option) (*Engine, error) {
	eng := &Engine{
		actions: registry.New(),
		window:  reducer.DefaultCoincidenceWindow,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to the reducer,
	// which would overwrite its default).
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	reducerOpts := []reducer.Option{
		reducer.WithActions(eng.actions),
		reducer.WithCoincidenceWindow(eng.window),
		reducer.WithLifecycleHooks(eng.hooks),
		reducer.WithLogger(eng.logger),
	}
	if eng.clock != nil {
		reducerOpts = append(reducerOpts, reducer.WithClock(eng.clock))
	}

	core, err := reducer.New(policy, reducerOpts...)
	if err != nil {
		return nil, err
	}
	eng.reducer = core
	return eng, nil
}

// Apply processes one event against the previous snapshot and returns the
// next one. A nil prev initializes an empty session. On error the event is
// rejected whole and prev stays authoritative.
func (e *Engine) Apply(ctx context.Context, prev *domain.State, event domain.Event) (*domain.State, error) {
	return e.reducer.Apply(ctx, prev, event)
}

// Actions returns the CLIENT_ACTION handler registry for late registration.
func (e *Engine) Actions() *registry.Registry {
	return e.actions
}

// NopPolicy returns a minimal valid policy with empty payloads. Useful for
// hosts that only care about geometry (transforms, adjacency, openings) and
// for the bundled CLI server.
func NopPolicy() ports.Policy {
	return ports.Policy{
		InitClient:  func(domain.Client) any { return nil },
		InitCluster: func(domain.Client) any { return nil },
		MergeClusters: func(survivor, _ domain.Cluster, _ domain.Transform) any {
			return survivor.Data
		},
	}
}
