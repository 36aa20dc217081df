// Package reducer implements the Mosaic transition function: a pure,
// event-sourced reduction over session snapshots. One event is processed to
// completion before the next; no handler ever mutates the input snapshot.
package reducer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mosaic/internal/logging"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/aretw0/mosaic/pkg/registry"
)

// DefaultCoincidenceWindow is the time tolerance within which two swipes
// count as one pairing gesture.
const DefaultCoincidenceWindow = 100 * time.Millisecond

// Reducer owns the (state, event) -> state transition. It is stateless
// itself: every dependency is bound at construction and every transition is
// a pure function of its inputs plus the injected clock.
type Reducer struct {
	policy  ports.Policy
	actions *registry.Registry
	clock   ports.Clock
	window  time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Reducer.
type Option func(*Reducer)

// WithClock injects a custom clock for deterministic coincidence windows.
func WithClock(clock ports.Clock) Option {
	return func(r *Reducer) {
		r.clock = clock
	}
}

// WithCoincidenceWindow overrides the swipe pairing window.
func WithCoincidenceWindow(window time.Duration) Option {
	return func(r *Reducer) {
		r.window = window
	}
}

// WithActions injects the CLIENT_ACTION handler registry.
func WithActions(actions *registry.Registry) Option {
	return func(r *Reducer) {
		r.actions = actions
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Reducer) {
		r.hooks = hooks
	}
}

// WithLogger sets a structured logger for transition-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reducer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Reducer bound to the given policy.
// The policy's mandatory hooks are validated here, not per event.
func New(policy ports.Policy, opts ...Option) (*Reducer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	r := &Reducer{
		policy:  policy,
		actions: registry.New(),
		clock:   systemClock{},
		window:  DefaultCoincidenceWindow,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Apply routes one event to its handler and returns the resulting snapshot.
// A nil prev initializes an empty session. Unknown event types return the
// prior state unchanged. On error, no partial state is committed: the
// returned snapshot is nil and the caller keeps prev as authoritative.
func (r *Reducer) Apply(ctx context.Context, prev *domain.State, event domain.Event) (*domain.State, error) {
	if prev == nil {
		prev = domain.NewState()
	}
	next := prev.Clone()

	var err error
	switch event.Type {
	case domain.EventConnect:
		err = r.applyConnect(next, event)
	case domain.EventSwipe:
		err = r.applySwipe(ctx, next, event)
	case domain.EventLeaveCluster:
		err = r.applyLeaveCluster(next, event)
	case domain.EventDisconnect:
		err = r.applyDisconnect(next, event)
	case domain.EventNextState:
		err = r.applyNextState(next)
	case domain.EventClientAction:
		err = r.applyClientAction(next, event)
	default:
		r.logger.Debug("ignoring unknown event type", "type", event.Type)
	}

	if err != nil {
		r.fireTransition(ctx, event.Type, nil, err)
		return nil, err
	}

	r.fireTransition(ctx, event.Type, next, nil)
	return next, nil
}

func (r *Reducer) fireTransition(ctx context.Context, eventType domain.EventType, next *domain.State, err error) {
	if r.hooks.OnTransition == nil {
		return
	}
	evt := &domain.TransitionEvent{
		Timestamp: r.clock.Now(),
		Type:      eventType,
		Err:       err,
	}
	if next != nil {
		evt.Clients = len(next.Clients)
		evt.Clusters = len(next.Clusters)
		evt.PendingSwipes = len(next.Swipes)
	}
	r.hooks.OnTransition(ctx, evt)
}

// view resolves the client-level state handed to policy hooks and action
// handlers: the client plus its cluster, nil when unclustered.
func (r *Reducer) view(s *domain.State, client domain.Client) ports.ClientView {
	view := ports.ClientView{Client: client}
	if client.ClusterID != "" {
		if cluster, ok := s.Clusters[client.ClusterID]; ok {
			view.Cluster = &cluster
		}
	}
	return view
}

func payload[T any](event domain.Event) (T, error) {
	p, ok := event.Data.(T)
	if !ok {
		return p, fmt.Errorf("%w: %s carries %T", domain.ErrInvalidPayload, event.Type, event.Data)
	}
	return p, nil
}
