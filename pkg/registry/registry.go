package registry

import (
	"sync"

	"github.com/aretw0/mosaic/pkg/ports"
)

// Registry manages the open set of CLIENT_ACTION handlers, keyed by action
// type. The six core events are a closed union; this is the caller-extensible
// sub-dispatch layered on top of CLIENT_ACTION.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]ports.ActionHandler
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]ports.ActionHandler),
	}
}

// Register adds a handler for an action type.
// If a handler with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn ports.ActionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = fn
}

// Resolve looks up a handler by action type.
func (r *Registry) Resolve(name string) (ports.ActionHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[name]
	return fn, ok
}
