package ports

import (
	"context"

	"github.com/aretw0/mosaic/pkg/domain"
)

// Transitioner is the core transition function: given the previous snapshot
// (or nil for a fresh session) and one event, it returns the next snapshot.
// A non-nil error means the event was rejected whole; the caller keeps the
// previous snapshot as authoritative.
type Transitioner interface {
	Apply(ctx context.Context, prev *domain.State, event domain.Event) (*domain.State, error)
}
