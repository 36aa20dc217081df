package ports

import (
	"context"

	"github.com/aretw0/mosaic/pkg/domain"
)

// SnapshotStore defines the interface for persisting session snapshots.
// Mosaic keeps no history beyond the latest snapshot, so stores hold
// exactly one snapshot per session id.
type SnapshotStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
