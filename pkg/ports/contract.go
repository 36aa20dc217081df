package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a
// SnapshotStore implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a snapshot with one clustered client
		state := domain.NewState()
		state.Clusters["cluster-1"] = domain.Cluster{ID: "cluster-1", Data: map[string]any{"color": "teal"}}
		client := domain.Client{
			ID:        "screen-a",
			Size:      domain.Size{Width: 375, Height: 667},
			ClusterID: "cluster-1",
			Adjacent:  map[domain.ClientID]bool{"screen-b": true},
		}
		client.Openings = domain.FullOpenings(client)
		state.Clients["screen-a"] = client

		// 2. Save
		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Len(t, loaded.Clients, 1)
		assert.Equal(t, domain.ClusterID("cluster-1"), loaded.Clients["screen-a"].ClusterID)
		assert.True(t, loaded.Clients["screen-a"].AdjacentTo("screen-b"))
		// JSON stores round-trip opaque payloads as generic maps; only
		// check presence here, not concrete type.
		assert.NotNil(t, loaded.Clusters["cluster-1"].Data)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, sessionID, domain.NewState())
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 sessions
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState())
		_ = store.Save(ctx, id2, domain.NewState())

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
