package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/mosaic"
	"github.com/aretw0/mosaic/pkg/adapters/memory"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/aretw0/mosaic/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.State
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.State)
	}
	s.data[sessionID] = state
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.data[sessionID]; ok {
		return state.Clone(), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newEngine(t *testing.T) *mosaic.Engine {
	t.Helper()
	engine, err := mosaic.New(mosaic.NopPolicy())
	require.NoError(t, err)
	return engine
}

func TestManager_Apply(t *testing.T) {
	manager := session.NewManager(newEngine(t), memory.NewStore())
	ctx := context.Background()

	t.Run("First Event Bootstraps The Session", func(t *testing.T) {
		state, err := manager.Apply(ctx, "sess-1",
			domain.NewConnectEvent("alpha", domain.Size{Width: 100, Height: 100}))
		require.NoError(t, err)
		assert.Len(t, state.Clients, 1)
	})

	t.Run("Snapshot Persists Between Events", func(t *testing.T) {
		_, err := manager.Apply(ctx, "sess-1",
			domain.NewConnectEvent("beta", domain.Size{Width: 100, Height: 100}))
		require.NoError(t, err)

		loaded, err := manager.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.Len(t, loaded.Clients, 2)
	})

	t.Run("Rejected Event Leaves Snapshot Untouched", func(t *testing.T) {
		_, err := manager.Apply(ctx, "sess-1",
			domain.NewSwipeEvent("alpha", "DIAGONAL", domain.Position{}))
		require.ErrorIs(t, err, domain.ErrInvalidDirection)

		loaded, err := manager.Load(ctx, "sess-1")
		require.NoError(t, err)
		assert.Len(t, loaded.Clients, 2, "Failed event must not change the stored snapshot")
		assert.Empty(t, loaded.Swipes)
	})

	t.Run("Delete Removes The Session", func(t *testing.T) {
		require.NoError(t, manager.Delete(ctx, "sess-1"))
		_, err := manager.Load(ctx, "sess-1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestManager_SerializesConcurrentEvents(t *testing.T) {
	manager := session.NewManager(newEngine(t), &SlowStore{})
	ctx := context.Background()

	// Concurrent CONNECTs into one session: without per-session locking the
	// read-modify-write cycles would overwrite each other and lose clients.
	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := domain.ClientID(fmt.Sprintf("screen-%d", n))
			_, err := manager.Apply(ctx, "busy",
				domain.NewConnectEvent(id, domain.Size{Width: 100, Height: 100}))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state, err := manager.Load(ctx, "busy")
	require.NoError(t, err)
	assert.Len(t, state.Clients, writers, "Lost updates under concurrency")
}

// countingLocker records lock/unlock calls.
type countingLocker struct {
	mu       sync.Mutex
	locked   int
	unlocked int
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.locked++
	l.mu.Unlock()
	return func(context.Context) error {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	manager := session.NewManager(newEngine(t), memory.NewStore(), session.WithLocker(locker))

	_, err := manager.Apply(context.Background(), "sess",
		domain.NewConnectEvent("alpha", domain.Size{Width: 100, Height: 100}))
	require.NoError(t, err)

	assert.Equal(t, 1, locker.locked, "Apply should take the distributed lock once")
	assert.Equal(t, 1, locker.unlocked, "Apply should release the distributed lock")
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("redis down")
}

func TestManager_DistributedLockerFailure(t *testing.T) {
	manager := session.NewManager(newEngine(t), memory.NewStore(), session.WithLocker(failingLocker{}))

	_, err := manager.Apply(context.Background(), "sess",
		domain.NewConnectEvent("alpha", domain.Size{Width: 100, Height: 100}))
	require.Error(t, err)

	_, err = manager.Load(context.Background(), "sess")
	require.Error(t, err, "Nothing should be persisted when the lock cannot be taken")
}
