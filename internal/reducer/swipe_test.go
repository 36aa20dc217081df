package reducer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/mosaic/internal/reducer"
	"github.com/aretw0/mosaic/pkg/domain"
)

func swipe(id domain.ClientID, dir domain.Direction, x, y float64) domain.Event {
	return domain.NewSwipeEvent(id, dir, domain.Position{X: x, Y: y})
}

func TestSwipe_Buffering(t *testing.T) {
	t.Run("Lone Swipe Is Buffered", func(t *testing.T) {
		r, _ := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)

		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		if len(state.Swipes) != 1 {
			t.Fatalf("Expected 1 pending swipe, got %d", len(state.Swipes))
		}
		if state.Swipes[0].ClientID != "alpha" {
			t.Errorf("Unexpected pending swipe: %+v", state.Swipes[0])
		}
		if len(state.Clusters) != 1 {
			t.Errorf("Lone swipe must not merge; got %d clusters", len(state.Clusters))
		}
	})

	t.Run("Stale Swipe Evicted Past The Window", func(t *testing.T) {
		r, clk := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)
		state = connect(t, r, state, "beta", 100, 100)

		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		clk.Advance(reducer.DefaultCoincidenceWindow + time.Millisecond)
		state = apply(t, r, state, swipe("beta", domain.DirectionLeft, 5, 50))

		if len(state.Clusters) != 2 {
			t.Errorf("Expired pair must not merge; got %d clusters", len(state.Clusters))
		}
		if len(state.Swipes) != 1 || state.Swipes[0].ClientID != "beta" {
			t.Errorf("Expected beta re-buffered alone, got %+v", state.Swipes)
		}
	})

	t.Run("Boundary Swipe Still Pairs", func(t *testing.T) {
		r, clk := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)
		state = connect(t, r, state, "beta", 100, 100)

		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		clk.Advance(reducer.DefaultCoincidenceWindow) // exactly the window is inside it
		state = apply(t, r, state, swipe("beta", domain.DirectionLeft, 5, 50))

		if len(state.Clusters) != 1 {
			t.Errorf("Expected merge at window boundary, got %d clusters", len(state.Clusters))
		}
	})
}

func TestSwipe_Pairing(t *testing.T) {
	t.Run("Pair Within Window Merges Clusters", func(t *testing.T) {
		r, clk := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)
		state = connect(t, r, state, "beta", 100, 100)

		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		clk.Advance(50 * time.Millisecond)
		state = apply(t, r, state, swipe("beta", domain.DirectionLeft, 5, 50))

		if len(state.Clusters) != 1 {
			t.Fatalf("Expected 1 cluster after merge, got %d", len(state.Clusters))
		}
		if len(state.Swipes) != 0 {
			t.Errorf("Expected empty swipe buffer, got %d", len(state.Swipes))
		}
		alpha, beta := state.Clients["alpha"], state.Clients["beta"]
		if alpha.ClusterID != beta.ClusterID {
			t.Errorf("Clients in different clusters: %s vs %s", alpha.ClusterID, beta.ClusterID)
		}
		if !alpha.AdjacentTo("beta") || !beta.AdjacentTo("alpha") {
			t.Error("Expected symmetric adjacency after merge")
		}
	})

	t.Run("Anchor Direction Governs Placement", func(t *testing.T) {
		r, _ := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)
		state = connect(t, r, state, "beta", 100, 100)

		// Alpha swiped first, pointing RIGHT: beta lands on alpha's right
		// edge regardless of beta's own direction.
		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		state = apply(t, r, state, swipe("beta", domain.DirectionDown, 5, 50))

		beta := state.Clients["beta"]
		if beta.Transform.X != 100 || beta.Transform.Y != 0 {
			t.Errorf("Expected beta at (100,0), got %+v", beta.Transform)
		}
	})

	t.Run("Same Cluster Pair Is A NoOp", func(t *testing.T) {
		r, _ := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)
		state = connect(t, r, state, "beta", 100, 100)
		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		state = apply(t, r, state, swipe("beta", domain.DirectionLeft, 5, 50))

		merged := state.Clients["beta"]

		// Re-swipe inside the merged cluster.
		state = apply(t, r, state, swipe("alpha", domain.DirectionLeft, 5, 50))
		state = apply(t, r, state, swipe("beta", domain.DirectionRight, 95, 50))

		if len(state.Swipes) != 0 {
			t.Errorf("Buffer must clear on a dropped pairing, got %d", len(state.Swipes))
		}
		if state.Clients["beta"].Transform != merged.Transform {
			t.Errorf("Co-clustered pairing moved beta: %+v", state.Clients["beta"].Transform)
		}
	})

	t.Run("Unknown Swiper Clears Buffer Silently", func(t *testing.T) {
		r, _ := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)

		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		state = apply(t, r, state, swipe("ghost", domain.DirectionLeft, 5, 50))

		if len(state.Swipes) != 0 {
			t.Errorf("Expected cleared buffer, got %d pending", len(state.Swipes))
		}
		if len(state.Clusters) != 1 {
			t.Errorf("Ghost pairing must not merge, got %d clusters", len(state.Clusters))
		}
	})

	t.Run("Departed Anchor Clears Buffer Silently", func(t *testing.T) {
		r, _ := newReducer(t)
		state := connect(t, r, nil, "alpha", 100, 100)
		state = connect(t, r, state, "beta", 100, 100)

		state = apply(t, r, state, swipe("alpha", domain.DirectionRight, 95, 50))
		state = apply(t, r, state, domain.NewDisconnectEvent("alpha"))
		state = apply(t, r, state, swipe("beta", domain.DirectionLeft, 5, 50))

		if len(state.Swipes) != 0 {
			t.Errorf("Expected cleared buffer, got %d pending", len(state.Swipes))
		}
		if state.Clients["beta"].ClusterID == "" {
			t.Error("Beta should keep its own cluster")
		}
	})
}

func TestSwipe_InvalidDirection(t *testing.T) {
	r, _ := newReducer(t)
	state := connect(t, r, nil, "alpha", 100, 100)

	_, err := r.Apply(context.Background(), state, swipe("alpha", "DIAGONAL", 0, 0))
	if !errors.Is(err, domain.ErrInvalidDirection) {
		t.Fatalf("Expected ErrInvalidDirection, got %v", err)
	}

	// The rejected event leaves no trace: prev stays authoritative.
	if len(state.Swipes) != 0 {
		t.Errorf("Rejected swipe was buffered: %+v", state.Swipes)
	}
}
