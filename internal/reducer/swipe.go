package reducer

import (
	"context"
	"fmt"

	"github.com/aretw0/mosaic/pkg/domain"
)

// applySwipe runs the pairing protocol: evict stale gestures, buffer a lone
// swipe, or pair the new swipe with the earliest pending one and merge the
// two clusters.
//
// Only the single earliest pending swipe is ever matched. Extra simultaneous
// swipers are dropped with the buffer and must retry in the next window.
func (r *Reducer) applySwipe(ctx context.Context, s *domain.State, event domain.Event) error {
	p, err := payload[domain.SwipePayload](event)
	if err != nil {
		return err
	}
	if !p.Direction.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDirection, p.Direction)
	}

	now := r.clock.Now()
	pending := s.Swipes[:0:0]
	for _, swipe := range s.Swipes {
		if now.Sub(swipe.ReceivedAt) <= r.window {
			pending = append(pending, swipe)
		}
	}

	incoming := domain.Swipe{
		ClientID:   p.ID,
		Direction:  p.Direction,
		Position:   p.Position,
		ReceivedAt: now,
	}

	if len(pending) == 0 {
		s.Swipes = append(pending, incoming)
		r.logger.Debug("swipe buffered", "client", p.ID, "direction", p.Direction)
		return nil
	}

	// The buffer resolves on every pairing attempt, successful or not.
	anchor := pending[0]
	s.Swipes = nil

	anchorClient, ok := s.Clients[anchor.ClientID]
	if !ok {
		r.logger.Debug("pairing dropped, anchor client gone", "client", anchor.ClientID)
		return nil
	}
	moverClient, ok := s.Clients[incoming.ClientID]
	if !ok {
		r.logger.Debug("pairing dropped, swiping client unknown", "client", incoming.ClientID)
		return nil
	}

	if anchorClient.ClusterID != "" && anchorClient.ClusterID == moverClient.ClusterID {
		r.logger.Debug("pairing dropped, clients already co-clustered",
			"anchor", anchorClient.ID,
			"mover", moverClient.ID,
		)
		return nil
	}

	return r.merge(ctx, s, anchorClient, anchor, moverClient, incoming)
}
