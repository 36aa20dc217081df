package reducer

import (
	"context"
	"fmt"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/google/uuid"
)

// merge joins the mover's cluster into the anchor's. The anchor is the
// holder of the earlier pending swipe; its direction governs where the mover
// is placed. The mover's former cluster entry is deleted outright.
func (r *Reducer) merge(ctx context.Context, s *domain.State, anchor domain.Client, anchorSwipe domain.Swipe, mover domain.Client, moverSwipe domain.Swipe) error {
	placed, err := placeRelative(anchor, anchorSwipe, mover, moverSwipe)
	if err != nil {
		return err
	}

	// A detached anchor (post LEAVE_CLUSTER) gets a fresh cluster to merge into.
	if anchor.ClusterID == "" {
		clusterID := domain.ClusterID(uuid.NewString())
		anchor.ClusterID = clusterID
		s.Clusters[clusterID] = domain.Cluster{ID: clusterID, Data: r.policy.InitCluster(anchor)}
	}

	absorbed := s.Clusters[mover.ClusterID]
	delete(s.Clusters, mover.ClusterID)

	mover.Transform = placed
	mover.ClusterID = anchor.ClusterID
	anchor.Adjacent[mover.ID] = true
	mover.Adjacent[anchor.ID] = true

	survivor := s.Clusters[anchor.ClusterID]
	survivor.Data = r.policy.MergeClusters(survivor, absorbed, placed)
	s.Clusters[survivor.ID] = survivor

	s.Clients[anchor.ID] = anchor
	s.Clients[mover.ID] = mover
	for _, id := range []domain.ClientID{anchor.ID, mover.ID} {
		client := s.Clients[id]
		client.Openings = domain.ComputeOpenings(s.Clients, client)
		s.Clients[id] = client
	}

	r.logger.Debug("clusters merged",
		"survivor", survivor.ID,
		"absorbed", absorbed.ID,
		"anchor", anchor.ID,
		"mover", mover.ID,
		"direction", anchorSwipe.Direction,
	)
	if r.hooks.OnMerge != nil {
		r.hooks.OnMerge(ctx, &domain.MergeEvent{
			Timestamp: r.clock.Now(),
			Survivor:  survivor.ID,
			Absorbed:  absorbed.ID,
			Anchor:    anchor.ID,
			Mover:     mover.ID,
			Direction: anchorSwipe.Direction,
		})
	}
	return nil
}

// placeRelative computes the mover's transform next to the anchor. The
// anchor's swipe direction picks the shared edge; the swipe positions align
// the two screens along it.
func placeRelative(anchor domain.Client, anchorSwipe domain.Swipe, mover domain.Client, moverSwipe domain.Swipe) (domain.Transform, error) {
	at := anchor.Transform
	alignX := at.X + (anchorSwipe.Position.X - moverSwipe.Position.X)
	alignY := at.Y + (anchorSwipe.Position.Y - moverSwipe.Position.Y)

	switch anchorSwipe.Direction {
	case domain.DirectionLeft:
		return domain.Transform{X: at.X - mover.Size.Width, Y: alignY}, nil
	case domain.DirectionRight:
		return domain.Transform{X: at.X + anchor.Size.Width, Y: alignY}, nil
	case domain.DirectionUp:
		return domain.Transform{X: alignX, Y: at.Y - mover.Size.Height}, nil
	case domain.DirectionDown:
		return domain.Transform{X: alignX, Y: at.Y + anchor.Size.Height}, nil
	default:
		return domain.Transform{}, fmt.Errorf("%w: %q", domain.ErrInvalidDirection, anchorSwipe.Direction)
	}
}
