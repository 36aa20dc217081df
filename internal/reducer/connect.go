package reducer

import (
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/google/uuid"
)

// applyConnect inserts a new client together with its singleton cluster.
// The client starts at the origin with no neighbors and fully open edges.
//
// A CONNECT reusing an existing id is an upsert (last write wins); guarding
// against id reuse is the caller's job.
func (r *Reducer) applyConnect(s *domain.State, event domain.Event) error {
	p, err := payload[domain.ConnectPayload](event)
	if err != nil {
		return err
	}

	clusterID := domain.ClusterID(uuid.NewString())
	client := domain.Client{
		ID:        p.ID,
		Size:      p.Size,
		Adjacent:  make(map[domain.ClientID]bool),
		ClusterID: clusterID,
	}
	client.Openings = domain.FullOpenings(client)
	client.Data = r.policy.InitClient(client)

	cluster := domain.Cluster{ID: clusterID}
	cluster.Data = r.policy.InitCluster(client)

	s.Clients[client.ID] = client
	s.Clusters[clusterID] = cluster

	r.logger.Debug("client connected",
		"client", client.ID,
		"cluster", clusterID,
		"width", p.Size.Width,
		"height", p.Size.Height,
	)
	return nil
}
