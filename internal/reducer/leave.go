package reducer

import (
	"github.com/aretw0/mosaic/pkg/domain"
)

// applyLeaveCluster detaches a client from its cluster without removing it.
// Adjacency is severed on both sides and openings recomputed for the leaver
// and every former neighbor. No-op if the client is absent or already
// unclustered; repeating it is idempotent.
func (r *Reducer) applyLeaveCluster(s *domain.State, event domain.Event) error {
	p, err := payload[domain.LeaveClusterPayload](event)
	if err != nil {
		return err
	}

	client, ok := s.Clients[p.ID]
	if !ok || client.ClusterID == "" {
		return nil
	}
	vacated := client.ClusterID

	neighbors := make([]domain.ClientID, 0, len(client.Adjacent))
	for nid := range client.Adjacent {
		neighbors = append(neighbors, nid)
	}

	client.ClusterID = ""
	client.Adjacent = make(map[domain.ClientID]bool)
	client.Openings = domain.ComputeOpenings(s.Clients, client)
	s.Clients[client.ID] = client

	for _, nid := range neighbors {
		neighbor, ok := s.Clients[nid]
		if !ok {
			continue
		}
		delete(neighbor.Adjacent, client.ID)
		s.Clients[nid] = neighbor
		neighbor.Openings = domain.ComputeOpenings(s.Clients, neighbor)
		s.Clients[nid] = neighbor
	}

	r.cleanupCluster(s, vacated)
	r.logger.Debug("client left cluster", "client", client.ID, "cluster", vacated)
	return nil
}

// applyDisconnect removes a client record entirely, purges its id from every
// other client's adjacency set and recomputes their openings, then applies
// the cluster cleanup rule to the vacated cluster. Unknown ids are a silent
// no-op.
func (r *Reducer) applyDisconnect(s *domain.State, event domain.Event) error {
	p, err := payload[domain.DisconnectPayload](event)
	if err != nil {
		return err
	}

	client, ok := s.Clients[p.ID]
	if !ok {
		return nil
	}
	delete(s.Clients, client.ID)

	for id, other := range s.Clients {
		if !other.AdjacentTo(client.ID) {
			continue
		}
		delete(other.Adjacent, client.ID)
		s.Clients[id] = other
		other.Openings = domain.ComputeOpenings(s.Clients, other)
		s.Clients[id] = other
	}

	if client.ClusterID != "" {
		r.cleanupCluster(s, client.ClusterID)
	}
	r.logger.Debug("client disconnected", "client", client.ID)
	return nil
}

// cleanupCluster applies the survival rule to a vacated cluster: it survives
// only with more than one remaining member. Zero or exactly one member
// deletes the cluster outright; a last remaining member is detached, not
// removed. The single-member collapse is intentional.
func (r *Reducer) cleanupCluster(s *domain.State, id domain.ClusterID) {
	members := s.Members(id)
	if len(members) > 1 {
		return
	}

	delete(s.Clusters, id)
	for _, cid := range members {
		client := s.Clients[cid]
		client.ClusterID = ""
		client.Adjacent = make(map[domain.ClientID]bool)
		client.Openings = domain.ComputeOpenings(s.Clients, client)
		s.Clients[cid] = client
	}
	r.logger.Debug("cluster collapsed", "cluster", id, "stragglers", len(members))
}
