package reducer

import "github.com/aretw0/mosaic/pkg/domain"

// applyNextState maps the caller-supplied update hooks over every cluster
// and client payload independently. No cross-entity coordination happens
// here; a missing hook leaves its collection untouched.
func (r *Reducer) applyNextState(s *domain.State) error {
	if r.policy.UpdateCluster != nil {
		for id, cluster := range s.Clusters {
			cluster.Data = r.policy.UpdateCluster(cluster)
			s.Clusters[id] = cluster
		}
	}
	if r.policy.UpdateClient != nil {
		for id, client := range s.Clients {
			client.Data = r.policy.UpdateClient(r.view(s, client))
			s.Clients[id] = client
		}
	}
	return nil
}
