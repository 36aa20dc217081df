package reducer

import (
	"fmt"

	"github.com/aretw0/mosaic/pkg/domain"
)

// applyClientAction dispatches to the caller-registered handler for the
// action type. A missing handler is fatal even when the target client does
// not exist; a missing target with a registered handler is a silent no-op.
func (r *Reducer) applyClientAction(s *domain.State, event domain.Event) error {
	p, err := payload[domain.ClientActionPayload](event)
	if err != nil {
		return err
	}

	handler, ok := r.actions.Resolve(p.Action)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnhandledActionType, p.Action)
	}

	client, ok := s.Clients[p.ID]
	if !ok {
		r.logger.Debug("client action dropped, unknown target", "client", p.ID, "action", p.Action)
		return nil
	}

	result, err := handler(r.view(s, client), p.Data)
	if err != nil {
		return fmt.Errorf("action %q: %w", p.Action, err)
	}

	if result.Client != nil {
		client.Data = result.Client.Data
		s.Clients[client.ID] = client
	}
	if result.Cluster != nil && client.ClusterID != "" {
		if cluster, ok := s.Clusters[client.ClusterID]; ok {
			cluster.Data = result.Cluster.Data
			s.Clusters[cluster.ID] = cluster
		}
	}
	return nil
}
