package ports

import (
	"errors"

	"github.com/aretw0/mosaic/pkg/domain"
)

// ClientView is the resolved state handed to client-level hooks: the client
// itself plus its cluster, or nil when the client is unclustered.
type ClientView struct {
	Client  domain.Client
	Cluster *domain.Cluster
}

// EntityUpdate replaces one entity's opaque payload. A nil *EntityUpdate in
// an ActionResult means "leave untouched"; a non-nil update with a nil Data
// clears the payload.
type EntityUpdate struct {
	Data any
}

// ActionResult is the partial update returned by an action handler,
// shallow-merged into the snapshot by the reducer.
type ActionResult struct {
	Client  *EntityUpdate
	Cluster *EntityUpdate
}

// ActionHandler processes one CLIENT_ACTION sub-type. It receives the
// resolved view of the target client and the action's opaque data.
// A returned error aborts the whole transition.
type ActionHandler func(view ClientView, data any) (ActionResult, error)

// Policy is the host-supplied strategy invoked synchronously by the reducer
// to manage opaque per-entity payloads. InitClient, InitCluster and
// MergeClusters are mandatory; the update hooks may be nil, in which case
// NEXT_STATE leaves the corresponding collection untouched.
type Policy struct {
	// InitClient produces the payload for a freshly connected client.
	InitClient func(client domain.Client) any

	// InitCluster produces the payload for the singleton cluster created
	// alongside a new client.
	InitCluster func(client domain.Client) any

	// UpdateClient maps one client payload on NEXT_STATE. Optional.
	UpdateClient func(view ClientView) any

	// UpdateCluster maps one cluster payload on NEXT_STATE. Optional.
	UpdateCluster func(cluster domain.Cluster) any

	// MergeClusters combines the payloads of the surviving cluster and the
	// absorbed cluster. placed is the new transform assigned to the swiped
	// client in the survivor's coordinate frame.
	MergeClusters func(survivor, absorbed domain.Cluster, placed domain.Transform) any
}

// Validate checks that all mandatory hooks are present.
func (p Policy) Validate() error {
	if p.InitClient == nil {
		return errors.New("policy: InitClient is required")
	}
	if p.InitCluster == nil {
		return errors.New("policy: InitCluster is required")
	}
	if p.MergeClusters == nil {
		return errors.New("policy: MergeClusters is required")
	}
	return nil
}
