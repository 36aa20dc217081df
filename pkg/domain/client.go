package domain

// ClientID identifies a single device (screen) in a session.
type ClientID string

// ClusterID identifies a group of merged clients sharing one coordinate frame.
type ClusterID string

// Direction is the cardinal direction of a swipe gesture.
type Direction string

const (
	DirectionUp    Direction = "UP"
	DirectionDown  Direction = "DOWN"
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// Size is the pixel dimensions of a client's screen.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform is a client's position in cluster-local space.
// Offsets are discrete; there is no rotation or scaling.
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position is a point on a client's screen, e.g. where a swipe started.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Client is one device participating in the session.
type Client struct {
	ID        ClientID  `json:"id"`
	Size      Size      `json:"size"`
	Transform Transform `json:"transform"`

	// Adjacent holds the ids of directly merged neighbors.
	// Recorded symmetrically on both sides of each merge edge.
	Adjacent map[ClientID]bool `json:"adjacent,omitempty"`

	// ClusterID references the cluster this client belongs to.
	// Empty means the client is connected but unclustered.
	ClusterID ClusterID `json:"cluster_id,omitempty"`

	// Openings are the free boundary segments per edge, used by hosts to
	// render further-connection affordances.
	Openings Openings `json:"openings"`

	// Data is the opaque payload owned by the host's client policy.
	Data any `json:"data,omitempty"`
}

// AdjacentTo reports whether the client has a merge edge to id.
func (c Client) AdjacentTo(id ClientID) bool {
	return c.Adjacent[id]
}

// Cluster is a connected set of clients sharing one merged payload.
type Cluster struct {
	ID ClusterID `json:"id"`

	// Data is the opaque payload owned by the host's cluster policy.
	Data any `json:"data,omitempty"`
}
