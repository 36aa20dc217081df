package domain

import "time"

// Swipe is an ephemeral directional gesture proposing an edge-join.
// Swipes live only in the pending buffer of a State; they are never
// persisted with clients or clusters.
type Swipe struct {
	ClientID  ClientID  `json:"client_id"`
	Direction Direction `json:"direction"`
	Position  Position  `json:"position"`

	// ReceivedAt is stamped by the reducer's clock when the swipe enters
	// the buffer. Coincidence-window eviction is measured against it.
	ReceivedAt time.Time `json:"received_at"`
}
