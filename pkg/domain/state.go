package domain

import "sort"

// State is an immutable snapshot of a tiling session.
//
// Handlers never modify a snapshot in place: the reducer clones the previous
// snapshot, applies one event to the clone and returns it. Opaque payloads
// (Client.Data, Cluster.Data) are shared by reference across snapshots; the
// host's policy owns them and returns replacements rather than mutating.
type State struct {
	Clusters map[ClusterID]Cluster `json:"clusters"`
	Clients  map[ClientID]Client   `json:"clients"`

	// Swipes is the pending gesture buffer, ordered by arrival.
	// Bounded to one element in steady state: it is cleared on pairing
	// and pruned by coincidence-window eviction.
	Swipes []Swipe `json:"swipes,omitempty"`
}

// NewState returns an empty session snapshot.
func NewState() *State {
	return &State{
		Clusters: make(map[ClusterID]Cluster),
		Clients:  make(map[ClientID]Client),
	}
}

// Clone returns a deep copy of the snapshot. Adjacency sets and opening
// segments are copied; opaque payloads are shared by reference.
func (s *State) Clone() *State {
	next := &State{
		Clusters: make(map[ClusterID]Cluster, len(s.Clusters)),
		Clients:  make(map[ClientID]Client, len(s.Clients)),
	}
	for id, cluster := range s.Clusters {
		next.Clusters[id] = cluster
	}
	for id, client := range s.Clients {
		adjacent := make(map[ClientID]bool, len(client.Adjacent))
		for nid := range client.Adjacent {
			adjacent[nid] = true
		}
		client.Adjacent = adjacent
		client.Openings = client.Openings.clone()
		next.Clients[id] = client
	}
	if len(s.Swipes) > 0 {
		next.Swipes = make([]Swipe, len(s.Swipes))
		copy(next.Swipes, s.Swipes)
	}
	return next
}

// Members returns the ids of all clients belonging to the given cluster,
// sorted for deterministic iteration.
func (s *State) Members(id ClusterID) []ClientID {
	var members []ClientID
	for cid, client := range s.Clients {
		if client.ClusterID == id {
			members = append(members, cid)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}
