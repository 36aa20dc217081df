package domain

import "sort"

// Segment is a free interval along one edge of a client, expressed in
// cluster-local coordinates on that edge's axis (x for top/bottom edges,
// y for left/right edges).
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Openings holds the free boundary segments of a client, one list per edge.
// A fully open edge has a single segment spanning the whole edge; a fully
// covered edge has none.
type Openings struct {
	Top    []Segment `json:"top"`
	Bottom []Segment `json:"bottom"`
	Left   []Segment `json:"left"`
	Right  []Segment `json:"right"`
}

func (o Openings) clone() Openings {
	return Openings{
		Top:    append([]Segment(nil), o.Top...),
		Bottom: append([]Segment(nil), o.Bottom...),
		Left:   append([]Segment(nil), o.Left...),
		Right:  append([]Segment(nil), o.Right...),
	}
}

// FullOpenings returns the openings of a client with no flush neighbors:
// every edge is a single free segment spanning the client's footprint.
func FullOpenings(c Client) Openings {
	horizontal := Segment{Start: c.Transform.X, End: c.Transform.X + c.Size.Width}
	vertical := Segment{Start: c.Transform.Y, End: c.Transform.Y + c.Size.Height}
	return Openings{
		Top:    []Segment{horizontal},
		Bottom: []Segment{horizontal},
		Left:   []Segment{vertical},
		Right:  []Segment{vertical},
	}
}

// ComputeOpenings derives the free boundary segments of target from the
// footprints of co-clustered clients whose transform places them exactly
// flush against one of target's edges. Transforms are discrete offsets
// produced by the merge formulas, so flushness is exact equality.
//
// Must be re-run for any client whose geometry or adjacency changed: after a
// merge, after a neighbor disconnects, and after leaving a cluster.
func ComputeOpenings(clients map[ClientID]Client, target Client) Openings {
	left := target.Transform.X
	right := target.Transform.X + target.Size.Width
	top := target.Transform.Y
	bottom := target.Transform.Y + target.Size.Height

	var topBlocks, bottomBlocks, leftBlocks, rightBlocks []Segment
	for id, other := range clients {
		if id == target.ID {
			continue
		}
		if target.ClusterID == "" || other.ClusterID != target.ClusterID {
			continue
		}
		span := Segment{Start: other.Transform.X, End: other.Transform.X + other.Size.Width}
		rise := Segment{Start: other.Transform.Y, End: other.Transform.Y + other.Size.Height}

		switch {
		case other.Transform.Y+other.Size.Height == top:
			topBlocks = append(topBlocks, span)
		case other.Transform.Y == bottom:
			bottomBlocks = append(bottomBlocks, span)
		}
		switch {
		case other.Transform.X+other.Size.Width == left:
			leftBlocks = append(leftBlocks, rise)
		case other.Transform.X == right:
			rightBlocks = append(rightBlocks, rise)
		}
	}

	horizontal := Segment{Start: left, End: right}
	vertical := Segment{Start: top, End: bottom}
	return Openings{
		Top:    subtractSegments(horizontal, topBlocks),
		Bottom: subtractSegments(horizontal, bottomBlocks),
		Left:   subtractSegments(vertical, leftBlocks),
		Right:  subtractSegments(vertical, rightBlocks),
	}
}

// subtractSegments removes the covered intervals from base, returning the
// remaining free sub-intervals in ascending order.
func subtractSegments(base Segment, covered []Segment) []Segment {
	sort.Slice(covered, func(i, j int) bool { return covered[i].Start < covered[j].Start })

	free := make([]Segment, 0, len(covered)+1)
	cursor := base.Start
	for _, c := range covered {
		if c.End <= base.Start || c.Start >= base.End {
			continue
		}
		if c.Start > cursor {
			free = append(free, Segment{Start: cursor, End: c.Start})
		}
		if c.End > cursor {
			cursor = c.End
		}
	}
	if cursor < base.End {
		free = append(free, Segment{Start: cursor, End: base.End})
	}
	return free
}
