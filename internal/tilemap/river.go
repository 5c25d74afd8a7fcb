package tilemap

import "github.com/pdelewski/civ-worldgen/internal/hexgrid"

// RiverEdge is one segment of a river: the tile it is recorded against and
// the flow direction identifying which corner-edge of that tile it
// traverses.
type RiverEdge struct {
	Tile          hexgrid.TileIndex
	FlowDirection hexgrid.Direction
}

// River is an ordered sequence of edges from source to mouth.
type River struct {
	Edges []RiverEdge
}

// RiverSet owns every river on the map and the canonical per-tile edge
// membership used to query "does tile T have a river along direction D"
// without rescanning every river.
//
// Canonicalization: edge
// indices 0-2 of the hex belong to the tile itself; edge indices 3-5 belong
// to the neighbor in that direction, recorded with the direction flipped to
// the neighbor's opposite. This guarantees each physical edge is owned by
// exactly one (tile, direction) pair, so membership is a single map lookup.
type RiverSet struct {
	layout  hexgrid.Layout
	rivers  []River
	onEdge  map[riverEdgeKey]bool
}

type riverEdgeKey struct {
	tile hexgrid.TileIndex
	dir  hexgrid.Direction
}

// NewRiverSet creates an empty RiverSet bound to a layout.
func NewRiverSet(l hexgrid.Layout) *RiverSet {
	return &RiverSet{layout: l, onEdge: make(map[riverEdgeKey]bool)}
}

// canonicalEdge maps a raw (tile, direction) pair to its canonical owner,
// per the edge-index rule above. Directions 0,1,2 are owned by the tile
// itself; directions 3,4,5 are owned by the neighbor across that edge, under
// the opposite direction.
func (rs *RiverSet) canonicalEdge(t hexgrid.TileIndex, d hexgrid.Direction) riverEdgeKey {
	if int(d) <= 2 {
		return riverEdgeKey{tile: t, dir: d}
	}
	if n, ok := rs.layout.Neighbor(t, d); ok {
		return riverEdgeKey{tile: n, dir: d.Opposite()}
	}
	// Map edge with no neighbor (non-wrapping boundary): canonicalize to
	// itself since there is no neighbor to own it.
	return riverEdgeKey{tile: t, dir: d}
}

// HasRiver reports whether a river already occupies the edge of tile t in
// direction d.
func (rs *RiverSet) HasRiver(t hexgrid.TileIndex, d hexgrid.Direction) bool {
	return rs.onEdge[rs.canonicalEdge(t, d)]
}

// AnyRiver reports whether the tile has a river on any of its six edges.
func (rs *RiverSet) AnyRiver(t hexgrid.TileIndex) bool {
	for d := hexgrid.Direction(0); d < 6; d++ {
		if rs.HasRiver(t, d) {
			return true
		}
	}
	return false
}

// StartRiver begins a new river with no edges yet; use AppendEdge to grow
// it, then Commit to add it to the set.
func (rs *RiverSet) StartRiver() *River {
	return &River{}
}

// AppendEdge adds an edge to a river in progress and marks it claimed,
// reporting false without mutating anything if the edge is already claimed
// (the river generator must treat that as a terminate condition, never
// silently overwrite).
func (rs *RiverSet) AppendEdge(r *River, t hexgrid.TileIndex, d hexgrid.Direction) bool {
	key := rs.canonicalEdge(t, d)
	if rs.onEdge[key] {
		return false
	}
	rs.onEdge[key] = true
	r.Edges = append(r.Edges, RiverEdge{Tile: t, FlowDirection: d})
	return true
}

// Commit finalizes a river (built via StartRiver/AppendEdge) into the set's
// river list. Rivers with zero edges are discarded silently.
func (rs *RiverSet) Commit(r *River) {
	if len(r.Edges) == 0 {
		return
	}
	rs.rivers = append(rs.rivers, *r)
}

// Rivers returns every committed river, in commit order.
func (rs *RiverSet) Rivers() []River {
	return rs.rivers
}

// Count returns the number of committed rivers.
func (rs *RiverSet) Count() int {
	return len(rs.rivers)
}
