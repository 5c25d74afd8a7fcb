package hexgrid

import "math"

// Neighbor returns the tile one step from t in direction d, or false if that
// neighbor falls off a non-wrapping edge.
func (l Layout) Neighbor(t TileIndex, d Direction) (TileIndex, bool) {
	o := l.OffsetOf(t)
	var deltas *[6][2]int
	switch l.Orientation {
	case Pointy:
		if o.Row&1 == 1 {
			deltas = &pointyOffsetDeltasOdd
		} else {
			deltas = &pointyOffsetDeltasEven
		}
		if l.Offset == OffsetEven {
			// Even-offset pointy layouts use the mirrored table.
			if o.Row&1 == 1 {
				deltas = &pointyOffsetDeltasEven
			} else {
				deltas = &pointyOffsetDeltasOdd
			}
		}
		delta := deltas[d]
		return l.IndexOf(OffsetCoord{Col: o.Col + delta[0], Row: o.Row + delta[1]})
	default: // Flat
		if o.Col&1 == 1 {
			deltas = &flatOffsetDeltasOdd
		} else {
			deltas = &flatOffsetDeltasEven
		}
		if l.Offset == OffsetEven {
			if o.Col&1 == 1 {
				deltas = &flatOffsetDeltasEven
			} else {
				deltas = &flatOffsetDeltasOdd
			}
		}
		delta := deltas[d]
		return l.IndexOf(OffsetCoord{Col: o.Col + delta[0], Row: o.Row + delta[1]})
	}
}

// Neighbors returns every in-bounds neighbor of t, in EdgeDirectionArray
// order. Missing neighbors (off a non-wrapping edge) are simply omitted, so
// callers that need "missing counts as Junk" semantics must compare against
// len(EdgeDirectionArray).
func (l Layout) Neighbors(t TileIndex) []TileIndex {
	out := make([]TileIndex, 0, 6)
	for _, d := range EdgeDirectionArray {
		if n, ok := l.Neighbor(t, d); ok {
			out = append(out, n)
		}
	}
	return out
}

// AllTiles returns every tile index in index order, the iteration order
// every pipeline pass over "all_tiles()" must use.
func (l Layout) AllTiles() []TileIndex {
	out := make([]TileIndex, l.TileCount())
	for i := range out {
		out[i] = TileIndex(i)
	}
	return out
}

// axialDistance computes hex distance between two axial coordinates.
func axialDistance(a, b AxialCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := (-a.Q - a.R) - (-b.Q - b.R)
	return maxAbs3(dq, dr, ds)
}

func maxAbs3(a, b, c int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if c < 0 {
		c = -c
	}
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// Distance returns hex distance between two tiles, ignoring wrap (the
// shortest path across a wrapping edge is not considered; callers needing
// wrap-aware distance use Rectangle's wrap-aware containment instead).
func (l Layout) Distance(a, b TileIndex) int {
	return axialDistance(l.AxialOf(a), l.AxialOf(b))
}

// CellsAtDistance returns every tile at exactly distance d from the center,
// a lazily-sized ring with at most 6*d members (d=0 yields just the center).
func (l Layout) CellsAtDistance(center TileIndex, d int) []TileIndex {
	if d == 0 {
		return []TileIndex{center}
	}
	c := l.AxialOf(center)
	out := make([]TileIndex, 0, 6*d)
	// Walk the ring: start d steps in direction 4, then walk d steps in each
	// of the six directions in order.
	cube := axialNeighborCube(c, Dir4, d)
	for _, dir := range EdgeDirectionArray {
		for step := 0; step < d; step++ {
			if idx, ok := l.axialToIndex(cube); ok {
				out = append(out, idx)
			}
			cube = axialStep(cube, dir)
		}
	}
	return out
}

// CellsWithinDistance returns every tile within distance d (inclusive),
// center included once.
func (l Layout) CellsWithinDistance(center TileIndex, d int) []TileIndex {
	out := make([]TileIndex, 0)
	for r := 0; r <= d; r++ {
		out = append(out, l.CellsAtDistance(center, r)...)
	}
	return out
}

func (l Layout) axialToIndex(a AxialCoord) (TileIndex, bool) {
	return l.IndexOf(l.AxialToOffset(a))
}

func axialStep(a AxialCoord, d Direction) AxialCoord {
	deltas := [6]AxialCoord{
		{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
	}
	delta := deltas[d]
	return AxialCoord{Q: a.Q + delta.Q, R: a.R + delta.R}
}

func axialNeighborCube(a AxialCoord, d Direction, steps int) AxialCoord {
	for i := 0; i < steps; i++ {
		a = axialStep(a, d)
	}
	return a
}

// HexToPixel returns the pixel-space center of a tile for a hex of the given
// size, honoring orientation. Used only by external renderers/debug tools;
// the placement pipeline never consults pixel space.
func (l Layout) HexToPixel(t TileIndex, size float64) (x, y float64) {
	a := l.AxialOf(t)
	switch l.Orientation {
	case Pointy:
		x = size * (math.Sqrt(3)*float64(a.Q) + math.Sqrt(3)/2*float64(a.R))
		y = size * (3.0 / 2 * float64(a.R))
	default:
		x = size * (3.0 / 2 * float64(a.Q))
		y = size * (math.Sqrt(3)/2*float64(a.Q) + math.Sqrt(3)*float64(a.R))
	}
	return x, y
}

// Corner returns the pixel offset of the i-th corner (0..5) of a hex of the
// given size under this layout's orientation.
func (l Layout) Corner(size float64, i int) (x, y float64) {
	var angleDeg float64
	switch l.Orientation {
	case Pointy:
		angleDeg = 60*float64(i) - 30
	default:
		angleDeg = 60 * float64(i)
	}
	angleRad := math.Pi / 180 * angleDeg
	return size * math.Cos(angleRad), size * math.Sin(angleRad)
}
