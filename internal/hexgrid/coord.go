package hexgrid

// TileIndex is a dense, non-negative index into the grid's tile space. All
// per-tile attribute arrays in internal/tilemap are addressed by TileIndex.
type TileIndex int

// OffsetCoord is a row/column offset coordinate, the natural coordinate
// system for a rectangular hex map and the one latitude is derived from.
type OffsetCoord struct {
	Col int
	Row int
}

// AxialCoord is a cube-reducible axial hex coordinate (Q, R); S is implicit
// as -Q-R.
type AxialCoord struct {
	Q int
	R int
}

// OffsetParity selects whether odd or even rows/columns are shoved over by
// half a cell in the offset coordinate scheme.
type OffsetParity int

const (
	OffsetOdd OffsetParity = iota
	OffsetEven
)

// Layout fully parameterizes a hex grid: its dimensions, orientation, wrap
// behavior and offset parity. A Layout owns no tile data — it is a pure
// coordinate-geometry object shared by the tile store and every pipeline
// pass that needs neighbor or distance queries.
type Layout struct {
	Width       int
	Height      int
	Orientation Orientation
	Offset      OffsetParity
	WrapX       bool
	WrapY       bool
}

// NewLayout builds a Layout, defaulting to pointy-top, odd offset, no wrap.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:       width,
		Height:      height,
		Orientation: Pointy,
		Offset:      OffsetOdd,
		WrapX:       false,
		WrapY:       false,
	}
}

// TileCount returns the total number of tiles in the layout.
func (l Layout) TileCount() int {
	return l.Width * l.Height
}

// InBounds reports whether an offset coordinate addresses a real tile,
// accounting for wrap on either axis.
func (l Layout) InBounds(o OffsetCoord) bool {
	if !l.WrapX && (o.Col < 0 || o.Col >= l.Width) {
		return false
	}
	if !l.WrapY && (o.Row < 0 || o.Row >= l.Height) {
		return false
	}
	return true
}

// normalize wraps an offset coordinate onto the grid along whichever axes
// support wrapping, leaving out-of-bounds coordinates on non-wrapping axes
// untouched so InBounds can still reject them.
func (l Layout) normalize(o OffsetCoord) OffsetCoord {
	if l.WrapX {
		o.Col = ((o.Col % l.Width) + l.Width) % l.Width
	}
	if l.WrapY {
		o.Row = ((o.Row % l.Height) + l.Height) % l.Height
	}
	return o
}

// IndexOf converts an offset coordinate to its dense tile index. The
// coordinate is wrapped first on any wrapping axis.
func (l Layout) IndexOf(o OffsetCoord) (TileIndex, bool) {
	o = l.normalize(o)
	if !l.InBounds(o) {
		return -1, false
	}
	return TileIndex(o.Row*l.Width + o.Col), true
}

// OffsetOf converts a dense tile index back to its offset coordinate. Round
// trips with IndexOf for every in-bounds tile.
func (l Layout) OffsetOf(t TileIndex) OffsetCoord {
	return OffsetCoord{
		Col: int(t) % l.Width,
		Row: int(t) / l.Width,
	}
}

// AxialOf converts a tile's offset coordinate to an axial coordinate
// according to the layout's orientation and offset parity.
func (l Layout) AxialOf(t TileIndex) AxialCoord {
	o := l.OffsetOf(t)
	return l.offsetToAxial(o)
}

func (l Layout) offsetToAxial(o OffsetCoord) AxialCoord {
	switch l.Orientation {
	case Pointy:
		parity := o.Row & 1
		q := o.Col - (o.Row-rowOffset(parity, l.Offset))/2
		return AxialCoord{Q: q, R: o.Row}
	default: // Flat
		parity := o.Col & 1
		r := o.Row - (o.Col-rowOffset(parity, l.Offset))/2
		return AxialCoord{Q: o.Col, R: r}
	}
}

func rowOffset(parity int, offset OffsetParity) int {
	want := 1
	if offset == OffsetEven {
		want = 0
	}
	if parity == want {
		return 1
	}
	return 0
}

// AxialToOffset converts an axial coordinate to an offset coordinate for
// this layout's orientation and offset parity.
func (l Layout) AxialToOffset(a AxialCoord) OffsetCoord {
	switch l.Orientation {
	case Pointy:
		parity := a.R & 1
		col := a.Q + (a.R-rowOffset(parity, l.Offset))/2
		return OffsetCoord{Col: col, Row: a.R}
	default:
		parity := a.Q & 1
		row := a.R + (a.Q-rowOffset(parity, l.Offset))/2
		return OffsetCoord{Col: a.Q, Row: row}
	}
}

// Latitude reports the tile's latitude in [0,1], 0 at the equator and 1 at
// the poles, computed from the offset row as described for Tile.latitude in
// the original source: the row, not the axial coordinate, is authoritative.
func (l Layout) Latitude(t TileIndex) float64 {
	o := l.OffsetOf(t)
	halfHeight := float64(l.Height) / 2
	if halfHeight == 0 {
		return 0
	}
	lat := (halfHeight - float64(o.Row)) / halfHeight
	if lat < 0 {
		lat = -lat
	}
	if lat > 1 {
		lat = 1
	}
	return lat
}
