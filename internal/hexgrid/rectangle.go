package hexgrid

// Rectangle is a wrap-aware axis-aligned rectangle over offset coordinates,
// anchored at its south-west corner. It never stores tiles — only the
// geometry needed to iterate and test containment.
type Rectangle struct {
	layout Layout
	SWCol  int
	SWRow  int
	Width  int
	Height int
}

// NewRectangle builds a rectangle within the given layout.
func NewRectangle(l Layout, swCol, swRow, width, height int) Rectangle {
	return Rectangle{layout: l, SWCol: swCol, SWRow: swRow, Width: width, Height: height}
}

// Layout returns the rectangle's owning layout.
func (r Rectangle) Layout() Layout { return r.layout }

// Contains reports whether an offset coordinate falls inside the rectangle,
// wrapping on whichever axes the layout allows.
func (r Rectangle) Contains(o OffsetCoord) bool {
	colOK := r.axisContains(o.Col, r.SWCol, r.Width, r.layout.Width, r.layout.WrapX)
	rowOK := r.axisContains(o.Row, r.SWRow, r.Height, r.layout.Height, r.layout.WrapY)
	return colOK && rowOK
}

func (r Rectangle) axisContains(v, start, length, worldLen int, wrap bool) bool {
	if length >= worldLen && wrap {
		return true
	}
	d := v - start
	if wrap {
		d = ((d % worldLen) + worldLen) % worldLen
	}
	return d >= 0 && d < length
}

// Tiles iterates the rectangle's tiles in row-major order (south-west to
// north-east, rows first). Coordinates that fall outside the layout on a
// non-wrapping axis are skipped.
func (r Rectangle) Tiles() []TileIndex {
	out := make([]TileIndex, 0, r.Width*r.Height)
	for dy := 0; dy < r.Height; dy++ {
		for dx := 0; dx < r.Width; dx++ {
			o := OffsetCoord{Col: r.SWCol + dx, Row: r.SWRow + dy}
			if idx, ok := r.layout.IndexOf(o); ok {
				out = append(out, idx)
			}
		}
	}
	return out
}

// Row returns the tiles of the dy-th row (0-indexed from the south-west)
// of the rectangle, in column order.
func (r Rectangle) Row(dy int) []TileIndex {
	out := make([]TileIndex, 0, r.Width)
	for dx := 0; dx < r.Width; dx++ {
		o := OffsetCoord{Col: r.SWCol + dx, Row: r.SWRow + dy}
		if idx, ok := r.layout.IndexOf(o); ok {
			out = append(out, idx)
		}
	}
	return out
}

// Column returns the tiles of the dx-th column of the rectangle, in row
// order.
func (r Rectangle) Column(dx int) []TileIndex {
	out := make([]TileIndex, 0, r.Height)
	for dy := 0; dy < r.Height; dy++ {
		o := OffsetCoord{Col: r.SWCol + dx, Row: r.SWRow + dy}
		if idx, ok := r.layout.IndexOf(o); ok {
			out = append(out, idx)
		}
	}
	return out
}

// TrimRow removes one edge row from the rectangle by shrinking it: the south
// edge row when fromSouth is true, otherwise the north edge row.
func (r Rectangle) TrimRow(fromSouth bool) Rectangle {
	if r.Height <= 1 {
		return r
	}
	if fromSouth {
		return NewRectangle(r.layout, r.SWCol, r.SWRow+1, r.Width, r.Height-1)
	}
	return NewRectangle(r.layout, r.SWCol, r.SWRow, r.Width, r.Height-1)
}

// TrimColumn removes a column from the rectangle's west or east edge.
func (r Rectangle) TrimColumn(fromWest bool) Rectangle {
	if r.Width <= 1 {
		return r
	}
	if fromWest {
		return NewRectangle(r.layout, r.SWCol+1, r.SWRow, r.Width-1, r.Height)
	}
	return NewRectangle(r.layout, r.SWCol, r.SWRow, r.Width-1, r.Height)
}

// CenterOffset returns the offset coordinate nearest the rectangle's
// geometric center, used by the starting-tile selector's outer-ring
// distance-to-center tie-break.
func (r Rectangle) CenterOffset() OffsetCoord {
	return OffsetCoord{
		Col: r.SWCol + r.Width/2,
		Row: r.SWRow + r.Height/2,
	}
}

// SplitCols splits the rectangle into a west piece of the given width and
// the remaining east piece, both sharing the original's row extent. Used by
// two-way chops along the column axis.
func (r Rectangle) SplitCols(westWidth int) (west, east Rectangle) {
	west = NewRectangle(r.layout, r.SWCol, r.SWRow, westWidth, r.Height)
	east = NewRectangle(r.layout, r.SWCol+westWidth, r.SWRow, r.Width-westWidth, r.Height)
	return west, east
}

// SplitRows splits the rectangle into a south piece of the given height and
// the remaining north piece. Used by two-way chops along the row axis.
func (r Rectangle) SplitRows(southHeight int) (south, north Rectangle) {
	south = NewRectangle(r.layout, r.SWCol, r.SWRow, r.Width, southHeight)
	north = NewRectangle(r.layout, r.SWCol, r.SWRow+southHeight, r.Width, r.Height-southHeight)
	return south, north
}
