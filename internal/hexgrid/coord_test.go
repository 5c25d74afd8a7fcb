package hexgrid

import (
	"testing"

	"pgregory.net/rapid"
)

func TestOffsetIndexRoundTrip(t *testing.T) {
	for _, orient := range []Orientation{Pointy, Flat} {
		l := NewLayout(20, 14)
		l.Orientation = orient
		for _, idx := range l.AllTiles() {
			o := l.OffsetOf(idx)
			back, ok := l.IndexOf(o)
			if !ok || back != idx {
				t.Fatalf("round trip failed for index %d (orientation %v): got %d, ok=%v", idx, orient, back, ok)
			}
		}
	}
}

func TestAxialOffsetRoundTrip(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		width := rapid.IntRange(4, 60).Draw(tt, "width")
		height := rapid.IntRange(4, 60).Draw(tt, "height")
		l := NewLayout(width, height)
		row := rapid.IntRange(0, height-1).Draw(tt, "row")
		col := rapid.IntRange(0, width-1).Draw(tt, "col")
		o := OffsetCoord{Col: col, Row: row}
		a := l.offsetToAxial(o)
		back := l.AxialToOffset(a)
		if back != o {
			tt.Fatalf("axial round trip mismatch: %+v -> %+v -> %+v", o, a, back)
		}
	})
}

func TestNeighborOppositeIdentity(t *testing.T) {
	l := NewLayout(16, 16)
	for _, idx := range l.AllTiles() {
		o := l.OffsetOf(idx)
		// Only check tiles strictly interior so both hops stay in bounds.
		if o.Col < 2 || o.Row < 2 || o.Col >= l.Width-2 || o.Row >= l.Height-2 {
			continue
		}
		for _, d := range EdgeDirectionArray {
			n, ok := l.Neighbor(idx, d)
			if !ok {
				t.Fatalf("expected interior neighbor to exist for tile %d dir %d", idx, d)
			}
			back, ok := l.Neighbor(n, d.Opposite())
			if !ok || back != idx {
				t.Fatalf("neighbor(%d,%d).neighbor(opposite) = %d,%v, want %d", idx, d, back, ok, idx)
			}
		}
	}
}

func TestLatitudeRangeAndSymmetry(t *testing.T) {
	l := NewLayout(10, 20)
	for _, idx := range l.AllTiles() {
		lat := l.Latitude(idx)
		if lat < 0 || lat > 1 {
			t.Fatalf("latitude out of range for tile %d: %f", idx, lat)
		}
	}
	// Row 0 and the last row should be equally far from the equator.
	top := l.Latitude(TileIndex(0))
	bottomRowStart := TileIndex((l.Height - 1) * l.Width)
	bottom := l.Latitude(bottomRowStart)
	if diff := top - bottom; diff > 0.15 || diff < -0.15 {
		t.Fatalf("expected roughly symmetric latitude at poles, got top=%f bottom=%f", top, bottom)
	}
}

func TestRectangleWrapContainment(t *testing.T) {
	l := NewLayout(10, 10)
	l.WrapX = true
	r := NewRectangle(l, 8, 0, 4, 3) // wraps past column 9 back to column 1
	if !r.Contains(OffsetCoord{Col: 9, Row: 0}) {
		t.Fatalf("expected column 9 to be inside wrapped rectangle")
	}
	if !r.Contains(OffsetCoord{Col: 1, Row: 0}) {
		t.Fatalf("expected wrapped column 1 to be inside rectangle")
	}
	if r.Contains(OffsetCoord{Col: 2, Row: 0}) {
		t.Fatalf("expected column 2 to be outside wrapped rectangle")
	}
}

func TestRectangleRowMajorOrder(t *testing.T) {
	l := NewLayout(10, 10)
	r := NewRectangle(l, 2, 2, 3, 2)
	tiles := r.Tiles()
	if len(tiles) != 6 {
		t.Fatalf("expected 6 tiles, got %d", len(tiles))
	}
	first := l.OffsetOf(tiles[0])
	if first.Col != 2 || first.Row != 2 {
		t.Fatalf("expected row-major iteration to start at SW corner, got %+v", first)
	}
}

func TestCellsAtDistanceSize(t *testing.T) {
	l := NewLayout(30, 30)
	center := TileIndex(15*30 + 15)
	for d := 1; d <= 3; d++ {
		ring := l.CellsAtDistance(center, d)
		if len(ring) > 6*d {
			t.Fatalf("ring at distance %d has %d tiles, want at most %d", d, len(ring), 6*d)
		}
		for _, idx := range ring {
			if got := l.Distance(center, idx); got != d {
				t.Fatalf("tile %d in ring %d has distance %d", idx, d, got)
			}
		}
	}
}
