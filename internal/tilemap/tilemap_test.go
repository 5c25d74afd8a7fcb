package tilemap

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
)

func checkerboardStore(l hexgrid.Layout) *Store {
	s := NewStore(l)
	for _, idx := range l.AllTiles() {
		o := l.OffsetOf(idx)
		if (o.Col+o.Row)%2 == 0 {
			s.SetTerrainType(idx, Water)
			s.SetBaseTerrain(idx, Ocean)
		} else {
			s.SetTerrainType(idx, Flatland)
			s.SetBaseTerrain(idx, Grassland)
		}
	}
	return s
}

func TestAreaLabelAssignsEveryTile(t *testing.T) {
	l := hexgrid.NewLayout(12, 8)
	s := checkerboardStore(l)
	al := Label(s)
	for _, idx := range l.AllTiles() {
		if s.AreaID(idx) == NoArea {
			t.Fatalf("tile %d has no area assigned", idx)
		}
	}
	if len(al.Areas()) == 0 {
		t.Fatalf("expected at least one area")
	}
}

func TestMountainsAreSingletonAreas(t *testing.T) {
	l := hexgrid.NewLayout(8, 8)
	s := NewStore(l)
	for _, idx := range l.AllTiles() {
		s.SetTerrainType(idx, Flatland)
		s.SetBaseTerrain(idx, Grassland)
	}
	mountainTile := hexgrid.TileIndex(20)
	s.SetTerrainType(mountainTile, Mountain)
	al := Label(s)
	mountainArea := s.AreaID(mountainTile)
	if al.Area(mountainArea).Size != 1 {
		t.Fatalf("expected mountain area size 1, got %d", al.Area(mountainArea).Size)
	}
	for _, nb := range l.Neighbors(mountainTile) {
		if s.AreaID(nb) == mountainArea {
			t.Fatalf("neighbor %d should not share the mountain's singleton area", nb)
		}
	}
}

func TestRiverEdgeCanonicalizationDeduplicates(t *testing.T) {
	l := hexgrid.NewLayout(10, 10)
	rs := NewRiverSet(l)
	tile := hexgrid.TileIndex(33)
	dir := hexgrid.Direction(4) // owned by the neighbor, per canonicalization
	r := rs.StartRiver()
	if !rs.AppendEdge(r, tile, dir) {
		t.Fatalf("expected first append to succeed")
	}
	rs.Commit(r)

	if !rs.HasRiver(tile, dir) {
		t.Fatalf("expected HasRiver to report true for the edge just added")
	}

	r2 := rs.StartRiver()
	if rs.AppendEdge(r2, tile, dir) {
		t.Fatalf("expected second append to the same canonical edge to fail")
	}
}

func TestImpactApplyDecaysWithDistance(t *testing.T) {
	l := hexgrid.NewLayout(20, 20)
	il := NewImpactLayers(l)
	center := hexgrid.TileIndex(10*20 + 10)
	il.Apply(LayerCityState, center, 4)

	if il.Value(LayerCityState, center) != MaxImpact {
		t.Fatalf("expected center to carry MaxImpact, got %d", il.Value(LayerCityState, center))
	}
	ring1 := l.CellsAtDistance(center, 1)
	for _, idx := range ring1 {
		if il.Value(LayerCityState, idx) != 97 {
			t.Fatalf("expected ring 1 value 97, got %d at %d", il.Value(LayerCityState, idx), idx)
		}
	}
	ring4 := l.CellsAtDistance(center, 4)
	for _, idx := range ring4 {
		if il.Value(LayerCityState, idx) != 89 {
			t.Fatalf("expected ring 4 value 89, got %d at %d", il.Value(LayerCityState, idx), idx)
		}
	}
}

func TestImpactOverlapBoosts(t *testing.T) {
	l := hexgrid.NewLayout(20, 20)
	il := NewImpactLayers(l)
	a := hexgrid.TileIndex(5*20 + 5)
	b := hexgrid.TileIndex(5*20 + 7) // within radius 2 of a
	il.Apply(LayerLuxury, a, 3)
	before := il.Value(LayerLuxury, b)
	il.Apply(LayerLuxury, b, 3)
	after := il.Value(LayerLuxury, b)
	if after < before {
		t.Fatalf("expected overlap to not decrease value: before=%d after=%d", before, after)
	}
}
