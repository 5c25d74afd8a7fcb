package worldgen

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/civ"
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

func TestPerRegionQuotaLadder(t *testing.T) {
	cases := []struct {
		cityStates, civs, expected int
	}{
		{0, 8, 0},
		{8, 8, 0},
		{12, 8, 1},
		{24, 8, 2},
		{48, 8, 4},
		{72, 8, 6},
		{96, 8, 8},
		{128, 8, 10},
	}
	for _, c := range cases {
		if got := perRegionQuota(c.cityStates, c.civs); got != c.expected {
			t.Fatalf("perRegionQuota(%d, %d) = %d, want %d", c.cityStates, c.civs, got, c.expected)
		}
	}
}

func TestPerRegionQuotaZeroCivsIsZero(t *testing.T) {
	if got := perRegionQuota(16, 0); got != 0 {
		t.Fatalf("expected 0 civs to yield quota 0, got %d", got)
	}
}

func TestPlaceCityStatesSeatsEveryParticipant(t *testing.T) {
	l := hexgrid.NewLayout(24, 16)
	store := grasslandStore(l)
	rivers := tilemap.NewRiverSet(l)
	impacts := tilemap.NewImpactLayers(l)
	areas := tilemap.Label(store)
	rng := prng.New(4)
	opts := DefaultOptions()
	opts.NumCivilization = 2
	opts.NumCityState = 2

	all := l.AllTiles()
	regions := []*Region{
		{Rectangle: hexgrid.NewRectangle(l, 0, 0, 12, 16), Tiles: all[:192], AreaID: tilemap.NoArea},
		{Rectangle: hexgrid.NewRectangle(l, 12, 0, 12, 16), Tiles: all[192:], AreaID: tilemap.NoArea},
	}
	for _, r := range regions {
		classifyRegion(store, r)
	}

	cityStates := []*civ.Participant{
		civ.NewParticipant("Alpha", civ.KindCityState, false),
		civ.NewParticipant("Beta", civ.KindCityState, false),
	}

	if err := PlaceCityStates(store, rivers, impacts, areas, regions, cityStates, rng, opts); err != nil {
		t.Fatalf("PlaceCityStates: %v", err)
	}
	for _, cs := range cityStates {
		if !cs.Placed {
			t.Fatalf("expected city-state %q to be placed", cs.Name)
		}
	}
}

func TestCityStateTileEligibleRejectsWaterAndMountain(t *testing.T) {
	l := hexgrid.NewLayout(6, 6)
	store := tilemap.NewStore(l)
	impacts := tilemap.NewImpactLayers(l)
	water := l.AllTiles()[0]
	store.SetTerrainType(water, tilemap.Water)
	store.SetBaseTerrain(water, tilemap.Ocean)
	mountain := l.AllTiles()[1]
	store.SetTerrainType(mountain, tilemap.Mountain)

	if cityStateTileEligible(store, impacts, water) {
		t.Fatalf("expected a water tile to be ineligible")
	}
	if cityStateTileEligible(store, impacts, mountain) {
		t.Fatalf("expected a mountain tile to be ineligible")
	}
}

func TestSettleCityStateMarksImpactAndClearsCoastalIce(t *testing.T) {
	l := hexgrid.NewLayout(8, 8)
	store := grasslandStore(l)
	impacts := tilemap.NewImpactLayers(l)
	t0 := l.AllTiles()[10]
	nb := store.Layout.Neighbors(t0)[0]
	store.SetTerrainType(nb, tilemap.Water)
	store.SetBaseTerrain(nb, tilemap.Coast)
	store.SetFeature(nb, tilemap.Ice)

	rivers := tilemap.NewRiverSet(l)
	rng := prng.New(3)
	cs := civ.NewParticipant("Gamma", civ.KindCityState, false)
	settleCityState(store, rivers, impacts, cs, t0, rng)

	if !cs.Placed || cs.StartTile != t0 {
		t.Fatalf("expected participant to be placed at %d", t0)
	}
	if impacts.Value(tilemap.LayerCityState, t0) == 0 {
		t.Fatalf("expected the city-state impact layer to be marked at the seated tile")
	}
	if store.HasFeature(nb, tilemap.Ice) {
		t.Fatalf("expected coastal Ice adjacent to a city-state to be cleared")
	}
}
