package worldgen

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

func mountainRingStore(l hexgrid.Layout) *tilemap.Store {
	s := grasslandStore(l)
	for _, idx := range l.AllTiles() {
		o := l.OffsetOf(idx)
		if o.Col == l.Width/2 && o.Row == l.Height/2 {
			s.SetTerrainType(idx, tilemap.Mountain)
		}
	}
	return s
}

func TestPlaceNaturalWondersRespectsCount(t *testing.T) {
	l := hexgrid.NewLayout(20, 14)
	store := mountainRingStore(l)
	rivers := tilemap.NewRiverSet(l)
	impacts := tilemap.NewImpactLayers(l)
	areas := tilemap.Label(store)
	rng := prng.New(7)
	rules := newFakeRuleset()
	opts := DefaultOptions()
	opts.NumNaturalWonder = 1

	PlaceNaturalWonders(store, rivers, impacts, areas, rules, rng, opts)

	placed := 0
	for _, t := range l.AllTiles() {
		if _, ok := store.NaturalWonder(t); ok {
			placed++
		}
	}
	if placed == 0 {
		t.Fatalf("expected Mount Fuji to place on the one available mountain tile")
	}
	if placed > opts.NumNaturalWonder*2 {
		t.Fatalf("placed far more wonder tiles (%d) than requested (%d)", placed, opts.NumNaturalWonder)
	}
}

func TestIsGreatBarrierReefSiteRequiresCoastMajority(t *testing.T) {
	l := hexgrid.NewLayout(10, 10)
	store := tilemap.NewStore(l)
	for _, idx := range l.AllTiles() {
		store.SetTerrainType(idx, tilemap.Water)
		store.SetBaseTerrain(idx, tilemap.Ocean)
	}
	center, _ := store.Layout.IndexOf(hexgrid.OffsetCoord{Col: 5, Row: 5})
	for _, nb := range store.Layout.Neighbors(center) {
		store.SetBaseTerrain(nb, tilemap.Coast)
	}
	partner, ok := store.Layout.Neighbor(center, hexgrid.Dir0)
	if !ok {
		t.Fatalf("expected a Dir0 neighbor for the center tile")
	}
	for _, nb := range store.Layout.Neighbors(partner) {
		store.SetBaseTerrain(nb, tilemap.Coast)
	}

	if !isGreatBarrierReefSite(store, center) {
		t.Fatalf("expected an all-coast surrounding ring to qualify as a reef site")
	}
}

func TestIsGreatBarrierReefSiteRejectsLakeNeighbor(t *testing.T) {
	l := hexgrid.NewLayout(10, 10)
	store := tilemap.NewStore(l)
	for _, idx := range l.AllTiles() {
		store.SetTerrainType(idx, tilemap.Water)
		store.SetBaseTerrain(idx, tilemap.Coast)
	}
	center, _ := store.Layout.IndexOf(hexgrid.OffsetCoord{Col: 5, Row: 5})
	nbs := store.Layout.Neighbors(center)
	store.SetBaseTerrain(nbs[3], tilemap.Lake)

	if isGreatBarrierReefSite(store, center) {
		t.Fatalf("expected a Lake neighbor to disqualify the site")
	}
}

func TestMatchesFilterTokenElevatedAndLand(t *testing.T) {
	l := hexgrid.NewLayout(4, 4)
	store := grasslandStore(l)
	hillTile := l.AllTiles()[0]
	store.SetTerrainType(hillTile, tilemap.Hill)

	if !matchesFilterToken(store, hillTile, "Elevated") {
		t.Fatalf("expected Hill to match the Elevated token")
	}
	if !matchesFilterToken(store, l.AllTiles()[1], "Land") {
		t.Fatalf("expected a flatland tile to match the Land token")
	}
}
