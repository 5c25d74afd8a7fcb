package worldgen

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

func grasslandStore(l hexgrid.Layout) *tilemap.Store {
	s := tilemap.NewStore(l)
	for _, idx := range l.AllTiles() {
		s.SetTerrainType(idx, tilemap.Flatland)
		s.SetBaseTerrain(idx, tilemap.Grassland)
	}
	return s
}

func TestSpecificNumberPlacerRespectsAmountAndRatioCap(t *testing.T) {
	l := hexgrid.NewLayout(10, 10)
	store := grasslandStore(l)
	impacts := tilemap.NewImpactLayers(l)
	rng := prng.New(1)

	candidates := l.AllTiles()
	unplaced := SpecificNumberPlacer(store, impacts, tilemap.LayerStrategic, true, "Iron", 4, 100, 0.05, 0, 2, candidates, rng)

	cap := int(0.05 * float64(len(candidates)))
	placedCount := 0
	for _, t := range candidates {
		if dep, ok := store.Resource(t); ok && dep.Resource == "Iron" {
			placedCount++
		}
	}
	if placedCount != cap {
		t.Fatalf("expected ratio cap %d placements, got %d (unplaced=%d)", cap, placedCount, unplaced)
	}
}

func TestSpecificNumberPlacerSkipsOccupiedTiles(t *testing.T) {
	l := hexgrid.NewLayout(6, 6)
	store := grasslandStore(l)
	impacts := tilemap.NewImpactLayers(l)
	rng := prng.New(2)

	all := l.AllTiles()
	store.SetResource(all[0], "Wheat", 1)

	SpecificNumberPlacer(store, impacts, tilemap.LayerBonus, false, "Deer", 1, 1, 1.0, 0, 1, all, rng)

	dep, ok := store.Resource(all[0])
	if !ok || dep.Resource != "Wheat" {
		t.Fatalf("expected first tile to keep its pre-existing Wheat deposit")
	}
}

func TestResourceListProcessorAppliesRippleSpacing(t *testing.T) {
	l := hexgrid.NewLayout(12, 12)
	store := grasslandStore(l)
	impacts := tilemap.NewImpactLayers(l)
	rng := prng.New(3)

	table := []weightedResource{{Resource: "Cattle", Quantity: 1, Weight: 1, MinR: 1, MaxR: 2}}
	ResourceListProcessor(store, impacts, tilemap.LayerBonus, 4, l.AllTiles(), table, rng)

	placedTiles := []hexgrid.TileIndex{}
	for _, t := range l.AllTiles() {
		if dep, ok := store.Resource(t); ok && dep.Resource == "Cattle" {
			placedTiles = append(placedTiles, t)
		}
	}
	if len(placedTiles) == 0 {
		t.Fatalf("expected at least one Cattle deposit")
	}
	for _, idx := range placedTiles {
		if impacts.Value(tilemap.LayerBonus, idx) == 0 {
			t.Fatalf("expected impact layer to be marked at placed tile %d", idx)
		}
	}
}

func TestFixSugarInJungleConvertsUnderlyingTerrain(t *testing.T) {
	l := hexgrid.NewLayout(6, 6)
	store := tilemap.NewStore(l)
	t0 := l.AllTiles()[0]
	store.SetTerrainType(t0, tilemap.Flatland)
	store.SetBaseTerrain(t0, tilemap.Plain)
	store.SetFeature(t0, tilemap.Jungle)
	store.SetResource(t0, "Sugar", 1)

	FixSugarInJungle(store)

	if store.TerrainType(t0) != tilemap.Flatland {
		t.Fatalf("expected Flatland after fixup, got %v", store.TerrainType(t0))
	}
	if store.BaseTerrain(t0) != tilemap.Grassland {
		t.Fatalf("expected Grassland after fixup, got %v", store.BaseTerrain(t0))
	}
	if !store.HasFeature(t0, tilemap.Marsh) {
		t.Fatalf("expected Marsh feature after fixup")
	}
}
