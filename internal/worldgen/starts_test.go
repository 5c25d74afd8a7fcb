package worldgen

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

func TestClassifyNeighborWaterAndMountain(t *testing.T) {
	l := hexgrid.NewLayout(6, 6)
	store := tilemap.NewStore(l)
	region := &Region{Type: RegionGrassland, AreaID: 1}

	ocean := l.AllTiles()[0]
	store.SetTerrainType(ocean, tilemap.Water)
	store.SetBaseTerrain(ocean, tilemap.Ocean)
	if classifyNeighbor(store, region, ocean) != classJunk {
		t.Fatalf("expected open ocean to classify as junk")
	}

	lake := l.AllTiles()[1]
	store.SetTerrainType(lake, tilemap.Water)
	store.SetBaseTerrain(lake, tilemap.Lake)
	if classifyNeighbor(store, region, lake) != classFoodGood {
		t.Fatalf("expected Lake to classify as food+good")
	}

	mountain := l.AllTiles()[2]
	store.SetTerrainType(mountain, tilemap.Mountain)
	if classifyNeighbor(store, region, mountain) != classJunk {
		t.Fatalf("expected Mountain to classify as junk")
	}
}

func TestEligibleStartTerrainAllowsOnlyFlatlandAndHill(t *testing.T) {
	l := hexgrid.NewLayout(4, 4)
	store := tilemap.NewStore(l)
	flat, hill, water := l.AllTiles()[0], l.AllTiles()[1], l.AllTiles()[2]
	store.SetTerrainType(flat, tilemap.Flatland)
	store.SetTerrainType(hill, tilemap.Hill)
	store.SetTerrainType(water, tilemap.Water)

	if !eligibleStartTerrain(store, flat) || !eligibleStartTerrain(store, hill) {
		t.Fatalf("expected Flatland and Hill to be eligible start terrain")
	}
	if eligibleStartTerrain(store, water) {
		t.Fatalf("expected Water to be ineligible start terrain")
	}
}

func TestSelectStartingTileAlwaysPlacesSomewhere(t *testing.T) {
	l := hexgrid.NewLayout(18, 12)
	store := grasslandStore(l)
	rivers := tilemap.NewRiverSet(l)
	impacts := tilemap.NewImpactLayers(l)
	rng := prng.New(6)

	rect := hexgrid.NewRectangle(l, 0, 0, l.Width, l.Height)
	region := &Region{Rectangle: rect, AreaID: tilemap.NoArea, Tiles: rect.Tiles()}
	classifyRegion(store, region)

	SelectStartingTile(store, rivers, impacts, rng, region, false)

	if !region.HasStart {
		t.Fatalf("expected a starting tile to always be selected, forced if necessary")
	}
}

func TestForcePlacementSetsGrasslandFlatlandAtSouthwestCorner(t *testing.T) {
	l := hexgrid.NewLayout(10, 10)
	store := tilemap.NewStore(l)
	for _, idx := range l.AllTiles() {
		store.SetTerrainType(idx, tilemap.Water)
		store.SetBaseTerrain(idx, tilemap.Ocean)
	}
	region := &Region{Rectangle: hexgrid.NewRectangle(l, 2, 3, 4, 4)}

	tile := forcePlacement(store, region)

	if store.TerrainType(tile) != tilemap.Flatland || store.BaseTerrain(tile) != tilemap.Grassland {
		t.Fatalf("expected the forced tile to become Flatland Grassland")
	}
}
