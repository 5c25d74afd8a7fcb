package worldgen

import (
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

// measureFertility scores a single tile for region partitioning purposes.
// checkCoastal enables the coastal bonus; landmass regions pass true, and
// rectangle regions, which measure every tile without an area filter, pass
// false.
func measureFertility(store *tilemap.Store, rivers *tilemap.RiverSet, t hexgrid.TileIndex, checkCoastal bool) int {
	terrain := store.TerrainType(t)
	if terrain == tilemap.Mountain {
		return -2
	}
	base := store.BaseTerrain(t)
	if base == tilemap.Snow {
		return -1
	}

	score := 0
	switch terrain {
	case tilemap.Hill:
		score += 1
	}
	switch base {
	case tilemap.Grassland:
		score += 3
	case tilemap.Plain:
		score += 4
	case tilemap.Coast, tilemap.Lake, tilemap.Tundra:
		score += 2
	case tilemap.Desert:
		score += 1
	}

	if feat, ok := store.Feature(t); ok {
		switch feat {
		case tilemap.Forest:
			score += 0
		case tilemap.Jungle, tilemap.Ice:
			score -= 1
		case tilemap.Marsh:
			score -= 2
		case tilemap.Oasis:
			score = 4
		case tilemap.Floodplain:
			score = 5
		}
	}

	if rivers.AnyRiver(t) {
		score += 1
	}
	if isFreshWaterAdjacent(store, t) {
		score += 1
	}
	if checkCoastal && store.IsCoastalLand(t) {
		score += 2
	}
	return score
}

// isFreshWaterAdjacent reports whether t or a neighbor is a Lake, which this
// pipeline treats as the freshwater source (rivers are accounted separately
// via AnyRiver).
func isFreshWaterAdjacent(store *tilemap.Store, t hexgrid.TileIndex) bool {
	if store.BaseTerrain(t) == tilemap.Lake {
		return true
	}
	for _, nb := range store.Layout.Neighbors(t) {
		if store.BaseTerrain(nb) == tilemap.Lake {
			return true
		}
	}
	return false
}

// FertilityList holds the per-tile fertility for a region, aligned with the
// region's rectangle tile ordering, plus the running sum.
type FertilityList struct {
	Tiles []hexgrid.TileIndex
	Value []int
	Sum   int
}

// landmassFertility computes fertility for a landmass-filtered region: tiles
// not in areaID score zero.
func landmassFertility(store *tilemap.Store, rivers *tilemap.RiverSet, tiles []hexgrid.TileIndex, areaID tilemap.AreaID) FertilityList {
	fl := FertilityList{Tiles: tiles, Value: make([]int, len(tiles))}
	for i, t := range tiles {
		if store.AreaID(t) != areaID {
			continue
		}
		v := measureFertility(store, rivers, t, true)
		fl.Value[i] = v
		fl.Sum += v
	}
	return fl
}

// rectangleFertility computes fertility for a plain rectangle region: every
// tile contributes, coastal bonus disabled.
func rectangleFertility(store *tilemap.Store, rivers *tilemap.RiverSet, tiles []hexgrid.TileIndex) FertilityList {
	fl := FertilityList{Tiles: tiles, Value: make([]int, len(tiles))}
	for i, t := range tiles {
		v := measureFertility(store, rivers, t, false)
		fl.Value[i] = v
		fl.Sum += v
	}
	return fl
}
