package ruleset

import (
	"errors"

	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

// ErrUnknownToken is returned when a ruleset document names a terrain,
// feature, resource kind or wonder-unique kind this build does not
// recognize. It is a ruleset-inconsistency error: the loader
// aborts rather than guess at the author's intent.
var ErrUnknownToken = errors.New("ruleset: unknown token")

func parseTerrainType(s string) (tilemap.TerrainType, bool) {
	switch s {
	case "water":
		return tilemap.Water, true
	case "flatland":
		return tilemap.Flatland, true
	case "hill":
		return tilemap.Hill, true
	case "mountain":
		return tilemap.Mountain, true
	default:
		return 0, false
	}
}

func parseBaseTerrain(s string) (tilemap.BaseTerrain, bool) {
	switch s {
	case "ocean":
		return tilemap.Ocean, true
	case "coast":
		return tilemap.Coast, true
	case "lake":
		return tilemap.Lake, true
	case "grassland":
		return tilemap.Grassland, true
	case "plain":
		return tilemap.Plain, true
	case "desert":
		return tilemap.Desert, true
	case "tundra":
		return tilemap.Tundra, true
	case "snow":
		return tilemap.Snow, true
	default:
		return 0, false
	}
}

func parseFeature(s string) (tilemap.Feature, bool) {
	switch s {
	case "ice":
		return tilemap.Ice, true
	case "floodplain":
		return tilemap.Floodplain, true
	case "oasis":
		return tilemap.Oasis, true
	case "marsh":
		return tilemap.Marsh, true
	case "jungle":
		return tilemap.Jungle, true
	case "forest":
		return tilemap.Forest, true
	case "atoll":
		return tilemap.Atoll, true
	default:
		return tilemap.FeatureNone, false
	}
}

func parseResourceKind(s string) (tilemap.ResourceKind, bool) {
	switch s {
	case "bonus":
		return tilemap.ResourceBonus, true
	case "luxury":
		return tilemap.ResourceLuxury, true
	case "strategic":
		return tilemap.ResourceStrategic, true
	default:
		return 0, false
	}
}

func parseUniqueKind(s string) (WonderUniqueKind, bool) {
	switch s {
	case "adjacent_count_at_least":
		return UniqueAdjacentCountAtLeast, true
	case "adjacent_count_range":
		return UniqueAdjacentCountRange, true
	case "must_be_on_nth_landmass":
		return UniqueMustBeOnNthLandmass, true
	case "must_not_be_on_nth_landmass":
		return UniqueMustNotBeOnNthLandmass, true
	default:
		return 0, false
	}
}

func parseFilter(fd filterDoc) (TerrainFilter, error) {
	filter := TerrainFilter{IsFreshWater: fd.IsFreshWater}
	for _, s := range fd.OccursOnType {
		t, ok := parseTerrainType(s)
		if !ok {
			return TerrainFilter{}, errors.Join(ErrUnknownToken, errors.New("terrain type: "+s))
		}
		filter.OccursOnType = append(filter.OccursOnType, t)
	}
	for _, s := range fd.OccursOnBase {
		b, ok := parseBaseTerrain(s)
		if !ok {
			return TerrainFilter{}, errors.Join(ErrUnknownToken, errors.New("base terrain: "+s))
		}
		filter.OccursOnBase = append(filter.OccursOnBase, b)
	}
	return filter, nil
}
