package worldgen

import (
	"sort"

	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

// fakeRuleset is a hand-built, in-memory ruleset.Ruleset covering the
// resources, wonders and nations the pipeline's placement passes exercise,
// standing in for a loaded YAML document in tests.
type fakeRuleset struct {
	resources map[tilemap.Resource]ruleset.ResourceRule
	wonders   []ruleset.WonderRule
	nations   []ruleset.NationRule
}

func newFakeRuleset() *fakeRuleset {
	r := &fakeRuleset{resources: map[tilemap.Resource]ruleset.ResourceRule{}}

	bonus := []string{"Deer", "Wheat", "Cattle", "Sheep", "Bananas", "Stone"}
	for _, name := range bonus {
		r.resources[tilemap.Resource(name)] = ruleset.ResourceRule{
			Resource: tilemap.Resource(name), Kind: tilemap.ResourceBonus,
		}
	}
	r.resources["Fish"] = ruleset.ResourceRule{Resource: "Fish", Kind: tilemap.ResourceBonus}

	strategic := []string{"Uranium", "Horses", "Oil", "Iron", "Coal", "Aluminum"}
	for _, name := range strategic {
		r.resources[tilemap.Resource(name)] = ruleset.ResourceRule{
			Resource: tilemap.Resource(name), Kind: tilemap.ResourceStrategic,
		}
	}

	luxuries := []string{"Cotton", "Sugar", "Dyes", "Whales", "Pearls", "Wine", "Incense",
		"Gold", "Gems", "Silver", "Furs", "Silk", "Citrus", "Crab", "Marble"}
	for _, name := range luxuries {
		r.resources[tilemap.Resource(name)] = ruleset.ResourceRule{
			Resource: tilemap.Resource(name), Kind: tilemap.ResourceLuxury, MinQuantity: 1,
		}
	}

	r.wonders = []ruleset.WonderRule{
		{
			Wonder: "Great Barrier Reef",
			Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Ocean, tilemap.Coast}},
			IsGreatBarrierReef: true,
		},
		{
			Wonder: "Mount Fuji",
			Filter: ruleset.TerrainFilter{OccursOnType: []tilemap.TerrainType{tilemap.Mountain}},
		},
	}

	r.nations = []ruleset.NationRule{
		{Name: "Romans"}, {Name: "Egyptians"}, {Name: "Greeks"}, {Name: "Germans"},
		{Name: "Aztecs"}, {Name: "Chinese"}, {Name: "Persians"}, {Name: "English"},
		{Name: "City-State Alpha", IsCityState: true}, {Name: "City-State Beta", IsCityState: true},
		{Name: "City-State Gamma", IsCityState: true}, {Name: "City-State Delta", IsCityState: true},
	}

	return r
}

func (r *fakeRuleset) Version() string { return "test" }

func (r *fakeRuleset) Feature(f tilemap.Feature) (ruleset.FeatureRule, bool) {
	switch f {
	case tilemap.Jungle:
		return ruleset.FeatureRule{Feature: tilemap.Jungle, Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Grassland, tilemap.Plain}}}, true
	case tilemap.Forest:
		return ruleset.FeatureRule{Feature: tilemap.Forest, Filter: ruleset.TerrainFilter{OccursOnType: []tilemap.TerrainType{tilemap.Flatland, tilemap.Hill}}}, true
	case tilemap.Marsh:
		return ruleset.FeatureRule{Feature: tilemap.Marsh, Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Grassland}}}, true
	case tilemap.Oasis:
		return ruleset.FeatureRule{Feature: tilemap.Oasis, Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Desert}}}, true
	case tilemap.Ice:
		return ruleset.FeatureRule{Feature: tilemap.Ice, Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Ocean}}}, true
	case tilemap.Atoll:
		return ruleset.FeatureRule{Feature: tilemap.Atoll, Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Ocean, tilemap.Coast}}}, true
	case tilemap.Floodplain:
		return ruleset.FeatureRule{Feature: tilemap.Floodplain, Filter: ruleset.TerrainFilter{OccursOnBase: []tilemap.BaseTerrain{tilemap.Desert, tilemap.Plain, tilemap.Grassland}, IsFreshWater: true}}, true
	default:
		return ruleset.FeatureRule{}, false
	}
}

func (r *fakeRuleset) Resource(res tilemap.Resource) (ruleset.ResourceRule, bool) {
	rule, ok := r.resources[res]
	return rule, ok
}

func (r *fakeRuleset) ResourcesByKind(kind tilemap.ResourceKind) []ruleset.ResourceRule {
	var out []ruleset.ResourceRule
	for _, rule := range r.resources {
		if rule.Kind == kind {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

func (r *fakeRuleset) Wonder(w tilemap.NaturalWonder) (ruleset.WonderRule, bool) {
	for _, rule := range r.wonders {
		if rule.Wonder == w {
			return rule, true
		}
	}
	return ruleset.WonderRule{}, false
}

func (r *fakeRuleset) AllWonders() []ruleset.WonderRule { return r.wonders }

func (r *fakeRuleset) CityStateNations() []ruleset.NationRule { return r.nations }
