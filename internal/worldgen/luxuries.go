package worldgen

import (
	"sort"

	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// LuxuryRoles partitions every ruleset-defined luxury into five disjoint
// roles: regional-exclusive, city-state-exclusive, special-cased, random,
// and disabled.
type LuxuryRoles struct {
	RegionalExclusive map[tilemap.Resource][]int // resource -> region indices holding it
	CityStateExclusive []tilemap.Resource
	SpecialCased       []tilemap.Resource // e.g. Marble
	Random             []tilemap.Resource
	Disabled           []tilemap.Resource
}

// regionTypePriority orders regions for luxury assignment; Undefined goes
// last.
func regionTypePriority(t RegionType) int {
	if t == RegionUndefined {
		return 100
	}
	return int(t)
}

// AssignLuxuries runs the region-by-region exclusive assignment followed by
// the city-state/special/random/disabled split.
func AssignLuxuries(store *tilemap.Store, regions []*Region, rules ruleset.Ruleset, rng *prng.Stream, opts Options) LuxuryRoles {
	ordered := append([]*Region{}, regions...)
	sortRegionsByPriority(ordered)

	roles := LuxuryRoles{RegionalExclusive: map[tilemap.Resource][]int{}}
	assignedTotal := map[tilemap.Resource]int{}
	distinctAssigned := 0

	regionsPerLuxuryCap := opts.MaxRegionsPerExclusiveLuxury
	if regionsPerLuxuryCap <= 0 {
		regionsPerLuxuryCap = scaleCapByCivCount(opts.NumCivilization)
	}

	indexOf := make(map[*Region]int, len(regions))
	for i, r := range regions {
		indexOf[r] = i
	}

	for _, r := range ordered {
		if distinctAssigned >= opts.MaxRegionalLuxuries {
			break
		}
		lux, ok := pickExclusiveLuxury(store, r, rules, rng, assignedTotal, regionsPerLuxuryCap)
		if !ok {
			continue
		}
		r.ExclusiveLuxury = lux
		r.HasExclusiveLuxury = true
		if assignedTotal[lux] == 0 {
			distinctAssigned++
		}
		assignedTotal[lux]++
		roles.RegionalExclusive[lux] = append(roles.RegionalExclusive[lux], indexOf[r])
	}

	used := map[tilemap.Resource]bool{}
	for lux := range roles.RegionalExclusive {
		used[lux] = true
	}

	var remaining []tilemap.Resource
	for _, rr := range rules.ResourcesByKind(tilemap.ResourceLuxury) {
		if !used[rr.Resource] {
			remaining = append(remaining, rr.Resource)
		}
	}

	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })
	csCap := opts.MaxCityStateLuxuries
	for len(roles.CityStateExclusive) < csCap && len(remaining) > 0 {
		roles.CityStateExclusive = append(roles.CityStateExclusive, remaining[0])
		remaining = remaining[1:]
	}

	for i, lux := range remaining {
		if lux == "Marble" {
			roles.SpecialCased = append(roles.SpecialCased, lux)
			remaining = append(remaining[:i], remaining[i+1:]...)
			break
		}
	}

	disabledCount := opts.WorldSize.DisabledLuxuryCount()
	for i, lux := range remaining {
		if i < disabledCount {
			roles.Disabled = append(roles.Disabled, lux)
		} else {
			roles.Random = append(roles.Random, lux)
		}
	}

	return roles
}

func scaleCapByCivCount(numCiv int) int {
	switch {
	case numCiv >= 6:
		return KRegionsPerLuxuryDefault
	case numCiv >= 3:
		return 2
	default:
		return 1
	}
}

func sortRegionsByPriority(rs []*Region) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && regionTypePriority(rs[j-1].Type) > regionTypePriority(rs[j].Type); j-- {
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
}

// regionLuxuryTable gives the candidate luxury names and base weights for a
// region type. Undefined and exhausted primary lists fall back to
// fallbackLuxuryWeights.
var regionLuxuryTable = map[RegionType]map[tilemap.Resource]float64{
	RegionGrassland: {"Cotton": 10, "Sugar": 10, "Dyes": 6, "Whales": 6, "Pearls": 6},
	RegionPlain:     {"Wine": 10, "Incense": 8, "Cotton": 8},
	RegionDesert:    {"Incense": 12, "Gold": 8, "Gems": 6},
	RegionHill:      {"Gold": 10, "Silver": 10, "Gems": 8},
	RegionForest:    {"Furs": 12, "Dyes": 8, "Silk": 6},
	RegionJungle:    {"Dyes": 10, "Silk": 10, "Sugar": 8, "Citrus": 6},
	RegionTundra:    {"Furs": 12, "Whales": 8, "Crab": 6},
}

var fallbackLuxuryWeights = map[tilemap.Resource]float64{
	"Silver": 8, "Gems": 8, "Whales": 6, "Pearls": 6, "Crab": 6,
}

func pickExclusiveLuxury(store *tilemap.Store, r *Region, rules ruleset.Ruleset, rng *prng.Stream, assignedTotal map[tilemap.Resource]int, cap int) (tilemap.Resource, bool) {
	table := regionLuxuryTable[r.Type]
	if len(table) == 0 {
		table = fallbackLuxuryWeights
	}

	names, weights := candidateLuxuries(store, r, table, assignedTotal, cap)
	if len(names) == 0 {
		names, weights = candidateLuxuries(store, r, fallbackLuxuryWeights, assignedTotal, cap)
	}
	if len(names) == 0 {
		return "", false
	}
	idx := rng.WeightedSample(weights)
	if idx < 0 {
		return "", false
	}
	return names[idx], true
}

// candidateLuxuries builds the eligible-luxury name/weight slices from table
// in sorted-by-name order, since Go map iteration order is randomized and
// WeightedSample resolves a given PRNG draw by slice position — iterating a
// map directly would make resource assignment non-deterministic across runs
// with the same seed.
func candidateLuxuries(store *tilemap.Store, r *Region, table map[tilemap.Resource]float64, assignedTotal map[tilemap.Resource]int, cap int) ([]tilemap.Resource, []float64) {
	names := make([]tilemap.Resource, 0, len(table))
	for lux := range table {
		names = append(names, lux)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	out := make([]tilemap.Resource, 0, len(names))
	weights := make([]float64, 0, len(names))
	for _, lux := range names {
		if assignedTotal[lux] >= cap {
			continue
		}
		if isWaterLuxury(lux) && !regionQualifiesForWaterLuxury(store, r) {
			continue
		}
		out = append(out, lux)
		weights = append(weights, table[lux]/(1+float64(assignedTotal[lux])))
	}
	return out, weights
}

func isWaterLuxury(r tilemap.Resource) bool {
	return r == "Whales" || r == "Pearls" || r == "Crab"
}

func regionQualifiesForWaterLuxury(store *tilemap.Store, r *Region) bool {
	if !r.HasStart {
		return false
	}
	if !store.IsCoastalLand(r.StartTile) {
		return false
	}
	waterTiles := 0
	for _, t := range r.Tiles {
		if store.IsWater(t) {
			waterTiles++
		}
	}
	return waterTiles >= 12
}
