package worldgen

import (
	"strings"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// PlaceNaturalWonders chooses and places up to opts.NumNaturalWonder wonders
// subject to each wonder's adjacency/landmass uniques.
func PlaceNaturalWonders(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, areas *tilemap.AreaLabeller, rules ruleset.Ruleset, rng *prng.Stream, opts Options) {
	wonders := append([]ruleset.WonderRule{}, rules.AllWonders()...)
	rng.Shuffle(len(wonders), func(i, j int) { wonders[i], wonders[j] = wonders[j], wonders[i] })

	placed := 0
	for _, w := range wonders {
		if placed >= opts.NumNaturalWonder {
			break
		}
		candidates := wonderCandidates(store, areas, rules, w)
		if len(candidates) == 0 {
			continue
		}
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

		for _, t := range candidates {
			if impacts.Value(tilemap.LayerNaturalWonder, t) != 0 {
				continue
			}
			placeWonder(store, impacts, opts, w, t)
			placed++
			break
		}
	}
	fixupWonderCoastlines(store, areas)
}

func wonderCandidates(store *tilemap.Store, areas *tilemap.AreaLabeller, rules ruleset.Ruleset, w ruleset.WonderRule) []hexgrid.TileIndex {
	var out []hexgrid.TileIndex
	for _, t := range store.AllTiles() {
		if !filterMatches(store, w.Filter, t) {
			continue
		}
		if !satisfiesUniques(store, areas, t, w.Uniques) {
			continue
		}
		if w.IsGreatBarrierReef && !isGreatBarrierReefSite(store, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func satisfiesUniques(store *tilemap.Store, areas *tilemap.AreaLabeller, t hexgrid.TileIndex, uniques []ruleset.WonderUnique) bool {
	for _, u := range uniques {
		switch u.Kind {
		case ruleset.UniqueAdjacentCountAtLeast:
			if countAdjacentMatching(store, t, u.FilterToken) < u.Min {
				return false
			}
		case ruleset.UniqueAdjacentCountRange:
			n := countAdjacentMatching(store, t, u.FilterToken)
			if n < u.Min || n > u.Max {
				return false
			}
		case ruleset.UniqueMustBeOnNthLandmass:
			if !isOnNthLandmass(store, areas, t, u.LandmassRank) {
				return false
			}
		case ruleset.UniqueMustNotBeOnNthLandmass:
			if isOnNthLandmass(store, areas, t, u.LandmassRank) {
				return false
			}
		}
	}
	return true
}

func isOnNthLandmass(store *tilemap.Store, areas *tilemap.AreaLabeller, t hexgrid.TileIndex, rank int) bool {
	ranked := areas.LandAreasByDescendingSize()
	if rank < 1 || rank > len(ranked) {
		return false
	}
	return store.AreaID(t) == ranked[rank-1]
}

func countAdjacentMatching(store *tilemap.Store, t hexgrid.TileIndex, token string) int {
	count := 0
	for _, nb := range store.Layout.Neighbors(t) {
		if matchesFilterToken(store, nb, token) {
			count++
		}
	}
	return count
}

func matchesFilterToken(store *tilemap.Store, t hexgrid.TileIndex, token string) bool {
	switch strings.ToLower(token) {
	case "elevated":
		tt := store.TerrainType(t)
		return tt == tilemap.Mountain || tt == tilemap.Hill
	case "land":
		return !store.IsWater(t)
	}
	if tt, ok := parseTerrainTokenPublic(token); ok {
		return store.TerrainType(t) == tt
	}
	if bt, ok := parseBaseTerrainTokenPublic(token); ok {
		return store.BaseTerrain(t) == bt
	}
	if f, ok := store.Feature(t); ok {
		return strings.EqualFold(f.String(), token)
	}
	return false
}

// isGreatBarrierReefSite requires a primary tile plus a fixed-direction
// neighbor, with the eight surrounding water tiles non-lake, non-ice, and
// at least four Coast.
func isGreatBarrierReefSite(store *tilemap.Store, t hexgrid.TileIndex) bool {
	partner, ok := store.Layout.Neighbor(t, hexgrid.Dir0)
	if !ok {
		return false
	}
	surrounding := map[hexgrid.TileIndex]bool{}
	for _, nb := range store.Layout.Neighbors(t) {
		surrounding[nb] = true
	}
	for _, nb := range store.Layout.Neighbors(partner) {
		surrounding[nb] = true
	}
	delete(surrounding, t)
	delete(surrounding, partner)

	coastCount := 0
	for tile := range surrounding {
		if !store.IsWater(tile) {
			return false
		}
		base := store.BaseTerrain(tile)
		if base == tilemap.Lake || store.HasFeature(tile, tilemap.Ice) {
			return false
		}
		if base == tilemap.Coast {
			coastCount++
		}
	}
	return coastCount >= 4
}

func placeWonder(store *tilemap.Store, impacts *tilemap.ImpactLayers, opts Options, w ruleset.WonderRule, t hexgrid.TileIndex) {
	if w.HasTurnsIntoType {
		store.SetTerrainType(t, w.TurnsIntoType)
	}
	if w.HasTurnsIntoBase {
		store.SetBaseTerrain(t, w.TurnsIntoBase)
	}
	store.SetNaturalWonder(t, w.Wonder)

	radius := opts.Height / 5
	if radius < 1 {
		radius = 1
	}
	impacts.Apply(tilemap.LayerNaturalWonder, t, radius)
	for _, layer := range []tilemap.Layer{tilemap.LayerStrategic, tilemap.LayerLuxury, tilemap.LayerBonus, tilemap.LayerCityState, tilemap.LayerMarble} {
		impacts.Apply(layer, t, 1)
	}

	switch {
	case w.IsGreatBarrierReef:
		partner, _ := store.Layout.Neighbor(t, hexgrid.Dir0)
		store.SetNaturalWonder(partner, w.Wonder)
		for _, nb := range store.Layout.Neighbors(t) {
			if store.IsWater(nb) {
				store.SetBaseTerrain(nb, tilemap.Coast)
			}
		}
		for _, nb := range store.Layout.Neighbors(partner) {
			if store.IsWater(nb) {
				store.SetBaseTerrain(nb, tilemap.Coast)
			}
		}
	case w.IsRockOfGibraltar:
		for _, nb := range store.Layout.Neighbors(t) {
			if store.IsWater(nb) {
				store.SetBaseTerrain(nb, tilemap.Coast)
			} else {
				store.SetTerrainType(nb, tilemap.Mountain)
			}
		}
		store.SetTerrainType(t, tilemap.Flatland)
		store.SetBaseTerrain(t, tilemap.Grassland)
	}
}

// fixupWonderCoastlines applies the post-placement rule: any water tile
// adjacent to a newly-placed land wonder becomes Coast, unless one of its
// own neighbors is Lake, in which case it becomes Lake instead.
func fixupWonderCoastlines(store *tilemap.Store, areas *tilemap.AreaLabeller) {
	for _, t := range store.AllTiles() {
		if _, ok := store.NaturalWonder(t); !ok {
			continue
		}
		if store.IsWater(t) {
			continue
		}
		for _, nb := range store.Layout.Neighbors(t) {
			if !store.IsWater(nb) {
				continue
			}
			hasLakeNeighbor := false
			for _, nn := range store.Layout.Neighbors(nb) {
				if store.BaseTerrain(nn) == tilemap.Lake {
					hasLakeNeighbor = true
					break
				}
			}
			if hasLakeNeighbor {
				store.SetBaseTerrain(nb, tilemap.Lake)
			} else {
				store.SetBaseTerrain(nb, tilemap.Coast)
			}
		}
	}
}

func parseTerrainTokenPublic(s string) (tilemap.TerrainType, bool) {
	switch strings.ToLower(s) {
	case "water":
		return tilemap.Water, true
	case "flatland":
		return tilemap.Flatland, true
	case "hill":
		return tilemap.Hill, true
	case "mountain":
		return tilemap.Mountain, true
	}
	return 0, false
}

func parseBaseTerrainTokenPublic(s string) (tilemap.BaseTerrain, bool) {
	switch strings.ToLower(s) {
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
	}
	return 0, false
}
