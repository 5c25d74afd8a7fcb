package worldgen

import (
	"math"

	"github.com/pdelewski/civ-worldgen/internal/civ"
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// perRegionQuota implements the floor-ladder mapping city-state-to-civ
// ratio to city states quartered per region.
func perRegionQuota(numCityState, numCiv int) int {
	if numCiv == 0 {
		return 0
	}
	ratio := float64(numCityState) / float64(numCiv)
	switch {
	case ratio > 14:
		return 10
	case ratio > 11:
		return 8
	case ratio > 8:
		return 6
	case ratio > 5:
		return 4
	case ratio > 2.7:
		return 2
	case ratio > 1.35:
		return 1
	default:
		return 0
	}
}

// uninhabitedAreas returns landmass area IDs not claimed by any region, with
// at least 4 viable (non-mountain) tiles, for the Pangaea/Continent
// city-state-assignment branch.
func uninhabitedAreas(store *tilemap.Store, areas *tilemap.AreaLabeller, regions []*Region) []tilemap.AreaID {
	claimed := map[tilemap.AreaID]bool{}
	for _, r := range regions {
		if r.AreaID != tilemap.NoArea {
			claimed[r.AreaID] = true
		}
	}
	var out []tilemap.AreaID
	for _, a := range areas.Areas() {
		if a.IsWater || claimed[a.ID] {
			continue
		}
		viable := 0
		for _, t := range store.AllTiles() {
			if store.AreaID(t) == a.ID && store.TerrainType(t) != tilemap.Mountain {
				viable++
			}
		}
		if viable >= 4 {
			out = append(out, a.ID)
		}
	}
	return out
}

// PlaceCityStates runs the assignment and tile-choice phases of city-state
// placement, mutating each participant's StartTile/Placed in place.
func PlaceCityStates(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, areas *tilemap.AreaLabeller, regions []*Region, cityStates []*civ.Participant, rng *prng.Stream, opts Options) error {
	n := len(cityStates)
	if n == 0 {
		return nil
	}
	quota := perRegionQuota(n, opts.NumCivilization)

	regionSlots := make([]int, len(regions))
	assigned := 0
	for i := range regions {
		regionSlots[i] = quota
		assigned += quota
	}

	var uninhabited []tilemap.AreaID
	switch opts.RegionDivideMethod {
	case RegionDividePangaea, RegionDivideContinent:
		uninhabited = uninhabitedAreas(store, areas, regions)
	}
	uninhabitedCount := 0
	if len(uninhabited) > 0 {
		ratioCap := int(3 * 0.1 * float64(n))
		hardCap := int(math.Ceil(float64(n) / 4))
		if ratioCap < hardCap {
			uninhabitedCount = minInt(ratioCap, len(uninhabited))
		} else {
			uninhabitedCount = minInt(hardCap, len(uninhabited))
		}
	}
	assigned += uninhabitedCount

	remaining := n - assigned
	// co-sharing luxury regions first: one slot each.
	luxuryHolders := map[tilemap.Resource]int{}
	for _, r := range regions {
		if r.HasExclusiveLuxury {
			luxuryHolders[r.ExclusiveLuxury]++
		}
	}
	for ri, r := range regions {
		if remaining > 0 && r.HasExclusiveLuxury && luxuryHolders[r.ExclusiveLuxury] > 1 {
			regionSlots[ri]++
			remaining--
		}
	}
	i := 0
	for remaining > 0 && len(regions) > 0 {
		// then lowest fertility-per-tile.
		idx := lowestFertilityPerTileRegion(regions, regionSlots)
		regionSlots[idx]++
		remaining--
		i++
		if i > n*4 {
			break // guard against pathological loops; documented degrade
		}
	}

	discards := 0
	for ri, r := range regions {
		for s := 0; s < regionSlots[ri] && len(cityStates) > 0; s++ {
			cs := cityStates[0]
			cityStates = cityStates[1:]
			t, ok := chooseRegionalCityStateTile(store, impacts, r)
			if !ok {
				discards++
				continue
			}
			settleCityState(store, rivers, impacts, cs, t, rng)
		}
	}
	for uc := 0; uc < uninhabitedCount && len(cityStates) > 0; uc++ {
		if uc >= len(uninhabited) {
			break
		}
		cs := cityStates[0]
		cityStates = cityStates[1:]
		t, ok := chooseUninhabitedCityStateTile(store, impacts, uninhabited[uc])
		if !ok {
			discards++
			continue
		}
		settleCityState(store, rivers, impacts, cs, t, rng)
	}

	if discards > 0 || len(cityStates) > 0 {
		remainingList := cityStates
		for _, t := range store.AllTiles() {
			if len(remainingList) == 0 {
				break
			}
			if !cityStateTileEligible(store, impacts, t) {
				continue
			}
			settleCityState(store, rivers, impacts, remainingList[0], t, rng)
			remainingList = remainingList[1:]
			discards--
		}
		if len(remainingList) > 0 || discards > 0 {
			return InsufficientFitError("city-state placement", opts.NumCityState, opts.NumCityState-len(remainingList))
		}
	}

	return nil
}

func lowestFertilityPerTileRegion(regions []*Region, slots []int) int {
	best, bestVal, found := 0, 0.0, false
	for i, r := range regions {
		if len(r.Tiles) == 0 {
			continue
		}
		v := float64(r.Fertility.Sum) / float64(len(r.Tiles))
		if !found || v < bestVal {
			best, bestVal, found = i, v, true
		}
	}
	_ = slots
	return best
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func chooseRegionalCityStateTile(store *tilemap.Store, impacts *tilemap.ImpactLayers, r *Region) (hexgrid.TileIndex, bool) {
	rect := r.Rectangle
	_, _, outer := ringPartition(rect)
	peripheral := outer.Tiles()
	coastal, inland := splitCoastalInland(store, peripheral)
	for _, candidates := range [][]hexgrid.TileIndex{coastal, inland} {
		for _, t := range candidates {
			if cityStateTileEligible(store, impacts, t) {
				return t, true
			}
		}
	}
	for _, t := range rect.Tiles() {
		if cityStateTileEligible(store, impacts, t) {
			return t, true
		}
	}
	return 0, false
}

func chooseUninhabitedCityStateTile(store *tilemap.Store, impacts *tilemap.ImpactLayers, area tilemap.AreaID) (hexgrid.TileIndex, bool) {
	var coastal, inland []hexgrid.TileIndex
	for _, t := range store.AllTiles() {
		if store.AreaID(t) != area {
			continue
		}
		if store.IsCoastalLand(t) {
			coastal = append(coastal, t)
		} else if !store.IsWater(t) {
			inland = append(inland, t)
		}
	}
	for _, candidates := range [][]hexgrid.TileIndex{coastal, inland} {
		for _, t := range candidates {
			if cityStateTileEligible(store, impacts, t) {
				return t, true
			}
		}
	}
	return 0, false
}

func splitCoastalInland(store *tilemap.Store, tiles []hexgrid.TileIndex) (coastal, inland []hexgrid.TileIndex) {
	for _, t := range tiles {
		if store.TerrainType(t) == tilemap.Mountain || store.IsWater(t) {
			continue
		}
		if store.IsCoastalLand(t) {
			coastal = append(coastal, t)
		} else {
			inland = append(inland, t)
		}
	}
	return coastal, inland
}

func cityStateTileEligible(store *tilemap.Store, impacts *tilemap.ImpactLayers, t hexgrid.TileIndex) bool {
	if store.IsWater(t) || store.TerrainType(t) == tilemap.Mountain {
		return false
	}
	return impacts.IsClear(tilemap.LayerCityState, t)
}

func settleCityState(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, cs *civ.Participant, t hexgrid.TileIndex, rng *prng.Stream) {
	cs.StartTile = t
	cs.Placed = true
	for _, nb := range store.Layout.Neighbors(t) {
		if store.HasFeature(nb, tilemap.Ice) && store.BaseTerrain(nb) == tilemap.Coast {
			store.ClearFeature(nb)
		}
	}
	impacts.Apply(tilemap.LayerCityState, t, 4)
	impacts.MarkMax(tilemap.LayerCityState, t)
	normalizeCityStateTile(store, rivers, impacts, t, rng)
}

// cityStateBonusResources are the bonus deposits eligible for the
// bonus top-up, in priority order.
var cityStateBonusResources = []string{"Wheat", "Deer", "Bananas", "Cattle", "Sheep"}

// normalizeCityStateTile implements the settled-tile normalize pass: a
// hammer-score check (4 per ring-1 Hill, 2 per ring-1 Forest, below 4)
// converts one ring-1 tile to Hill (skipping tiles on a river, already
// resourced, water, or forested), and bonus resources are seeded in ring 1
// (cap 2) then ring 2 (cap 4 total), with at most one Oasis across both
// rings. Food yield is not measured: the bonus top-up runs for every settled
// tile, up to those caps.
func normalizeCityStateTile(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, t hexgrid.TileIndex, rng *prng.Stream) {
	ring1 := store.Layout.CellsAtDistance(t, 1)
	innerHills, innerForest := 0, 0
	for _, nb := range ring1 {
		if store.TerrainType(nb) == tilemap.Hill {
			innerHills++
		}
		if store.HasFeature(nb, tilemap.Forest) {
			innerForest++
		}
	}
	hammerScore := 4*innerHills + 2*innerForest
	if hammerScore < 4 {
		for _, nb := range ring1 {
			if _, hasRes := store.Resource(nb); hasRes {
				continue
			}
			if store.IsWater(nb) || store.HasFeature(nb, tilemap.Forest) {
				continue
			}
			if rivers != nil && rivers.AnyRiver(nb) {
				continue
			}
			store.SetTerrainType(nb, tilemap.Hill)
			break
		}
	}

	foodPlaced, oasisPlaced := 0, false
	placeBonus := func(candidates []hexgrid.TileIndex, cap int) {
		for _, nb := range candidates {
			if foodPlaced >= cap {
				return
			}
			if store.IsWater(nb) || store.TerrainType(nb) == tilemap.Mountain {
				continue
			}
			if _, hasRes := store.Resource(nb); hasRes {
				continue
			}
			if impacts != nil && !impacts.IsClear(tilemap.LayerBonus, nb) {
				continue
			}
			name := cityStateBonusResources[foodPlaced%len(cityStateBonusResources)]
			if !oasisPlaced && store.BaseTerrain(nb) == tilemap.Desert && rng != nil && rng.IntRange(0, 3) == 0 {
				store.SetFeature(nb, tilemap.Oasis)
				oasisPlaced = true
			} else {
				store.SetResource(nb, tilemap.Resource(name), 1)
			}
			if impacts != nil {
				impacts.Apply(tilemap.LayerBonus, nb, 1)
			}
			foodPlaced++
		}
	}
	placeBonus(ring1, 2)
	if foodPlaced < 4 {
		placeBonus(store.Layout.CellsAtDistance(t, 2), 4)
	}
}
