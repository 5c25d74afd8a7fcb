package worldgen

import (
	"sort"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// tileClass buckets a neighbor tile for starting-tile candidate scoring.
type tileClass int

const (
	classJunk tileClass = iota
	classFood
	classProduction
	classGood
	classFoodGood
	classProductionGood
)

func classifyNeighbor(store *tilemap.Store, region *Region, t hexgrid.TileIndex) tileClass {
	terrain := store.TerrainType(t)
	base := store.BaseTerrain(t)
	feat, hasFeat := store.Feature(t)

	if store.IsWater(t) {
		if hasFeat && feat == tilemap.Ice {
			return classJunk
		}
		if base == tilemap.Lake {
			return classFoodGood
		}
		if base == tilemap.Coast && region.AreaID == tilemap.NoArea {
			return classGood
		}
		return classJunk
	}
	if terrain == tilemap.Mountain {
		return classJunk
	}
	if hasFeat {
		switch feat {
		case tilemap.Forest:
			if region.Type == RegionForest || region.Type == RegionTundra {
				return classProductionGood // approximates Production+Good(+Food)
			}
			return classProductionGood
		case tilemap.Jungle:
			if terrain == tilemap.Hill {
				return classProduction
			}
			if region.Type != RegionGrassland {
				return classFoodGood
			}
			return classJunk
		case tilemap.Marsh:
			return classJunk
		case tilemap.Oasis, tilemap.Floodplain:
			return classFoodGood
		}
	}
	if terrain == tilemap.Hill {
		return classProductionGood
	}
	switch base {
	case tilemap.Grassland:
		if regionLikesFoodOnGrass(region.Type) {
			return classFoodGood
		}
		return classGood
	case tilemap.Desert:
		if region.Type == RegionDesert {
			return classGood
		}
		return classJunk
	case tilemap.Plain:
		if regionLikesFoodOnPlain(region.Type) {
			return classFoodGood
		}
		return classGood
	case tilemap.Tundra:
		if region.Type == RegionTundra {
			return classFoodGood
		}
		return classJunk
	case tilemap.Snow:
		return classJunk
	}
	return classJunk
}

func regionLikesFoodOnGrass(t RegionType) bool {
	switch t {
	case RegionJungle, RegionForest, RegionHill, RegionGrassland:
		return true
	}
	return false
}

func regionLikesFoodOnPlain(t RegionType) bool {
	switch t {
	case RegionTundra, RegionDesert, RegionHill, RegionPlain:
		return true
	}
	return false
}

// candidateTally holds per-ring tallies used by scoreCandidate.
type candidateTally struct {
	food, production, good, junk, rivers int
}

func tallyRing(store *tilemap.Store, rivers *tilemap.RiverSet, region *Region, center hexgrid.TileIndex, distance int) candidateTally {
	var tally candidateTally
	ring := store.Layout.CellsAtDistance(center, distance)
	missing := 6 - len(ring)
	tally.junk += missing
	for _, t := range ring {
		cls := classifyNeighbor(store, region, t)
		switch cls {
		case classFood:
			tally.food++
			tally.good++
		case classProduction:
			tally.production++
			tally.good++
		case classGood:
			tally.good++
		case classFoodGood:
			tally.food++
			tally.good++
		case classProductionGood:
			tally.production++
			tally.good++
		case classJunk:
			tally.junk++
		}
		if rivers.AnyRiver(t) {
			tally.rivers++
		}
	}
	return tally
}

var innerFoodWeights = []int{0, 8, 14, 19, 22, 24, 25}
var innerProdWeights = []int{0, 10, 16, 20, 20, 12, 0}
var middleFoodWeights = []int{0, 2, 5, 10, 20, 25, 28, 30, 32, 34, 35}
var middleProdWeights = []int{0, 10, 20, 25, 30, 35}

func clampIndex(weights []int, i int) int {
	if i < 0 {
		return weights[0]
	}
	if i >= len(weights) {
		return weights[len(weights)-1]
	}
	return weights[i]
}

// scoreCandidate implements three-ring scoring function.
func scoreCandidate(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, region *Region, t hexgrid.TileIndex) (score int, passesMin bool) {
	inner := tallyRing(store, rivers, region, t, 1)
	middle := tallyRing(store, rivers, region, t, 2)
	outer := tallyRing(store, rivers, region, t, 3)

	innerScore := clampIndex(innerFoodWeights, inner.food) + clampIndex(innerProdWeights, inner.production) +
		2*inner.good + inner.rivers - 3*inner.junk
	if store.IsCoastalLand(t) {
		innerScore += 40
	}

	effectiveProd := middle.production
	if cap := (middle.food + 1) / 2; effectiveProd > cap {
		effectiveProd = cap
	}
	middleScore := clampIndex(middleFoodWeights, middle.food) + clampIndex(middleProdWeights, effectiveProd) +
		2*middle.good + middle.rivers - 3*middle.junk

	outerScore := outer.food + outer.production + outer.good + outer.rivers - 2*outer.junk

	minsOK := inner.food >= 1 && middle.food >= 4 && outer.food >= 4 &&
		middle.production >= 0 && outer.production >= 2 &&
		inner.good >= 3 && middle.good >= 6 && outer.good >= 8 &&
		(inner.junk+middle.junk+outer.junk) <= 9

	total := innerScore + middleScore + outerScore

	impactVal := 0
	for _, layer := range []tilemap.Layer{tilemap.LayerCityState, tilemap.LayerNaturalWonder} {
		if v := impacts.Value(layer, t); v > impactVal {
			impactVal = v
		}
	}
	if impactVal > 0 {
		minsOK = false
		total = total * (100 - impactVal) / 100
	}

	return total, minsOK
}

// SelectStartingTile runs the appropriate strategy for a region and applies the impact/ripple placer on success.
func SelectStartingTile(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, rng *prng.Stream, region *Region, requireCoastal bool) {
	var chosen hexgrid.TileIndex
	var ok bool
	var forced bool

	switch {
	case region.AreaID == tilemap.NoArea && requireCoastal == false && region.Rectangle.Width > 0:
		// Rectangle (landmass-agnostic) regions fall through to the general
		// ring-based strategy below, whether or not they span several areas.
		fallthrough
	default:
		if requireCoastal && region.Stat.CoastalLand >= 3 {
			chosen, ok = selectByRingPartition(store, rivers, impacts, rng, region, true)
		} else {
			chosen, ok = selectByRingPartition(store, rivers, impacts, rng, region, false)
		}
	}

	if !ok {
		chosen = forcePlacement(store, region)
		ok = true
		forced = true
	}

	region.StartTile = chosen
	region.HasStart = true
	region.StartConditionForced = forced
	impacts.Apply(tilemap.LayerCityState, chosen, 6)
}

// selectByRingPartition implements the shared center/middle/outer ring walk
// used by both the coastal and general strategies.
func selectByRingPartition(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, rng *prng.Stream, region *Region, coastalOnly bool) (hexgrid.TileIndex, bool) {
	rect := region.Rectangle
	center, middle, outer := ringPartition(rect)

	type bucket struct {
		onRiver, fresh, dry []hexgrid.TileIndex
	}
	bucketize := func(tiles []hexgrid.TileIndex) bucket {
		var b bucket
		for _, t := range tiles {
			if eligibleStartTerrain(store, t) == false {
				continue
			}
			if coastalOnly && !store.IsCoastalLand(t) {
				continue
			}
			switch {
			case rivers.AnyRiver(t):
				b.onRiver = append(b.onRiver, t)
			case isFreshWaterAdjacent(store, t) || store.IsCoastalLand(t):
				b.fresh = append(b.fresh, t)
			default:
				b.dry = append(b.dry, t)
			}
		}
		return b
	}

	centerB := bucketize(center.Tiles())
	middleB := bucketize(middle.Tiles())

	var fallback hexgrid.TileIndex
	haveFallback := false

	tryBuckets := func(bs ...[]hexgrid.TileIndex) (hexgrid.TileIndex, bool) {
		for _, list := range bs {
			best, bestScore, found := hexgrid.TileIndex(0), 0, false
			for _, t := range list {
				score, minsOK := scoreCandidate(store, rivers, impacts, region, t)
				if !haveFallback || score > 0 {
					fallback, haveFallback = t, true
				}
				if !minsOK {
					continue
				}
				if !found || score > bestScore {
					best, bestScore, found = t, score, true
				}
			}
			if found {
				return best, true
			}
		}
		return 0, false
	}

	if t, ok := tryBuckets(centerB.onRiver, centerB.fresh, centerB.dry, middleB.onRiver, middleB.fresh, middleB.dry); ok {
		return t, true
	}

	outerB := bucketize(outer.Tiles())
	outerAll := append(append(append([]hexgrid.TileIndex{}, outerB.onRiver...), outerB.fresh...), outerB.dry...)
	centerOffset := rect.CenterOffset()
	best, bestDist, found := hexgrid.TileIndex(0), 0, false
	for _, t := range outerAll {
		_, minsOK := scoreCandidate(store, rivers, impacts, region, t)
		if !haveFallback {
			fallback, haveFallback = t, true
		}
		if !minsOK {
			continue
		}
		o := store.Layout.OffsetOf(t)
		dist := absInt(o.Col-centerOffset.Col) + absInt(o.Row-centerOffset.Row)
		if !found || dist < bestDist {
			best, bestDist, found = t, dist, true
		}
	}
	if found {
		return best, true
	}

	if rng != nil {
		_ = rng // ring order is deterministic; PRNG reserved for future tie-break extensions
	}
	if haveFallback {
		return fallback, true
	}
	return 0, false
}

func eligibleStartTerrain(store *tilemap.Store, t hexgrid.TileIndex) bool {
	terrain := store.TerrainType(t)
	return terrain == tilemap.Flatland || terrain == tilemap.Hill
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ringPartition divides a region rectangle into center (inner third),
// middle (inner two-thirds) and outer (the whole rectangle) rectangles. The
// three overlap: middle contains center, and outer contains both.
func ringPartition(rect hexgrid.Rectangle) (center, middle, outer hexgrid.Rectangle) {
	layout := rect.Layout()
	thirdW, thirdH := rect.Width/3, rect.Height/3
	twoThirdW, twoThirdH := 2*rect.Width/3, 2*rect.Height/3
	cx := rect.SWCol + thirdW
	cy := rect.SWRow + thirdH
	center = hexgrid.NewRectangle(layout, cx, cy, maxInt(rect.Width-2*thirdW, 1), maxInt(rect.Height-2*thirdH, 1))
	mx := rect.SWCol + (rect.Width-twoThirdW)/2
	my := rect.SWRow + (rect.Height-twoThirdH)/2
	middle = hexgrid.NewRectangle(layout, mx, my, maxInt(twoThirdW, 1), maxInt(twoThirdH, 1))
	outer = rect
	return center, middle, outer
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// forcePlacement rewrites the rectangle's south-west corner tile to
// Grassland Flatland, the last-resort sentinel when no candidate scores.
func forcePlacement(store *tilemap.Store, region *Region) hexgrid.TileIndex {
	sw, _ := store.Layout.IndexOf(hexgrid.OffsetCoord{Col: region.Rectangle.SWCol, Row: region.Rectangle.SWRow})
	store.SetTerrainType(sw, tilemap.Flatland)
	store.SetBaseTerrain(sw, tilemap.Grassland)
	return sw
}

// SelectLandmassAgnosticStart implements the area-grouped strategy for
// rectangle (non-landmass-restricted) regions: group candidates by area_id,
// compute per-area fertility, and iterate areas by descending fertility.
func SelectLandmassAgnosticStart(store *tilemap.Store, rivers *tilemap.RiverSet, impacts *tilemap.ImpactLayers, region *Region) (hexgrid.TileIndex, bool) {
	perArea := map[tilemap.AreaID]int{}
	tilesByArea := map[tilemap.AreaID][]hexgrid.TileIndex{}
	for i, t := range region.Fertility.Tiles {
		if !eligibleStartTerrain(store, t) {
			continue
		}
		id := store.AreaID(t)
		perArea[id] += region.Fertility.Value[i]
		tilesByArea[id] = append(tilesByArea[id], t)
	}
	ids := make([]tilemap.AreaID, 0, len(perArea))
	for id := range perArea {
		ids = append(ids, id)
	}
	// Sort by descending fertility, breaking ties on AreaID so the order
	// doesn't depend on map iteration order.
	sort.Slice(ids, func(i, j int) bool {
		if perArea[ids[i]] != perArea[ids[j]] {
			return perArea[ids[i]] > perArea[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		best, bestScore, found := hexgrid.TileIndex(0), 0, false
		for _, t := range tilesByArea[id] {
			score, minsOK := scoreCandidate(store, rivers, impacts, region, t)
			if !minsOK {
				continue
			}
			if !found || score > bestScore {
				best, bestScore, found = t, score, true
			}
		}
		if found {
			return best, true
		}
	}
	return 0, false
}
