package worldgen

import (
	"math"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// featureCounters tracks running land-plot/feature counts consulted by the
// percent-of-land-plots placement caps.
type featureCounters struct {
	landPlots  int
	oasisCount int
	marshCount int
	jungleCount int
	forestCount int
}

// PaintFeatures runs the single-pass stochastic feature painter, followed by
// the atoll follow-up pass.
func PaintFeatures(store *tilemap.Store, rivers *tilemap.RiverSet, rules ruleset.Ruleset, rng *prng.Stream, opts Options) {
	jungleShift := opts.Rainfall.PercentShift(rng.IntRange) / 2
	marshShift := opts.Rainfall.PercentShift(rng.IntRange) / 2
	oasisShift := opts.Rainfall.PercentShift(rng.IntRange) / 4

	var counters featureCounters
	equator := 0.0

	for _, t := range store.AllTiles() {
		if store.TerrainType(t) != tilemap.Water {
			counters.landPlots++
		}
		paintIce(store, rng, t)
		paintFloodplain(store, rules, rivers, t)
		paintOasis(store, rules, rng, t, &counters, oasisShift)
		paintJungleMarshForest(store, rules, rng, t, &counters, jungleShift, marshShift, equator, opts.Temperature)
	}

	placeAtolls(store, rules, rng, opts)
}

func paintIce(store *tilemap.Store, rng *prng.Stream, t hexgrid.TileIndex) {
	if store.TerrainType(t) != tilemap.Water {
		return
	}
	lat := store.Layout.Latitude(t)
	if lat <= 0.78 {
		return
	}
	score := float64(rng.IntRange(0, 100)) + 100*lat
	anyNonWaterNeighbor := false
	iceNeighbors := 0
	for _, nb := range store.Layout.Neighbors(t) {
		if store.TerrainType(nb) != tilemap.Water {
			anyNonWaterNeighbor = true
		}
		if store.HasFeature(nb, tilemap.Ice) {
			iceNeighbors++
		}
	}
	if anyNonWaterNeighbor {
		score /= 2
	}
	score += float64(10 * iceNeighbors)
	if score > 130 {
		store.SetFeature(t, tilemap.Ice)
	}
}

func paintFloodplain(store *tilemap.Store, rules ruleset.Ruleset, rivers *tilemap.RiverSet, t hexgrid.TileIndex) {
	if !rivers.AnyRiver(t) {
		return
	}
	rule, ok := rules.Feature(tilemap.Floodplain)
	if !ok {
		return
	}
	// The river makes the tile fresh water, so the lake check is skipped.
	filter := rule.Filter
	filter.IsFreshWater = false
	if !filterMatches(store, filter, t) {
		return
	}
	store.SetFeature(t, tilemap.Floodplain)
}

func paintOasis(store *tilemap.Store, rules ruleset.Ruleset, rng *prng.Stream, t hexgrid.TileIndex, counters *featureCounters, shift int) {
	rule, ok := rules.Feature(tilemap.Oasis)
	if !ok || !filterMatches(store, rule.Filter, t) {
		return
	}
	maxPercent := 3 + shift
	if maxPercent < 0 {
		maxPercent = 0
	}
	if counters.landPlots == 0 {
		return
	}
	pct := int(math.Ceil(100 * float64(counters.oasisCount) / float64(counters.landPlots)))
	if pct > maxPercent {
		return
	}
	if rng.IntRange(0, 4) == 1 {
		store.SetFeature(t, tilemap.Oasis)
		counters.oasisCount++
	}
}

func paintJungleMarshForest(store *tilemap.Store, rules ruleset.Ruleset, rng *prng.Stream, t hexgrid.TileIndex, counters *featureCounters, jungleShift, marshShift int, equator float64, temp Temperature) {
	tryFeature := func(f tilemap.Feature, count *int, maxPercent int, extraGate func() bool) bool {
		rule, ok := rules.Feature(f)
		if !ok || !filterMatches(store, rule.Filter, t) {
			return false
		}
		if extraGate != nil && !extraGate() {
			return false
		}
		sameNeighbors := 0
		for _, nb := range store.Layout.Neighbors(t) {
			if store.HasFeature(nb, f) {
				sameNeighbors++
			}
		}
		weight := 300
		switch {
		case sameNeighbors == 1:
			weight += 50
		case sameNeighbors >= 2 && sameNeighbors <= 3:
			weight += 150
		case sameNeighbors == 4:
			weight -= 50
		case sameNeighbors >= 5:
			weight -= 200
		}
		if counters.landPlots == 0 {
			return false
		}
		pct := int(math.Ceil(100 * float64(*count) / float64(counters.landPlots)))
		if pct > maxPercent {
			return false
		}
		if rng.Intn(1000) >= weight {
			return false
		}
		store.SetFeature(t, f)
		*count++
		return true
	}

	jungleBand := 20.0 / 200 // jungle_percent baseline proxy; unused, the band below is fixed per Temperature
	_ = jungleBand
	latOK := func() bool {
		lat := store.Layout.Latitude(t)
		band := 0.15
		if temp == TemperatureHot {
			band = 0.22
		} else if temp == TemperatureCool {
			band = 0.10
		}
		return lat >= equator-band && lat <= equator+band
	}

	if tryFeature(tilemap.Jungle, &counters.jungleCount, 35+jungleShift, latOK) {
		rewriteUnderJungle(store, t)
		return
	}
	if tryFeature(tilemap.Forest, &counters.forestCount, 35, nil) {
		return
	}
	tryFeature(tilemap.Marsh, &counters.marshCount, 5+marshShift, nil)
}

// rewriteUnderJungle implements the terrain rewrite  specifies
// when Jungle is placed: Hill+Grassland/Plain -> base Plain; any Flatland ->
// Flatland+Plain.
func rewriteUnderJungle(store *tilemap.Store, t hexgrid.TileIndex) {
	terrain := store.TerrainType(t)
	base := store.BaseTerrain(t)
	if terrain == tilemap.Hill && (base == tilemap.Grassland || base == tilemap.Plain) {
		store.SetBaseTerrain(t, tilemap.Plain)
		return
	}
	if terrain == tilemap.Flatland {
		store.SetBaseTerrain(t, tilemap.Plain)
	}
}

func filterMatches(store *tilemap.Store, f ruleset.TerrainFilter, t hexgrid.TileIndex) bool {
	if len(f.OccursOnType) > 0 && !containsTerrainType(f.OccursOnType, store.TerrainType(t)) {
		return false
	}
	if len(f.OccursOnBase) > 0 && !containsBaseTerrain(f.OccursOnBase, store.BaseTerrain(t)) {
		return false
	}
	if f.IsFreshWater && !isFreshWaterAdjacent(store, t) {
		return false
	}
	return true
}

func containsTerrainType(xs []tilemap.TerrainType, v tilemap.TerrainType) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsBaseTerrain(xs []tilemap.BaseTerrain, v tilemap.BaseTerrain) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
