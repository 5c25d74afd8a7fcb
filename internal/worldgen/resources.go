package worldgen

import (
	"math"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// weightedResource is one entry of a resource-list-processor schedule:
// resource, output quantity, selection weight, and ripple radius bounds.
type weightedResource struct {
	Resource       tilemap.Resource
	Quantity       int
	Weight         float64
	MinR, MaxR     int
}

// ResourceListProcessor runs the generic bonus/strategic placement
// algorithm: N = ceil(len(candidates)/freq) draws, each placing a
// weight-sampled resource on the first eligible candidate (falling back to
// the globally least-occupied tile if the first pass exhausts the list).
func ResourceListProcessor(store *tilemap.Store, impacts *tilemap.ImpactLayers, layer tilemap.Layer, freq float64, candidates []hexgrid.TileIndex, table []weightedResource, rng *prng.Stream) {
	if len(candidates) == 0 || freq <= 0 {
		return
	}
	n := int(math.Ceil(float64(len(candidates)) / freq))
	weights := make([]float64, len(table))
	for i, e := range table {
		weights[i] = e.Weight
	}

	for i := 0; i < n; i++ {
		idx := rng.WeightedSample(weights)
		if idx < 0 {
			return
		}
		entry := table[idx]
		placed := false
		for _, t := range candidates {
			if impacts.Value(layer, t) != 0 {
				continue
			}
			if _, hasRes := store.Resource(t); hasRes {
				continue
			}
			store.SetResource(t, entry.Resource, entry.Quantity)
			impacts.Apply(layer, t, rng.IntRange(entry.MinR, entry.MaxR))
			placed = true
			break
		}
		if placed {
			continue
		}
		best, bestVal, found := hexgrid.TileIndex(0), 98, false
		for _, t := range candidates {
			v := impacts.Value(layer, t)
			if v >= 98 {
				continue
			}
			if _, hasRes := store.Resource(t); hasRes {
				continue
			}
			if !found || v < bestVal {
				best, bestVal, found = t, v, true
			}
		}
		if found {
			store.SetResource(best, entry.Resource, entry.Quantity)
			impacts.Apply(layer, best, rng.IntRange(entry.MinR, entry.MaxR))
		}
	}
}

// SpecificNumberPlacer places a fixed resource on eligible candidates until
// min(amount, ceil(ratio*len(candidates))) deposits are placed, returning
// the number still unplaced.
func SpecificNumberPlacer(store *tilemap.Store, impacts *tilemap.ImpactLayers, layer tilemap.Layer, hasLayer bool, resource tilemap.Resource, quantity, amount int, ratio float64, minR, maxR int, candidates []hexgrid.TileIndex, rng *prng.Stream) int {
	target := amount
	if capped := int(math.Ceil(ratio * float64(len(candidates)))); capped < target {
		target = capped
	}
	placed := 0
	for _, t := range candidates {
		if placed >= target {
			break
		}
		if _, hasRes := store.Resource(t); hasRes {
			continue
		}
		if hasLayer && impacts.Value(layer, t) != 0 {
			continue
		}
		store.SetResource(t, resource, quantity)
		if hasLayer {
			impacts.ApplyRipple(layer, t, minR, maxR, rng.IntRange)
		}
		placed++
	}
	return target - placed
}

// bonusCandidateLists builds the named candidate buckets 
// enumerates for bonus placement.
type bonusCandidateLists struct {
	ExtraDeer, DesertWheat, Banana, Coast          []hexgrid.TileIndex
	HillsOpen, DryGrass, Grass, Plains, Tundra     []hexgrid.TileIndex
	Desert, NonTundraForest                        []hexgrid.TileIndex
}

func buildBonusCandidateLists(store *tilemap.Store) bonusCandidateLists {
	var b bonusCandidateLists
	for _, t := range store.AllTiles() {
		terrain := store.TerrainType(t)
		base := store.BaseTerrain(t)
		feat, hasFeat := store.Feature(t)

		if base == tilemap.Coast {
			b.Coast = append(b.Coast, t)
		}
		if terrain == tilemap.Hill && !hasFeat {
			b.HillsOpen = append(b.HillsOpen, t)
		}
		if base == tilemap.Grassland && !hasFeat {
			if isFreshWaterAdjacent(store, t) {
				b.Grass = append(b.Grass, t)
			} else {
				b.DryGrass = append(b.DryGrass, t)
			}
		}
		if base == tilemap.Plain && !hasFeat {
			b.Plains = append(b.Plains, t)
		}
		if base == tilemap.Tundra && !hasFeat {
			b.Tundra = append(b.Tundra, t)
		}
		if base == tilemap.Desert && !hasFeat {
			b.Desert = append(b.Desert, t)
			b.DesertWheat = append(b.DesertWheat, t)
		}
		if hasFeat && feat == tilemap.Forest && base != tilemap.Tundra {
			b.NonTundraForest = append(b.NonTundraForest, t)
			b.ExtraDeer = append(b.ExtraDeer, t)
		}
		if base == tilemap.Plain && terrain == tilemap.Flatland {
			b.Banana = append(b.Banana, t)
		}
	}
	return b
}

// PlaceBonusResources runs the bonus schedule: fish on coast, one "sexy
// bonus" per civilization start, then the deterministic resource table, in
// which the Sheep frequency on open hills is divided by an infertility
// quotient (1 plus the share of open hill tiles). No separate pass adds
// extra bonuses to hill regions.
func PlaceBonusResources(store *tilemap.Store, impacts *tilemap.ImpactLayers, regions []*Region, rng *prng.Stream, opts Options) {
	m := opts.mapMultiplier()
	mult := opts.ResourceSetting.BonusMultiplier()
	lists := buildBonusCandidateLists(store)

	ResourceListProcessor(store, impacts, tilemap.LayerFish, 10*m/mult, lists.Coast,
		[]weightedResource{{Resource: "Fish", Quantity: 1, Weight: 1, MinR: 1, MaxR: 2}}, rng)

	for _, r := range regions {
		if !r.HasStart {
			continue
		}
		placeSexyBonus(store, impacts, r, rng)
	}

	hillsRatio := 0.0
	if total := store.Layout.TileCount(); total > 0 {
		hillsRatio = float64(len(lists.HillsOpen)) / float64(total)
	}
	farmRatio := 0.0
	infertQuotient := 1 + math.Max(hillsRatio-farmRatio, 0)

	schedule := []struct {
		Resource tilemap.Resource
		Freq     float64
		Targets  []hexgrid.TileIndex
		MinR, MaxR int
	}{
		{"Deer", 8 * m, lists.ExtraDeer, 1, 2},
		{"Wheat", 10 * m, lists.DesertWheat, 1, 2},
		{"Cattle", 9 * m, lists.Grass, 1, 2},
		{"Sheep", 9 * m / infertQuotient, lists.HillsOpen, 1, 2},
		{"Bananas", 12 * m, lists.Banana, 1, 2},
		{"Stone", 14 * m, lists.Plains, 1, 2},
	}
	for _, s := range schedule {
		ResourceListProcessor(store, impacts, tilemap.LayerBonus, s.Freq*mult, s.Targets,
			[]weightedResource{{Resource: s.Resource, Quantity: 1, Weight: 1, MinR: s.MinR, MaxR: s.MaxR}}, rng)
	}
}

func placeSexyBonus(store *tilemap.Store, impacts *tilemap.ImpactLayers, r *Region, rng *prng.Stream) {
	ring3 := store.Layout.CellsAtDistance(r.StartTile, 3)
	if len(ring3) == 0 {
		return
	}
	resource := tilemap.Resource("Wheat")
	switch r.Type {
	case RegionHill:
		resource = "Sheep"
	case RegionGrassland:
		resource = "Cattle"
	case RegionTundra, RegionJungle, RegionForest:
		resource = "Fish"
	}
	rng.Shuffle(len(ring3), func(i, j int) { ring3[i], ring3[j] = ring3[j], ring3[i] })
	for _, t := range ring3 {
		if impacts.Value(tilemap.LayerBonus, t) != 0 {
			continue
		}
		if _, hasRes := store.Resource(t); hasRes {
			continue
		}
		store.SetResource(t, resource, 1)
		impacts.Apply(tilemap.LayerBonus, t, 2)
		return
	}
}

// PlaceStrategicResources runs the strategic schedule: major quantities by
// resource setting, flatland top-ups, sea oil, and final quota top-ups.
// No minor strategics are placed around city-states.
func PlaceStrategicResources(store *tilemap.Store, impacts *tilemap.ImpactLayers, rules ruleset.Ruleset, rng *prng.Stream, opts Options) {
	m := opts.mapMultiplier()
	lists := buildBonusCandidateLists(store)

	majors := []tilemap.Resource{"Uranium", "Horses", "Oil", "Iron", "Coal", "Aluminum"}
	for _, name := range majors {
		qty := opts.ResourceSetting.MajorStrategicQuantity(string(name))
		if qty == 0 {
			continue
		}
		var candidates []hexgrid.TileIndex
		switch name {
		case "Horses":
			candidates = lists.Grass
		case "Iron":
			candidates = lists.HillsOpen
		case "Coal", "Aluminum", "Uranium":
			candidates = lists.Desert
		case "Oil":
			candidates = lists.Tundra
		}
		ResourceListProcessor(store, impacts, tilemap.LayerStrategic, 18*m, candidates,
			[]weightedResource{{Resource: name, Quantity: qty, Weight: 1, MinR: 2, MaxR: 4}}, rng)
	}

	flatlands := append(append([]hexgrid.TileIndex{}, lists.Plains...), lists.DryGrass...)
	ResourceListProcessor(store, impacts, tilemap.LayerStrategic, 23*m, flatlands,
		[]weightedResource{
			{Resource: "Iron", Quantity: 2, Weight: 1, MinR: 1, MaxR: 2},
			{Resource: "Horses", Quantity: 2, Weight: 1, MinR: 1, MaxR: 2},
		}, rng)

	placeOilInSea(store, impacts, rng, opts)

	for _, name := range majors {
		total := countResource(store, name)
		want := 4 * opts.NumCivilization
		if total >= want {
			continue
		}
		SpecificNumberPlacer(store, impacts, tilemap.LayerStrategic, true, name, opts.ResourceSetting.MajorStrategicQuantity(string(name)), want-total, 1.0, 2, 4, unplacedFlatland(store), rng)
	}
}

func placeOilInSea(store *tilemap.Store, impacts *tilemap.ImpactLayers, rng *prng.Stream, opts Options) {
	seaQty := 4
	if opts.ResourceSetting == ResourceAbundant {
		seaQty = 6
	}
	landOil := countResource(store, "Oil")
	count := landOil / 2 / seaQty
	if count <= 0 {
		return
	}
	var coast []hexgrid.TileIndex
	for _, t := range store.AllTiles() {
		if store.BaseTerrain(t) == tilemap.Coast {
			coast = append(coast, t)
		}
	}
	rng.Shuffle(len(coast), func(i, j int) { coast[i], coast[j] = coast[j], coast[i] })
	SpecificNumberPlacer(store, impacts, tilemap.LayerStrategic, true, "Oil", seaQty, count, 1.0, 4, 7, coast, rng)
}

func countResource(store *tilemap.Store, name tilemap.Resource) int {
	total := 0
	for _, t := range store.AllTiles() {
		if dep, ok := store.Resource(t); ok && dep.Resource == name {
			total += dep.Quantity
		}
	}
	return total
}

func unplacedFlatland(store *tilemap.Store) []hexgrid.TileIndex {
	var out []hexgrid.TileIndex
	for _, t := range store.AllTiles() {
		if store.TerrainType(t) != tilemap.Flatland {
			continue
		}
		if _, hasRes := store.Resource(t); hasRes {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FixSugarInJungle is the post-placement cleanup pass: any tile with a
// Sugar resource under Jungle becomes Flatland+Grassland+Marsh.
func FixSugarInJungle(store *tilemap.Store) {
	for _, t := range store.AllTiles() {
		dep, hasRes := store.Resource(t)
		if !hasRes || dep.Resource != "Sugar" {
			continue
		}
		if !store.HasFeature(t, tilemap.Jungle) {
			continue
		}
		store.SetTerrainType(t, tilemap.Flatland)
		store.SetBaseTerrain(t, tilemap.Grassland)
		store.SetFeature(t, tilemap.Marsh)
	}
}
