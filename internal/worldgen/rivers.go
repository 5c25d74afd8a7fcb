package worldgen

import (
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// riverPassSpec names one pass's source-eligibility criteria in the
// four-pass river-source schedule.
type riverPassSpec struct {
	mountainHillOnly bool
	probeProbability int // 1-in-N draw; 0 means "always"
	areaDensityCheck bool
	rangeDivisor     int // halves source/sea-water ranges in passes 2-3
}

var riverPasses = [4]riverPassSpec{
	{mountainHillOnly: true, probeProbability: 0, rangeDivisor: 1},
	{mountainHillOnly: false, probeProbability: 8, rangeDivisor: 1},
	{mountainHillOnly: true, areaDensityCheck: true, rangeDivisor: 2},
	{mountainHillOnly: false, areaDensityCheck: true, rangeDivisor: 2},
}

// riverElevation maps terrain_type to the elevation score used in river
// value computation.
func riverElevation(t tilemap.TerrainType) int {
	switch t {
	case tilemap.Mountain:
		return 4
	case tilemap.Hill:
		return 3
	case tilemap.Water:
		return 2
	default:
		return 1
	}
}

// GenerateRivers runs the four-pass river generator, returning the
// populated RiverSet.
func GenerateRivers(store *tilemap.Store, areas *tilemap.AreaLabeller, rng *prng.Stream, riverSourceRange, seaWaterRange int) *tilemap.RiverSet {
	rivers := tilemap.NewRiverSet(store.Layout)
	areaRiverEdges := make(map[tilemap.AreaID]int)

	for pass, spec := range riverPasses {
		srcRange, seaRange := riverSourceRange, seaWaterRange
		if spec.rangeDivisor > 1 {
			srcRange /= spec.rangeDivisor
			seaRange /= spec.rangeDivisor
		}
		for _, t := range store.AllTiles() {
			if !eligibleSource(store, t, spec, areas, areaRiverEdges, srcRange, seaRange) {
				continue
			}
			if spec.probeProbability > 0 && !rng.OneIn(spec.probeProbability) {
				continue
			}
			traceRiverFromSource(store, rivers, rng, t)
		}
		_ = pass
	}
	return rivers
}

func eligibleSource(store *tilemap.Store, t hexgrid.TileIndex, spec riverPassSpec, areas *tilemap.AreaLabeller, areaRiverEdges map[tilemap.AreaID]int, srcRange, seaRange int) bool {
	terrain := store.TerrainType(t)
	if spec.mountainHillOnly {
		if terrain != tilemap.Mountain && terrain != tilemap.Hill {
			return false
		}
	} else {
		if terrain == tilemap.Water {
			return false
		}
		if !spec.areaDensityCheck && store.IsCoastalLand(t) {
			return false // pass 1: non-coastal land only
		}
	}
	if _, ok := store.NaturalWonder(t); ok {
		return false
	}
	for _, nb := range store.Layout.Neighbors(t) {
		if _, ok := store.NaturalWonder(nb); ok {
			return false
		}
	}
	for _, nb := range withinRange(store, t, srcRange) {
		if store.BaseTerrain(nb) == tilemap.Lake {
			return false
		}
	}
	for _, nb := range withinRange(store, t, seaRange) {
		if store.IsWater(nb) {
			return false
		}
	}
	if spec.areaDensityCheck {
		id := store.AreaID(t)
		area := areas.Area(id)
		if areaRiverEdges[id] >= area.Size/12 {
			return false
		}
	}
	return true
}

func withinRange(store *tilemap.Store, t hexgrid.TileIndex, r int) []hexgrid.TileIndex {
	if r <= 0 {
		return nil
	}
	return store.Layout.CellsWithinDistance(t, r)
}

// traceRiverFromSource implements the inland-corner selection and the
// iterative edge-by-edge extension of a river from its source tile.
func traceRiverFromSource(store *tilemap.Store, rivers *tilemap.RiverSet, rng *prng.Stream, source hexgrid.TileIndex) {
	startTile, ok := pickInlandCorner(store, rng, source)
	if !ok {
		return
	}

	river := rivers.StartRiver()
	current := startTile
	var flowSet bool
	var flow hexgrid.Direction
	var original hexgrid.Direction

	for {
		candidates := candidateDirections(flowSet, flow, original)
		if len(candidates) == 0 {
			break
		}
		best, bestVal, found := -1, 0, false
		for _, d := range candidates {
			nb, ok := store.Layout.Neighbor(current, d)
			if !ok {
				continue
			}
			val := riverValue(store, rng, current, nb, d, original, flowSet)
			if !found || val < bestVal {
				best, bestVal, found = int(d), val, true
			}
		}
		if !found {
			break
		}
		chosen := hexgrid.Direction(best)
		if !rivers.AppendEdge(river, current, chosen) {
			break
		}
		if !flowSet {
			original = chosen
			flowSet = true
		}
		flow = chosen

		nextTile, ok := store.Layout.Neighbor(current, chosen)
		if !ok {
			break
		}
		if store.IsWater(nextTile) {
			break
		}
		current = nextTile
	}
	rivers.Commit(river)
}

// pickInlandCorner chooses the tile itself or one of its three "south half"
// neighbors such that the resulting corner's three "north half" neighbors
// are all non-water.
func pickInlandCorner(store *tilemap.Store, rng *prng.Stream, source hexgrid.TileIndex) (hexgrid.TileIndex, bool) {
	southHalf := []hexgrid.Direction{hexgrid.Dir3, hexgrid.Dir4, hexgrid.Dir5}
	candidates := []hexgrid.TileIndex{source}
	for _, d := range southHalf {
		if nb, ok := store.Layout.Neighbor(source, d); ok {
			candidates = append(candidates, nb)
		}
	}
	order := rng.Intn(len(candidates))
	for i := 0; i < len(candidates); i++ {
		cand := candidates[(order+i)%len(candidates)]
		if northHalfAllLand(store, cand) {
			return cand, true
		}
	}
	return 0, false
}

func northHalfAllLand(store *tilemap.Store, t hexgrid.TileIndex) bool {
	northHalf := []hexgrid.Direction{hexgrid.Dir0, hexgrid.Dir1, hexgrid.Dir2}
	for _, d := range northHalf {
		nb, ok := store.Layout.Neighbor(t, d)
		if !ok {
			continue
		}
		if store.IsWater(nb) {
			return false
		}
	}
	return true
}

// candidateDirections enumerates the next flow directions: both rotations
// of the current flow if one exists, else all six, never reversing the
// original.
func candidateDirections(flowSet bool, flow, original hexgrid.Direction) []hexgrid.Direction {
	var out []hexgrid.Direction
	if flowSet {
		out = []hexgrid.Direction{flow.ClockwiseFrom(), flow.CounterClockwiseFrom()}
	} else {
		out = hexgrid.EdgeDirectionArray[:]
	}
	reverse := original.Opposite()
	filtered := out[:0:0]
	for _, d := range out {
		if flowSet && d == reverse {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// riverValue computes the candidate-direction scoring function used to pick
// the next edge a river extends along.
func riverValue(store *tilemap.Store, rng *prng.Stream, tile, probe hexgrid.TileIndex, d, original hexgrid.Direction, flowSet bool) int {
	if _, ok := store.NaturalWonder(probe); ok {
		return -1
	}
	for _, nb := range store.Layout.Neighbors(probe) {
		if _, ok := store.NaturalWonder(nb); ok {
			return -1
		}
	}

	elevation := riverElevation(store.TerrainType(probe))
	neighbors := store.Layout.Neighbors(probe)
	actualNeighborCount := len(neighbors)
	neighborElevSum := 0
	desertCount := 0
	for _, nb := range neighbors {
		neighborElevSum += riverElevation(store.TerrainType(nb))
		if store.BaseTerrain(nb) == tilemap.Desert {
			desertCount++
		}
	}

	val := 20*elevation + 40*(6-actualNeighborCount) + neighborElevSum + 4*desertCount + rng.IntRange(0, 10)
	if flowSet && d == original {
		val = val * 3 / 4
	}
	return val
}
