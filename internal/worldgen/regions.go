package worldgen

import (
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

// RegionType classifies a region's terrain profile, which in turn drives
// the luxury and bonus candidate tables.
type RegionType int

const (
	RegionUndefined RegionType = iota
	RegionTundra
	RegionJungle
	RegionForest
	RegionDesert
	RegionHill
	RegionPlain
	RegionGrassland
	RegionHybrid
)

func (t RegionType) String() string {
	switch t {
	case RegionTundra:
		return "Tundra"
	case RegionJungle:
		return "Jungle"
	case RegionForest:
		return "Forest"
	case RegionDesert:
		return "Desert"
	case RegionHill:
		return "Hill"
	case RegionPlain:
		return "Plain"
	case RegionGrassland:
		return "Grassland"
	case RegionHybrid:
		return "Hybrid"
	default:
		return "Undefined"
	}
}

// TerrainStatistic counts terrain/base-terrain/feature occurrences within a
// region, used both for classification and for the starting-tile and
// resource passes.
type TerrainStatistic struct {
	Flatland, Hill, Mountain           int
	Tundra, Snow, Desert, Plain        int
	Grassland, Jungle, Forest          int
	RiverTiles, CoastalLand            int
	InlandNextToCoast                  int
}

// FlatlandHillCount is F in the classification ladder.
func (s TerrainStatistic) FlatlandHillCount() int {
	return s.Flatland + s.Hill
}

// Region is a contiguous rectangle plus optional landmass restriction, the
// domain for one civilization start.
type Region struct {
	Rectangle  hexgrid.Rectangle
	AreaID     tilemap.AreaID // tilemap.NoArea if unrestricted
	Fertility  FertilityList
	Tiles      []hexgrid.TileIndex
	Stat       TerrainStatistic
	Type       RegionType
	StartTile  hexgrid.TileIndex
	HasStart   bool
	// StartConditionForced records whether the starting-tile selector had
	// to force-place a sentinel tile.
	StartConditionForced bool
	ExclusiveLuxury       tilemap.Resource
	HasExclusiveLuxury    bool
}

// regionFertilityTiles resolves the tile set a region's fertility list is
// computed over: landmass-filtered if AreaID is set, otherwise the whole
// rectangle.
func (r *Region) regionFertilityTiles(store *tilemap.Store, rivers *tilemap.RiverSet) {
	tiles := r.Rectangle.Tiles()
	if r.AreaID != tilemap.NoArea {
		r.Fertility = landmassFertility(store, rivers, tiles, r.AreaID)
	} else {
		r.Fertility = rectangleFertility(store, rivers, tiles)
	}
	r.Tiles = tiles
}

// chopSpec describes how to recursively subdivide N children under the
// hard-coded factorization table.
type chopSpec struct {
	percent  float64 // first-child share of fertility; unused when threeWay
	children [2]int  // sizes of the two children; second is 0 for a leaf
	threeWay bool
}

func chopTable(n int) (chopSpec, bool) {
	switch n {
	case 1:
		return chopSpec{children: [2]int{1, 0}}, true
	case 2:
		return chopSpec{percent: 50, children: [2]int{1, 1}}, true
	case 3:
		return chopSpec{threeWay: true, children: [2]int{1, 1}}, true // third child handled by caller
	case 5:
		return chopSpec{percent: 60, children: [2]int{3, 2}}, true
	case 7:
		return chopSpec{percent: 3.0 / 7 * 100, children: [2]int{3, 4}}, true
	case 11:
		return chopSpec{percent: 3.0 / 11 * 100, children: [2]int{3, 8}}, true
	case 13:
		return chopSpec{percent: 5.0 / 13 * 100, children: [2]int{5, 8}}, true
	case 17:
		return chopSpec{percent: 9.0 / 17 * 100, children: [2]int{9, 8}}, true
	case 19:
		return chopSpec{percent: 7.0 / 19 * 100, children: [2]int{7, 12}}, true
	}
	if n%3 == 0 {
		return chopSpec{threeWay: true, children: [2]int{n / 3, n / 3}}, true
	}
	if n%2 == 0 {
		return chopSpec{percent: 50, children: [2]int{n / 2, n / 2}}, true
	}
	return chopSpec{}, false
}

// PartitionRegions divides the top-level region into numRegions
// fertility-balanced leaves. The top-level region is selected by the caller
// (whole map, custom rectangle, or per-landmass) — PartitionRegions only
// performs the recursive chop.
func PartitionRegions(store *tilemap.Store, rivers *tilemap.RiverSet, top Region, numRegions int) ([]Region, error) {
	top.regionFertilityTiles(store, rivers)
	leaves, err := recursiveChop(store, rivers, top, numRegions)
	if err != nil {
		return nil, err
	}
	for i := range leaves {
		classifyRegion(store, &leaves[i])
	}
	return leaves, nil
}

func recursiveChop(store *tilemap.Store, rivers *tilemap.RiverSet, r Region, n int) ([]Region, error) {
	spec, ok := chopTable(n)
	if !ok {
		return nil, InvariantError("region partitioner: no factorization for N=%d", n)
	}
	if n == 1 {
		r = trimDeadEdges(store, rivers, r)
		return []Region{r}, nil
	}
	if spec.threeWay {
		// Three-way chop: chop(33.3%) then chop(50%) on the remainder, then
		// recurse each of the three pieces into n/3 sub-regions.
		sub := n / 3
		first, rest := twoWayChop(store, rivers, r, 100.0/3)
		a, b := twoWayChop(store, rivers, rest, 50)
		out := make([]Region, 0, n)
		for _, piece := range []Region{first, a, b} {
			childLeaves, err := recursiveChop(store, rivers, piece, sub)
			if err != nil {
				return nil, err
			}
			out = append(out, childLeaves...)
		}
		return out, nil
	}

	first, second := twoWayChop(store, rivers, r, spec.percent)
	var out []Region
	childLeaves, err := recursiveChop(store, rivers, first, spec.children[0])
	if err != nil {
		return nil, err
	}
	out = append(out, childLeaves...)
	childLeaves, err = recursiveChop(store, rivers, second, spec.children[1])
	if err != nil {
		return nil, err
	}
	out = append(out, childLeaves...)
	return out, nil
}

// twoWayChop splits r along its longer axis, scanning rows or columns in
// order and cutting at the first one where cumulative fertility reaches
// fertilitySum*percent/100.
func twoWayChop(store *tilemap.Store, rivers *tilemap.RiverSet, r Region, percent float64) (first, second Region) {
	rect := r.Rectangle
	threshold := float64(r.Fertility.Sum) * percent / 100.0

	splitByRows := rect.Height >= rect.Width

	cum := 0
	cut := 1
	if splitByRows {
		for dy := 0; dy < rect.Height; dy++ {
			for _, t := range rect.Row(dy) {
				cum += fertilityOf(r, t)
			}
			if float64(cum) >= threshold {
				cut = dy + 1
				break
			}
			cut = rect.Height
		}
		southRect, northRect := rect.SplitRows(cut)
		return regionFromRect(store, rivers, southRect, r.AreaID), regionFromRect(store, rivers, northRect, r.AreaID)
	}

	for dx := 0; dx < rect.Width; dx++ {
		for _, t := range rect.Column(dx) {
			cum += fertilityOf(r, t)
		}
		if float64(cum) >= threshold {
			cut = dx + 1
			break
		}
		cut = rect.Width
	}
	westRect, eastRect := rect.SplitCols(cut)
	return regionFromRect(store, rivers, westRect, r.AreaID), regionFromRect(store, rivers, eastRect, r.AreaID)
}

func fertilityOf(r Region, t hexgrid.TileIndex) int {
	for i, ft := range r.Fertility.Tiles {
		if ft == t {
			return r.Fertility.Value[i]
		}
	}
	return 0
}

func regionFromRect(store *tilemap.Store, rivers *tilemap.RiverSet, rect hexgrid.Rectangle, areaID tilemap.AreaID) Region {
	r := Region{Rectangle: rect, AreaID: areaID}
	r.regionFertilityTiles(store, rivers)
	return r
}

// trimDeadEdges repeatedly shrinks edge rows/columns whose tiles are all
// zero-fertility, until every remaining edge carries at least one
// positive-fertility tile.
func trimDeadEdges(store *tilemap.Store, rivers *tilemap.RiverSet, r Region) Region {
	for {
		changed := false
		if r.Rectangle.Height > 1 && rowIsDead(r, r.Rectangle.Row(0)) {
			r.Rectangle = r.Rectangle.TrimRow(true)
			r.regionFertilityTiles(store, rivers)
			changed = true
		}
		if r.Rectangle.Height > 1 && rowIsDead(r, r.Rectangle.Row(r.Rectangle.Height-1)) {
			r.Rectangle = r.Rectangle.TrimRow(false)
			r.regionFertilityTiles(store, rivers)
			changed = true
		}
		if r.Rectangle.Width > 1 && rowIsDead(r, r.Rectangle.Column(0)) {
			r.Rectangle = r.Rectangle.TrimColumn(true)
			r.regionFertilityTiles(store, rivers)
			changed = true
		}
		if r.Rectangle.Width > 1 && rowIsDead(r, r.Rectangle.Column(r.Rectangle.Width-1)) {
			r.Rectangle = r.Rectangle.TrimColumn(false)
			r.regionFertilityTiles(store, rivers)
			changed = true
		}
		if !changed {
			break
		}
	}
	return r
}

func rowIsDead(r Region, tiles []hexgrid.TileIndex) bool {
	for _, t := range tiles {
		if fertilityOf(r, t) > 0 {
			return false
		}
	}
	return true
}

// classifyRegion computes the terrain statistic and applies the priority
// ladder that assigns the region's dominant terrain type.
func classifyRegion(store *tilemap.Store, r *Region) {
	var stat TerrainStatistic
	for _, t := range r.Tiles {
		switch store.TerrainType(t) {
		case tilemap.Flatland:
			stat.Flatland++
		case tilemap.Hill:
			stat.Hill++
		case tilemap.Mountain:
			stat.Mountain++
		}
		switch store.BaseTerrain(t) {
		case tilemap.Tundra:
			stat.Tundra++
		case tilemap.Snow:
			stat.Snow++
		case tilemap.Desert:
			stat.Desert++
		case tilemap.Plain:
			stat.Plain++
		case tilemap.Grassland:
			stat.Grassland++
		}
		if f, ok := store.Feature(t); ok {
			switch f {
			case tilemap.Jungle:
				stat.Jungle++
			case tilemap.Forest:
				stat.Forest++
			}
		}
		if store.IsCoastalLand(t) {
			stat.CoastalLand++
		}
	}
	r.Stat = stat

	f := float64(stat.FlatlandHillCount())
	if f == 0 {
		r.Type = RegionUndefined
		return
	}
	pct := func(n int) float64 { return float64(n) / f * 100 }

	switch {
	case pct(stat.Tundra+stat.Snow) >= 30:
		r.Type = RegionTundra
	case pct(stat.Jungle) >= 30 || (pct(stat.Jungle) >= 20 && pct(stat.Jungle+stat.Forest) >= 35):
		r.Type = RegionJungle
	case pct(stat.Forest) >= 30 || (pct(stat.Forest) >= 20 && pct(stat.Jungle+stat.Forest) >= 35):
		r.Type = RegionForest
	case pct(stat.Desert) >= 25:
		r.Type = RegionDesert
	case pct(stat.Hill) >= 41.5:
		r.Type = RegionHill
	case pct(stat.Plain) >= 30 && 0.7*float64(stat.Plain) > float64(stat.Grassland):
		r.Type = RegionPlain
	case pct(stat.Grassland) >= 30 && 0.7*float64(stat.Grassland) > float64(stat.Plain):
		r.Type = RegionGrassland
	case pct(stat.Tundra+stat.Snow+stat.Desert+stat.Hill+stat.Plain+stat.Grassland+stat.Jungle+stat.Forest) > 80:
		r.Type = RegionHybrid
	default:
		r.Type = RegionUndefined
	}
}
