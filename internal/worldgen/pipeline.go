package worldgen

import (
	"fmt"
	"sort"

	"github.com/pdelewski/civ-worldgen/internal/civ"
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// Result is everything a generation run produces: the mutated tile store
// plus the supporting structures a caller (persistence layer, progress
// reporter, JSON snapshot writer) needs to describe the finished map.
type Result struct {
	Store      *tilemap.Store
	Rivers     *tilemap.RiverSet
	Areas      *tilemap.AreaLabeller
	Impacts    *tilemap.ImpactLayers
	Regions    []*Region
	Luxuries   LuxuryRoles
	Civs       []*civ.Participant
	CityStates []*civ.Participant
}

// ProgressFunc receives one short label as each pipeline stage begins; nil
// is a valid no-op reporter.
type ProgressFunc func(stage string)

// Generate runs the full placement pipeline over a pre-painted terrain
// source: area labelling, rivers, features and atolls, region partitioning,
// starting tiles, natural wonders, luxury role assignment, city-state
// seating, and bonus/strategic/luxury resource placement, in that
// dependency order.
func Generate(src tilemap.TerrainSource, rules ruleset.Ruleset, opts Options, report ProgressFunc) (*Result, error) {
	notify := func(stage string) {
		if report != nil {
			report(stage)
		}
	}

	layout := opts.Layout()
	store := tilemap.FromTerrainSource(layout, src)
	rng := prng.New(opts.Seed)
	impacts := tilemap.NewImpactLayers(layout)

	notify("areas:initial")
	areas := tilemap.Label(store)

	riverSourceRange := MaxRippleRadius / 2
	seaWaterRange := MaxRippleRadius / 2
	notify("rivers")
	rivers := GenerateRivers(store, areas, rng, riverSourceRange, seaWaterRange)

	notify("features")
	PaintFeatures(store, rivers, rules, rng, opts)

	notify("areas:post-features")
	areas = tilemap.Label(store)

	notify("regions")
	top := topLevelRegion(store, areas, opts)
	regions, err := PartitionRegions(store, rivers, top, opts.NumCivilization)
	if err != nil {
		return nil, fmt.Errorf("worldgen: partition regions: %w", err)
	}
	regionPtrs := make([]*Region, len(regions))
	for i := range regions {
		regionPtrs[i] = &regions[i]
	}

	civNames := civilizationNationNames(rules)
	civs := civ.NewCivilizations(opts.NumCivilization, opts.CivRequireCoastalStart, civNames)

	notify("starts")
	for i, r := range regionPtrs {
		if r.AreaID != tilemap.NoArea || opts.RegionDivideMethod == RegionDivideWholeMapRectangle || opts.RegionDivideMethod == RegionDivideCustomRectangle {
			SelectStartingTile(store, rivers, impacts, rng, r, opts.CivRequireCoastalStart)
		} else if t, ok := SelectLandmassAgnosticStart(store, rivers, impacts, r); ok {
			r.StartTile, r.HasStart = t, true
			impacts.Apply(tilemap.LayerCityState, t, 6)
		}
		if i < len(civs) && r.HasStart {
			civs[i].StartTile = r.StartTile
			civs[i].Placed = true
		}
	}

	notify("wonders")
	PlaceNaturalWonders(store, rivers, impacts, areas, rules, rng, opts)

	notify("luxuries")
	luxuries := AssignLuxuries(store, regionPtrs, rules, rng, opts)

	notify("areas:post-wonders")
	areas = tilemap.Label(store)

	cityStateNames := cityStateNationNames(rules)
	cityStates := civ.NewCityStates(opts.NumCityState, cityStateNames)
	notify("citystates")
	if err := PlaceCityStates(store, rivers, impacts, areas, regionPtrs, cityStates, rng, opts); err != nil {
		return nil, err
	}

	notify("resources:bonus")
	PlaceBonusResources(store, impacts, regionPtrs, rng, opts)

	notify("resources:strategic")
	PlaceStrategicResources(store, impacts, rules, rng, opts)

	notify("resources:luxury")
	placeAssignedLuxuries(store, impacts, regionPtrs, rules, luxuries, rng, opts)

	notify("resources:cleanup")
	FixSugarInJungle(store)

	notify("areas:final")
	areas = tilemap.Label(store)

	return &Result{
		Store:      store,
		Rivers:     rivers,
		Areas:      areas,
		Impacts:    impacts,
		Regions:    regionPtrs,
		Luxuries:   luxuries,
		Civs:       civs,
		CityStates: cityStates,
	}, nil
}

// topLevelRegion resolves the region the partitioner starts from, per
// opts.RegionDivideMethod: the whole map rectangle, a caller-supplied
// custom rectangle, or (for Pangaea/Continent) the single biggest landmass.
func topLevelRegion(store *tilemap.Store, areas *tilemap.AreaLabeller, opts Options) Region {
	switch opts.RegionDivideMethod {
	case RegionDivideCustomRectangle:
		rect := hexgrid.Rectangle{}
		if opts.CustomRectangle != nil {
			rect = *opts.CustomRectangle
		}
		r := Region{Rectangle: rect, AreaID: tilemap.NoArea}
		return r
	case RegionDivideWholeMapRectangle:
		rect := hexgrid.NewRectangle(store.Layout, 0, 0, store.Layout.Width, store.Layout.Height)
		return Region{Rectangle: rect, AreaID: tilemap.NoArea}
	default:
		biggest := areas.BiggestLandAreaID()
		rect := areas.ObtainLandmassBoundaries(biggest)
		return Region{Rectangle: rect, AreaID: biggest}
	}
}

func civilizationNationNames(rules ruleset.Ruleset) []string {
	var out []string
	for _, n := range rules.CityStateNations() {
		if !n.IsCityState {
			out = append(out, n.Name)
		}
	}
	return out
}

func cityStateNationNames(rules ruleset.Ruleset) []string {
	var out []string
	for _, n := range rules.CityStateNations() {
		if n.IsCityState {
			out = append(out, n.Name)
		}
	}
	return out
}

// placeAssignedLuxuries runs the specific-number placer for each regional
// exclusive luxury (confined to its owning regions' tiles) and the
// resource-list processor for the remaining random pool.
func placeAssignedLuxuries(store *tilemap.Store, impacts *tilemap.ImpactLayers, regions []*Region, rules ruleset.Ruleset, roles LuxuryRoles, rng *prng.Stream, opts Options) {
	exclusive := make([]tilemap.Resource, 0, len(roles.RegionalExclusive))
	for lux := range roles.RegionalExclusive {
		exclusive = append(exclusive, lux)
	}
	sort.Slice(exclusive, func(i, j int) bool { return exclusive[i] < exclusive[j] })

	for _, lux := range exclusive {
		regionIdxs := roles.RegionalExclusive[lux]
		rule, ok := rules.Resource(lux)
		if !ok {
			continue
		}
		var candidates []hexgrid.TileIndex
		for _, ri := range regionIdxs {
			if ri < 0 || ri >= len(regions) {
				continue
			}
			for _, t := range regions[ri].Tiles {
				if filterMatches(store, rule.Filter, t) {
					candidates = append(candidates, t)
				}
			}
		}
		rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
		qty := rule.MinQuantity
		if qty == 0 {
			qty = 1
		}
		SpecificNumberPlacer(store, impacts, tilemap.LayerLuxury, true, lux, qty, len(regionIdxs)*2, 1.0, 2, 3, candidates, rng)
	}

	var randomCandidates []hexgrid.TileIndex
	for _, t := range store.AllTiles() {
		if !store.IsWater(t) && store.TerrainType(t) != tilemap.Mountain {
			randomCandidates = append(randomCandidates, t)
		}
	}
	for _, lux := range roles.Random {
		rule, ok := rules.Resource(lux)
		if !ok {
			continue
		}
		var filtered []hexgrid.TileIndex
		for _, t := range randomCandidates {
			if filterMatches(store, rule.Filter, t) {
				filtered = append(filtered, t)
			}
		}
		rng.Shuffle(len(filtered), func(i, j int) { filtered[i], filtered[j] = filtered[j], filtered[i] })
		qty := rule.MinQuantity
		if qty == 0 {
			qty = 1
		}
		ResourceListProcessor(store, impacts, tilemap.LayerLuxury, 30*opts.mapMultiplier(), filtered,
			[]weightedResource{{Resource: lux, Quantity: qty, Weight: 1, MinR: 2, MaxR: 3}}, rng)
	}
}
