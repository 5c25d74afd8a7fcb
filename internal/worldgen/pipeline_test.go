package worldgen

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/terrain"
)

func smallOptions(seed int64) Options {
	opts := DefaultOptions()
	opts.Seed = seed
	opts.WorldSize = Duel
	opts.Width, opts.Height = Duel.Dimensions()
	opts.NumCivilization = 4
	opts.NumCityState = 4
	opts.NumNaturalWonder = 2
	return opts
}

func runGenerate(t *testing.T, opts Options) *Result {
	t.Helper()
	rules := newFakeRuleset()
	src := terrain.NewSynthesizer(opts.Layout(), terrain.Config{Seed: opts.Seed})

	var stages []string
	result, err := Generate(src, rules, opts, func(stage string) { stages = append(stages, stage) })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(stages) == 0 {
		t.Fatalf("expected progress callback to fire at least once")
	}
	return result
}

func TestGenerateTinyPangaeaProducesFullyLabelledMap(t *testing.T) {
	opts := smallOptions(1)
	opts.RegionDivideMethod = RegionDividePangaea
	result := runGenerate(t, opts)

	for _, idx := range result.Store.AllTiles() {
		if result.Store.AreaID(idx) == tilemap.NoArea {
			t.Fatalf("tile %d left unlabelled", idx)
		}
	}
	if len(result.Regions) != opts.NumCivilization {
		t.Fatalf("expected %d regions, got %d", opts.NumCivilization, len(result.Regions))
	}
	if len(result.Civs) != opts.NumCivilization {
		t.Fatalf("expected %d civs, got %d", opts.NumCivilization, len(result.Civs))
	}
}

func TestGenerateWholeMapRectangleRuns(t *testing.T) {
	opts := smallOptions(2)
	opts.RegionDivideMethod = RegionDivideWholeMapRectangle
	result := runGenerate(t, opts)

	if len(result.Regions) != opts.NumCivilization {
		t.Fatalf("expected %d regions, got %d", opts.NumCivilization, len(result.Regions))
	}
}

func TestGenerateCustomRectangleRuns(t *testing.T) {
	opts := smallOptions(3)
	opts.RegionDivideMethod = RegionDivideCustomRectangle
	layout := opts.Layout()
	rect := hexgrid.NewRectangle(layout, 0, 0, layout.Width, layout.Height)
	opts.CustomRectangle = &rect
	runGenerate(t, opts)
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	opts := smallOptions(42)
	a := runGenerate(t, opts)
	b := runGenerate(t, opts)

	for _, idx := range a.Store.AllTiles() {
		if a.Store.TerrainType(idx) != b.Store.TerrainType(idx) {
			t.Fatalf("terrain type mismatch at tile %d between identical-seed runs", idx)
		}
		if a.Store.BaseTerrain(idx) != b.Store.BaseTerrain(idx) {
			t.Fatalf("base terrain mismatch at tile %d between identical-seed runs", idx)
		}
	}
	for i := range a.Civs {
		if a.Civs[i].StartTile != b.Civs[i].StartTile {
			t.Fatalf("civ %d start tile differs between identical-seed runs", i)
		}
	}
}

func TestGenerateSnapshotRoundTripsEveryTile(t *testing.T) {
	opts := smallOptions(7)
	result := runGenerate(t, opts)
	snap := result.ToSnapshot()

	if len(snap.Tiles) != len(result.Store.AllTiles()) {
		t.Fatalf("expected %d tile snapshots, got %d", len(result.Store.AllTiles()), len(snap.Tiles))
	}
	if len(snap.Civs) != len(result.Civs) {
		t.Fatalf("expected %d civ DTOs, got %d", len(result.Civs), len(snap.Civs))
	}
}

func TestGenerateNeverPlacesResourceOffMap(t *testing.T) {
	opts := smallOptions(9)
	result := runGenerate(t, opts)

	count := 0
	for _, idx := range result.Store.AllTiles() {
		if _, ok := result.Store.Resource(idx); ok {
			count++
		}
	}
	if count == 0 {
		t.Fatalf("expected at least one resource placed across the map")
	}
}

// The following tests run the six end-to-end scenarios: a small Pangaea run,
// a Huge Continent run at full 12-civ/24-city-state scale, a Sparse
// WholeMapRectangle run, an Arid/Hot Pangaea run, a coastal-start fallback
// run, and a determinism check across a changing wonder count.

func TestTinyPangaeaFourCivEightCityState(t *testing.T) {
	opts := smallOptions(101)
	opts.RegionDivideMethod = RegionDividePangaea
	opts.NumCivilization = 4
	opts.NumCityState = 8
	result := runGenerate(t, opts)

	if len(result.Civs) != 4 {
		t.Fatalf("expected 4 civs, got %d", len(result.Civs))
	}
	if len(result.CityStates) != 8 {
		t.Fatalf("expected 8 city-states, got %d", len(result.CityStates))
	}
	for _, c := range result.Civs {
		if !c.Placed {
			t.Fatalf("expected every civilization to be placed")
		}
	}
}

func TestHugeContinentTwelveCivTwentyFourCityStateAbundant(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 102
	opts.WorldSize = Huge
	opts.Width, opts.Height = Huge.Dimensions()
	opts.RegionDivideMethod = RegionDivideContinent
	opts.ResourceSetting = ResourceAbundant
	opts.NumCivilization = 12
	opts.NumCityState = 24
	opts.NumNaturalWonder = 7
	result := runGenerate(t, opts)

	if len(result.Civs) != 12 || len(result.CityStates) != 24 {
		t.Fatalf("expected 12 civs / 24 city-states, got %d/%d", len(result.Civs), len(result.CityStates))
	}
	for _, idx := range result.Store.AllTiles() {
		if result.Store.AreaID(idx) == tilemap.NoArea {
			t.Fatalf("tile %d left unlabelled on the Huge continent map", idx)
		}
	}
}

func TestSmallWholeMapRectangleSixCivTwelveCityStateSparse(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 103
	opts.WorldSize = Small
	opts.Width, opts.Height = Small.Dimensions()
	opts.RegionDivideMethod = RegionDivideWholeMapRectangle
	opts.ResourceSetting = ResourceSparse
	opts.NumCivilization = 6
	opts.NumCityState = 12
	result := runGenerate(t, opts)

	if len(result.Regions) != 6 {
		t.Fatalf("expected 6 regions, got %d", len(result.Regions))
	}
}

func TestAridHotPangaea(t *testing.T) {
	opts := smallOptions(104)
	opts.RegionDivideMethod = RegionDividePangaea
	opts.Rainfall = RainfallArid
	opts.Temperature = TemperatureHot
	result := runGenerate(t, opts)

	desertTiles := 0
	for _, idx := range result.Store.AllTiles() {
		if result.Store.BaseTerrain(idx) == tilemap.Desert {
			desertTiles++
		}
	}
	if desertTiles == 0 {
		t.Fatalf("expected an Arid/Hot run to produce at least some Desert terrain")
	}
}

func TestCoastalRequiredStartFallsBackWhenNoCoastAvailable(t *testing.T) {
	opts := smallOptions(105)
	opts.CivRequireCoastalStart = true
	opts.NumCivilization = 2
	opts.NumCityState = 0
	result := runGenerate(t, opts)

	for _, c := range result.Civs {
		if !c.Placed {
			t.Fatalf("expected a coastal-required civ to still be placed via fallback when no coastal candidate scores")
		}
	}
}

func TestSeedStabilityUnderWonderCountPerturbation(t *testing.T) {
	base := smallOptions(106)
	base.NumNaturalWonder = 1
	more := base
	more.NumNaturalWonder = 2

	a := runGenerate(t, base)
	b := runGenerate(t, more)

	for i := range a.Civs {
		if a.Civs[i].StartTile != b.Civs[i].StartTile {
			t.Fatalf("civ %d start tile changed when only the wonder count changed, for the same seed", i)
		}
	}
}
