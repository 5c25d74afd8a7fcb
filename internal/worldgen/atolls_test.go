package worldgen

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

func TestCategorizeBySizeBuckets(t *testing.T) {
	cases := []struct {
		size     int
		expected atollCategory
	}{
		{1, atollAlpha}, {2, atollAlpha},
		{3, atollBeta}, {7, atollBeta},
		{8, atollGamma}, {16, atollGamma},
		{17, atollDelta}, {40, atollDelta},
		{41, atollEpsilon}, {1000, atollEpsilon},
	}
	for _, c := range cases {
		if got := categorizeBySize(c.size); got != c.expected {
			t.Fatalf("categorizeBySize(%d) = %v, want %v", c.size, got, c.expected)
		}
	}
}

func TestCascadeFromStartsAtPrimaryThenVisitsRemainder(t *testing.T) {
	order := []atollCategory{atollAlpha, atollBeta, atollGamma, atollDelta, atollEpsilon}
	out := cascadeFrom(order, atollGamma)

	if out[0] != atollGamma {
		t.Fatalf("expected cascade to start at the primary category, got %v", out[0])
	}
	if len(out) != len(order) {
		t.Fatalf("expected cascade to visit every category exactly once, got %d entries", len(out))
	}
	seen := map[atollCategory]bool{}
	for _, c := range out {
		if seen[c] {
			t.Fatalf("category %v visited twice in cascade", c)
		}
		seen[c] = true
	}
}

func TestPlaceAtollsSkipsSmallWaterBodies(t *testing.T) {
	l := hexgrid.NewLayout(6, 6)
	store := grasslandStore(l)
	rules := newFakeRuleset()
	opts := DefaultOptions()
	opts.WorldSize = Tiny

	placeAtolls(store, rules, nil, opts)

	for _, t0 := range l.AllTiles() {
		if store.HasFeature(t0, tilemap.Atoll) {
			t.Fatalf("expected no atolls to place when there is no qualifying water body")
		}
	}
}
