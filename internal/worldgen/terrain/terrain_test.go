package terrain

import (
	"testing"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

func TestSynthesizerIsDeterministicForSameSeed(t *testing.T) {
	layout := hexgrid.NewLayout(40, 24)
	a := NewSynthesizer(layout, Config{Seed: 17})
	b := NewSynthesizer(layout, Config{Seed: 17})

	for _, idx := range layout.AllTiles() {
		if a.TerrainType(idx) != b.TerrainType(idx) {
			t.Fatalf("terrain type diverged at tile %d for identical seeds", idx)
		}
		if a.BaseTerrain(idx) != b.BaseTerrain(idx) {
			t.Fatalf("base terrain diverged at tile %d for identical seeds", idx)
		}
	}
}

func TestSynthesizerDiffersAcrossSeeds(t *testing.T) {
	layout := hexgrid.NewLayout(40, 24)
	a := NewSynthesizer(layout, Config{Seed: 1})
	b := NewSynthesizer(layout, Config{Seed: 2})

	diff := 0
	for _, idx := range layout.AllTiles() {
		if a.TerrainType(idx) != b.TerrainType(idx) {
			diff++
		}
	}
	if diff == 0 {
		t.Fatalf("expected different seeds to produce at least some different terrain")
	}
}

func TestSynthesizerProducesBothLandAndWater(t *testing.T) {
	layout := hexgrid.NewLayout(60, 40)
	s := NewSynthesizer(layout, Config{Seed: 3})

	var water, land int
	for _, idx := range layout.AllTiles() {
		if s.TerrainType(idx) == tilemap.Water {
			water++
		} else {
			land++
		}
	}
	if water == 0 || land == 0 {
		t.Fatalf("expected a mix of water and land, got water=%d land=%d", water, land)
	}
}

func TestSynthesizerNeverEmitsPrePipelineFeatures(t *testing.T) {
	layout := hexgrid.NewLayout(20, 12)
	s := NewSynthesizer(layout, Config{Seed: 4})

	for _, idx := range layout.AllTiles() {
		if _, ok := s.Feature(idx); ok {
			t.Fatalf("expected no pre-pipeline feature at tile %d", idx)
		}
	}
}
