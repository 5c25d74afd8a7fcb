package terrain

import (
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
)

// Config tunes the synthesizer's noise fields. Zero-value Config is usable:
// all thresholds fall back to their defaults.
type Config struct {
	Seed       int64
	Scale      float64 // FBM sample-space scale; larger values zoom in
	Octaves    int
	Persistence float64
	Lacunarity  float64

	SeaLevel      float64 // elevation threshold, 0..1, below which a tile is Water
	MountainLevel float64 // elevation threshold above which a tile is Mountain
	HillLevel     float64 // elevation threshold above which a tile is Hill
	AridLevel     float64 // moisture threshold below which land is Desert
	WetLevel      float64 // moisture threshold above which land is Grassland
}

func (c Config) withDefaults() Config {
	if c.Scale == 0 {
		c.Scale = 18
	}
	if c.Octaves == 0 {
		c.Octaves = 4
	}
	if c.Persistence == 0 {
		c.Persistence = 0.5
	}
	if c.Lacunarity == 0 {
		c.Lacunarity = 2.0
	}
	if c.SeaLevel == 0 {
		c.SeaLevel = 0.42
	}
	if c.MountainLevel == 0 {
		c.MountainLevel = 0.82
	}
	if c.HillLevel == 0 {
		c.HillLevel = 0.64
	}
	if c.AridLevel == 0 {
		c.AridLevel = 0.32
	}
	if c.WetLevel == 0 {
		c.WetLevel = 0.62
	}
	return c
}

// Synthesizer implements tilemap.TerrainSource by sampling two FBM fields
// per tile: elevation decides terrain_type, and elevation combined with a
// latitude-weighted moisture field decides base_terrain. It paints no
// features (not even polar Ice); every feature comes from the placement
// pipeline's own stochastic passes.
type Synthesizer struct {
	cfg       Config
	elevation *perlinNoise
	moisture  *perlinNoise
	layout    hexgrid.Layout
}

// NewSynthesizer builds a terrain source for the given layout and config.
func NewSynthesizer(layout hexgrid.Layout, cfg Config) *Synthesizer {
	cfg = cfg.withDefaults()
	return &Synthesizer{
		cfg:       cfg,
		elevation: newPerlinNoise(cfg.Seed),
		moisture:  newPerlinNoise(cfg.Seed + 1),
		layout:    layout,
	}
}

func (s *Synthesizer) sample(idx hexgrid.TileIndex) (elevation, moisture, latitude float64) {
	o := s.layout.OffsetOf(idx)
	x := float64(o.Col) / s.cfg.Scale
	y := float64(o.Row) / s.cfg.Scale

	elevation = normalize01(s.elevation.fbm(x, y, s.cfg.Octaves, s.cfg.Persistence, s.cfg.Lacunarity))
	moisture = normalize01(s.moisture.fbm(x+1000, y+1000, s.cfg.Octaves, s.cfg.Persistence, s.cfg.Lacunarity))

	if s.layout.Height > 1 {
		mid := float64(s.layout.Height-1) / 2
		latitude = clamp((mid-absF(float64(o.Row)-mid))/mid, 0, 1)
		latitude = 1 - latitude // 0 at poles, 1 at equator -> invert so 1 is pole
	}
	return elevation, moisture, latitude
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TerrainType classifies elevation into Water/Flatland/Hill/Mountain.
func (s *Synthesizer) TerrainType(idx hexgrid.TileIndex) tilemap.TerrainType {
	elevation, _, _ := s.sample(idx)
	switch {
	case elevation < s.cfg.SeaLevel:
		return tilemap.Water
	case elevation >= s.cfg.MountainLevel:
		return tilemap.Mountain
	case elevation >= s.cfg.HillLevel:
		return tilemap.Hill
	default:
		return tilemap.Flatland
	}
}

// BaseTerrain classifies a tile's climate: Ocean for every water tile (Coast
// is never produced here, not even next to land), and on land picks
// Snow/Tundra/Desert/Plain/Grassland by latitude and moisture.
func (s *Synthesizer) BaseTerrain(idx hexgrid.TileIndex) tilemap.BaseTerrain {
	elevation, moisture, latitude := s.sample(idx)
	if elevation < s.cfg.SeaLevel {
		return tilemap.Ocean
	}
	switch {
	case latitude > 0.88:
		return tilemap.Snow
	case latitude > 0.7:
		return tilemap.Tundra
	case moisture < s.cfg.AridLevel:
		return tilemap.Desert
	case moisture > s.cfg.WetLevel:
		return tilemap.Grassland
	default:
		return tilemap.Plain
	}
}

// Feature pre-paints nothing; every feature in this system comes from the
// placement pipeline's own stochastic passes over the synthesized terrain.
func (s *Synthesizer) Feature(idx hexgrid.TileIndex) (tilemap.Feature, bool) {
	return tilemap.FeatureNone, false
}
