package tilemap

import (
	"fmt"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
)

// ResourceDeposit pairs a resource with its tile quantity.
type ResourceDeposit struct {
	Resource Resource
	Quantity int
}

// TerrainSource is the read-only interface the core consumes from the
// fractal terrain synthesizer collaborator: it supplies the
// pre-pipeline terrain, base terrain and any pre-existing features for a
// tile. The core never writes back through this interface — Store owns the
// mutable copy.
type TerrainSource interface {
	TerrainType(idx hexgrid.TileIndex) TerrainType
	BaseTerrain(idx hexgrid.TileIndex) BaseTerrain
	Feature(idx hexgrid.TileIndex) (Feature, bool)
}

// Store is the tile attribute store: parallel arrays indexed by
// hexgrid.TileIndex, constructed once at map creation and mutated
// monotonically through the pipeline as described in the design's lifecycle
// invariant.
type Store struct {
	Layout hexgrid.Layout

	terrainType  []TerrainType
	baseTerrain  []BaseTerrain
	feature      []Feature
	hasFeature   []bool
	wonder       []NaturalWonder
	hasWonder    []bool
	resource     []ResourceDeposit
	hasResource  []bool
	areaID       []AreaID
	hasRiverEdge [][6]bool // per-tile, per-direction river presence (own edges only, see river.go)
	isImpassable []bool
}

// NewStore allocates a Store for the given layout with every attribute at
// its zero value (Water/Ocean, no features, no area assigned).
func NewStore(l hexgrid.Layout) *Store {
	n := l.TileCount()
	s := &Store{
		Layout:       l,
		terrainType:  make([]TerrainType, n),
		baseTerrain:  make([]BaseTerrain, n),
		feature:      make([]Feature, n),
		hasFeature:   make([]bool, n),
		wonder:       make([]NaturalWonder, n),
		hasWonder:    make([]bool, n),
		resource:     make([]ResourceDeposit, n),
		hasResource:  make([]bool, n),
		areaID:       make([]AreaID, n),
		hasRiverEdge: make([][6]bool, n),
		isImpassable: make([]bool, n),
	}
	for i := range s.areaID {
		s.areaID[i] = NoArea
	}
	return s
}

// FromTerrainSource copies terrain/base-terrain/feature data from a
// collaborator-supplied TerrainSource into a fresh Store, the first step of
// the generation pipeline.
func FromTerrainSource(l hexgrid.Layout, src TerrainSource) *Store {
	s := NewStore(l)
	for _, idx := range l.AllTiles() {
		s.terrainType[idx] = src.TerrainType(idx)
		s.baseTerrain[idx] = src.BaseTerrain(idx)
		if f, ok := src.Feature(idx); ok {
			s.feature[idx] = f
			s.hasFeature[idx] = true
		}
	}
	return s
}

func (s *Store) checkBounds(idx hexgrid.TileIndex) {
	if int(idx) < 0 || int(idx) >= len(s.terrainType) {
		panic(fmt.Sprintf("tilemap: tile index %d out of bounds for %d tiles", idx, len(s.terrainType)))
	}
}

// TerrainType returns the tile's elevation class.
func (s *Store) TerrainType(idx hexgrid.TileIndex) TerrainType {
	s.checkBounds(idx)
	return s.terrainType[idx]
}

// SetTerrainType overwrites the tile's elevation class, preserving the
// invariant that exactly one terrain_type exists per tile at all times (the
// array slot is simply replaced).
func (s *Store) SetTerrainType(idx hexgrid.TileIndex, t TerrainType) {
	s.checkBounds(idx)
	s.terrainType[idx] = t
}

// BaseTerrain returns the tile's climate classification.
func (s *Store) BaseTerrain(idx hexgrid.TileIndex) BaseTerrain {
	s.checkBounds(idx)
	return s.baseTerrain[idx]
}

// SetBaseTerrain overwrites the tile's climate classification.
func (s *Store) SetBaseTerrain(idx hexgrid.TileIndex, b BaseTerrain) {
	s.checkBounds(idx)
	s.baseTerrain[idx] = b
}

// Feature returns the tile's feature, if any.
func (s *Store) Feature(idx hexgrid.TileIndex) (Feature, bool) {
	s.checkBounds(idx)
	return s.feature[idx], s.hasFeature[idx]
}

// SetFeature assigns a feature to the tile.
func (s *Store) SetFeature(idx hexgrid.TileIndex, f Feature) {
	s.checkBounds(idx)
	s.feature[idx] = f
	s.hasFeature[idx] = true
}

// ClearFeature removes any feature from the tile.
func (s *Store) ClearFeature(idx hexgrid.TileIndex) {
	s.checkBounds(idx)
	s.feature[idx] = FeatureNone
	s.hasFeature[idx] = false
}

// HasFeature reports whether the tile carries the given feature.
func (s *Store) HasFeature(idx hexgrid.TileIndex, f Feature) bool {
	got, ok := s.Feature(idx)
	return ok && got == f
}

// NaturalWonder returns the tile's natural wonder, if any.
func (s *Store) NaturalWonder(idx hexgrid.TileIndex) (NaturalWonder, bool) {
	s.checkBounds(idx)
	return s.wonder[idx], s.hasWonder[idx]
}

// SetNaturalWonder marks the tile as hosting a natural wonder.
func (s *Store) SetNaturalWonder(idx hexgrid.TileIndex, w NaturalWonder) {
	s.checkBounds(idx)
	s.wonder[idx] = w
	s.hasWonder[idx] = true
}

// Resource returns the tile's resource deposit, if any.
func (s *Store) Resource(idx hexgrid.TileIndex) (ResourceDeposit, bool) {
	s.checkBounds(idx)
	return s.resource[idx], s.hasResource[idx]
}

// SetResource places a resource deposit on the tile.
func (s *Store) SetResource(idx hexgrid.TileIndex, r Resource, quantity int) {
	s.checkBounds(idx)
	s.resource[idx] = ResourceDeposit{Resource: r, Quantity: quantity}
	s.hasResource[idx] = true
}

// ClearResource removes any resource deposit from the tile.
func (s *Store) ClearResource(idx hexgrid.TileIndex) {
	s.checkBounds(idx)
	s.hasResource[idx] = false
}

// AreaID returns the tile's area membership, or NoArea if unlabelled.
func (s *Store) AreaID(idx hexgrid.TileIndex) AreaID {
	s.checkBounds(idx)
	return s.areaID[idx]
}

// SetAreaID assigns the tile's area membership.
func (s *Store) SetAreaID(idx hexgrid.TileIndex, id AreaID) {
	s.checkBounds(idx)
	s.areaID[idx] = id
}

// IsWater reports whether the tile's terrain_type is Water.
func (s *Store) IsWater(idx hexgrid.TileIndex) bool {
	return s.TerrainType(idx) == Water
}

// IsCoastalLand reports whether the tile is non-water land with at least one
// water neighbor.
func (s *Store) IsCoastalLand(idx hexgrid.TileIndex) bool {
	if s.IsWater(idx) {
		return false
	}
	for _, n := range s.Layout.Neighbors(idx) {
		if s.IsWater(n) {
			return true
		}
	}
	return false
}

// AllTiles is a convenience forward to the owning layout's index-ordered
// tile iteration.
func (s *Store) AllTiles() []hexgrid.TileIndex {
	return s.Layout.AllTiles()
}

// IsImpassable reports whether a ruleset-impassable feature (e.g. Ice) sits
// on this tile.
func (s *Store) IsImpassable(idx hexgrid.TileIndex) bool {
	s.checkBounds(idx)
	return s.isImpassable[idx]
}

// SetImpassable marks or clears the tile's impassable flag.
func (s *Store) SetImpassable(idx hexgrid.TileIndex, v bool) {
	s.checkBounds(idx)
	s.isImpassable[idx] = v
}
