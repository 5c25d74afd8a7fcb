// Package ruleset defines the read-only collaborator interface the
// placement pipeline consumes for feature/resource/wonder metadata and
// per-nation city-state flags, plus a concrete YAML-backed
// implementation.
package ruleset

import "github.com/pdelewski/civ-worldgen/internal/tilemap"

// TerrainFilter names the terrain/base-terrain/feature match rules a
// feature, resource or wonder placement is restricted to. An empty slice
// for OccursOnType/OccursOnBase means "no restriction on that axis".
type TerrainFilter struct {
	OccursOnType []tilemap.TerrainType
	OccursOnBase []tilemap.BaseTerrain
	IsFreshWater bool // if true, tile or a neighbor must be fresh water
}

// FeatureRule is the ruleset metadata for one Feature.
type FeatureRule struct {
	Feature    tilemap.Feature
	Filter     TerrainFilter
	Impassable bool
}

// ResourceRule is the ruleset metadata for one Resource.
type ResourceRule struct {
	Resource   tilemap.Resource
	Kind       tilemap.ResourceKind
	Filter     TerrainFilter
	MinQuantity int
	MaxQuantity int
}

// WonderUnique is one adjacency/landmass constraint attached to a natural
// wonder.
type WonderUnique struct {
	// Kind selects which constraint this unique expresses.
	Kind WonderUniqueKind
	// FilterToken is the adjacency filter token: "Elevated", "Land", or a
	// terrain/base-terrain/feature name.
	FilterToken string
	Min         int
	Max         int
	// LandmassRank is 1-based ("1st largest landmass") for the landmass-rank
	// unique kinds.
	LandmassRank int
}

type WonderUniqueKind int

const (
	UniqueAdjacentCountAtLeast WonderUniqueKind = iota
	UniqueAdjacentCountRange
	UniqueMustBeOnNthLandmass
	UniqueMustNotBeOnNthLandmass
)

// WonderRule is the ruleset metadata for one natural wonder.
type WonderRule struct {
	Wonder        tilemap.NaturalWonder
	Filter        TerrainFilter
	Uniques       []WonderUnique
	TurnsIntoType    tilemap.TerrainType
	HasTurnsIntoType bool
	TurnsIntoBase    tilemap.BaseTerrain
	HasTurnsIntoBase bool
	// IsGreatBarrierReef / IsRockOfGibraltar select the two special-cased
	// placement routines with hand-coded terrain rewrites.
	IsGreatBarrierReef bool
	IsRockOfGibraltar  bool
}

// NationRule records whether a nation may be used as a city-state.
type NationRule struct {
	Name        string
	IsCityState bool
}

// Ruleset is the read-only data the pipeline consults. It is never mutated
// by the core.
type Ruleset interface {
	Version() string
	Feature(f tilemap.Feature) (FeatureRule, bool)
	Resource(r tilemap.Resource) (ResourceRule, bool)
	// ResourcesByKind must return its result ordered by resource name.
	// Callers shuffle and weighted-sample over it with a seeded PRNG, so
	// the order has to be a pure function of the ruleset content.
	ResourcesByKind(kind tilemap.ResourceKind) []ResourceRule
	Wonder(w tilemap.NaturalWonder) (WonderRule, bool)
	AllWonders() []WonderRule
	CityStateNations() []NationRule
}
