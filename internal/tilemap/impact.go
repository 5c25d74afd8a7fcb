package tilemap

import "github.com/pdelewski/civ-worldgen/internal/hexgrid"

// Layer names one of the impact/ripple spacing fields shared by the
// starting-tile selector, natural-wonder placer, city-state placer and
// resource placers.
type Layer int

const (
	LayerStrategic Layer = iota
	LayerLuxury
	LayerBonus
	LayerFish
	LayerCityState
	LayerNaturalWonder
	LayerMarble
	layerCount
)

// MaxImpact is the sentinel value written at the origin tile of a ripple and
// the value city-state tiles are required to reach.
const MaxImpact = 99

// defaultRipple is the default distance-decay table: ripple[d-1] is the
// value written at distance d from an impact's origin.
var defaultRipple = [8]int{97, 95, 92, 89, 69, 57, 24, 15}

// ImpactLayers holds one byte field per Layer, each indexed by tile.
type ImpactLayers struct {
	layout hexgrid.Layout
	fields [layerCount][]int
}

// NewImpactLayers allocates all layers, zeroed, for the given layout.
func NewImpactLayers(l hexgrid.Layout) *ImpactLayers {
	il := &ImpactLayers{layout: l}
	for i := range il.fields {
		il.fields[i] = make([]int, l.TileCount())
	}
	return il
}

// Value returns the impact value of a tile on a layer.
func (il *ImpactLayers) Value(layer Layer, t hexgrid.TileIndex) int {
	return il.fields[layer][t]
}

// IsClear reports whether a tile is unoccupied (zero) on a layer.
func (il *ImpactLayers) IsClear(layer Layer, t hexgrid.TileIndex) bool {
	return il.fields[layer][t] == 0
}

// Apply writes an impact of MaxImpact at t and a distance-decayed ripple
// around it on the given layer, using the default ripple table out to
// radius (clamped to the table length). Overlapping impacts take the max of
// the existing and new values and are then boosted by 20% (capped at 97) to
// encode that two independent placements both wanted this tile.
func (il *ImpactLayers) Apply(layer Layer, t hexgrid.TileIndex, radius int) {
	il.writeWithOverlap(layer, t, MaxImpact)
	if radius > len(defaultRipple) {
		radius = len(defaultRipple)
	}
	for d := 1; d <= radius; d++ {
		val := defaultRipple[d-1]
		for _, nb := range il.layout.CellsAtDistance(t, d) {
			il.writeWithOverlap(layer, nb, val)
		}
	}
}

// ApplyRipple writes only the decayed ripple (not the MaxImpact center
// value), used when the origin tile itself should not be force-claimed,
// e.g. resource placement radii.
func (il *ImpactLayers) ApplyRipple(layer Layer, t hexgrid.TileIndex, minRadius, maxRadius int, pick func(lo, hi int) int) {
	radius := pick(minRadius, maxRadius)
	if radius > len(defaultRipple) {
		radius = len(defaultRipple)
	}
	for d := 1; d <= radius; d++ {
		val := defaultRipple[d-1]
		for _, nb := range il.layout.CellsAtDistance(t, d) {
			il.writeWithOverlap(layer, nb, val)
		}
	}
}

// MarkMax forces a tile's layer value to MaxImpact unconditionally, used
// after placing a city-state so the CityState layer invariant (impact value
// is the maximum sentinel) holds regardless of prior ripple writes.
func (il *ImpactLayers) MarkMax(layer Layer, t hexgrid.TileIndex) {
	il.fields[layer][t] = MaxImpact
}

func (il *ImpactLayers) writeWithOverlap(layer Layer, t hexgrid.TileIndex, val int) {
	existing := il.fields[layer][t]
	if existing == 0 {
		il.fields[layer][t] = val
		return
	}
	merged := existing
	if val > merged {
		merged = val
	}
	merged = int(float64(merged) * 1.2)
	if merged > 97 {
		merged = 97
	}
	il.fields[layer][t] = merged
}
