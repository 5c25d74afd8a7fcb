package worldgen

// WorldSize selects a named map dimension/atoll-target preset.
type WorldSize int

const (
	Duel WorldSize = iota
	Tiny
	Small
	Standard
	Large
	Huge
)

func (s WorldSize) String() string {
	switch s {
	case Duel:
		return "Duel"
	case Tiny:
		return "Tiny"
	case Small:
		return "Small"
	case Standard:
		return "Standard"
	case Large:
		return "Large"
	case Huge:
		return "Huge"
	default:
		return "Unknown"
	}
}

// worldSizeSpec is one row of the world-size table.
type worldSizeSpec struct {
	Width, Height int
	AtollTarget   int
	DisabledLux   int // disabled luxury count, world-size dependent
}

var worldSizeTable = map[WorldSize]worldSizeSpec{
	Duel:     {Width: 40, Height: 24, AtollTarget: 2, DisabledLux: 11},
	Tiny:     {Width: 52, Height: 32, AtollTarget: 3, DisabledLux: 9},
	Small:    {Width: 64, Height: 40, AtollTarget: 4, DisabledLux: 7},
	Standard: {Width: 80, Height: 52, AtollTarget: 6, DisabledLux: 5},
	Large:    {Width: 104, Height: 64, AtollTarget: 8, DisabledLux: 3},
	Huge:     {Width: 128, Height: 80, AtollTarget: 12, DisabledLux: 1},
}

// Dimensions returns the default width/height for this world size.
func (s WorldSize) Dimensions() (width, height int) {
	spec := worldSizeTable[s]
	return spec.Width, spec.Height
}

// AtollTarget returns the baseline number of atolls placed before the
// random top-up draw.
func (s WorldSize) AtollTarget() int {
	return worldSizeTable[s].AtollTarget
}

// DisabledLuxuryCount returns how many leftover luxuries are split into the
// "never placed" pool.
func (s WorldSize) DisabledLuxuryCount() int {
	return worldSizeTable[s].DisabledLux
}

// Rainfall shifts feature-placement percentages.
type Rainfall int

const (
	RainfallArid Rainfall = iota
	RainfallNormal
	RainfallWet
	RainfallRandom
)

// PercentShift returns the jungle/marsh/oasis percent shift for this
// rainfall setting. draw supplies a uniform(-5,5) value for RainfallRandom.
func (r Rainfall) PercentShift(draw func(lo, hi int) int) int {
	switch r {
	case RainfallArid:
		return -4
	case RainfallWet:
		return 4
	case RainfallRandom:
		return draw(-5, 5)
	default:
		return 0
	}
}

// Temperature shifts the jungle latitude band.
type Temperature int

const (
	TemperatureCool Temperature = iota
	TemperatureNormal
	TemperatureHot
)

// ResourceSetting scales bonus/strategic/luxury frequency and quantity.
type ResourceSetting int

const (
	ResourceSparse ResourceSetting = iota
	ResourceDefault
	ResourceAbundant
)

// BonusMultiplier is the frequency multiplier applied to bonus placement
// schedules.
func (r ResourceSetting) BonusMultiplier() float64 {
	switch r {
	case ResourceSparse:
		return 1.5
	case ResourceAbundant:
		return 2.0 / 3.0
	default:
		return 1.0
	}
}

// MajorStrategicQuantity returns the per-deposit quantity for the six
// "major" strategic resources, keyed by name, under this resource setting.
func (r ResourceSetting) MajorStrategicQuantity(resource string) int {
	table := map[string][3]int{
		"Uranium":  {2, 4, 4},
		"Horses":   {4, 4, 6},
		"Oil":      {5, 7, 9},
		"Iron":     {4, 6, 9},
		"Coal":     {5, 7, 10},
		"Aluminum": {5, 8, 10},
	}
	row, ok := table[resource]
	if !ok {
		return 0
	}
	return row[r]
}

// RegionDivideMethod selects how the top-level partition region is chosen.
type RegionDivideMethod int

const (
	RegionDividePangaea RegionDivideMethod = iota
	RegionDivideContinent
	RegionDivideWholeMapRectangle
	RegionDivideCustomRectangle
)

// MaxRippleRadius bounds how far any impact/ripple write reaches (length of
// the default ripple table, tilemap.defaultRipple).
const MaxRippleRadius = 8

// KRegionsPerLuxuryDefault is the default regional-exclusive luxury cap,
// the number of regions permitted to share the same exclusive luxury.
const KRegionsPerLuxuryDefault = 3

// MaxRegionalLuxuriesDefault bounds total distinct regional-exclusive
// luxuries.
const MaxRegionalLuxuriesDefault = 8

// MaxCityStateLuxuriesDefault bounds luxuries reserved for city-state
// exclusivity.
const MaxCityStateLuxuriesDefault = 3
