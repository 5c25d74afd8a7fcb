package worldgen

import "github.com/pdelewski/civ-worldgen/internal/hexgrid"

// Options holds the run parameters supplied by the CLI/config layer.
type Options struct {
	Seed int64 `yaml:"seed" json:"seed"`

	WorldSize    WorldSize              `yaml:"world_size" json:"world_size"`
	Width        int                    `yaml:"width" json:"width"`
	Height       int                    `yaml:"height" json:"height"`
	Orientation  hexgrid.Orientation    `yaml:"-" json:"-"`
	WrapX        bool                   `yaml:"wrap_x" json:"wrap_x"`
	WrapY        bool                   `yaml:"wrap_y" json:"wrap_y"`

	Rainfall        Rainfall        `yaml:"rainfall" json:"rainfall"`
	Temperature     Temperature     `yaml:"temperature" json:"temperature"`
	ResourceSetting ResourceSetting `yaml:"resource_setting" json:"resource_setting"`

	RegionDivideMethod      RegionDivideMethod `yaml:"region_divide_method" json:"region_divide_method"`
	CustomRectangle         *hexgrid.Rectangle `yaml:"-" json:"-"`
	CivRequireCoastalStart  bool               `yaml:"civ_require_coastal_land_start" json:"civ_require_coastal_land_start"`

	NumCivilization   int `yaml:"num_civilization" json:"num_civilization"`
	NumCityState      int `yaml:"num_city_state" json:"num_city_state"`
	NumNaturalWonder  int `yaml:"num_natural_wonder" json:"num_natural_wonder"`

	MaxRegionsPerExclusiveLuxury int `yaml:"max_regions_per_exclusive_luxury" json:"max_regions_per_exclusive_luxury"`
	MaxRegionalLuxuries          int `yaml:"max_regional_luxuries" json:"max_regional_luxuries"`
	MaxCityStateLuxuries         int `yaml:"max_city_state_luxuries" json:"max_city_state_luxuries"`

	RulesetPath string `yaml:"ruleset_path" json:"ruleset_path"`
}

// DefaultOptions returns a Standard-size, Default-resource, Pangaea run
// configuration.
func DefaultOptions() Options {
	w, h := Standard.Dimensions()
	return Options{
		Seed:                         1,
		WorldSize:                    Standard,
		Width:                        w,
		Height:                       h,
		Orientation:                  hexgrid.Pointy,
		WrapX:                        true,
		Rainfall:                     RainfallNormal,
		Temperature:                  TemperatureNormal,
		ResourceSetting:              ResourceDefault,
		RegionDivideMethod:           RegionDividePangaea,
		CivRequireCoastalStart:       false,
		NumCivilization:              8,
		NumCityState:                 16,
		NumNaturalWonder:             5,
		MaxRegionsPerExclusiveLuxury: KRegionsPerLuxuryDefault,
		MaxRegionalLuxuries:          MaxRegionalLuxuriesDefault,
		MaxCityStateLuxuries:         MaxCityStateLuxuriesDefault,
	}
}

// mapMultiplier is the "per m tiles" scaling factor (tile_count / 1000)
// used throughout the resource and city-state frequency tables.
func (o Options) mapMultiplier() float64 {
	return float64(o.Width*o.Height) / 1000.0
}

// Layout builds the hexgrid.Layout these options describe.
func (o Options) Layout() hexgrid.Layout {
	l := hexgrid.NewLayout(o.Width, o.Height)
	l.Orientation = o.Orientation
	l.WrapX = o.WrapX
	l.WrapY = o.WrapY
	return l
}
