package ruleset

import (
	"fmt"
	"os"
	"sort"

	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"gopkg.in/yaml.v3"
)

// document is the on-disk YAML shape: a flat document of named sections,
// each a list of plain structs with yaml tags, loaded once at startup and
// never mutated.
type document struct {
	Version   string             `yaml:"version"`
	Features  []featureDoc       `yaml:"features"`
	Resources []resourceDoc      `yaml:"resources"`
	Wonders   []wonderDoc        `yaml:"wonders"`
	Nations   []NationRule       `yaml:"nations"`
}

type filterDoc struct {
	OccursOnType []string `yaml:"occurs_on_type,omitempty"`
	OccursOnBase []string `yaml:"occurs_on_base,omitempty"`
	IsFreshWater bool     `yaml:"is_fresh_water,omitempty"`
}

type featureDoc struct {
	Name       string    `yaml:"name"`
	Filter     filterDoc `yaml:"filter"`
	Impassable bool      `yaml:"impassable,omitempty"`
}

type resourceDoc struct {
	Name        string    `yaml:"name"`
	Kind        string    `yaml:"kind"`
	Filter      filterDoc `yaml:"filter"`
	MinQuantity int       `yaml:"min_quantity,omitempty"`
	MaxQuantity int       `yaml:"max_quantity,omitempty"`
}

type wonderUniqueDoc struct {
	Kind         string `yaml:"kind"`
	FilterToken  string `yaml:"filter_token,omitempty"`
	Min          int    `yaml:"min,omitempty"`
	Max          int    `yaml:"max,omitempty"`
	LandmassRank int    `yaml:"landmass_rank,omitempty"`
}

type wonderDoc struct {
	Name               string            `yaml:"name"`
	Filter             filterDoc         `yaml:"filter"`
	Uniques            []wonderUniqueDoc `yaml:"uniques,omitempty"`
	TurnsIntoType      string            `yaml:"turns_into_type,omitempty"`
	TurnsIntoBase      string            `yaml:"turns_into_base,omitempty"`
	IsGreatBarrierReef bool              `yaml:"is_great_barrier_reef,omitempty"`
	IsRockOfGibraltar  bool              `yaml:"is_rock_of_gibraltar,omitempty"`
}

// YAMLRuleset is a Ruleset loaded once from a YAML document and held
// read-only thereafter.
type YAMLRuleset struct {
	version   string
	features  map[tilemap.Feature]FeatureRule
	resources map[tilemap.Resource]ResourceRule
	wonders   map[tilemap.NaturalWonder]WonderRule
	wonderOrd []tilemap.NaturalWonder
	nations   []NationRule
}

// LoadYAML parses a ruleset document from path. A ruleset name it cannot
// resolve (an unknown terrain/feature token) is a preflight abort, reported
// as a ruleset-inconsistency error.
func LoadYAML(path string) (*YAMLRuleset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("ruleset: parse %s: %w", path, err)
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (*YAMLRuleset, error) {
	rs := &YAMLRuleset{
		version:   doc.Version,
		features:  make(map[tilemap.Feature]FeatureRule),
		resources: make(map[tilemap.Resource]ResourceRule),
		wonders:   make(map[tilemap.NaturalWonder]WonderRule),
	}

	for _, fd := range doc.Features {
		feat, ok := parseFeature(fd.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %q", ErrUnknownToken, fd.Name)
		}
		filter, err := parseFilter(fd.Filter)
		if err != nil {
			return nil, err
		}
		rs.features[feat] = FeatureRule{Feature: feat, Filter: filter, Impassable: fd.Impassable}
	}

	for _, rd := range doc.Resources {
		kind, ok := parseResourceKind(rd.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: unknown resource kind %q", ErrUnknownToken, rd.Kind)
		}
		filter, err := parseFilter(rd.Filter)
		if err != nil {
			return nil, err
		}
		res := tilemap.Resource(rd.Name)
		rs.resources[res] = ResourceRule{
			Resource:    res,
			Kind:        kind,
			Filter:      filter,
			MinQuantity: rd.MinQuantity,
			MaxQuantity: rd.MaxQuantity,
		}
	}

	for _, wd := range doc.Wonders {
		filter, err := parseFilter(wd.Filter)
		if err != nil {
			return nil, err
		}
		w := tilemap.NaturalWonder(wd.Name)
		rule := WonderRule{
			Wonder:             w,
			Filter:             filter,
			IsGreatBarrierReef: wd.IsGreatBarrierReef,
			IsRockOfGibraltar:  wd.IsRockOfGibraltar,
		}
		if wd.TurnsIntoType != "" {
			t, ok := parseTerrainType(wd.TurnsIntoType)
			if !ok {
				return nil, fmt.Errorf("%w: unknown terrain type %q", ErrUnknownToken, wd.TurnsIntoType)
			}
			rule.TurnsIntoType = t
			rule.HasTurnsIntoType = true
		}
		if wd.TurnsIntoBase != "" {
			b, ok := parseBaseTerrain(wd.TurnsIntoBase)
			if !ok {
				return nil, fmt.Errorf("%w: unknown base terrain %q", ErrUnknownToken, wd.TurnsIntoBase)
			}
			rule.TurnsIntoBase = b
			rule.HasTurnsIntoBase = true
		}
		for _, ud := range wd.Uniques {
			kind, ok := parseUniqueKind(ud.Kind)
			if !ok {
				return nil, fmt.Errorf("%w: unknown wonder unique kind %q", ErrUnknownToken, ud.Kind)
			}
			rule.Uniques = append(rule.Uniques, WonderUnique{
				Kind: kind, FilterToken: ud.FilterToken, Min: ud.Min, Max: ud.Max, LandmassRank: ud.LandmassRank,
			})
		}
		rs.wonders[w] = rule
		rs.wonderOrd = append(rs.wonderOrd, w)
	}

	rs.nations = doc.Nations
	return rs, nil
}

func (rs *YAMLRuleset) Version() string { return rs.version }

func (rs *YAMLRuleset) Feature(f tilemap.Feature) (FeatureRule, bool) {
	r, ok := rs.features[f]
	return r, ok
}

func (rs *YAMLRuleset) Resource(r tilemap.Resource) (ResourceRule, bool) {
	rule, ok := rs.resources[r]
	return rule, ok
}

// ResourcesByKind returns every resource of kind, ordered by name. Callers
// feed this into PRNG-consuming shuffles and weighted picks, so the order
// must be a function of the ruleset content, not of map iteration.
func (rs *YAMLRuleset) ResourcesByKind(kind tilemap.ResourceKind) []ResourceRule {
	var out []ResourceRule
	for _, r := range rs.resources {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

func (rs *YAMLRuleset) Wonder(w tilemap.NaturalWonder) (WonderRule, bool) {
	r, ok := rs.wonders[w]
	return r, ok
}

func (rs *YAMLRuleset) AllWonders() []WonderRule {
	out := make([]WonderRule, 0, len(rs.wonderOrd))
	for _, w := range rs.wonderOrd {
		out = append(out, rs.wonders[w])
	}
	return out
}

func (rs *YAMLRuleset) CityStateNations() []NationRule {
	return rs.nations
}
