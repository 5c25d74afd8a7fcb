// Package civ describes the participants a world-generation run places:
// full civilizations, which receive a starting tile, and city-states, which
// receive a single settled tile. Both are pure descriptors; neither carries
// any turn-engine state.
package civ

import (
	"github.com/google/uuid"

	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
)

// Kind distinguishes a full civilization from a city-state.
type Kind int

const (
	KindCivilization Kind = iota
	KindCityState
)

// CivilizationNames seeds default participant names when a run does not
// supply its own nation list.
var CivilizationNames = []string{
	"Romans",
	"Egyptians",
	"Greeks",
	"Babylonians",
	"Germans",
	"Russians",
	"Chinese",
	"Americans",
	"Persians",
	"Aztecs",
	"Indians",
	"English",
}

// Participant is one civilization or city-state the placement pipeline must
// seat on the map.
type Participant struct {
	ID   string
	Name string
	Kind Kind
	// RequireCoastal restricts a civilization's candidate starting tiles to
	// coastal land, per the run's civ_require_coastal_land_start option.
	RequireCoastal bool
	// StartTile is set once the starting-tile selector places this
	// participant; callers must consult Placed before reading it, since 0
	// is a valid tile index.
	StartTile hexgrid.TileIndex
	Placed    bool
}

// NewParticipant creates an unplaced participant with a generated ID.
func NewParticipant(name string, kind Kind, requireCoastal bool) *Participant {
	return &Participant{
		ID:             uuid.New().String(),
		Name:           name,
		Kind:           kind,
		RequireCoastal: requireCoastal,
	}
}

// NewCivilizations builds numCiv unplaced civilizations, cycling through
// CivilizationNames if the caller does not supply enough names.
func NewCivilizations(numCiv int, requireCoastal bool, names []string) []*Participant {
	out := make([]*Participant, 0, numCiv)
	for i := 0; i < numCiv; i++ {
		name := civName(names, i)
		out = append(out, NewParticipant(name, KindCivilization, requireCoastal))
	}
	return out
}

// NewCityStates builds numCityStates unplaced city-states drawn from
// nationNames (typically the ruleset's city-state-flagged nations).
func NewCityStates(numCityStates int, nationNames []string) []*Participant {
	out := make([]*Participant, 0, numCityStates)
	for i := 0; i < numCityStates; i++ {
		name := civName(nationNames, i)
		out = append(out, NewParticipant(name, KindCityState, false))
	}
	return out
}

func civName(pool []string, i int) string {
	if len(pool) == 0 {
		pool = CivilizationNames
	}
	return pool[i%len(pool)]
}
