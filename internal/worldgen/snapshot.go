package worldgen

import (
	"github.com/pdelewski/civ-worldgen/internal/civ"
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
)

// Snapshot is the JSON-serializable projection of a Result, for run output
// and persistence. It flattens Store's columnar arrays into one record per
// tile, the shape a map viewer or a replay tool consumes.
type Snapshot struct {
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Tiles      []TileSnapshot   `json:"tiles"`
	Civs       []ParticipantDTO `json:"civilizations"`
	CityStates []ParticipantDTO `json:"city_states"`
}

// TileSnapshot is one tile's full painted state.
type TileSnapshot struct {
	Col           int    `json:"col"`
	Row           int    `json:"row"`
	TerrainType   string `json:"terrain_type"`
	BaseTerrain   string `json:"base_terrain"`
	Feature       string `json:"feature,omitempty"`
	NaturalWonder string `json:"natural_wonder,omitempty"`
	Resource      string `json:"resource,omitempty"`
	ResourceQty   int    `json:"resource_quantity,omitempty"`
	HasRiver      bool   `json:"has_river,omitempty"`
	AreaID        int    `json:"area_id"`
}

// ParticipantDTO is one seated civilization or city-state.
type ParticipantDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Col      int    `json:"col"`
	Row      int    `json:"row"`
	Placed   bool   `json:"placed"`
}

// ToSnapshot flattens a Result into its JSON projection.
func (r *Result) ToSnapshot() Snapshot {
	layout := r.Store.Layout
	snap := Snapshot{
		Width:  layout.Width,
		Height: layout.Height,
		Tiles:  make([]TileSnapshot, 0, layout.TileCount()),
	}

	for _, idx := range r.Store.AllTiles() {
		o := layout.OffsetOf(idx)
		ts := TileSnapshot{
			Col:         o.Col,
			Row:         o.Row,
			TerrainType: r.Store.TerrainType(idx).String(),
			BaseTerrain: r.Store.BaseTerrain(idx).String(),
			AreaID:      int(r.Store.AreaID(idx)),
		}
		if f, ok := r.Store.Feature(idx); ok {
			ts.Feature = f.String()
		}
		if w, ok := r.Store.NaturalWonder(idx); ok {
			ts.NaturalWonder = string(w)
		}
		if dep, ok := r.Store.Resource(idx); ok {
			ts.Resource = string(dep.Resource)
			ts.ResourceQty = dep.Quantity
		}
		ts.HasRiver = r.Rivers.AnyRiver(idx)
		snap.Tiles = append(snap.Tiles, ts)
	}

	snap.Civs = participantsToDTO(layout, r.Civs)
	snap.CityStates = participantsToDTO(layout, r.CityStates)
	return snap
}

func participantsToDTO(layout hexgrid.Layout, participants []*civ.Participant) []ParticipantDTO {
	out := make([]ParticipantDTO, len(participants))
	for i, p := range participants {
		dto := ParticipantDTO{ID: p.ID, Name: p.Name, Placed: p.Placed}
		if p.Placed {
			o := layout.OffsetOf(p.StartTile)
			dto.Col, dto.Row = o.Col, o.Row
		}
		out[i] = dto
	}
	return out
}
