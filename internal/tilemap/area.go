package tilemap

import "github.com/pdelewski/civ-worldgen/internal/hexgrid"

// Area is a connected component of tiles under the "adjacent and
// same-water-ness" relation; mountains are always singleton areas of their
// own.
type Area struct {
	ID      AreaID
	Size    int
	IsWater bool
}

// AreaLabeller performs connected-component labelling of the tile store and
// answers the biggest-area and landmass-boundary queries the region
// partitioner and atoll placer depend on.
type AreaLabeller struct {
	store *Store
	areas []Area
}

// Label runs a flood fill over every tile, assigning AreaID and building the
// area list. It may be re-run at well-defined checkpoints after resource
// placement changes water adjacency.
func Label(store *Store) *AreaLabeller {
	l := store.Layout
	n := l.TileCount()
	visited := make([]bool, n)
	var areas []Area

	sameComponent := func(a, b hexgrid.TileIndex) bool {
		ta, tb := store.TerrainType(a), store.TerrainType(b)
		if ta == Mountain || tb == Mountain {
			return false
		}
		return store.IsWater(a) == store.IsWater(b)
	}

	for _, start := range l.AllTiles() {
		if visited[start] {
			continue
		}
		id := AreaID(len(areas))
		isWater := store.IsWater(start)
		size := 0

		if store.TerrainType(start) == Mountain {
			visited[start] = true
			store.SetAreaID(start, id)
			areas = append(areas, Area{ID: id, Size: 1, IsWater: false})
			continue
		}

		queue := []hexgrid.TileIndex{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			store.SetAreaID(cur, id)
			size++
			for _, nb := range l.Neighbors(cur) {
				if visited[nb] {
					continue
				}
				if store.TerrainType(nb) == Mountain {
					continue
				}
				if !sameComponent(start, nb) {
					continue
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
		areas = append(areas, Area{ID: id, Size: size, IsWater: isWater})
	}

	return &AreaLabeller{store: store, areas: areas}
}

// Areas returns the full area list, indexed by AreaID.
func (al *AreaLabeller) Areas() []Area {
	return al.areas
}

// Area looks up a single area's metadata.
func (al *AreaLabeller) Area(id AreaID) Area {
	return al.areas[id]
}

// BiggestLandAreaID returns the AreaID of the largest non-water area, or
// NoArea if the map has no land.
func (al *AreaLabeller) BiggestLandAreaID() AreaID {
	best := NoArea
	bestSize := -1
	for _, a := range al.areas {
		if !a.IsWater && a.Size > bestSize {
			best = a.ID
			bestSize = a.Size
		}
	}
	return best
}

// BiggestWaterAreaID returns the AreaID of the largest water area, or NoArea
// if the map has no water.
func (al *AreaLabeller) BiggestWaterAreaID() AreaID {
	best := NoArea
	bestSize := -1
	for _, a := range al.areas {
		if a.IsWater && a.Size > bestSize {
			best = a.ID
			bestSize = a.Size
		}
	}
	return best
}

// LandAreasByDescendingSize returns the IDs of every landmass, largest
// first, for natural-wonder "Nth largest landmass" uniques.
func (al *AreaLabeller) LandAreasByDescendingSize() []AreaID {
	ids := make([]AreaID, 0)
	for _, a := range al.areas {
		if !a.IsWater {
			ids = append(ids, a.ID)
		}
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && al.areas[ids[j-1]].Size < al.areas[ids[j]].Size; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// ObtainLandmassBoundaries returns the rectangle from the smallest to the
// largest offset column and row among the given area's tiles. The box is not
// unwrapped across a wrapping edge: an area that crosses the seam gets a
// rectangle spanning from its lowest to its highest column (or row). If the
// area covers every column (or row) along a wrapping axis, the rectangle
// spans the grid's full extent on that axis.
func (al *AreaLabeller) ObtainLandmassBoundaries(id AreaID) hexgrid.Rectangle {
	l := al.store.Layout
	minCol, maxCol := l.Width, -1
	minRow, maxRow := l.Height, -1
	spansFullWidth := false
	spansFullHeight := false

	colsSeen := make(map[int]bool)
	rowsSeen := make(map[int]bool)

	for _, idx := range l.AllTiles() {
		if al.store.AreaID(idx) != id {
			continue
		}
		o := l.OffsetOf(idx)
		colsSeen[o.Col] = true
		rowsSeen[o.Row] = true
		if o.Col < minCol {
			minCol = o.Col
		}
		if o.Col > maxCol {
			maxCol = o.Col
		}
		if o.Row < minRow {
			minRow = o.Row
		}
		if o.Row > maxRow {
			maxRow = o.Row
		}
	}
	if maxCol < 0 {
		return hexgrid.NewRectangle(l, 0, 0, 0, 0)
	}
	if l.WrapX && len(colsSeen) == l.Width {
		spansFullWidth = true
	}
	if l.WrapY && len(rowsSeen) == l.Height {
		spansFullHeight = true
	}

	width := maxCol - minCol + 1
	height := maxRow - minRow + 1
	if spansFullWidth {
		minCol, width = 0, l.Width
	}
	if spansFullHeight {
		minRow, height = 0, l.Height
	}

	return hexgrid.NewRectangle(l, minCol, minRow, width, height)
}
