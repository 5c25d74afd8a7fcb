package worldgen

import (
	"github.com/pdelewski/civ-worldgen/internal/hexgrid"
	"github.com/pdelewski/civ-worldgen/internal/ruleset"
	"github.com/pdelewski/civ-worldgen/internal/tilemap"
	"github.com/pdelewski/civ-worldgen/internal/worldgen/prng"
)

// atollCategory buckets a coast-with-one-land-neighbor candidate by the
// size of the adjacent landmass.
type atollCategory int

const (
	atollAlpha atollCategory = iota // 1-2
	atollBeta                       // 3-7
	atollGamma                      // 8-16
	atollDelta                      // 17-40
	atollEpsilon                    // 41-75, also the catch-all >75
)

func categorizeBySize(size int) atollCategory {
	switch {
	case size <= 2:
		return atollAlpha
	case size <= 7:
		return atollBeta
	case size <= 16:
		return atollGamma
	case size <= 40:
		return atollDelta
	default:
		return atollEpsilon
	}
}

// placeAtolls runs the atoll follow-up pass: identify the biggest water
// area, bucket eligible coast tiles by adjacent-landmass size, and draw a
// d100 cascade per target atoll.
func placeAtolls(store *tilemap.Store, rules ruleset.Ruleset, rng *prng.Stream, opts Options) {
	areas := tilemap.Label(store)
	biggestWater := areas.BiggestWaterAreaID()
	if biggestWater == tilemap.NoArea {
		return
	}
	totalTiles := store.Layout.TileCount()
	if areas.Area(biggestWater).Size < totalTiles/4 {
		return
	}

	buckets := map[atollCategory][]hexgrid.TileIndex{}
	for _, t := range store.AllTiles() {
		if store.BaseTerrain(t) != tilemap.Coast {
			continue
		}
		landNeighbors := 0
		var landNeighbor hexgrid.TileIndex
		for _, nb := range store.Layout.Neighbors(t) {
			if store.IsWater(nb) {
				continue
			}
			landNeighbors++
			landNeighbor = nb
		}
		if landNeighbors != 1 {
			continue
		}
		terrain := store.TerrainType(landNeighbor)
		base := store.BaseTerrain(landNeighbor)
		if terrain != tilemap.Flatland && terrain != tilemap.Hill {
			continue
		}
		if base == tilemap.Tundra || base == tilemap.Snow {
			continue
		}
		if store.HasFeature(landNeighbor, tilemap.Ice) {
			continue
		}
		area := areas.Area(store.AreaID(landNeighbor))
		cat := categorizeBySize(area.Size)
		buckets[cat] = append(buckets[cat], t)
	}
	for cat := range buckets {
		rng.Shuffle(len(buckets[cat]), func(i, j int) {
			buckets[cat][i], buckets[cat][j] = buckets[cat][j], buckets[cat][i]
		})
	}

	target := opts.WorldSize.AtollTarget()
	extra := rng.Intn(target + 1)
	count := target + extra

	cascadeOrder := []atollCategory{atollAlpha, atollBeta, atollGamma, atollDelta, atollEpsilon}
	for i := 0; i < count; i++ {
		roll := rng.IntRange(1, 100)
		primary := atollEpsilon
		switch {
		case roll <= 40:
			primary = atollAlpha
		case roll <= 65:
			primary = atollBeta
		case roll <= 80:
			primary = atollGamma
		case roll <= 90:
			primary = atollDelta
		}
		placed := false
		for _, cat := range cascadeFrom(cascadeOrder, primary) {
			list := buckets[cat]
			if len(list) == 0 {
				continue
			}
			t := list[0]
			buckets[cat] = list[1:]
			store.SetFeature(t, tilemap.Atoll)
			placed = true
			break
		}
		if !placed {
			break
		}
	}
}

// cascadeFrom returns the fallback order starting at primary and then
// visiting the remaining categories in the cascade's natural order.
func cascadeFrom(order []atollCategory, primary atollCategory) []atollCategory {
	out := make([]atollCategory, 0, len(order))
	out = append(out, primary)
	for _, c := range order {
		if c != primary {
			out = append(out, c)
		}
	}
	return out
}
