package terrain

import "math/rand"

// GenerateDemoMap builds a small map exercising every blend path: flat
// plains, elevated plateaus with cliffs, ramps, and all four layers.
func GenerateDemoMap(width, height int, seed int64) *TileMap {
	m := NewTileMap(width, height)
	rng := rand.New(rand.NewSource(seed))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			e := demoElevation(x, y, width, height, rng)
			layer := 0 // grass
			switch {
			case e >= 2:
				layer = 3 // rock
			case e == 1:
				layer = 1 // dirt
			case rng.Float32() < 0.1:
				layer = 2 // sand patches
			}
			m.Set(x, y, Tile{Kind: KindFloor, Layer: layer, Elevation: int8(e)})
		}
	}

	// Ramps up the plateau edges where the drop is one step.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := m.At(x, y)
			if tile.Elevation == 0 {
				continue
			}
			for _, dir := range RampDirections {
				dx, dy := dir.Offset()
				n := m.At(x+dx, y+dy)
				if n != nil && int(tile.Elevation)-int(n.Elevation) == 1 && rng.Float32() < 0.25 {
					tile.Kind = KindRamp
					tile.Ramp = dir
					break
				}
			}
		}
	}
	return m
}

func demoElevation(x, y, width, height int, rng *rand.Rand) int {
	// Central plateau with a taller core.
	cx := float32(x)/float32(width) - 0.5
	cy := float32(y)/float32(height) - 0.5
	d := cx*cx + cy*cy
	switch {
	case d < 0.02:
		return 2
	case d < 0.08:
		return 1
	default:
		if rng.Float32() < 0.05 {
			return 1
		}
		return 0
	}
}
