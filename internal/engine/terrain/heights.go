package terrain

import "math"

// Corner indices for tile corner height arrays.
const (
	CornerNW = 0
	CornerNE = 1
	CornerSW = 2
	CornerSE = 3
)

// CornerHeights returns the world heights of the four corners of tile (x, y).
// Floor tiles are flat at elevation*TileHeight; ramps lower the edge facing
// their target neighbor to that neighbor's height.
func CornerHeights(m *TileMap, x, y int) [4]float32 {
	tile := m.At(x, y)
	if tile == nil {
		return [4]float32{}
	}
	base := float32(tile.Elevation) * TileHeight
	corners := [4]float32{base, base, base, base}

	if tile.Kind != KindRamp {
		return corners
	}

	dir, target, ok := rampTarget(m, x, y, tile.Ramp, base)
	if !ok {
		return corners
	}

	switch dir {
	case RampNorth:
		corners[CornerNW] = target
		corners[CornerNE] = target
	case RampSouth:
		corners[CornerSW] = target
		corners[CornerSE] = target
	case RampWest:
		corners[CornerNW] = target
		corners[CornerSW] = target
	case RampEast:
		corners[CornerNE] = target
		corners[CornerSE] = target
	}
	return corners
}

// rampTarget resolves the direction and height a ramp slopes down to. An
// explicit direction wins if its neighbor is lower; otherwise the lowest
// lower neighbor is picked.
func rampTarget(m *TileMap, x, y int, dir RampDirection, base float32) (RampDirection, float32, bool) {
	if dir != RampAuto {
		if h, ok := rampNeighborHeight(m, x, y, dir, base); ok {
			return dir, h, true
		}
	}
	var (
		best       RampDirection
		bestHeight float32
		found      bool
	)
	for _, d := range RampDirections {
		h, ok := rampNeighborHeight(m, x, y, d, base)
		if !ok {
			continue
		}
		if !found || h < bestHeight {
			best, bestHeight, found = d, h, true
		}
	}
	return best, bestHeight, found
}

// rampNeighborHeight returns the base height of the neighbor in the given
// direction if it sits below base.
func rampNeighborHeight(m *TileMap, x, y int, dir RampDirection, base float32) (float32, bool) {
	dx, dy := dir.Offset()
	n := m.At(x+dx, y+dy)
	if n == nil {
		return 0, false
	}
	h := float32(n.Elevation) * TileHeight
	if h >= base {
		return 0, false
	}
	return h, true
}

// TopHeight returns the highest corner of tile (x, y).
func TopHeight(m *TileMap, x, y int) float32 {
	return maxCorner(CornerHeights(m, x, y))
}

func maxCorner(c [4]float32) float32 {
	h := c[0]
	for _, v := range c[1:] {
		if v > h {
			h = v
		}
	}
	return h
}

// HeightAt returns the interpolated surface height at a world position,
// bilinear over the containing tile's corner heights. Positions outside the
// map clamp to the nearest tile.
func HeightAt(m *TileMap, worldX, worldZ float32) float32 {
	if m.Width == 0 || m.Height == 0 {
		return 0
	}
	tx, fx := splitTileCoord(worldX, m.Width)
	tz, fz := splitTileCoord(worldZ, m.Height)

	c := CornerHeights(m, tx, tz)
	north := c[CornerNW]*(1-fx) + c[CornerNE]*fx
	south := c[CornerSW]*(1-fx) + c[CornerSE]*fx
	return north*(1-fz) + south*fz
}

// NormalAt returns the upward surface normal at a world position.
func NormalAt(m *TileMap, worldX, worldZ float32) [3]float32 {
	if m.Width == 0 || m.Height == 0 {
		return [3]float32{0, 1, 0}
	}
	tx, _ := splitTileCoord(worldX, m.Width)
	tz, _ := splitTileCoord(worldZ, m.Height)

	c := CornerHeights(m, tx, tz)
	s := TileSize
	n := [3]float32{
		-s * (c[CornerNE] - c[CornerNW]),
		s * s,
		-s * (c[CornerSW] - c[CornerNW]),
	}
	return normalize3(n)
}

// splitTileCoord converts a world coordinate into a clamped tile index and
// the fraction within that tile.
func splitTileCoord(world float32, tiles int) (int, float32) {
	t := world / TileSize
	idx := int(t)
	if t < 0 {
		idx = 0
	}
	if idx > tiles-1 {
		idx = tiles - 1
	}
	f := t - float32(idx)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return idx, f
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func normalize3(v [3]float32) [3]float32 {
	l := sqrtf(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l < 1e-6 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
