package shading

import (
	"math"

	"github.com/Faultbox/terrapaint/internal/engine/material"
)

// topFaceThreshold separates top-facing geometry from cliff faces by the
// vertical component of the world normal.
const topFaceThreshold float32 = 0.5

// DecodeBlendMask decodes the 4-bit seam mask from a float vertex channel.
// The value is rounded to the nearest integer; negative values decode as
// the empty mask and bits beyond the low four are ignored.
func DecodeBlendMask(v float32) uint8 {
	r := int(math.Round(float64(v)))
	if r < 0 {
		return 0
	}
	return uint8(r & 0xF)
}

// SplatUV maps a world position to splatmap texture coordinates, clamped
// into [0, 1].
func SplatUV(cfg material.Config, worldX, worldZ float32) (u, v float32) {
	u = clamp01(worldX / (cfg.MapWidth * cfg.TileSize))
	v = clamp01(worldZ / (cfg.MapHeight * cfg.TileSize))
	return u, v
}

// SeamCorrectedSplatUV maps a world position to splatmap coordinates with
// seam correction: for each unset mask bit the tile-local fraction is pushed
// away from that edge, saturating at the 0.5 midline, so a tile's weights
// cannot bleed across a boundary whose neighbor is not level with it. With
// all four bits set the result equals SplatUV.
func SeamCorrectedSplatUV(cfg material.Config, worldX, worldZ float32, mask uint8) (u, v float32) {
	tx, fx := tileSplit(worldX, cfg.TileSize, cfg.MapWidth)
	tz, fz := tileSplit(worldZ, cfg.TileSize, cfg.MapHeight)

	if mask&maskNorth == 0 && fz < 0.5 {
		fz = 0.5
	}
	if mask&maskSouth == 0 && fz > 0.5 {
		fz = 0.5
	}
	if mask&maskWest == 0 && fx < 0.5 {
		fx = 0.5
	}
	if mask&maskEast == 0 && fx > 0.5 {
		fx = 0.5
	}

	u = clamp01((tx + fx) / cfg.MapWidth)
	v = clamp01((tz + fz) / cfg.MapHeight)
	return u, v
}

// Seam mask bit layout, matching terrain.Seam* and the mesh builder.
const (
	maskNorth uint8 = 1 << iota
	maskSouth
	maskWest
	maskEast
)

// tileSplit converts a world coordinate to a clamped tile index and the
// fraction within that tile.
func tileSplit(world, tileSize, tiles float32) (idx, frac float32) {
	t := world / tileSize
	idx = float32(math.Floor(float64(t)))
	if idx < 0 {
		idx = 0
	}
	if idx > tiles-1 {
		idx = tiles - 1
	}
	frac = clamp01(t - idx)
	return idx, frac
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
