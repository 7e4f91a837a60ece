// Package material defines the terrain material configuration and its
// optional texture bindings. The configuration is shared read-only between
// the CPU shading pipeline and the GL renderer.
package material

import (
	"github.com/Faultbox/terrapaint/internal/engine/terrain"
	"github.com/Faultbox/terrapaint/internal/engine/texture"
)

const (
	// MaxLayers is the number of simultaneous texture layers a fragment can
	// blend. The splatmap stores one weight per channel of an RGBA texel,
	// which fixes the limit at four.
	MaxLayers = 4

	// MinCliffBlendHeight keeps the cliff blend division well defined.
	MinCliffBlendHeight float32 = 0.0001

	// tileRepeat is how many world tiles one texture repeat spans.
	tileRepeat float32 = 4.0
)

// Config mirrors the terrain material uniform block.
type Config struct {
	// UVScale converts world units to texture repeats.
	UVScale float32
	// LayerCount is the number of configured texture layers.
	LayerCount int
	// MapWidth and MapHeight are the map dimensions in tiles.
	MapWidth  float32
	MapHeight float32
	// TileSize is the width of one tile in world units.
	TileSize float32
	// HeightUVScale scales the vertical texture coordinate independently of
	// the horizontal density.
	HeightUVScale float32
	// HeightWorldScale converts vertex-encoded seam heights to world units.
	HeightWorldScale float32
	// CliffBlendHeight is the world-space distance over which the top layer
	// fades out below its seam.
	CliffBlendHeight float32

	// Wall texture substitution for cliff faces.
	WallLayerIndex   int
	WallEnabled      bool
	WallHasNormal    bool
	WallHasRoughness bool
}

// DefaultConfig returns the material defaults for a map of the given tile
// dimensions.
func DefaultConfig(mapWidth, mapHeight int) Config {
	return Config{
		UVScale:          1.0 / (terrain.TileSize * tileRepeat),
		LayerCount:       0,
		MapWidth:         float32(mapWidth),
		MapHeight:        float32(mapHeight),
		TileSize:         terrain.TileSize,
		HeightUVScale:    1.0,
		HeightWorldScale: 1.0,
		CliffBlendHeight: 0.2,
		WallLayerIndex:   0,
	}
}

// Normalize returns a copy with every field clamped into its valid range so
// downstream math never divides by zero: degraded output beats undefined
// output.
func (c Config) Normalize() Config {
	if c.UVScale <= 0 {
		c.UVScale = 1.0 / (terrain.TileSize * tileRepeat)
	}
	if c.LayerCount < 0 {
		c.LayerCount = 0
	}
	if c.LayerCount > MaxLayers {
		c.LayerCount = MaxLayers
	}
	if c.MapWidth < 1 {
		c.MapWidth = 1
	}
	if c.MapHeight < 1 {
		c.MapHeight = 1
	}
	if c.TileSize <= 0 {
		c.TileSize = terrain.TileSize
	}
	if c.HeightUVScale <= 0 {
		c.HeightUVScale = 1.0
	}
	if c.HeightWorldScale <= 0 {
		c.HeightWorldScale = 1.0
	}
	if c.CliffBlendHeight < MinCliffBlendHeight {
		c.CliffBlendHeight = MinCliffBlendHeight
	}
	if c.WallLayerIndex < 0 {
		c.WallLayerIndex = 0
	}
	if c.WallLayerIndex >= MaxLayers {
		c.WallLayerIndex = MaxLayers - 1
	}
	return c
}

// AvailableLayers is the number of layers a fragment may actually blend.
func (c Config) AvailableLayers() int {
	if c.LayerCount < MaxLayers {
		return c.LayerCount
	}
	return MaxLayers
}

// Bindings holds the optional texture resources of a material instance.
// A nil binding disables its blending path.
type Bindings struct {
	BaseColor *texture.Array
	Normal    *texture.Array
	Roughness *texture.Array
	Splat     *terrain.Splatmap
}

// Capabilities are the per-material flags resolved once from the bindings,
// never re-evaluated per fragment.
type Capabilities struct {
	HasBaseColor bool
	HasNormal    bool
	HasRoughness bool
	HasSplat     bool
}

// Capabilities resolves the capability flags for the current bindings.
func (b Bindings) Capabilities() Capabilities {
	return Capabilities{
		HasBaseColor: b.BaseColor != nil && b.BaseColor.LayerCount() > 0,
		HasNormal:    b.Normal != nil && b.Normal.LayerCount() > 0,
		HasRoughness: b.Roughness != nil && b.Roughness.LayerCount() > 0,
		HasSplat:     b.Splat != nil,
	}
}
