// Package terrain provides the tile grid model, the splatmap builder and the
// mesh builder that bakes per-vertex blend attributes for the terrain material.
package terrain

const (
	// TileSize is the width of one tile in world units.
	TileSize float32 = 2.0

	// ElevationFraction is the fraction of a tile width climbed per elevation step.
	ElevationFraction float32 = 0.4

	// TileHeight is the world-space height of one elevation step.
	TileHeight = TileSize * ElevationFraction
)

// TileKind distinguishes flat floor tiles from ramps.
type TileKind uint8

const (
	KindFloor TileKind = iota
	KindRamp
)

// RampDirection names the cardinal neighbor a ramp slopes down to.
// RampAuto lets the mesh builder pick the lowest neighbor.
type RampDirection uint8

const (
	RampAuto RampDirection = iota
	RampNorth
	RampEast
	RampSouth
	RampWest
)

// RampDirections lists the four concrete directions.
var RampDirections = [4]RampDirection{RampNorth, RampEast, RampSouth, RampWest}

// Offset returns the tile grid offset of the neighbor the direction points to.
func (d RampDirection) Offset() (dx, dy int) {
	switch d {
	case RampNorth:
		return 0, -1
	case RampEast:
		return 1, 0
	case RampSouth:
		return 0, 1
	case RampWest:
		return -1, 0
	}
	return 0, 0
}

// Tile is one cell of the map grid.
type Tile struct {
	Kind      TileKind      `yaml:"kind"`
	Layer     int           `yaml:"layer"` // texture layer index, 0..3
	Elevation int8          `yaml:"elevation"`
	Ramp      RampDirection `yaml:"ramp,omitempty"`
}

// TileMap is a row-major grid of tiles.
type TileMap struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Tiles  []Tile `yaml:"tiles"`
}

// NewTileMap creates a map filled with flat layer-0 tiles.
func NewTileMap(width, height int) *TileMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &TileMap{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
}

// Index returns the slice index for tile (x, y).
func (m *TileMap) Index(x, y int) int {
	return y*m.Width + x
}

// InBounds reports whether (x, y) is a valid tile coordinate.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At returns the tile at (x, y). Out-of-bounds coordinates return nil.
func (m *TileMap) At(x, y int) *Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.Tiles[m.Index(x, y)]
}

// Set replaces the tile at (x, y). Out-of-bounds coordinates are ignored.
func (m *TileMap) Set(x, y int, t Tile) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[m.Index(x, y)] = t
}
