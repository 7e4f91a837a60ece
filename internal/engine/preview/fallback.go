package preview

import (
	"github.com/Faultbox/terrapaint/internal/engine/texture"
)

// fallbackSize is the side length of the generated fallback textures.
const fallbackSize = 64

// layerStyle drives one procedural fallback layer.
type layerStyle struct {
	base      [3]uint8
	variation int
	roughness uint8
}

// Grass, dirt, sand, rock.
var fallbackStyles = [4]layerStyle{
	{base: [3]uint8{74, 128, 60}, variation: 22, roughness: 200},
	{base: [3]uint8{120, 88, 56}, variation: 18, roughness: 220},
	{base: [3]uint8{206, 186, 134}, variation: 14, roughness: 170},
	{base: [3]uint8{118, 118, 124}, variation: 26, roughness: 235},
}

// FallbackBindings generates procedural layer textures for running without
// any texture assets on disk: hash-noise base colors, flat normals and
// per-layer constant roughness.
func FallbackBindings(layers int) (baseColor, normal, roughness *texture.Array) {
	if layers < 1 {
		layers = 1
	}
	if layers > len(fallbackStyles) {
		layers = len(fallbackStyles)
	}

	baseColor = emptyArray(layers)
	normal = emptyArray(layers)
	roughness = emptyArray(layers)

	for i := 0; i < layers; i++ {
		style := fallbackStyles[i]
		for y := 0; y < fallbackSize; y++ {
			for x := 0; x < fallbackSize; x++ {
				o := (y*fallbackSize + x) * 4
				n := noise(x, y, i)

				baseColor.Layers[i][o+0] = jitter(style.base[0], n, style.variation)
				baseColor.Layers[i][o+1] = jitter(style.base[1], n>>3, style.variation)
				baseColor.Layers[i][o+2] = jitter(style.base[2], n>>6, style.variation)
				baseColor.Layers[i][o+3] = 255

				// Straight-up tangent normal with a hint of noise in xy.
				normal.Layers[i][o+0] = jitter(128, n, 6)
				normal.Layers[i][o+1] = jitter(128, n>>4, 6)
				normal.Layers[i][o+2] = 255
				normal.Layers[i][o+3] = 255

				r := jitter(style.roughness, n>>2, 10)
				roughness.Layers[i][o+0] = r
				roughness.Layers[i][o+1] = r
				roughness.Layers[i][o+2] = r
				roughness.Layers[i][o+3] = 255
			}
		}
	}
	return baseColor, normal, roughness
}

func emptyArray(layers int) *texture.Array {
	a := &texture.Array{
		Width:  fallbackSize,
		Height: fallbackSize,
		Layers: make([][]uint8, layers),
	}
	for i := range a.Layers {
		a.Layers[i] = make([]uint8, fallbackSize*fallbackSize*4)
	}
	return a
}

// noise is a small integer hash, stable across runs.
func noise(x, y, layer int) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(layer)*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func jitter(base uint8, n uint32, amplitude int) uint8 {
	if amplitude <= 0 {
		return base
	}
	d := int(n%uint32(2*amplitude+1)) - amplitude
	v := int(base) + d
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
