package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// Array is a CPU-side layered texture, the software analogue of a GL 2D
// texture array. All layers share one size and RGBA8 storage.
type Array struct {
	Width  int
	Height int
	Layers [][]uint8 // one RGBA8 pixel buffer per layer
}

// NewArray assembles a texture array from layer images. The first layer
// fixes the size; mismatched layers are rescaled to it.
func NewArray(layers []*image.RGBA) (*Array, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("texture array needs at least one layer")
	}
	w := layers[0].Bounds().Dx()
	h := layers[0].Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture array layer has zero size")
	}

	a := &Array{Width: w, Height: h, Layers: make([][]uint8, 0, len(layers))}
	for _, img := range layers {
		if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
			scaled := image.NewRGBA(image.Rect(0, 0, w, h))
			xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
			img = scaled
		}
		pix := make([]uint8, w*h*4)
		for y := 0; y < h; y++ {
			src := img.Pix[y*img.Stride : y*img.Stride+w*4]
			copy(pix[y*w*4:], src)
		}
		a.Layers = append(a.Layers, pix)
	}
	return a, nil
}

// LayerCount returns the number of layers.
func (a *Array) LayerCount() int {
	return len(a.Layers)
}

// Sample bilinearly filters layer at normalized (u, v) with repeat
// addressing, returning RGBA in [0, 1]. Out-of-range layer indices clamp.
func (a *Array) Sample(layer int, u, v float32) mgl32.Vec4 {
	if len(a.Layers) == 0 {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	if layer < 0 {
		layer = 0
	}
	if layer >= len(a.Layers) {
		layer = len(a.Layers) - 1
	}
	pix := a.Layers[layer]

	fx := u*float32(a.Width) - 0.5
	fy := v*float32(a.Height) - 0.5
	x0 := floorInt(fx)
	y0 := floorInt(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	p00 := a.texel(pix, x0, y0)
	p10 := a.texel(pix, x0+1, y0)
	p01 := a.texel(pix, x0, y0+1)
	p11 := a.texel(pix, x0+1, y0+1)

	var out mgl32.Vec4
	for c := 0; c < 4; c++ {
		top := p00[c]*(1-tx) + p10[c]*tx
		bot := p01[c]*(1-tx) + p11[c]*tx
		out[c] = top*(1-ty) + bot*ty
	}
	return out
}

// SampleScalar samples the red channel of layer, for single-channel maps
// like roughness.
func (a *Array) SampleScalar(layer int, u, v float32) float32 {
	return a.Sample(layer, u, v).X()
}

// texel fetches one pixel with repeat wrapping, normalized to [0, 1].
func (a *Array) texel(pix []uint8, x, y int) [4]float32 {
	x = wrap(x, a.Width)
	y = wrap(y, a.Height)
	i := (y*a.Width + x) * 4
	return [4]float32{
		float32(pix[i]) / 255.0,
		float32(pix[i+1]) / 255.0,
		float32(pix[i+2]) / 255.0,
		float32(pix[i+3]) / 255.0,
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}
