package terrain

import "math"

// Sentinel values carried in the packed color R channel.
const (
	// blendNoBottom marks a vertex without bottom-layer data.
	blendNoBottom float32 = -1.0
	// blendSeamMask marks a top-face vertex whose G channel carries a seam
	// mask instead of a bottom height. Decoders test R < -1.5.
	blendSeamMask float32 = -2.0
)

// VertexBlend is the per-vertex blend record consumed by the material.
// The GPU path packs it into the vertex color and secondary UV channels;
// the CPU path uses it directly.
type VertexBlend struct {
	// TopLayer is the texture layer of the vertex's own tile. It doubles as
	// the fallback layer when the splatmap contributes no weight.
	TopLayer int
	// TopSeamHeight is the world height of the tile's top edge. Cliff
	// blending fades the top layer out below it.
	TopSeamHeight float32

	// HasBottom reports whether the face meets a lower neighbor whose layer
	// should blend in near the bottom seam.
	HasBottom    bool
	BottomLayer  int
	BottomHeight float32

	// ForceCliff pins the face to the cliff source regardless of height.
	ForceCliff bool

	// HasSeamMask marks a top-face vertex carrying a boundary seam mask.
	HasSeamMask bool
	SeamMask    uint8
}

// Pack encodes the record into the repurposed vertex color and secondary UV
// channels: color = (bottom layer or sentinel, bottom height or mask, force
// cliff, 0), uv1 = (top layer, top seam height).
func (b VertexBlend) Pack() (color [4]float32, uv1 [2]float32) {
	switch {
	case b.HasSeamMask:
		color[0] = blendSeamMask
		color[1] = float32(b.SeamMask)
	case b.HasBottom:
		color[0] = float32(b.BottomLayer)
		color[1] = b.BottomHeight
	default:
		color[0] = blendNoBottom
	}
	if b.ForceCliff {
		color[2] = 1.0
	}
	uv1[0] = float32(b.TopLayer)
	uv1[1] = b.TopSeamHeight
	return color, uv1
}

// UnpackBlend decodes the packed channels back into a VertexBlend.
// Mask bits beyond the low four are dropped; negative mask values decode as
// the empty mask.
func UnpackBlend(color [4]float32, uv1 [2]float32) VertexBlend {
	b := VertexBlend{
		TopLayer:      int(math.Round(float64(uv1[0]))),
		TopSeamHeight: uv1[1],
		ForceCliff:    color[2] > 0.5,
	}
	switch {
	case color[0] < -1.5:
		b.HasSeamMask = true
		if color[1] > 0 {
			b.SeamMask = uint8(int(math.Round(float64(color[1]))) & 0xF)
		}
	case color[0] >= 0:
		b.HasBottom = true
		b.BottomLayer = int(math.Round(float64(color[0])))
		b.BottomHeight = color[1]
	}
	if b.TopLayer < 0 {
		b.TopLayer = 0
	}
	return b
}
