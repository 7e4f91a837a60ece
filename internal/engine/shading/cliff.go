package shading

// CliffInput carries the height data driving the three-way cliff blend.
type CliffInput struct {
	// SeamHeight is the world height of the top seam.
	SeamHeight float32
	// WorldY is the fragment's world height.
	WorldY float32
	// HasBottom enables the bottom-layer blend band.
	HasBottom    bool
	BottomHeight float32
	// ForceCliff pins the face to the cliff source.
	ForceCliff bool
}

// CliffFactors computes the top/bottom/cliff blend weights. The top layer
// is full at or above the seam and fades out over blendHeight below it; the
// bottom layer fades in approaching the bottom seam from above; the cliff
// source takes whatever weight remains. Force-cliff overrides everything.
func CliffFactors(in CliffInput, blendHeight float32) (top, bottom, cliff float32) {
	if in.ForceCliff {
		return 0, 0, 1
	}

	top = clamp01(1 - (in.SeamHeight-in.WorldY)/blendHeight)
	if in.HasBottom {
		bottom = clamp01(1 - (in.WorldY-in.BottomHeight)/blendHeight)
	}
	cliff = 1 - top - bottom
	if cliff < 0 {
		cliff = 0
	}
	return top, bottom, cliff
}

// Roughness stylization constants: the normalized triplanar average is
// remapped into a display range, then floor-clamped so shading never sees a
// perfect mirror.
const (
	roughnessRangeMin float32 = 0.2
	roughnessRangeMax float32 = 0.9
	roughnessFloor    float32 = 0.045
)

// RemapRoughness maps an averaged [0, 1] roughness sample into [0.2, 0.9]
// and clamps the result into [0.045, 1.0], decoupling authored texture
// values from final shading roughness.
func RemapRoughness(avg float32) float32 {
	r := roughnessRangeMin + clamp01(avg)*(roughnessRangeMax-roughnessRangeMin)
	if r < roughnessFloor {
		r = roughnessFloor
	}
	if r > 1 {
		r = 1
	}
	return r
}
