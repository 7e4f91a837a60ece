// Package shading implements the terrain fragment pipeline on the CPU:
// splat weight resolution, triplanar sampling, top-face seam correction,
// cliff blending and output composition. It is the testable twin of the
// GLSL material in internal/engine/scene/shaders.
package shading

// Weights is a per-layer blend weight vector, one scalar per texture layer.
type Weights [4]float32

// weightEpsilon is the threshold below which a sampled weight sum counts as
// absent.
const weightEpsilon float32 = 0.0001

// Sum returns the total weight.
func (w Weights) Sum() float32 {
	return w[0] + w[1] + w[2] + w[3]
}

// ClampLayerIndex clamps idx into [0, available-1]. With no layers the only
// safe index is 0.
func ClampLayerIndex(idx, available int) int {
	if available <= 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= available {
		return available - 1
	}
	return idx
}

// ResolveWeights normalizes a raw sampled weight vector into a distribution
// summing to one. Channels at or above the available layer count are dropped
// first: their mass cannot be sampled, and carrying it through normalization
// would starve the layers that can. When the remaining sum is absent the
// fallback layer gets full weight, so every fragment sees a well-formed
// distribution even without a splatmap contribution.
func ResolveWeights(raw Weights, available, fallback int) Weights {
	for i := range raw {
		if i >= available {
			raw[i] = 0
		}
	}
	sum := raw.Sum()
	if sum <= weightEpsilon {
		var w Weights
		if available <= 0 {
			w[0] = 1
			return w
		}
		w[ClampLayerIndex(fallback, available)] = 1
		return w
	}
	for i := range raw {
		raw[i] /= sum
	}
	return raw
}
