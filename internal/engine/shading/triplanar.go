package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LayerSampler provides filtered texel access for one layer of a layered
// color texture.
type LayerSampler interface {
	Sample(layer int, u, v float32) mgl32.Vec4
}

// ScalarSampler provides single-channel texel access, for maps like
// roughness.
type ScalarSampler interface {
	SampleScalar(layer int, u, v float32) float32
}

// axisWeights converts a surface normal into per-axis projection weights
// |n| / (|nx|+|ny|+|nz|). A degenerate normal projects straight down the Y
// axis.
func axisWeights(n mgl32.Vec3) mgl32.Vec3 {
	a := mgl32.Vec3{absf(n.X()), absf(n.Y()), absf(n.Z())}
	sum := a.X() + a.Y() + a.Z()
	if sum < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return a.Mul(1 / sum)
}

// triplanarUVs projects a world position onto the three axis planes. The
// vertical coordinate is pre-scaled by heightUVScale so vertical texture
// density is decoupled from horizontal, then every coordinate wraps into
// [0, 1).
func triplanarUVs(pos mgl32.Vec3, uvScale, heightUVScale float32) (uvX, uvY, uvZ mgl32.Vec2) {
	h := pos.Y() * heightUVScale
	uvX = mgl32.Vec2{fract(pos.Z() * uvScale), fract(h * uvScale)}
	uvY = mgl32.Vec2{fract(pos.X() * uvScale), fract(pos.Z() * uvScale)}
	uvZ = mgl32.Vec2{fract(pos.X() * uvScale), fract(h * uvScale)}
	return uvX, uvY, uvZ
}

// TriplanarColor samples a color layer along the three axis projections and
// blends the results by normal-derived axis weights.
func TriplanarColor(s LayerSampler, layer int, pos, normal mgl32.Vec3, uvScale, heightUVScale float32) mgl32.Vec4 {
	n := safeNormalize(normal)
	w := axisWeights(n)
	uvX, uvY, uvZ := triplanarUVs(pos, uvScale, heightUVScale)

	cx := s.Sample(layer, uvX.X(), uvX.Y())
	cy := s.Sample(layer, uvY.X(), uvY.Y())
	cz := s.Sample(layer, uvZ.X(), uvZ.Y())

	return cx.Mul(w.X()).Add(cy.Mul(w.Y())).Add(cz.Mul(w.Z()))
}

// TriplanarNormal samples a tangent-space normal layer along the three axis
// projections, reorients each sample into world space with sign flips from
// the facing of its axis, and blends by axis weights.
func TriplanarNormal(s LayerSampler, layer int, pos, normal mgl32.Vec3, uvScale, heightUVScale float32) mgl32.Vec3 {
	n := safeNormalize(normal)
	w := axisWeights(n)
	uvX, uvY, uvZ := triplanarUVs(pos, uvScale, heightUVScale)

	tx := unpackNormal(s.Sample(layer, uvX.X(), uvX.Y()))
	ty := unpackNormal(s.Sample(layer, uvY.X(), uvY.Y()))
	tz := unpackNormal(s.Sample(layer, uvZ.X(), uvZ.Y()))

	// Flip the outward component so each projection faces the way the
	// surface does, then swizzle into world axes.
	tx[2] *= signf(n.X())
	ty[2] *= signf(n.Y())
	tz[2] *= signf(n.Z())

	wx := mgl32.Vec3{tx.Z(), tx.Y(), tx.X()}
	wy := mgl32.Vec3{ty.X(), ty.Z(), ty.Y()}
	wz := mgl32.Vec3{tz.X(), tz.Y(), tz.Z()}

	blended := wx.Mul(w.X()).Add(wy.Mul(w.Y())).Add(wz.Mul(w.Z()))
	return safeNormalize(blended)
}

// TriplanarScalar samples a single-channel layer along the three axis
// projections and blends by axis weights.
func TriplanarScalar(s ScalarSampler, layer int, pos, normal mgl32.Vec3, uvScale, heightUVScale float32) float32 {
	n := safeNormalize(normal)
	w := axisWeights(n)
	uvX, uvY, uvZ := triplanarUVs(pos, uvScale, heightUVScale)

	vx := s.SampleScalar(layer, uvX.X(), uvX.Y())
	vy := s.SampleScalar(layer, uvY.X(), uvY.Y())
	vz := s.SampleScalar(layer, uvZ.X(), uvZ.Y())

	return vx*w.X() + vy*w.Y() + vz*w.Z()
}

// unpackNormal maps an RGB normal map sample from [0, 1] to [-1, 1].
func unpackNormal(c mgl32.Vec4) mgl32.Vec3 {
	return mgl32.Vec3{c.X()*2 - 1, c.Y()*2 - 1, c.Z()*2 - 1}
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}

func fract(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func signf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
