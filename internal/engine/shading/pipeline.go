package shading

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrapaint/internal/engine/material"
	"github.com/Faultbox/terrapaint/internal/engine/terrain"
)

// DebugMode selects a diagnostic override that bypasses lighting. Modes are
// mutually exclusive and resolved once per material instance.
type DebugMode int

const (
	DebugNone DebugMode = iota
	DebugNormals
	DebugSplatWeights
	DebugSingleLayer
	DebugRoughness
)

// Surface carries the resolved material attributes handed to the external
// lighting stage.
type Surface struct {
	BaseColor mgl32.Vec4
	Normal    mgl32.Vec3
	Roughness float32
}

// Fragment is one shading invocation's input, matching the vertex contract.
type Fragment struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Blend    terrain.VertexBlend
}

// AlphaDiscard is the externally supplied discard policy. Returning true
// drops the fragment.
type AlphaDiscard func(color mgl32.Vec4) bool

// Lighting is the externally supplied lighting evaluator.
type Lighting func(s Surface) mgl32.Vec4

// Defaults when a binding is absent and its path degrades.
var (
	defaultBaseColor = mgl32.Vec4{0.5, 0.5, 0.5, 1}
)

const defaultRoughness float32 = 0.9

// Pipeline evaluates the terrain material for one fragment at a time. Every
// invocation is independent; a Pipeline is safe for concurrent use once
// constructed.
type Pipeline struct {
	cfg  material.Config
	bind material.Bindings
	caps material.Capabilities

	// Debug selects a diagnostic override; DebugLayer is the layer shown by
	// DebugSingleLayer.
	Debug      DebugMode
	DebugLayer int

	// Discard and Light are the external alpha-discard policy and lighting
	// evaluator. Either may be nil: no discard, unlit passthrough.
	Discard AlphaDiscard
	Light   Lighting
}

// NewPipeline builds a pipeline from a material configuration and its
// texture bindings. The configuration is normalized and capability flags
// are resolved once, not per fragment.
func NewPipeline(cfg material.Config, bind material.Bindings) *Pipeline {
	return &Pipeline{
		cfg:  cfg.Normalize(),
		bind: bind,
		caps: bind.Capabilities(),
	}
}

// Config returns the normalized material configuration.
func (p *Pipeline) Config() material.Config {
	return p.cfg
}

// resolved is the intermediate state shared by the debug overrides and the
// final composition.
type resolved struct {
	surface  Surface
	weights  Weights
	rawRough float32
}

// Shade evaluates the material for one fragment. The second return is false
// when the external discard policy dropped the fragment.
func (p *Pipeline) Shade(f Fragment) (mgl32.Vec4, bool) {
	n := safeNormalize(f.Normal)

	var res resolved
	if absf(n.Y()) >= topFaceThreshold || p.cfg.AvailableLayers() == 0 {
		res = p.shadeTop(f, n)
	} else {
		res = p.shadeCliff(f, n)
	}

	switch p.Debug {
	case DebugNormals:
		nm := res.surface.Normal.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5})
		return mgl32.Vec4{nm.X(), nm.Y(), nm.Z(), 1}, true
	case DebugSplatWeights:
		w := res.weights
		return mgl32.Vec4{w[0], w[1], w[2], 1}, true
	case DebugSingleLayer:
		layer := ClampLayerIndex(p.DebugLayer, p.cfg.AvailableLayers())
		if p.caps.HasBaseColor {
			return p.triColor(layer, f.Position, n), true
		}
		return defaultBaseColor, true
	case DebugRoughness:
		r := res.rawRough
		return mgl32.Vec4{r, r, r, 1}, true
	}

	if p.Discard != nil && p.Discard(res.surface.BaseColor) {
		return mgl32.Vec4{}, false
	}
	if p.Light != nil {
		return p.Light(res.surface), true
	}
	return res.surface.BaseColor, true
}

// ShadeSurface evaluates the material and returns the resolved attributes
// without lighting, for callers that run their own evaluator.
func (p *Pipeline) ShadeSurface(f Fragment) Surface {
	n := safeNormalize(f.Normal)
	if absf(n.Y()) >= topFaceThreshold || p.cfg.AvailableLayers() == 0 {
		return p.shadeTop(f, n).surface
	}
	return p.shadeCliff(f, n).surface
}

// shadeTop blends the splatmap-weighted layers on top-facing geometry.
func (p *Pipeline) shadeTop(f Fragment, n mgl32.Vec3) resolved {
	avail := p.cfg.AvailableLayers()
	fallback := ClampLayerIndex(f.Blend.TopLayer, avail)

	var raw Weights
	if p.caps.HasSplat {
		var u, v float32
		if f.Blend.HasSeamMask {
			u, v = SeamCorrectedSplatUV(p.cfg, f.Position.X(), f.Position.Z(), f.Blend.SeamMask)
		} else {
			u, v = SplatUV(p.cfg, f.Position.X(), f.Position.Z())
		}
		raw = Weights(p.bind.Splat.Sample(u, v))
	}
	w := ResolveWeights(raw, avail, fallback)

	res := resolved{
		weights: w,
		surface: Surface{BaseColor: defaultBaseColor, Normal: n, Roughness: defaultRoughness},
	}

	layers := avail
	if layers == 0 {
		layers = 1
	}

	if p.caps.HasBaseColor {
		var col mgl32.Vec4
		for i := 0; i < layers; i++ {
			if w[i] == 0 {
				continue
			}
			col = col.Add(p.triColor(i, f.Position, n).Mul(w[i]))
		}
		res.surface.BaseColor = col
	}
	if p.caps.HasNormal {
		var wn mgl32.Vec3
		for i := 0; i < layers; i++ {
			if w[i] == 0 {
				continue
			}
			wn = wn.Add(p.triNormal(i, f.Position, n).Mul(w[i]))
		}
		res.surface.Normal = safeNormalize(wn)
	}
	if p.caps.HasRoughness {
		var avg float32
		for i := 0; i < layers; i++ {
			if w[i] == 0 {
				continue
			}
			avg += p.triScalar(i, f.Position, n) * w[i]
		}
		res.rawRough = avg
		res.surface.Roughness = RemapRoughness(avg)
	}
	return res
}

// shadeCliff blends the cliff, top and bottom sources on non-top-facing
// geometry by the height-derived factors.
func (p *Pipeline) shadeCliff(f Fragment, n mgl32.Vec3) resolved {
	avail := p.cfg.AvailableLayers()
	topLayer := ClampLayerIndex(f.Blend.TopLayer, avail)
	bottomLayer := ClampLayerIndex(f.Blend.BottomLayer, avail)

	in := CliffInput{
		SeamHeight: f.Blend.TopSeamHeight * p.cfg.HeightWorldScale,
		WorldY:     f.Position.Y(),
		HasBottom:  f.Blend.HasBottom,
		ForceCliff: f.Blend.ForceCliff,
	}
	if in.HasBottom {
		in.BottomHeight = f.Blend.BottomHeight * p.cfg.HeightWorldScale
	}
	top, bottom, cliff := CliffFactors(in, p.cfg.CliffBlendHeight)

	// Wall substitution: sub-maps fall back to the top layer when their
	// wall-specific availability flag is off.
	colorCliffLayer := topLayer
	normalCliffLayer := topLayer
	roughCliffLayer := topLayer
	if p.cfg.WallEnabled {
		wall := ClampLayerIndex(p.cfg.WallLayerIndex, avail)
		colorCliffLayer = wall
		if p.cfg.WallHasNormal {
			normalCliffLayer = wall
		}
		if p.cfg.WallHasRoughness {
			roughCliffLayer = wall
		}
	}

	res := resolved{
		surface: Surface{BaseColor: defaultBaseColor, Normal: n, Roughness: defaultRoughness},
	}
	res.weights[topLayer] = 1

	if p.caps.HasBaseColor {
		res.surface.BaseColor = blendVec4(
			p.triColor(colorCliffLayer, f.Position, n), cliff,
			p.triColor(topLayer, f.Position, n), top,
			p.triColor(bottomLayer, f.Position, n), bottom,
			in.HasBottom,
		)
	}
	if p.caps.HasNormal {
		res.surface.Normal = safeNormalize(blendVec3(
			p.triNormal(normalCliffLayer, f.Position, n), cliff,
			p.triNormal(topLayer, f.Position, n), top,
			p.triNormal(bottomLayer, f.Position, n), bottom,
			in.HasBottom,
		))
	}
	if p.caps.HasRoughness {
		avg := blendScalar(
			p.triScalar(roughCliffLayer, f.Position, n), cliff,
			p.triScalar(topLayer, f.Position, n), top,
			p.triScalar(bottomLayer, f.Position, n), bottom,
			in.HasBottom,
		)
		res.rawRough = avg
		res.surface.Roughness = RemapRoughness(avg)
	}
	return res
}

// blendVec4 accumulates weight*sample and normalizes by the total weight.
// A vanishing total falls back to the cliff sample alone.
func blendVec4(cliffS mgl32.Vec4, cliffW float32, topS mgl32.Vec4, topW float32, bottomS mgl32.Vec4, bottomW float32, hasBottom bool) mgl32.Vec4 {
	total := cliffW + topW
	acc := cliffS.Mul(cliffW).Add(topS.Mul(topW))
	if hasBottom {
		total += bottomW
		acc = acc.Add(bottomS.Mul(bottomW))
	}
	if total <= weightEpsilon {
		return cliffS
	}
	return acc.Mul(1 / total)
}

func blendVec3(cliffS mgl32.Vec3, cliffW float32, topS mgl32.Vec3, topW float32, bottomS mgl32.Vec3, bottomW float32, hasBottom bool) mgl32.Vec3 {
	total := cliffW + topW
	acc := cliffS.Mul(cliffW).Add(topS.Mul(topW))
	if hasBottom {
		total += bottomW
		acc = acc.Add(bottomS.Mul(bottomW))
	}
	if total <= weightEpsilon {
		return cliffS
	}
	return acc.Mul(1 / total)
}

func blendScalar(cliffS, cliffW, topS, topW, bottomS, bottomW float32, hasBottom bool) float32 {
	total := cliffW + topW
	acc := cliffS*cliffW + topS*topW
	if hasBottom {
		total += bottomW
		acc += bottomS * bottomW
	}
	if total <= weightEpsilon {
		return cliffS
	}
	return acc / total
}

func (p *Pipeline) triColor(layer int, pos, n mgl32.Vec3) mgl32.Vec4 {
	return TriplanarColor(p.bind.BaseColor, layer, pos, n, p.cfg.UVScale, p.cfg.HeightUVScale)
}

func (p *Pipeline) triNormal(layer int, pos, n mgl32.Vec3) mgl32.Vec3 {
	return TriplanarNormal(p.bind.Normal, layer, pos, n, p.cfg.UVScale, p.cfg.HeightUVScale)
}

func (p *Pipeline) triScalar(layer int, pos, n mgl32.Vec3) float32 {
	return TriplanarScalar(p.bind.Roughness, layer, pos, n, p.cfg.UVScale, p.cfg.HeightUVScale)
}
