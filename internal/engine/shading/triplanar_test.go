package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// axisSampler returns a different constant per sampled uv quadrant so tests
// can tell the three projections apart by their blended result.
type constSampler struct {
	color mgl32.Vec4
}

func (s constSampler) Sample(layer int, u, v float32) mgl32.Vec4 {
	return s.color
}

func (s constSampler) SampleScalar(layer int, u, v float32) float32 {
	return s.color.X()
}

// recordSampler records every (u, v) it is asked for.
type recordSampler struct {
	uvs [][2]float32
}

func (s *recordSampler) Sample(layer int, u, v float32) mgl32.Vec4 {
	s.uvs = append(s.uvs, [2]float32{u, v})
	return mgl32.Vec4{}
}

func TestAxisWeights_FlatNormal(t *testing.T) {
	w := axisWeights(mgl32.Vec3{0, 1, 0})
	if w != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("axisWeights(up) = %v, want (0,1,0)", w)
	}
}

func TestAxisWeights_Degenerate(t *testing.T) {
	w := axisWeights(mgl32.Vec3{})
	if w != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("axisWeights(zero) = %v, want (0,1,0)", w)
	}
}

func TestAxisWeights_SumToOne(t *testing.T) {
	w := axisWeights(mgl32.Vec3{0.3, -0.8, 0.52}.Normalize())
	sum := w.X() + w.Y() + w.Z()
	if !approx(sum, 1, 1e-5) {
		t.Errorf("axis weight sum = %f, want 1", sum)
	}
	for i := 0; i < 3; i++ {
		if w[i] < 0 {
			t.Errorf("axis weight %d negative: %f", i, w[i])
		}
	}
}

func TestTriplanarUVs_Wrap(t *testing.T) {
	// uvScale 1/8 on position 20 crosses the repeat boundary twice.
	uvX, uvY, uvZ := triplanarUVs(mgl32.Vec3{20, 4, -3}, 1.0/8, 1.0)
	for _, uv := range []mgl32.Vec2{uvX, uvY, uvZ} {
		for i := 0; i < 2; i++ {
			if uv[i] < 0 || uv[i] >= 1 {
				t.Errorf("uv component out of [0,1): %v", uv)
			}
		}
	}
	if !approx(uvY.X(), 0.5, 1e-6) {
		t.Errorf("uvY.x = %f, want 0.5", uvY.X())
	}
	if !approx(uvY.Y(), 0.625, 1e-6) {
		t.Errorf("uvY.y = %f, want 0.625", uvY.Y())
	}
}

func TestTriplanarUVs_HeightScale(t *testing.T) {
	// The vertical coordinate is scaled before the repeat division, so
	// halving heightUVScale halves vertical texture density.
	_, _, uvZ := triplanarUVs(mgl32.Vec3{0, 4, 0}, 1.0/8, 0.5)
	if !approx(uvZ.Y(), 0.25, 1e-6) {
		t.Errorf("scaled vertical uv = %f, want 0.25", uvZ.Y())
	}
}

func TestTriplanarColor_FlatNormalUsesYProjection(t *testing.T) {
	s := &recordSampler{}
	TriplanarColor(s, 0, mgl32.Vec3{3, 7, 5}, mgl32.Vec3{0, 1, 0}, 1.0/8, 1.0)

	if len(s.uvs) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(s.uvs))
	}
	// The Y projection is the second sample: (x, z) scaled and wrapped.
	uv := s.uvs[1]
	if !approx(uv[0], 3.0/8, 1e-6) || !approx(uv[1], 5.0/8, 1e-6) {
		t.Errorf("Y projection uv = %v, want (0.375, 0.625)", uv)
	}
}

func TestTriplanarColor_ConstantLayer(t *testing.T) {
	s := constSampler{color: mgl32.Vec4{0.2, 0.4, 0.6, 1}}
	got := TriplanarColor(s, 0, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.5, 0.7, -0.3}, 1.0/8, 1.0)
	// Axis weights sum to one, so a constant texture blends to itself.
	for i := 0; i < 4; i++ {
		if !approx(got[i], s.color[i], 1e-5) {
			t.Errorf("component %d = %f, want %f", i, got[i], s.color[i])
		}
	}
}

func TestTriplanarNormal_FlatMapKeepsFacing(t *testing.T) {
	// A flat tangent normal map must reproduce the face normal for any
	// axis-aligned facing, sign flips included.
	flat := constSampler{color: mgl32.Vec4{0.5, 0.5, 1, 1}}

	tests := []struct {
		name   string
		normal mgl32.Vec3
	}{
		{"up", mgl32.Vec3{0, 1, 0}},
		{"south wall", mgl32.Vec3{0, 0, 1}},
		{"north wall", mgl32.Vec3{0, 0, -1}},
		{"east wall", mgl32.Vec3{1, 0, 0}},
		{"west wall", mgl32.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TriplanarNormal(flat, 0, mgl32.Vec3{1, 2, 3}, tt.normal, 1.0/8, 1.0)
			if got.Sub(tt.normal).Len() > 1e-5 {
				t.Errorf("flat normal map on %v = %v", tt.normal, got)
			}
		})
	}
}

func TestTriplanarNormal_Normalized(t *testing.T) {
	s := constSampler{color: mgl32.Vec4{0.9, 0.3, 0.8, 1}}
	got := TriplanarNormal(s, 0, mgl32.Vec3{2, 1, 4}, mgl32.Vec3{0.4, 0.8, 0.45}, 1.0/8, 1.0)
	if !approx(got.Len(), 1, 1e-5) {
		t.Errorf("normal length = %f, want 1", got.Len())
	}
}

func TestTriplanarScalar_ConstantLayer(t *testing.T) {
	s := constSampler{color: mgl32.Vec4{0.35, 0, 0, 0}}
	got := TriplanarScalar(s, 0, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.6, 0.6, 0.5}, 1.0/8, 1.0)
	if !approx(got, 0.35, 1e-5) {
		t.Errorf("scalar = %f, want 0.35", got)
	}
}
