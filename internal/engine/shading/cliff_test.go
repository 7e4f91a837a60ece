package shading

import "testing"

func TestCliffFactors_TopBand(t *testing.T) {
	in := CliffInput{SeamHeight: 1.6, WorldY: 1.6}
	top, bottom, cliff := CliffFactors(in, 0.2)
	if !approx(top, 1, 1e-6) || bottom != 0 || !approx(cliff, 0, 1e-6) {
		t.Errorf("at seam: top=%f bottom=%f cliff=%f, want 1 0 0", top, bottom, cliff)
	}

	// Halfway through the blend band.
	in.WorldY = 1.5
	top, _, cliff = CliffFactors(in, 0.2)
	if !approx(top, 0.5, 1e-6) || !approx(cliff, 0.5, 1e-6) {
		t.Errorf("mid band: top=%f cliff=%f, want 0.5 0.5", top, cliff)
	}

	// At and below the bottom of the band the top layer is gone.
	in.WorldY = 1.4
	top, _, cliff = CliffFactors(in, 0.2)
	if top != 0 || !approx(cliff, 1, 1e-6) {
		t.Errorf("below band: top=%f cliff=%f, want 0 1", top, cliff)
	}
}

func TestCliffFactors_BottomBand(t *testing.T) {
	in := CliffInput{
		SeamHeight:   1.6,
		HasBottom:    true,
		BottomHeight: 0.8,
	}

	in.WorldY = 0.8
	top, bottom, cliff := CliffFactors(in, 0.2)
	if top != 0 || !approx(bottom, 1, 1e-6) || !approx(cliff, 0, 1e-6) {
		t.Errorf("at bottom seam: top=%f bottom=%f cliff=%f, want 0 1 0", top, bottom, cliff)
	}

	in.WorldY = 0.9
	_, bottom, cliff = CliffFactors(in, 0.2)
	if !approx(bottom, 0.5, 1e-6) || !approx(cliff, 0.5, 1e-6) {
		t.Errorf("mid bottom band: bottom=%f cliff=%f, want 0.5 0.5", bottom, cliff)
	}

	// Between the bands only the cliff source contributes.
	in.WorldY = 1.2
	top, bottom, cliff = CliffFactors(in, 0.2)
	if top != 0 || bottom != 0 || !approx(cliff, 1, 1e-6) {
		t.Errorf("between bands: top=%f bottom=%f cliff=%f, want 0 0 1", top, bottom, cliff)
	}
}

func TestCliffFactors_NoBottomIgnoresBottomBand(t *testing.T) {
	in := CliffInput{SeamHeight: 1.6, WorldY: 0, BottomHeight: 0}
	_, bottom, cliff := CliffFactors(in, 0.2)
	if bottom != 0 || !approx(cliff, 1, 1e-6) {
		t.Errorf("no bottom: bottom=%f cliff=%f, want 0 1", bottom, cliff)
	}
}

func TestCliffFactors_OverlappingBandsClampCliff(t *testing.T) {
	// A drop shorter than the blend height makes both bands overlap; the
	// cliff weight must clamp at zero rather than go negative.
	in := CliffInput{
		SeamHeight:   1.0,
		WorldY:       0.95,
		HasBottom:    true,
		BottomHeight: 0.9,
	}
	top, bottom, cliff := CliffFactors(in, 0.2)
	if cliff != 0 {
		t.Errorf("overlap cliff = %f, want 0", cliff)
	}
	if top <= 0 || bottom <= 0 {
		t.Errorf("overlap top=%f bottom=%f, want both positive", top, bottom)
	}
}

func TestCliffFactors_ForceCliff(t *testing.T) {
	in := CliffInput{
		SeamHeight:   1.6,
		WorldY:       1.6, // would be pure top
		HasBottom:    true,
		BottomHeight: 1.55,
		ForceCliff:   true,
	}
	top, bottom, cliff := CliffFactors(in, 0.2)
	if top != 0 || bottom != 0 || cliff != 1 {
		t.Errorf("force cliff: top=%f bottom=%f cliff=%f, want 0 0 1", top, bottom, cliff)
	}
}

func TestRemapRoughness(t *testing.T) {
	tests := []struct {
		name string
		avg  float32
		want float32
	}{
		{"zero maps to range min", 0, 0.2},
		{"one maps to range max", 1, 0.9},
		{"midpoint", 0.5, 0.55},
		{"negative clamps first", -2, 0.2},
		{"above one clamps first", 3, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemapRoughness(tt.avg); !approx(got, tt.want, 1e-6) {
				t.Errorf("RemapRoughness(%f) = %f, want %f", tt.avg, got, tt.want)
			}
		})
	}
}
