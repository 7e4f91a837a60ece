package shading

import (
	"testing"

	"github.com/Faultbox/terrapaint/internal/engine/material"
)

func TestDecodeBlendMask(t *testing.T) {
	tests := []struct {
		name string
		v    float32
		want uint8
	}{
		{"zero", 0, 0},
		{"all bits", 15, 15},
		{"rounds down", 3.4, 3},
		{"rounds up", 5.6, 6},
		{"negative sentinel", -1, 0},
		{"negative mask sentinel", -2, 0},
		{"high bits dropped", 16, 0},
		{"high bits dropped with low", 21, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeBlendMask(tt.v); got != tt.want {
				t.Errorf("DecodeBlendMask(%f) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}

func testConfig() material.Config {
	return material.Config{
		UVScale:          1.0 / 8,
		LayerCount:       4,
		MapWidth:         64,
		MapHeight:        64,
		TileSize:         2,
		HeightUVScale:    1,
		HeightWorldScale: 1,
		CliffBlendHeight: 0.2,
	}.Normalize()
}

func TestSplatUV(t *testing.T) {
	cfg := testConfig()

	u, v := SplatUV(cfg, 10.5, 64)
	if !approx(u, 10.5/128, 1e-6) {
		t.Errorf("u = %f, want %f", u, 10.5/128)
	}
	if !approx(v, 0.5, 1e-6) {
		t.Errorf("v = %f, want 0.5", v)
	}
}

func TestSplatUV_Clamped(t *testing.T) {
	cfg := testConfig()

	if u, _ := SplatUV(cfg, -5, 0); u != 0 {
		t.Errorf("u below map = %f, want 0", u)
	}
	if u, _ := SplatUV(cfg, 1000, 0); u != 1 {
		t.Errorf("u beyond map = %f, want 1", u)
	}
}

func TestSeamCorrectedSplatUV_AllBitsMatchPlain(t *testing.T) {
	cfg := testConfig()
	mask := maskNorth | maskSouth | maskWest | maskEast

	for _, pos := range [][2]float32{{10.5, 64}, {3.1, 7.9}, {127.2, 0.3}} {
		wantU, wantV := SplatUV(cfg, pos[0], pos[1])
		u, v := SeamCorrectedSplatUV(cfg, pos[0], pos[1], mask)
		if !approx(u, wantU, 1e-6) || !approx(v, wantV, 1e-6) {
			t.Errorf("pos %v: seam-corrected (%f, %f) != plain (%f, %f)", pos, u, v, wantU, wantV)
		}
	}
}

func TestSeamCorrectedSplatUV_UnsetBitsClampToMidline(t *testing.T) {
	cfg := testConfig()

	// World 10.5 sits in tile 5 at fraction 0.25; with the west bit unset the
	// fraction pulls to the 0.5 midline.
	u, _ := SeamCorrectedSplatUV(cfg, 10.5, 64, maskNorth|maskSouth|maskEast)
	if !approx(u, 5.5/64, 1e-6) {
		t.Errorf("west-blocked u = %f, want %f", u, 5.5/64)
	}

	// Fraction 0.75 with the east bit unset pulls back to 0.5.
	u, _ = SeamCorrectedSplatUV(cfg, 11.5, 64, maskNorth|maskSouth|maskWest)
	if !approx(u, 5.5/64, 1e-6) {
		t.Errorf("east-blocked u = %f, want %f", u, 5.5/64)
	}

	// An unset bit on the far side leaves a near-side fraction alone.
	u, _ = SeamCorrectedSplatUV(cfg, 10.5, 64, maskNorth|maskSouth|maskWest)
	if !approx(u, 5.25/64, 1e-6) {
		t.Errorf("east-blocked near-west u = %f, want %f", u, 5.25/64)
	}

	// Vertical axis follows the north/south bits the same way.
	_, v := SeamCorrectedSplatUV(cfg, 10.5, 64.5, maskSouth|maskWest|maskEast)
	if !approx(v, 32.5/64, 1e-6) {
		t.Errorf("north-blocked v = %f, want %f", v, 32.5/64)
	}
}

func TestSeamCorrectedSplatUV_EmptyMask(t *testing.T) {
	cfg := testConfig()

	// No level neighbor at all: every fraction saturates at the tile center.
	u, v := SeamCorrectedSplatUV(cfg, 10.1, 65.9, 0)
	if !approx(u, 5.5/64, 1e-6) {
		t.Errorf("u = %f, want tile center %f", u, 5.5/64)
	}
	if !approx(v, 32.5/64, 1e-6) {
		t.Errorf("v = %f, want tile center %f", v, 32.5/64)
	}
}
