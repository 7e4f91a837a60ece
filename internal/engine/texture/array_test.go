package texture

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewArray_RequiresLayers(t *testing.T) {
	if _, err := NewArray(nil); err == nil {
		t.Error("expected error for empty layer list")
	}
}

func TestNewArray_RescalesMismatchedLayers(t *testing.T) {
	a, err := NewArray([]*image.RGBA{
		solidImage(4, 4, color.RGBA{255, 0, 0, 255}),
		solidImage(8, 2, color.RGBA{0, 255, 0, 255}),
	})
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	if a.Width != 4 || a.Height != 4 {
		t.Fatalf("array size = %dx%d, want first layer's 4x4", a.Width, a.Height)
	}
	if a.LayerCount() != 2 {
		t.Fatalf("layer count = %d, want 2", a.LayerCount())
	}

	// The rescaled solid layer keeps its color.
	got := a.Sample(1, 0.5, 0.5)
	if !near(got.Y(), 1) || !near(got.X(), 0) {
		t.Errorf("rescaled layer sample = %v, want green", got)
	}
}

func TestArraySample_TexelCenter(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	a, err := NewArray([]*image.RGBA{img})
	if err != nil {
		t.Fatal(err)
	}

	got := a.Sample(0, 0.25, 0.25)
	if !near(got.X(), 1) || !near(got.Y(), 0) {
		t.Errorf("texel center = %v, want red", got)
	}

	// The image center averages all four texels.
	got = a.Sample(0, 0.5, 0.5)
	if !near(got.X(), 0.5) || !near(got.Y(), 0.5) || !near(got.Z(), 0.5) {
		t.Errorf("image center = %v, want (0.5, 0.5, 0.5)", got)
	}
}

func TestArraySample_RepeatWrap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})

	a, err := NewArray([]*image.RGBA{img})
	if err != nil {
		t.Fatal(err)
	}

	// One repeat to the right and one to the left sample the same texel.
	base := a.Sample(0, 0.25, 0.5)
	right := a.Sample(0, 1.25, 0.5)
	left := a.Sample(0, -0.75, 0.5)
	if base != right || base != left {
		t.Errorf("wrap mismatch: base %v, right %v, left %v", base, right, left)
	}
}

func TestArraySample_LayerClamp(t *testing.T) {
	a, err := NewArray([]*image.RGBA{
		solidImage(2, 2, color.RGBA{255, 0, 0, 255}),
		solidImage(2, 2, color.RGBA{0, 255, 0, 255}),
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Sample(9, 0.5, 0.5); !near(got.Y(), 1) {
		t.Errorf("high layer = %v, want clamp to last (green)", got)
	}
	if got := a.Sample(-3, 0.5, 0.5); !near(got.X(), 1) {
		t.Errorf("negative layer = %v, want clamp to first (red)", got)
	}
}

func TestSampleScalar(t *testing.T) {
	a, err := NewArray([]*image.RGBA{solidImage(2, 2, color.RGBA{128, 0, 0, 255})})
	if err != nil {
		t.Fatal(err)
	}
	got := a.SampleScalar(0, 0.5, 0.5)
	want := float32(128) / 255
	if !near(got, want) {
		t.Errorf("scalar = %f, want %f", got, want)
	}
}

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= 1e-4
}
