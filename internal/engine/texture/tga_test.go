package texture

import (
	"image/color"
	"testing"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, width, height, bpp int, descriptor byte) []byte {
	h := make([]byte, 18)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = byte(bpp)
	h[17] = descriptor
	return h
}

func TestDecodeTGA_Uncompressed24(t *testing.T) {
	// 2x1, top-to-bottom, pixels stored BGR: pure blue then pure red.
	data := append(tgaHeader(TGATypeUncompressed, 2, 1, 24, 0x20),
		255, 0, 0,
		0, 0, 255,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := ImageToRGBA(img)

	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel (0,0) = %v, want blue", got)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (1,0) = %v, want red", got)
	}
}

func TestDecodeTGA_BottomToTop(t *testing.T) {
	// Without the top-to-bottom bit the first stored row is the bottom row.
	data := append(tgaHeader(TGATypeUncompressed, 1, 2, 24, 0),
		0, 255, 0, // green, stored first -> bottom
		0, 0, 255, // red -> top
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := ImageToRGBA(img)

	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("top pixel = %v, want red", got)
	}
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("bottom pixel = %v, want green", got)
	}
}

func TestDecodeTGA_RLE32(t *testing.T) {
	// 3x1: an RLE packet repeating one BGRA pixel twice, then a raw packet
	// with one pixel.
	data := append(tgaHeader(TGATypeRLE, 3, 1, 32, 0x20),
		0x81, 255, 0, 0, 128, // RLE x2: blue, half alpha
		0x00, 0, 255, 0, 255, // raw x1: green
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := ImageToRGBA(img)

	want := color.RGBA{0, 0, 255, 128}
	if got := rgba.RGBAAt(0, 0); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
	if got := rgba.RGBAAt(1, 0); got != want {
		t.Errorf("pixel (1,0) = %v, want %v", got, want)
	}
	if got := rgba.RGBAAt(2, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel (2,0) = %v, want green", got)
	}
}

func TestDecodeTGA_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			h := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0)
			h[1] = 1
			return append(h, 0, 0, 0)
		}()},
		{"unsupported type", append(tgaHeader(3, 1, 1, 24, 0), 0, 0, 0)},
		{"unsupported depth", append(tgaHeader(TGATypeUncompressed, 1, 1, 16, 0), 0, 0)},
		{"truncated pixels", tgaHeader(TGATypeUncompressed, 4, 4, 24, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}
