package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// LoadRGBA reads and decodes an image file into RGBA. TGA files use the
// package decoder; PNG and JPEG go through the stdlib registry.
func LoadRGBA(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture %s: %w", path, err)
	}

	var img image.Image
	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}
	return ImageToRGBA(img), nil
}

// LoadArray loads the named layer files from dir into a texture array.
// Missing files are reported; the caller decides whether the map type is
// optional.
func LoadArray(dir string, names []string) (*Array, error) {
	layers := make([]*image.RGBA, 0, len(names))
	for _, name := range names {
		img, err := LoadRGBA(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		layers = append(layers, img)
	}
	return NewArray(layers)
}
