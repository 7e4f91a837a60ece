// Package preview renders terrain maps offline through the CPU shading
// pipeline, without a GL context.
package preview

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrapaint/internal/engine/shading"
	"github.com/Faultbox/terrapaint/internal/engine/terrain"
)

// Light is the directional light used by the offline renders.
type Light struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
}

// DefaultLight matches the viewer's default sun.
func DefaultLight() Light {
	return Light{
		Direction: mgl32.Vec3{-0.4, -1, -0.3}.Normalize(),
		Ambient:   mgl32.Vec3{0.35, 0.35, 0.38},
		Diffuse:   mgl32.Vec3{0.9, 0.88, 0.82},
	}
}

// Lambert returns a lighting evaluator for the pipeline: ambient plus a
// diffuse term scaled down slightly by roughness.
func (l Light) Lambert() shading.Lighting {
	dir := l.Direction.Normalize().Mul(-1)
	return func(s shading.Surface) mgl32.Vec4 {
		ndl := s.Normal.Dot(dir)
		if ndl < 0 {
			ndl = 0
		}
		scale := ndl * (1 - 0.25*s.Roughness)
		r := s.BaseColor.X() * (l.Ambient.X() + l.Diffuse.X()*scale)
		g := s.BaseColor.Y() * (l.Ambient.Y() + l.Diffuse.Y()*scale)
		b := s.BaseColor.Z() * (l.Ambient.Z() + l.Diffuse.Z()*scale)
		return mgl32.Vec4{r, g, b, s.BaseColor.W()}
	}
}

// TopDown renders the map from directly above at pixelsPerTile resolution.
// Every pixel is shaded through the full material pipeline, seam masks
// included, so the output shows exactly what the top faces blend to.
func TopDown(m *terrain.TileMap, p *shading.Pipeline, pixelsPerTile int) *image.RGBA {
	if pixelsPerTile < 1 {
		pixelsPerTile = 1
	}
	w := m.Width * pixelsPerTile
	h := m.Height * pixelsPerTile
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			wx := (float32(px) + 0.5) / float32(pixelsPerTile) * terrain.TileSize
			wz := (float32(py) + 0.5) / float32(pixelsPerTile) * terrain.TileSize

			tx := px / pixelsPerTile
			tz := py / pixelsPerTile
			tile := m.At(tx, tz)
			if tile == nil {
				continue
			}

			n := terrain.NormalAt(m, wx, wz)
			frag := shading.Fragment{
				Position: mgl32.Vec3{wx, terrain.HeightAt(m, wx, wz), wz},
				Normal:   mgl32.Vec3{n[0], n[1], n[2]},
				Blend: terrain.VertexBlend{
					TopLayer:      int(tile.Layer),
					TopSeamHeight: terrain.TopHeight(m, tx, tz),
					HasSeamMask:   true,
					SeamMask:      terrain.TopBlendMask(m, tx, tz),
				},
			}
			out, ok := p.Shade(frag)
			if !ok {
				continue
			}
			img.SetRGBA(px, py, toRGBA(out))
		}
	}
	return img
}

// CrossSection renders the south-facing wall of one tile row, one vertical
// slice per pixel column, exercising the cliff blend path. Pixels above the
// surface stay transparent.
func CrossSection(m *terrain.TileMap, p *shading.Pipeline, row, pixelsPerTile int) *image.RGBA {
	if pixelsPerTile < 1 {
		pixelsPerTile = 1
	}
	if row < 0 {
		row = 0
	}
	if row > m.Height-1 {
		row = m.Height - 1
	}

	maxH := float32(0)
	for x := 0; x < m.Width; x++ {
		if h := terrain.TopHeight(m, x, row); h > maxH {
			maxH = h
		}
	}
	// One tile of headroom keeps the seam band visible.
	maxH += terrain.TileHeight

	w := m.Width * pixelsPerTile
	rows := int(maxH/terrain.TileSize*float32(pixelsPerTile)) + 1
	if w == 0 || rows == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, rows))

	// Wall faces the viewer from the south edge of the row.
	wz := (float32(row) + 1) * terrain.TileSize
	normal := mgl32.Vec3{0, 0, 1}

	for px := 0; px < w; px++ {
		wx := (float32(px) + 0.5) / float32(pixelsPerTile) * terrain.TileSize
		tx := px / pixelsPerTile
		tile := m.At(tx, row)
		if tile == nil {
			continue
		}
		top := terrain.TopHeight(m, tx, row)

		blend, ok := terrain.WallBlend(m, tx, row, terrain.RampSouth)
		if !ok {
			blend = terrain.VertexBlend{
				TopLayer:      int(tile.Layer),
				TopSeamHeight: top,
			}
		}

		for py := 0; py < rows; py++ {
			wy := (float32(rows-1-py) + 0.5) / float32(pixelsPerTile) * terrain.TileSize
			if wy > top {
				continue
			}
			frag := shading.Fragment{
				Position: mgl32.Vec3{wx, wy, wz},
				Normal:   normal,
				Blend:    blend,
			}
			out, ok := p.Shade(frag)
			if !ok {
				continue
			}
			img.SetRGBA(px, py, toRGBA(out))
		}
	}
	return img
}

func toRGBA(v mgl32.Vec4) color.RGBA {
	return color.RGBA{
		R: channel(v.X()),
		G: channel(v.Y()),
		B: channel(v.Z()),
		A: channel(v.W()),
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
