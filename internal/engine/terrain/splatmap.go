package terrain

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// splatChannels is the number of weight channels per texel. One channel per
// texture layer; four layers is an architectural limit of the weight
// encoding, not a performance choice.
const splatChannels = 4

// Splatmap is a 4-channel normalized-byte weight texture with one texel per
// tile. Channel i holds the blend weight of layer i.
type Splatmap struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA8, row-major, len = Width*Height*4
}

// BuildSplatmap converts a tile grid into a one-hot weight texture. The
// channel matching each tile's layer is set to full weight; layer indices
// outside [0,3] are clamped into range. Rows are filled in parallel; each
// texel depends only on its own tile.
func BuildSplatmap(m *TileMap) *Splatmap {
	w, h := m.Width, m.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s := &Splatmap{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*splatChannels),
	}
	if m.Width == 0 || m.Height == 0 {
		return s
	}

	workers := runtime.NumCPU()
	if workers > m.Height {
		workers = m.Height
	}
	rows := (m.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < m.Height; start += rows {
		end := start + rows
		if end > m.Height {
			end = m.Height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < m.Width; x++ {
					layer := clampLayer(m.Tiles[m.Index(x, y)].Layer)
					s.Pix[(y*s.Width+x)*splatChannels+layer] = 255
				}
			}
		}(start, end)
	}
	wg.Wait()
	return s
}

func clampLayer(layer int) int {
	if layer < 0 {
		return 0
	}
	if layer >= splatChannels {
		return splatChannels - 1
	}
	return layer
}

// At returns the raw texel at (x, y), clamped to the edge.
func (s *Splatmap) At(x, y int) [4]uint8 {
	x = clampi(x, 0, s.Width-1)
	y = clampi(y, 0, s.Height-1)
	i := (y*s.Width + x) * splatChannels
	return [4]uint8{s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]}
}

// Sample bilinearly filters the weight texture at normalized (u, v) with
// clamp-to-edge addressing, returning weights in [0, 1]. This matches the
// sampler state the renderer configures for the splatmap texture.
func (s *Splatmap) Sample(u, v float32) [4]float32 {
	fx := clampf(u, 0, 1)*float32(s.Width) - 0.5
	fy := clampf(v, 0, 1)*float32(s.Height) - 0.5

	x0 := floori(fx)
	y0 := floori(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	p00 := s.At(x0, y0)
	p10 := s.At(x0+1, y0)
	p01 := s.At(x0, y0+1)
	p11 := s.At(x0+1, y0+1)

	var out [4]float32
	for c := 0; c < splatChannels; c++ {
		top := float32(p00[c])*(1-tx) + float32(p10[c])*tx
		bot := float32(p01[c])*(1-tx) + float32(p11[c])*tx
		out[c] = (top*(1-ty) + bot*ty) / 255.0
	}
	return out
}

// SplatmapStore publishes finished splatmap builds to the renderer. A
// rebuild writes into a fresh buffer and commits it with a single pointer
// swap, so a concurrent reader always sees either the previous complete
// texture or the new one, never a torn write.
type SplatmapStore struct {
	cur atomic.Pointer[Splatmap]
}

// Rebuild builds a splatmap from the tile grid and commits it. The returned
// value is the committed build.
func (st *SplatmapStore) Rebuild(m *TileMap) *Splatmap {
	s := BuildSplatmap(m)
	st.cur.Store(s)
	return s
}

// Current returns the last committed splatmap, or nil before the first
// rebuild.
func (st *SplatmapStore) Current() *Splatmap {
	return st.cur.Load()
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floori(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}
