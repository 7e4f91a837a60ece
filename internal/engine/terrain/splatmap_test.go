package terrain

import (
	"sync"
	"testing"
)

func TestBuildSplatmap_OneHot(t *testing.T) {
	m := NewTileMap(3, 2)
	m.Set(0, 0, Tile{Layer: 0})
	m.Set(1, 0, Tile{Layer: 1})
	m.Set(2, 0, Tile{Layer: 2})
	m.Set(0, 1, Tile{Layer: 3})
	m.Set(1, 1, Tile{Layer: 7})  // clamps to 3
	m.Set(2, 1, Tile{Layer: -2}) // clamps to 0

	s := BuildSplatmap(m)
	if s.Width != 3 || s.Height != 2 {
		t.Fatalf("splatmap size = %dx%d, want 3x2", s.Width, s.Height)
	}

	tests := []struct {
		x, y    int
		channel int
	}{
		{0, 0, 0}, {1, 0, 1}, {2, 0, 2},
		{0, 1, 3}, {1, 1, 3}, {2, 1, 0},
	}
	for _, tt := range tests {
		texel := s.At(tt.x, tt.y)
		for c := 0; c < 4; c++ {
			want := uint8(0)
			if c == tt.channel {
				want = 255
			}
			if texel[c] != want {
				t.Errorf("texel (%d,%d) channel %d = %d, want %d", tt.x, tt.y, c, texel[c], want)
			}
		}
	}
}

func TestBuildSplatmap_EmptyMap(t *testing.T) {
	s := BuildSplatmap(NewTileMap(0, 0))
	if s.Width != 1 || s.Height != 1 {
		t.Errorf("empty map splat = %dx%d, want 1x1", s.Width, s.Height)
	}
	if s.At(0, 0) != [4]uint8{} {
		t.Errorf("empty map texel = %v, want zeros", s.At(0, 0))
	}
}

func TestSplatmap_SampleTexelCenter(t *testing.T) {
	m := NewTileMap(2, 1)
	m.Set(0, 0, Tile{Layer: 0})
	m.Set(1, 0, Tile{Layer: 1})
	s := BuildSplatmap(m)

	// Texel centers return the one-hot weight exactly.
	w := s.Sample(0.25, 0.5)
	if w[0] != 1 || w[1] != 0 {
		t.Errorf("left texel center = %v, want (1,0,0,0)", w)
	}

	// The midpoint between the two texels splits the weight evenly.
	w = s.Sample(0.5, 0.5)
	if !approxf(w[0], 0.5, 1e-5) || !approxf(w[1], 0.5, 1e-5) {
		t.Errorf("texel midpoint = %v, want (0.5,0.5,0,0)", w)
	}
}

func TestSplatmap_SampleClampsToEdge(t *testing.T) {
	m := NewTileMap(2, 1)
	m.Set(0, 0, Tile{Layer: 2})
	m.Set(1, 0, Tile{Layer: 3})
	s := BuildSplatmap(m)

	w := s.Sample(0, 0)
	if w[2] != 1 {
		t.Errorf("corner sample = %v, want full layer 2", w)
	}
	w = s.Sample(1, 1)
	if w[3] != 1 {
		t.Errorf("far corner sample = %v, want full layer 3", w)
	}
}

func TestSplatmapStore_CommitIsAtomic(t *testing.T) {
	store := &SplatmapStore{}
	if store.Current() != nil {
		t.Fatal("fresh store should have no splatmap")
	}

	m := NewTileMap(8, 8)
	first := store.Rebuild(m)
	if store.Current() != first {
		t.Fatal("Current should return the committed build")
	}

	// Concurrent readers must only ever observe fully built snapshots:
	// every texel of a one-hot splatmap sums to 255.
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := store.Current()
				for y := 0; y < s.Height; y++ {
					for x := 0; x < s.Width; x++ {
						texel := s.At(x, y)
						sum := int(texel[0]) + int(texel[1]) + int(texel[2]) + int(texel[3])
						if sum != 255 {
							t.Errorf("torn texel (%d,%d): %v", x, y, texel)
							return
						}
					}
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		layer := i % 4
		for j := range m.Tiles {
			m.Tiles[j].Layer = layer
		}
		store.Rebuild(m)
	}
	close(stop)
	wg.Wait()
}

func approxf(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
