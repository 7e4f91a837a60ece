package terrain

// Vertex is a terrain mesh vertex with the blend attributes the material
// consumes. TileUV and Color carry the packed VertexBlend record.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	TileUV   [2]float32
	Color    [4]float32
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// heightEpsilon decides when two neighboring top faces count as level for
// seam-mask purposes.
const heightEpsilon float32 = 0.01

// faceEpsilon is the minimum drop for a side face to be emitted.
const faceEpsilon float32 = 1e-4

// Seam mask bits, one per cardinal neighbor. A set bit means the neighbor's
// top face is level with this tile and its splat weights may blend across;
// an unset bit means sampling must stay clear of that edge.
const (
	SeamNorth uint8 = 1 << iota
	SeamSouth
	SeamWest
	SeamEast
)

// BuildMesh creates the terrain mesh for a tile map: one top quad per tile
// and a side face toward every lower neighbor. Normals stay flat so the
// material's top/cliff classification is unambiguous.
func BuildMesh(m *TileMap) *Mesh {
	b := &meshBuffer{
		bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}
	if m.Width == 0 || m.Height == 0 {
		return b.finish()
	}

	cache := make([][4]float32, m.Width*m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cache[m.Index(x, y)] = CornerHeights(m, x, y)
		}
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			appendTile(m, cache, x, y, b)
		}
	}
	return b.finish()
}

func appendTile(m *TileMap, cache [][4]float32, x, y int, b *meshBuffer) {
	tile := m.At(x, y)
	corners := cache[m.Index(x, y)]

	x0 := float32(x) * TileSize
	x1 := x0 + TileSize
	z0 := float32(y) * TileSize
	z1 := z0 + TileSize

	nw := [3]float32{x0, corners[CornerNW], z0}
	ne := [3]float32{x1, corners[CornerNE], z0}
	sw := [3]float32{x0, corners[CornerSW], z1}
	se := [3]float32{x1, corners[CornerSE], z1}

	topHeight := maxCorner(corners)

	b.pushQuad([4][3]float32{nw, sw, se, ne}, VertexBlend{
		TopLayer:      tile.Layer,
		TopSeamHeight: topHeight,
		HasSeamMask:   true,
		SeamMask:      topBlendMask(m, cache, x, y, topHeight),
	})

	for _, dir := range RampDirections {
		face, ok := sideFaceFor(m, cache, x, y, dir)
		if !ok {
			continue
		}
		b.pushQuad([4][3]float32{face.topA, face.topB, face.bottomB, face.bottomA}, face.blend)
	}
}

// sideFace describes one vertical face between a tile and a lower neighbor.
type sideFace struct {
	topA, topB       [3]float32
	bottomA, bottomB [3]float32
	blend            VertexBlend
}

// sideFaceFor computes the side face of tile (x, y) toward dir, or ok=false
// when the edge has no visible drop.
func sideFaceFor(m *TileMap, cache [][4]float32, x, y int, dir RampDirection) (sideFace, bool) {
	tile := m.At(x, y)
	if tile == nil {
		return sideFace{}, false
	}
	corners := cache[m.Index(x, y)]

	x0 := float32(x) * TileSize
	x1 := x0 + TileSize
	z0 := float32(y) * TileSize
	z1 := z0 + TileSize

	nw := [3]float32{x0, corners[CornerNW], z0}
	ne := [3]float32{x1, corners[CornerNE], z0}
	sw := [3]float32{x0, corners[CornerSW], z1}
	se := [3]float32{x1, corners[CornerSE], z1}

	dx, dy := dir.Offset()
	neighbor := m.At(x+dx, y+dy)
	var neighborCorners [4]float32
	if neighbor != nil {
		neighborCorners = cache[m.Index(x+dx, y+dy)]
	}

	var f sideFace
	switch dir {
	case RampNorth:
		f.topA, f.topB = nw, ne
		aY, bY := float32(0), float32(0)
		if neighbor != nil {
			aY, bY = neighborCorners[CornerSW], neighborCorners[CornerSE]
		}
		f.bottomA = [3]float32{x0, minf(aY, nw[1]), z0}
		f.bottomB = [3]float32{x1, minf(bY, ne[1]), z0}
	case RampSouth:
		f.topA, f.topB = se, sw
		aY, bY := float32(0), float32(0)
		if neighbor != nil {
			aY, bY = neighborCorners[CornerNE], neighborCorners[CornerNW]
		}
		f.bottomA = [3]float32{x1, minf(aY, se[1]), z1}
		f.bottomB = [3]float32{x0, minf(bY, sw[1]), z1}
	case RampWest:
		f.topA, f.topB = sw, nw
		aY, bY := float32(0), float32(0)
		if neighbor != nil {
			aY, bY = neighborCorners[CornerSE], neighborCorners[CornerNE]
		}
		f.bottomA = [3]float32{x0, minf(aY, sw[1]), z1}
		f.bottomB = [3]float32{x0, minf(bY, nw[1]), z0}
	case RampEast:
		f.topA, f.topB = ne, se
		aY, bY := float32(0), float32(0)
		if neighbor != nil {
			aY, bY = neighborCorners[CornerNW], neighborCorners[CornerSW]
		}
		f.bottomA = [3]float32{x1, minf(aY, ne[1]), z0}
		f.bottomB = [3]float32{x1, minf(bY, se[1]), z1}
	default:
		return sideFace{}, false
	}

	dropA := f.topA[1] - f.bottomA[1]
	dropB := f.topB[1] - f.bottomB[1]
	if dropA < faceEpsilon && dropB < faceEpsilon {
		return sideFace{}, false
	}

	f.blend = VertexBlend{
		TopLayer:      tile.Layer,
		TopSeamHeight: maxf(f.topA[1], f.topB[1]),
	}
	if neighbor != nil {
		f.blend.HasBottom = true
		f.blend.BottomLayer = neighbor.Layer
		f.blend.BottomHeight = maxf(f.bottomA[1], f.bottomB[1])
	}
	if tile.Kind == KindRamp || (neighbor != nil && neighbor.Kind == KindRamp) {
		f.blend.ForceCliff = dropA > faceEpsilon || dropB > faceEpsilon
	}
	return f, true
}

// WallBlend returns the blend record of the side face of tile (x, y) toward
// dir, for callers that evaluate cliff shading without a mesh.
func WallBlend(m *TileMap, x, y int, dir RampDirection) (VertexBlend, bool) {
	if m.Width == 0 || m.Height == 0 {
		return VertexBlend{}, false
	}
	cache := make([][4]float32, m.Width*m.Height)
	for ty := 0; ty < m.Height; ty++ {
		for tx := 0; tx < m.Width; tx++ {
			cache[m.Index(tx, ty)] = CornerHeights(m, tx, ty)
		}
	}
	face, ok := sideFaceFor(m, cache, x, y, dir)
	if !ok {
		return VertexBlend{}, false
	}
	return face.blend, true
}

// TopBlendMask computes the seam mask of tile (x, y): a bit per cardinal
// neighbor whose top face is level with this tile.
func TopBlendMask(m *TileMap, x, y int) uint8 {
	if !m.InBounds(x, y) {
		return 0
	}
	cache := make([][4]float32, m.Width*m.Height)
	for ty := 0; ty < m.Height; ty++ {
		for tx := 0; tx < m.Width; tx++ {
			cache[m.Index(tx, ty)] = CornerHeights(m, tx, ty)
		}
	}
	return topBlendMask(m, cache, x, y, maxCorner(cache[m.Index(x, y)]))
}

func topBlendMask(m *TileMap, cache [][4]float32, x, y int, topHeight float32) uint8 {
	var mask uint8
	if y > 0 && level(topHeight, cache[m.Index(x, y-1)]) {
		mask |= SeamNorth
	}
	if y+1 < m.Height && level(topHeight, cache[m.Index(x, y+1)]) {
		mask |= SeamSouth
	}
	if x > 0 && level(topHeight, cache[m.Index(x-1, y)]) {
		mask |= SeamWest
	}
	if x+1 < m.Width && level(topHeight, cache[m.Index(x+1, y)]) {
		mask |= SeamEast
	}
	return mask
}

func level(topHeight float32, neighbor [4]float32) bool {
	d := topHeight - maxCorner(neighbor)
	if d < 0 {
		d = -d
	}
	return d < heightEpsilon
}

// meshBuffer accumulates quads into vertex/index arrays.
type meshBuffer struct {
	vertices []Vertex
	indices  []uint32
	next     uint32
	bounds   Bounds
}

// pushQuad appends two triangles for verts [a, b, c, d] with flat normals
// and the packed blend record on every vertex.
func (b *meshBuffer) pushQuad(verts [4][3]float32, blend VertexBlend) {
	color, uv1 := blend.Pack()
	b.pushTriangle(verts[0], verts[1], verts[2], color, uv1)
	b.pushTriangle(verts[0], verts[2], verts[3], color, uv1)
}

func (b *meshBuffer) pushTriangle(p0, p1, p2 [3]float32, color [4]float32, uv1 [2]float32) {
	e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := normalize3(cross3(e1, e2))

	for _, p := range [3][3]float32{p0, p1, p2} {
		b.vertices = append(b.vertices, Vertex{
			Position: p,
			Normal:   n,
			TileUV:   uv1,
			Color:    color,
		})
		b.grow(p)
	}
	b.indices = append(b.indices, b.next, b.next+1, b.next+2)
	b.next += 3
}

func (b *meshBuffer) grow(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.bounds.Min[i] {
			b.bounds.Min[i] = p[i]
		}
		if p[i] > b.bounds.Max[i] {
			b.bounds.Max[i] = p[i]
		}
	}
}

func (b *meshBuffer) finish() *Mesh {
	return &Mesh{
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   b.bounds,
	}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
