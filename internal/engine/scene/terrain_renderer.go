// Package scene renders the terrain with the layer blending material.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrapaint/internal/engine/material"
	"github.com/Faultbox/terrapaint/internal/engine/scene/shaders"
	"github.com/Faultbox/terrapaint/internal/engine/shader"
	"github.com/Faultbox/terrapaint/internal/engine/shading"
	"github.com/Faultbox/terrapaint/internal/engine/terrain"
	"github.com/Faultbox/terrapaint/internal/engine/texture"
)

// Sun is the directional light fed to the terrain shader.
type Sun struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
}

// DefaultSun matches the offline preview lighting.
func DefaultSun() Sun {
	return Sun{
		Direction: mgl32.Vec3{-0.4, -1, -0.3}.Normalize(),
		Ambient:   mgl32.Vec3{0.35, 0.35, 0.38},
		Diffuse:   mgl32.Vec3{0.9, 0.88, 0.82},
	}
}

// TerrainRenderer owns the GPU resources for one terrain: the compiled
// material program, the mesh buffers, the layer texture arrays and the
// splatmap texture.
type TerrainRenderer struct {
	program uint32

	locViewProj int32

	locUVScale          int32
	locLayerCount       int32
	locMapSize          int32
	locTileSize         int32
	locHeightUVScale    int32
	locHeightWorldScale int32
	locCliffBlendHeight int32
	locWallLayerIndex   int32
	locWallEnabled      int32
	locWallHasNormal    int32
	locWallHasRoughness int32

	locHasBaseColor int32
	locHasNormal    int32
	locHasRoughness int32
	locHasSplat     int32

	locDebugMode  int32
	locDebugLayer int32

	locLightDir int32
	locAmbient  int32
	locDiffuse  int32

	locBaseColorArray int32
	locNormalArray    int32
	locRoughnessArray int32
	locSplatMap       int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	baseColorTex uint32
	normalTex    uint32
	roughnessTex uint32
	splatTex     uint32

	cfg  material.Config
	caps material.Capabilities

	Debug      shading.DebugMode
	DebugLayer int

	// Bounds of the uploaded mesh, in world units.
	MinBounds [3]float32
	MaxBounds [3]float32
}

// NewTerrainRenderer compiles the terrain material program and resolves its
// uniform locations. GPU buffers are created on upload.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	tr := &TerrainRenderer{}

	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = shader.GetUniform(program, "uViewProj")

	tr.locUVScale = shader.GetUniform(program, "uUVScale")
	tr.locLayerCount = shader.GetUniform(program, "uLayerCount")
	tr.locMapSize = shader.GetUniform(program, "uMapSize")
	tr.locTileSize = shader.GetUniform(program, "uTileSize")
	tr.locHeightUVScale = shader.GetUniform(program, "uHeightUVScale")
	tr.locHeightWorldScale = shader.GetUniform(program, "uHeightWorldScale")
	tr.locCliffBlendHeight = shader.GetUniform(program, "uCliffBlendHeight")
	tr.locWallLayerIndex = shader.GetUniform(program, "uWallLayerIndex")
	tr.locWallEnabled = shader.GetUniform(program, "uWallEnabled")
	tr.locWallHasNormal = shader.GetUniform(program, "uWallHasNormal")
	tr.locWallHasRoughness = shader.GetUniform(program, "uWallHasRoughness")

	tr.locHasBaseColor = shader.GetUniform(program, "uHasBaseColor")
	tr.locHasNormal = shader.GetUniform(program, "uHasNormal")
	tr.locHasRoughness = shader.GetUniform(program, "uHasRoughness")
	tr.locHasSplat = shader.GetUniform(program, "uHasSplat")

	tr.locDebugMode = shader.GetUniform(program, "uDebugMode")
	tr.locDebugLayer = shader.GetUniform(program, "uDebugLayer")

	tr.locLightDir = shader.GetUniform(program, "uLightDir")
	tr.locAmbient = shader.GetUniform(program, "uAmbient")
	tr.locDiffuse = shader.GetUniform(program, "uDiffuse")

	tr.locBaseColorArray = shader.GetUniform(program, "uBaseColorArray")
	tr.locNormalArray = shader.GetUniform(program, "uNormalArray")
	tr.locRoughnessArray = shader.GetUniform(program, "uRoughnessArray")
	tr.locSplatMap = shader.GetUniform(program, "uSplatMap")

	return tr, nil
}

// LoadTerrain uploads the mesh, the layer texture arrays and the splatmap
// for one map, replacing any previously loaded terrain.
func (tr *TerrainRenderer) LoadTerrain(tiles *terrain.TileMap, cfg material.Config, bind material.Bindings) error {
	tr.clearTerrain()

	tr.cfg = cfg.Normalize()
	tr.caps = bind.Capabilities()

	mesh := terrain.BuildMesh(tiles)
	if len(mesh.Vertices) == 0 {
		return fmt.Errorf("terrain mesh is empty")
	}
	tr.MinBounds = mesh.Bounds.Min
	tr.MaxBounds = mesh.Bounds.Max
	tr.uploadTerrainMesh(mesh.Vertices, mesh.Indices)

	if tr.caps.HasBaseColor {
		tr.baseColorTex = uploadTextureArray(bind.BaseColor, true)
	}
	if tr.caps.HasNormal {
		tr.normalTex = uploadTextureArray(bind.Normal, true)
	}
	if tr.caps.HasRoughness {
		tr.roughnessTex = uploadTextureArray(bind.Roughness, true)
	}
	if tr.caps.HasSplat {
		tr.splatTex = uploadSplatmap(bind.Splat)
	}
	return nil
}

// UpdateSplatmap re-uploads the splatmap texture after a layer edit. The
// mesh and layer arrays are untouched.
func (tr *TerrainRenderer) UpdateSplatmap(splat *terrain.Splatmap) {
	if splat == nil {
		return
	}
	if tr.splatTex != 0 {
		gl.DeleteTextures(1, &tr.splatTex)
	}
	tr.splatTex = uploadSplatmap(splat)
	tr.caps.HasSplat = true
}

// uploadTextureArray uploads a layer stack as a GL_TEXTURE_2D_ARRAY.
func uploadTextureArray(arr *texture.Array, mipmap bool) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, texID)

	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA,
		int32(arr.Width), int32(arr.Height), int32(len(arr.Layers)),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	for i, layer := range arr.Layers {
		gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0, 0, 0, int32(i),
			int32(arr.Width), int32(arr.Height), 1,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&layer[0]))
	}

	if mipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	return texID
}

// uploadSplatmap uploads the weight texture. Linear filtering, clamp to
// edge, a single mip level: the shader samples it with textureLod 0 so
// weights never mix across mips.
func uploadSplatmap(splat *terrain.Splatmap) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(splat.Width), int32(splat.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&splat.Pix[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)

	return texID
}

func (tr *TerrainRenderer) uploadTerrainMesh(vertices []terrain.Vertex, indices []uint32) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	// TileUV (location 3): top layer index, top seam height
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, int32(vertexSize), 8*4)
	gl.EnableVertexAttribArray(3)

	// Color (location 4): packed blend data
	gl.VertexAttribPointerWithOffset(4, 4, gl.FLOAT, false, int32(vertexSize), 10*4)
	gl.EnableVertexAttribArray(4)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	tr.indexCount = int32(len(indices))
}

// Render draws the terrain with the given camera and lighting.
func (tr *TerrainRenderer) Render(viewProj mgl32.Mat4, sun Sun) {
	if tr.vao == 0 {
		return
	}

	gl.UseProgram(tr.program)

	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])

	gl.Uniform1f(tr.locUVScale, tr.cfg.UVScale)
	gl.Uniform1i(tr.locLayerCount, int32(tr.cfg.LayerCount))
	gl.Uniform2f(tr.locMapSize, tr.cfg.MapWidth, tr.cfg.MapHeight)
	gl.Uniform1f(tr.locTileSize, tr.cfg.TileSize)
	gl.Uniform1f(tr.locHeightUVScale, tr.cfg.HeightUVScale)
	gl.Uniform1f(tr.locHeightWorldScale, tr.cfg.HeightWorldScale)
	gl.Uniform1f(tr.locCliffBlendHeight, tr.cfg.CliffBlendHeight)
	gl.Uniform1i(tr.locWallLayerIndex, int32(tr.cfg.WallLayerIndex))
	gl.Uniform1i(tr.locWallEnabled, boolUniform(tr.cfg.WallEnabled))
	gl.Uniform1i(tr.locWallHasNormal, boolUniform(tr.cfg.WallHasNormal))
	gl.Uniform1i(tr.locWallHasRoughness, boolUniform(tr.cfg.WallHasRoughness))

	gl.Uniform1i(tr.locHasBaseColor, boolUniform(tr.caps.HasBaseColor))
	gl.Uniform1i(tr.locHasNormal, boolUniform(tr.caps.HasNormal))
	gl.Uniform1i(tr.locHasRoughness, boolUniform(tr.caps.HasRoughness))
	gl.Uniform1i(tr.locHasSplat, boolUniform(tr.caps.HasSplat))

	gl.Uniform1i(tr.locDebugMode, int32(tr.Debug))
	gl.Uniform1i(tr.locDebugLayer, int32(tr.DebugLayer))

	gl.Uniform3f(tr.locLightDir, sun.Direction.X(), sun.Direction.Y(), sun.Direction.Z())
	gl.Uniform3f(tr.locAmbient, sun.Ambient.X(), sun.Ambient.Y(), sun.Ambient.Z())
	gl.Uniform3f(tr.locDiffuse, sun.Diffuse.X(), sun.Diffuse.Y(), sun.Diffuse.Z())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tr.baseColorTex)
	gl.Uniform1i(tr.locBaseColorArray, 0)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tr.normalTex)
	gl.Uniform1i(tr.locNormalArray, 1)

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tr.roughnessTex)
	gl.Uniform1i(tr.locRoughnessArray, 2)

	gl.ActiveTexture(gl.TEXTURE3)
	gl.BindTexture(gl.TEXTURE_2D, tr.splatTex)
	gl.Uniform1i(tr.locSplatMap, 3)

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (tr *TerrainRenderer) clearTerrain() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	for _, tex := range []*uint32{&tr.baseColorTex, &tr.normalTex, &tr.roughnessTex, &tr.splatTex} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	tr.indexCount = 0
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clearTerrain()
	if tr.program != 0 {
		gl.DeleteProgram(tr.program)
		tr.program = 0
	}
}
