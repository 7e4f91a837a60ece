// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for terrain rendering. It
// carries the layer blending material: splatmap weights with seam
// correction on top faces, triplanar projection, and the cliff blend on
// wall faces.
//
//go:embed terrain.frag
var TerrainFragmentShader string
