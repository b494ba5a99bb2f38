// Package assets embeds the default clock-face shaders.
package assets

import "embed"

// Paths of the default shader pair inside FS.
const (
	VertexShader   = "shaders/vertex.glsl"
	FragmentShader = "shaders/circle.frag"
)

//go:embed shaders
var FS embed.FS
