// Package assets embeds the WGSL shaders shipped with the binary.
package assets

import "embed"

// Shaders holds every file under shaders/. Load it through shader.NewLibrary.
//
//go:embed shaders/*.wgsl
var Shaders embed.FS

// TriangleShader is the path of the triangle shader within Shaders.
const TriangleShader = "shaders/triangle.wgsl"
