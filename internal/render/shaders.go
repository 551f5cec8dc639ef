package render

import "lifegl/internal/gpu"

// Names shared by the shader sources and the pipeline.
const (
	AttribCell    = "cell"
	UniformScale  = "scale"
	UniformOffset = "offset"
)

// Sources holds the program text for one dialect.
type Sources struct {
	Vertex   string
	Fragment string
}

// For returns the source of the given stage.
func (s Sources) For(stage gpu.Stage) string {
	if stage == gpu.StageVertex {
		return s.Vertex
	}
	return s.Fragment
}

// SourcesFor returns the cell program in the requested dialect. Unknown
// dialects get GLSL.
func SourcesFor(d gpu.Dialect) Sources {
	if d == gpu.DialectKage {
		return Sources{Vertex: kageVertex, Fragment: kageFragment}
	}
	return Sources{Vertex: glslVertex, Fragment: glslFragment}
}

// Color is selected per vertex; all six vertices of a cell carry the same
// flag so the interpolated color is flat.
const glslVertex = `#version 120

attribute vec3 cell;

uniform vec2 scale;
uniform vec2 offset;

varying vec4 color;

void main() {
	if (cell.z > 0.0) {
		color = vec4(1.0, 1.0, 1.0, 1.0);
	} else {
		color = vec4(0.0, 0.0, 0.0, 1.0);
	}
	gl_Position = vec4(cell.xy * scale + offset, 0.0, 1.0);
}
`

const glslFragment = `#version 120

varying vec4 color;

void main() {
	gl_FragColor = color;
}
`

// ebiten has no programmable vertex stage. The directive selects the
// device's built-in CPU program with the same inputs and math as glslVertex.
const kageVertex = `//kage:vertex cell
`

const kageFragment = `package main

func Fragment(position vec4, texCoord vec2, color vec4) vec4 {
	return color
}
`
