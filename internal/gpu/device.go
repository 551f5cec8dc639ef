// Package gpu defines the narrow device contract the render pipeline drives:
// shader compile and link, one vertex buffer, two uniforms and a triangle
// draw. Backends live in subpackages behind build tags.
package gpu

import "fmt"

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Dialect names the shading language a Device compiles.
type Dialect string

const (
	DialectGLSL Dialect = "glsl"
	DialectKage Dialect = "kage"
)

// Handles are opaque and non-zero when valid. The zero value means absent and
// is accepted by every Delete method.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Device is a GPU drawing context bound to a surface.
type Device interface {
	Dialect() Dialect

	// CompileShader returns a *CompileError carrying the driver log on
	// failure. The returned handle may be non-zero even when err != nil and
	// must still be deleted.
	CompileShader(stage Stage, source string) (Shader, error)
	DeleteShader(Shader)
	// LinkProgram returns a *LinkError carrying the driver log on failure.
	LinkProgram(vs, fs Shader) (Program, error)
	DeleteProgram(Program)

	CreateBuffer() (Buffer, error)
	// BufferData replaces the whole contents of b.
	BufferData(b Buffer, data []float32)
	DeleteBuffer(Buffer)

	Viewport(width, height int)
	Clear(r, g, b, a float32)
	UseProgram(Program)
	// VertexAttrib feeds b to the named attribute of p as tightly packed
	// float32 tuples of the given width.
	VertexAttrib(p Program, b Buffer, name string, components int)
	Uniform2f(p Program, name string, x, y float32)
	DrawTriangles(first, count int)
}

// Surface is a drawable output target.
type Surface interface {
	// Device acquires the drawing context. It fails when the surface cannot
	// provide one.
	Device() (Device, error)
	// Size returns the drawable size in pixels.
	Size() (width, height int)
}
