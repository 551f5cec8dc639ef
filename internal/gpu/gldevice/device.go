//go:build glfw

// Package gldevice implements gpu.Device on OpenGL 2.1 and gpu.Surface on a
// GLFW window. All calls must happen on the thread that owns the context.
package gldevice

import (
	"strings"

	"lifegl/internal/gpu"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

type location struct {
	program gpu.Program
	name    string
}

// Device issues GL calls against the current context.
type Device struct {
	attribs  map[location]int32
	uniforms map[location]int32
}

func newDevice() *Device {
	return &Device{attribs: map[location]int32{}, uniforms: map[location]int32{}}
}

func (d *Device) Dialect() gpu.Dialect { return gpu.DialectGLSL }

func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == gpu.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, &gpu.CompileError{Stage: stage, Log: "glCreateShader returned 0"}
	}

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		return gpu.Shader(shader), &gpu.CompileError{Stage: stage, Log: infoLog(length, func(n int32, buf *uint8) {
			gl.GetShaderInfoLog(shader, n, nil, buf)
		})}
	}
	return gpu.Shader(shader), nil
}

func (d *Device) DeleteShader(s gpu.Shader) {
	if s != 0 {
		gl.DeleteShader(uint32(s))
	}
}

func (d *Device) LinkProgram(vs, fs gpu.Shader) (gpu.Program, error) {
	prog := gl.CreateProgram()
	if prog == 0 {
		return 0, &gpu.LinkError{Log: "glCreateProgram returned 0"}
	}
	gl.AttachShader(prog, uint32(vs))
	gl.AttachShader(prog, uint32(fs))
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &length)
		return gpu.Program(prog), &gpu.LinkError{Log: infoLog(length, func(n int32, buf *uint8) {
			gl.GetProgramInfoLog(prog, n, nil, buf)
		})}
	}
	gl.DetachShader(prog, uint32(vs))
	gl.DetachShader(prog, uint32(fs))
	return gpu.Program(prog), nil
}

func (d *Device) DeleteProgram(p gpu.Program) {
	if p == 0 {
		return
	}
	for loc := range d.attribs {
		if loc.program == p {
			delete(d.attribs, loc)
		}
	}
	for loc := range d.uniforms {
		if loc.program == p {
			delete(d.uniforms, loc)
		}
	}
	gl.DeleteProgram(uint32(p))
}

func (d *Device) CreateBuffer() (gpu.Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, errors.New("glGenBuffers returned 0")
	}
	return gpu.Buffer(b), nil
}

func (d *Device) BufferData(b gpu.Buffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STREAM_DRAW)
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	if b == 0 {
		return
	}
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) UseProgram(p gpu.Program) { gl.UseProgram(uint32(p)) }

func (d *Device) VertexAttrib(p gpu.Program, b gpu.Buffer, name string, components int) {
	loc, ok := d.attribs[location{p, name}]
	if !ok {
		loc = gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
		d.attribs[location{p, name}] = loc
	}
	if loc < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), int32(components), gl.FLOAT, false, 0, nil)
}

func (d *Device) Uniform2f(p gpu.Program, name string, x, y float32) {
	loc, ok := d.uniforms[location{p, name}]
	if !ok {
		loc = gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
		d.uniforms[location{p, name}] = loc
	}
	if loc < 0 {
		return
	}
	gl.Uniform2f(loc, x, y)
}

func (d *Device) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// infoLog reads a NUL-terminated driver log of the given length.
func infoLog(length int32, read func(int32, *uint8)) string {
	if length <= 0 {
		return "(no driver log)"
	}
	log := strings.Repeat("\x00", int(length+1))
	read(length, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}
