// Package gputest provides an in-memory gpu.Device that records every call,
// for exercising the render pipeline without a GPU.
package gputest

import (
	"fmt"
	"slices"

	"lifegl/internal/gpu"
)

// Call is one recorded device operation.
type Call struct {
	Op   string
	Args []any
}

// Device is a recording gpu.Device. Failure knobs make the matching
// operation fail the way a driver would.
type Device struct {
	Lang gpu.Dialect

	FailCompile map[gpu.Stage]string
	FailLink    string
	FailBuffer  error

	Calls    []Call
	Shaders  map[gpu.Shader]gpu.Stage
	Programs map[gpu.Program]bool
	Buffers  map[gpu.Buffer][]float32
	Uniforms map[string][2]float32
	Attribs  map[string]int
	Draws    [][2]int
	Cleared  [4]float32
	View     [2]int
	Bound    gpu.Program

	nextID uint32
}

// NewDevice returns an empty GLSL recording device.
func NewDevice() *Device {
	return &Device{
		Lang:        gpu.DialectGLSL,
		FailCompile: map[gpu.Stage]string{},
		Shaders:     map[gpu.Shader]gpu.Stage{},
		Programs:    map[gpu.Program]bool{},
		Buffers:     map[gpu.Buffer][]float32{},
		Uniforms:    map[string][2]float32{},
		Attribs:     map[string]int{},
	}
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Ops returns the recorded operation names in order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (d *Device) Dialect() gpu.Dialect { return d.Lang }

func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	d.record("CompileShader", stage, source)
	s := gpu.Shader(d.id())
	d.Shaders[s] = stage
	if msg, ok := d.FailCompile[stage]; ok {
		return s, &gpu.CompileError{Stage: stage, Log: msg}
	}
	return s, nil
}

func (d *Device) DeleteShader(s gpu.Shader) {
	d.record("DeleteShader", s)
	delete(d.Shaders, s)
}

func (d *Device) LinkProgram(vs, fs gpu.Shader) (gpu.Program, error) {
	d.record("LinkProgram", vs, fs)
	if d.FailLink != "" {
		return 0, &gpu.LinkError{Log: d.FailLink}
	}
	vStage, vok := d.Shaders[vs]
	fStage, fok := d.Shaders[fs]
	if !vok || !fok || vStage != gpu.StageVertex || fStage != gpu.StageFragment {
		return 0, &gpu.LinkError{Log: fmt.Sprintf("bad stages %d/%d", vs, fs)}
	}
	p := gpu.Program(d.id())
	d.Programs[p] = true
	return p, nil
}

func (d *Device) DeleteProgram(p gpu.Program) {
	d.record("DeleteProgram", p)
	delete(d.Programs, p)
}

func (d *Device) CreateBuffer() (gpu.Buffer, error) {
	d.record("CreateBuffer")
	if d.FailBuffer != nil {
		return 0, d.FailBuffer
	}
	b := gpu.Buffer(d.id())
	d.Buffers[b] = nil
	return b, nil
}

func (d *Device) BufferData(b gpu.Buffer, data []float32) {
	d.record("BufferData", b, len(data))
	if _, ok := d.Buffers[b]; ok {
		d.Buffers[b] = slices.Clone(data)
	}
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	d.record("DeleteBuffer", b)
	delete(d.Buffers, b)
}

func (d *Device) Viewport(width, height int) {
	d.record("Viewport", width, height)
	d.View = [2]int{width, height}
}

func (d *Device) Clear(r, g, b, a float32) {
	d.record("Clear", r, g, b, a)
	d.Cleared = [4]float32{r, g, b, a}
}

func (d *Device) UseProgram(p gpu.Program) {
	d.record("UseProgram", p)
	d.Bound = p
}

func (d *Device) VertexAttrib(p gpu.Program, b gpu.Buffer, name string, components int) {
	d.record("VertexAttrib", p, b, name, components)
	d.Attribs[name] = components
}

func (d *Device) Uniform2f(p gpu.Program, name string, x, y float32) {
	d.record("Uniform2f", p, name, x, y)
	d.Uniforms[name] = [2]float32{x, y}
}

func (d *Device) DrawTriangles(first, count int) {
	d.record("DrawTriangles", first, count)
	d.Draws = append(d.Draws, [2]int{first, count})
}

// Surface is a fixed-size gpu.Surface around a Device.
type Surface struct {
	Dev    *Device
	Err    error
	Width  int
	Height int
}

// NewSurface returns a surface of the given size backed by a fresh Device.
func NewSurface(width, height int) *Surface {
	return &Surface{Dev: NewDevice(), Width: width, Height: height}
}

func (s *Surface) Device() (gpu.Device, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Dev, nil
}

func (s *Surface) Size() (int, int) { return s.Width, s.Height }
