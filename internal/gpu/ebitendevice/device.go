//go:build ebiten

package ebitendevice

import (
	"image/color"

	"lifegl/internal/gpu"

	"github.com/hajimehoshi/ebiten/v2"
)

type shader struct {
	stage    gpu.Stage
	vertex   VertexProgram
	fragment *ebiten.Shader
	refCount
}

type program struct {
	vs, fs   *shader
	uniforms Uniforms
	buffer   gpu.Buffer
}

// Device records GL-style state and replays draws onto the attached target
// with DrawTrianglesShader.
type Device struct {
	target *ebiten.Image

	nextID   uint32
	shaders  map[gpu.Shader]*shader
	programs map[gpu.Program]*program
	buffers  map[gpu.Buffer][]float32
	current  gpu.Program
	viewW    int
	viewH    int

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewDevice returns a device without a target. Draws are dropped until
// Attach is called.
func NewDevice() *Device {
	return &Device{
		shaders:  map[gpu.Shader]*shader{},
		programs: map[gpu.Program]*program{},
		buffers:  map[gpu.Buffer][]float32{},
	}
}

// Attach directs subsequent draws to target.
func (d *Device) Attach(target *ebiten.Image) { d.target = target }

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) Dialect() gpu.Dialect { return gpu.DialectKage }

func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	s := &shader{stage: stage}
	if stage == gpu.StageVertex {
		prog, err := lookupVertexProgram(source)
		if err != nil {
			return 0, &gpu.CompileError{Stage: stage, Log: err.Error()}
		}
		s.vertex = prog
	} else {
		frag, err := ebiten.NewShader([]byte(source))
		if err != nil {
			return 0, &gpu.CompileError{Stage: stage, Log: err.Error()}
		}
		s.fragment = frag
	}
	h := gpu.Shader(d.id())
	d.shaders[h] = s
	return h, nil
}

func (d *Device) DeleteShader(h gpu.Shader) {
	s, ok := d.shaders[h]
	if !ok {
		return
	}
	delete(d.shaders, h)
	if s.markDeleted() {
		s.dispose()
	}
}

func (s *shader) dispose() {
	if s.fragment != nil {
		s.fragment.Dispose()
		s.fragment = nil
	}
}

func (d *Device) LinkProgram(vh, fh gpu.Shader) (gpu.Program, error) {
	vs, ok := d.shaders[vh]
	if !ok || vs.stage != gpu.StageVertex {
		return 0, &gpu.LinkError{Log: "no compiled vertex shader attached"}
	}
	fs, ok := d.shaders[fh]
	if !ok || fs.stage != gpu.StageFragment {
		return 0, &gpu.LinkError{Log: "no compiled fragment shader attached"}
	}
	vs.retain()
	fs.retain()
	h := gpu.Program(d.id())
	d.programs[h] = &program{vs: vs, fs: fs, uniforms: Uniforms{}}
	return h, nil
}

func (d *Device) DeleteProgram(h gpu.Program) {
	p, ok := d.programs[h]
	if !ok {
		return
	}
	delete(d.programs, h)
	if d.current == h {
		d.current = 0
	}
	for _, s := range [2]*shader{p.vs, p.fs} {
		if s.release() {
			s.dispose()
		}
	}
}

func (d *Device) CreateBuffer() (gpu.Buffer, error) {
	h := gpu.Buffer(d.id())
	d.buffers[h] = nil
	return h, nil
}

func (d *Device) BufferData(b gpu.Buffer, data []float32) {
	if _, ok := d.buffers[b]; !ok {
		return
	}
	d.buffers[b] = append(d.buffers[b][:0], data...)
}

func (d *Device) DeleteBuffer(b gpu.Buffer) { delete(d.buffers, b) }

func (d *Device) Viewport(width, height int) { d.viewW, d.viewH = width, height }

func (d *Device) Clear(r, g, b, a float32) {
	if d.target == nil {
		return
	}
	d.target.Fill(color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: channel(a)})
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

func (d *Device) UseProgram(p gpu.Program) { d.current = p }

func (d *Device) VertexAttrib(h gpu.Program, b gpu.Buffer, name string, components int) {
	p, ok := d.programs[h]
	if !ok || name != p.vs.vertex.Attrib || components != p.vs.vertex.Components {
		return
	}
	p.buffer = b
}

func (d *Device) Uniform2f(h gpu.Program, name string, x, y float32) {
	if p, ok := d.programs[h]; ok {
		p.uniforms[name] = [2]float32{x, y}
	}
}

// DrawTriangles runs the vertex program on the CPU for vertices
// [first, first+count) and rasterizes them with the fragment shader.
func (d *Device) DrawTriangles(first, count int) {
	p, ok := d.programs[d.current]
	if !ok || d.target == nil || p.fs.fragment == nil {
		return
	}
	data := d.buffers[p.buffer]
	stride := p.vs.vertex.Components

	opts := &ebiten.DrawTrianglesShaderOptions{}
	for _, sp := range planDraw(first, count, len(data), stride) {
		d.vertices = d.vertices[:0]
		for i := sp.start; i < sp.start+sp.n; i++ {
			v := p.vs.vertex.Run(data[i*stride:(i+1)*stride], p.uniforms)
			x, y := toPixels(v.X, v.Y, d.viewW, d.viewH)
			d.vertices = append(d.vertices, ebiten.Vertex{
				DstX: x, DstY: y,
				ColorR: v.R, ColorG: v.G, ColorB: v.B, ColorA: v.A,
			})
		}
		d.indices = identityIndices(d.indices, sp.n)
		d.target.DrawTrianglesShader(d.vertices, d.indices[:sp.n], p.fs.fragment, opts)
	}
}
