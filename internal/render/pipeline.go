package render

import (
	"log/slog"

	"lifegl/internal/core"
	"lifegl/internal/gpu"

	"github.com/pkg/errors"
)

// Pipeline turns grid snapshots into triangles on a surface. Shader and
// buffer failures leave it degraded rather than failing: a degraded pipeline
// still clears the surface every frame but draws nothing.
type Pipeline struct {
	surface gpu.Surface
	dev     gpu.Device
	logger  *slog.Logger

	program gpu.Program
	buffer  gpu.Buffer

	view     View
	batch    []float32
	vertices int
	disposed bool
}

// Initialize acquires the surface's device and builds the cell program and
// vertex buffer. Only a missing surface or device is reported as an error.
func Initialize(surface gpu.Surface, logger *slog.Logger) (*Pipeline, error) {
	if surface == nil {
		return nil, errors.Wrap(core.ErrNoSurface, "[render.Initialize]")
	}
	dev, err := surface.Device()
	switch {
	case errors.Is(err, core.ErrNoSurface), errors.Is(err, core.ErrNoContext):
		return nil, errors.Wrap(err, "[render.Initialize]")
	case err != nil:
		return nil, errors.WithMessagef(core.ErrNoContext, "[render.Initialize] %v", err)
	}
	if dev == nil {
		return nil, errors.Wrap(core.ErrNoContext, "[render.Initialize]")
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		surface: surface,
		dev:     dev,
		logger:  logger.With("component", "render"),
		view:    DefaultView(),
	}
	p.program = p.buildProgram()

	buf, err := dev.CreateBuffer()
	if err != nil {
		p.logger.Error("vertex buffer unavailable", "err", err)
	}
	p.buffer = buf

	if p.Degraded() {
		p.logger.Warn("pipeline degraded; frames will be blank", "dialect", dev.Dialect())
	} else {
		p.logger.Debug("pipeline ready", "dialect", dev.Dialect(), "program", p.program)
	}
	return p, nil
}

func (p *Pipeline) buildProgram() gpu.Program {
	src := SourcesFor(p.dev.Dialect())
	stages := [2]gpu.Stage{gpu.StageVertex, gpu.StageFragment}
	var shaders [2]gpu.Shader
	defer func() {
		for _, s := range shaders {
			if s != 0 {
				p.dev.DeleteShader(s)
			}
		}
	}()

	compiled := true
	for i, stage := range stages {
		s, err := p.dev.CompileShader(stage, src.For(stage))
		shaders[i] = s
		if err != nil {
			p.logger.Error("shader compile failed", "stage", stage.String(), "log", driverLog(err))
			compiled = false
		}
	}
	if !compiled {
		return 0
	}

	prog, err := p.dev.LinkProgram(shaders[0], shaders[1])
	if err != nil {
		p.logger.Error("program link failed", "log", driverLog(err))
		if prog != 0 {
			p.dev.DeleteProgram(prog)
		}
		return 0
	}
	return prog
}

// driverLog extracts the diagnostic text a driver attached to err.
func driverLog(err error) string {
	var ce *gpu.CompileError
	if errors.As(err, &ce) {
		return ce.Log
	}
	var le *gpu.LinkError
	if errors.As(err, &le) {
		return le.Log
	}
	return err.Error()
}

// Degraded reports whether draws are being skipped for lack of a program or
// vertex buffer.
func (p *Pipeline) Degraded() bool { return p.program == 0 || p.buffer == 0 }

// Draw encodes cells, uploads them, clears the surface and draws the grid
// with the current view. Malformed input or a zero-sized surface skips the
// frame.
func (p *Pipeline) Draw(cells []core.Cell, width, height int) {
	if p.disposed || width <= 0 || height <= 0 || len(cells) != width*height {
		return
	}
	sw, sh := p.surface.Size()
	if sw <= 0 || sh <= 0 {
		return
	}

	p.batch = AppendCells(p.batch[:0], cells, width, height)
	p.vertices = len(p.batch) / VertexComponents
	if p.buffer != 0 {
		p.dev.BufferData(p.buffer, p.batch)
	}

	p.dev.Viewport(sw, sh)
	p.dev.Clear(0, 0, 0, 1)
	if p.Degraded() {
		return
	}

	p.dev.UseProgram(p.program)
	p.dev.VertexAttrib(p.program, p.buffer, AttribCell, VertexComponents)
	sx, sy := p.view.Scale(sw, sh, width, height)
	p.dev.Uniform2f(p.program, UniformScale, sx, sy)
	ox, oy := p.view.Translation(sw, sh)
	p.dev.Uniform2f(p.program, UniformOffset, ox, oy)
	p.dev.DrawTriangles(0, p.vertices)
}

// Vertices returns the vertex count of the last encoded batch.
func (p *Pipeline) Vertices() int { return p.vertices }

// SetOffset stores the pan offset in surface pixels.
func (p *Pipeline) SetOffset(x, y float64) {
	p.view.OffsetX, p.view.OffsetY = x, y
}

// Offset returns the pan offset.
func (p *Pipeline) Offset() (float64, float64) { return p.view.OffsetX, p.view.OffsetY }

// SetZoom stores z as is; range policy belongs to the caller.
func (p *Pipeline) SetZoom(z float64) { p.view.Zoom = z }

// Zoom returns the zoom factor.
func (p *Pipeline) Zoom() float64 { return p.view.Zoom }

// Dispose releases the program and vertex buffer. Calling it again is a no-op.
func (p *Pipeline) Dispose() {
	if p == nil || p.disposed {
		return
	}
	p.disposed = true
	if p.dev == nil {
		return
	}
	if p.program != 0 {
		p.dev.DeleteProgram(p.program)
		p.program = 0
	}
	if p.buffer != 0 {
		p.dev.DeleteBuffer(p.buffer)
		p.buffer = 0
	}
	p.batch = nil
}
