package render

import (
	"bytes"
	"log/slog"
	"testing"

	"lifegl/internal/core"
	"lifegl/internal/gpu"
	"lifegl/internal/gpu/gputest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func seeded(w, h int) []core.Cell {
	cells := make([]core.Cell, w*h)
	core.FillAlternating(cells)
	return cells
}

func TestInitializeBuildsProgramAndBuffer(t *testing.T) {
	surface := gputest.NewSurface(640, 480)
	p, err := Initialize(surface, nil)
	require.NoError(t, err)
	assert.False(t, p.Degraded())

	dev := surface.Dev
	assert.Len(t, dev.Programs, 1)
	assert.Len(t, dev.Buffers, 1)
	assert.Empty(t, dev.Shaders, "shaders are released once linked")
	assert.Equal(t, 2, dev.Count("CompileShader"))
	assert.Equal(t, glslVertex, dev.Calls[0].Args[1])
}

func TestInitializeUsesDialectSources(t *testing.T) {
	surface := gputest.NewSurface(10, 10)
	surface.Dev.Lang = gpu.DialectKage
	_, err := Initialize(surface, nil)
	require.NoError(t, err)
	assert.Equal(t, kageVertex, surface.Dev.Calls[0].Args[1])
	assert.Equal(t, kageFragment, surface.Dev.Calls[1].Args[1])
}

func TestInitializeConstructionErrors(t *testing.T) {
	_, err := Initialize(nil, nil)
	assert.True(t, errors.Is(err, core.ErrNoSurface))

	surface := gputest.NewSurface(10, 10)
	surface.Err = errors.New("webgl2 unsupported")
	_, err = Initialize(surface, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoContext))
	assert.Contains(t, err.Error(), "webgl2 unsupported")
}

func TestInitializeKeepsSentinelSurfaceErrors(t *testing.T) {
	surface := gputest.NewSurface(10, 10)
	surface.Err = errors.Wrap(core.ErrNoSurface, "window closed")
	_, err := Initialize(surface, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoSurface))
	assert.False(t, errors.Is(err, core.ErrNoContext))
	assert.Empty(t, surface.Dev.Calls)

	surface.Err = core.ErrNoContext
	_, err = Initialize(surface, nil)
	assert.True(t, errors.Is(err, core.ErrNoContext))
}

func TestCompileFailureIsLoggedAndDegrades(t *testing.T) {
	var logs bytes.Buffer
	surface := gputest.NewSurface(100, 100)
	surface.Dev.FailCompile[gpu.StageFragment] = "0:3: 'gl_FragColor' : undeclared"

	p, err := Initialize(surface, newLogger(&logs))
	require.NoError(t, err)
	assert.True(t, p.Degraded())
	assert.Contains(t, logs.String(), "stage=fragment")
	assert.Contains(t, logs.String(), "undeclared")
	assert.Zero(t, surface.Dev.Count("LinkProgram"))
	assert.Empty(t, surface.Dev.Shaders)

	p.Draw(seeded(4, 4), 4, 4)
	assert.Equal(t, 1, surface.Dev.Count("Clear"))
	assert.Equal(t, [4]float32{0, 0, 0, 1}, surface.Dev.Cleared)
	assert.Zero(t, surface.Dev.Count("DrawTriangles"))
}

func TestLinkFailureIsLoggedAndDegrades(t *testing.T) {
	var logs bytes.Buffer
	surface := gputest.NewSurface(100, 100)
	surface.Dev.FailLink = "varying color not written"

	p, err := Initialize(surface, newLogger(&logs))
	require.NoError(t, err)
	assert.True(t, p.Degraded())
	assert.Contains(t, logs.String(), "program link failed")
	assert.Contains(t, logs.String(), "varying color not written")
}

func TestBufferFailureDegrades(t *testing.T) {
	surface := gputest.NewSurface(100, 100)
	surface.Dev.FailBuffer = errors.New("out of memory")
	p, err := Initialize(surface, newLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.True(t, p.Degraded())

	p.Draw(seeded(2, 2), 2, 2)
	assert.Zero(t, surface.Dev.Count("BufferData"))
	assert.Zero(t, surface.Dev.Count("DrawTriangles"))
	p.Dispose()
}

func TestDrawUploadsWholeBatchAndDraws(t *testing.T) {
	const w, h = 16, 8
	surface := gputest.NewSurface(1600, 400)
	p, err := Initialize(surface, nil)
	require.NoError(t, err)
	dev := surface.Dev

	p.SetOffset(400, -100)
	p.SetZoom(1.5)
	p.Draw(seeded(w, h), w, h)

	require.Len(t, dev.Buffers, 1)
	for _, data := range dev.Buffers {
		assert.Len(t, data, w*h*6*3)
	}
	assert.Equal(t, w*h*6, p.Vertices())
	assert.Equal(t, [][2]int{{0, w * h * 6}}, dev.Draws)
	assert.Equal(t, [2]int{1600, 400}, dev.View)
	assert.Equal(t, 3, dev.Attribs[AttribCell])

	// aspect = (1600/400) * (8/16) = 2
	scale := dev.Uniforms[UniformScale]
	assert.InDelta(t, 0.75, scale[0], 1e-6)
	assert.InDelta(t, 1.5, scale[1], 1e-6)
	offset := dev.Uniforms[UniformOffset]
	assert.InDelta(t, 0.5, offset[0], 1e-6)
	assert.InDelta(t, -0.5, offset[1], 1e-6)

	ops := dev.Ops()
	frame := ops[len(ops)-8:]
	assert.Equal(t, []string{"BufferData", "Viewport", "Clear", "UseProgram", "VertexAttrib", "Uniform2f", "Uniform2f", "DrawTriangles"}, frame)
}

func TestDrawReplacesBufferEveryFrame(t *testing.T) {
	surface := gputest.NewSurface(100, 100)
	p, err := Initialize(surface, nil)
	require.NoError(t, err)

	cells := make([]core.Cell, 4)
	p.Draw(cells, 2, 2)
	cells[3] = core.Alive
	p.Draw(cells, 2, 2)

	assert.Equal(t, 2, surface.Dev.Count("BufferData"))
	assert.Equal(t, 1, surface.Dev.Count("CreateBuffer"))
	for _, data := range surface.Dev.Buffers {
		assert.Equal(t, float32(1), data[len(data)-1])
		assert.Equal(t, float32(0), data[2])
	}
}

func TestDrawSkipsDegenerateFrames(t *testing.T) {
	surface := gputest.NewSurface(100, 100)
	p, err := Initialize(surface, nil)
	require.NoError(t, err)
	before := len(surface.Dev.Calls)

	p.Draw(make([]core.Cell, 3), 2, 2)
	p.Draw(nil, 0, 0)
	surface.Width = 0
	p.Draw(make([]core.Cell, 4), 2, 2)

	assert.Len(t, surface.Dev.Calls, before)
}

func TestViewAccessorsPassThrough(t *testing.T) {
	p, err := Initialize(gputest.NewSurface(10, 10), nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, p.Zoom())
	x, y := p.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)

	p.SetZoom(7.25)
	p.SetOffset(-12.5, 33)
	assert.Equal(t, 7.25, p.Zoom())
	x, y = p.Offset()
	assert.Equal(t, -12.5, x)
	assert.Equal(t, 33.0, y)

	p.SetZoom(-1)
	assert.Equal(t, -1.0, p.Zoom())
}

func TestDisposeIsIdempotent(t *testing.T) {
	surface := gputest.NewSurface(10, 10)
	p, err := Initialize(surface, nil)
	require.NoError(t, err)

	p.Dispose()
	assert.NotPanics(t, p.Dispose)
	assert.Empty(t, surface.Dev.Programs)
	assert.Empty(t, surface.Dev.Buffers)
	assert.Equal(t, 1, surface.Dev.Count("DeleteProgram"))
	assert.Equal(t, 1, surface.Dev.Count("DeleteBuffer"))

	// Draw after dispose touches nothing.
	before := len(surface.Dev.Calls)
	p.Draw(seeded(2, 2), 2, 2)
	assert.Len(t, surface.Dev.Calls, before)
}

func TestDisposeAfterPartialInitialization(t *testing.T) {
	surface := gputest.NewSurface(10, 10)
	surface.Dev.FailCompile[gpu.StageVertex] = "syntax error"
	surface.Dev.FailBuffer = errors.New("no buffers")
	p, err := Initialize(surface, newLogger(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.NotPanics(t, p.Dispose)
	assert.NotPanics(t, p.Dispose)
	assert.Zero(t, surface.Dev.Count("DeleteProgram"))
	assert.Zero(t, surface.Dev.Count("DeleteBuffer"))

	var nilPipeline *Pipeline
	assert.NotPanics(t, nilPipeline.Dispose)
}
