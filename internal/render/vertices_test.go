package render

import (
	"testing"

	"lifegl/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCellsSingleCellCoversClipSpace(t *testing.T) {
	got := AppendCells(nil, []core.Cell{core.Alive}, 1, 1)
	want := []float32{
		-1, -1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, -1, 1,
		-1, 1, 1,
		1, 1, 1,
	}
	assert.Equal(t, want, got)
}

func TestAppendCellsRowMajorGeometry(t *testing.T) {
	cells := []core.Cell{core.Dead, core.Alive}
	got := AppendCells(nil, cells, 2, 1)
	require.Len(t, got, BatchLen(2, 1))

	first := got[:VerticesPerCell*VertexComponents]
	second := got[VerticesPerCell*VertexComponents:]
	assert.Equal(t, []float32{-1, -1, 0, 0, -1, 0, 0, 1, 0, -1, -1, 0, -1, 1, 0, 0, 1, 0}, first)
	assert.Equal(t, []float32{0, -1, 1, 1, -1, 1, 1, 1, 1, 0, -1, 1, 0, 1, 1, 1, 1, 1}, second)
}

func TestAppendCellsVertexCount(t *testing.T) {
	for _, size := range []core.Size{{W: 1, H: 1}, {W: 3, H: 7}, {W: 512, H: 256}} {
		cells := make([]core.Cell, size.W*size.H)
		core.FillAlternating(cells)
		got := AppendCells(nil, cells, size.W, size.H)
		require.Len(t, got, size.W*size.H*6*3)
		for v := 0; v < len(got)/VertexComponents; v++ {
			cell := v / VerticesPerCell
			if got[v*3+2] != float32(cells[cell]) {
				t.Fatalf("%dx%d vertex %d flag %v, cell %d is %d", size.W, size.H, v, got[v*3+2], cell, cells[cell])
			}
		}
	}
}

func TestAppendCellsReusesCapacity(t *testing.T) {
	cells := make([]core.Cell, 16)
	buf := AppendCells(nil, cells, 4, 4)
	again := AppendCells(buf[:0], cells, 4, 4)
	assert.Same(t, &buf[0], &again[0])
}

func TestViewUniforms(t *testing.T) {
	v := DefaultView()
	sx, sy := v.Scale(800, 400, 200, 100)
	assert.InDelta(t, 1.0, sx, 1e-6)
	assert.InDelta(t, 1.0, sy, 1e-6)

	// Wide surface, square grid: x is squeezed by the surface aspect.
	v.Zoom = 2
	sx, sy = v.Scale(1000, 500, 64, 64)
	assert.InDelta(t, 1.0, sx, 1e-6)
	assert.InDelta(t, 2.0, sy, 1e-6)

	v.OffsetX, v.OffsetY = 250, -100
	ox, oy := v.Translation(1000, 500)
	assert.InDelta(t, 0.5, ox, 1e-6)
	assert.InDelta(t, -0.4, oy, 1e-6)
}
