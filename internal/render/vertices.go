package render

import "lifegl/internal/core"

const (
	// VertexComponents is the width of one vertex: x, y, alive flag.
	VertexComponents = 3
	// VerticesPerCell covers a cell with two triangles.
	VerticesPerCell = 6
)

// BatchLen returns the number of floats needed to encode a w*h grid.
func BatchLen(w, h int) int { return w * h * VerticesPerCell * VertexComponents }

// AppendCells encodes every cell of a w*h grid as two triangles in
// normalized device coordinates and appends them to dst. Rows run bottom to
// top, columns left to right; both axes span [-1, 1].
func AppendCells(dst []float32, cells []core.Cell, w, h int) []float32 {
	if need := BatchLen(w, h); cap(dst)-len(dst) < need {
		grown := make([]float32, len(dst), len(dst)+need)
		copy(grown, dst)
		dst = grown
	}
	rowStep := 2 / float32(h)
	colStep := 2 / float32(w)
	for row := 0; row < h; row++ {
		y1 := float32(row)*rowStep - 1
		y2 := float32(row+1)*rowStep - 1
		for col := 0; col < w; col++ {
			x1 := float32(col)*colStep - 1
			x2 := float32(col+1)*colStep - 1
			alive := float32(cells[row*w+col])
			dst = append(dst,
				x1, y1, alive,
				x2, y1, alive,
				x2, y2, alive,
				x1, y1, alive,
				x1, y2, alive,
				x2, y2, alive,
			)
		}
	}
	return dst
}
