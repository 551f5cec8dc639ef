package core

import "github.com/pkg/errors"

// Cell is the state of a single grid cell. The zero value is Dead.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Grid stores a toroidal grid of cells in row-major order.
type Grid struct {
	W, H int
	data []Cell
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "[NewGrid] %dx%d", w, h)
	}
	return &Grid{W: w, H: h, data: make([]Cell, w*h)}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []Cell { return g.data }

// Len returns the number of cells, always W*H.
func (g *Grid) Len() int { return len(g.data) }

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.W + col }

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) Cell { return g.data[g.Index(row, col)] }

// Set stores c at (row, col).
func (g *Grid) Set(row, col int, c Cell) { g.data[g.Index(row, col)] = c }

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.data {
		n += int(c)
	}
	return n
}

// Commit installs next as the current generation and returns the previous
// buffer for reuse as scratch space. It panics if the length differs.
func (g *Grid) Commit(next []Cell) []Cell {
	if len(next) != len(g.data) {
		panic("core: committed generation has wrong length")
	}
	prev := g.data
	g.data = next
	return prev
}
