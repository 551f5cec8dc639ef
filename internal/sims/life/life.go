package life

import (
	"lifegl/internal/core"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Life implements Conway's Game of Life on a toroidal grid.
type Life struct {
	grid *core.Grid
	nxt  []core.Cell

	pattern core.Pattern
	seed    int64
	workers int
	gen     int
}

// Option configures a Life at construction.
type Option func(*Life)

// WithPattern selects the initial layout applied by New and Reset.
func WithPattern(p core.Pattern, seed int64) Option {
	return func(l *Life) {
		l.pattern = p
		l.seed = seed
	}
}

// WithWorkers splits Step across n row bands. Values below 2 step serially.
func WithWorkers(n int) Option {
	return func(l *Life) { l.workers = n }
}

// New returns a seeded Life with the provided dimensions.
func New(w, h int, opts ...Option) (*Life, error) {
	grid, err := core.NewGrid(w, h)
	if err != nil {
		return nil, errors.Wrap(err, "[life.New]")
	}
	l := &Life{
		grid:    grid,
		nxt:     make([]core.Cell, grid.Len()),
		pattern: core.PatternAlternating,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Reset()
	return l, nil
}

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.grid.Size() }

// Grid exposes the current generation.
func (l *Life) Grid() *core.Grid { return l.grid }

// Cells exposes the current generation. Callers must not retain it across Step.
func (l *Life) Cells() []core.Cell { return l.grid.Cells() }

// Generation returns the number of steps since the last reset.
func (l *Life) Generation() int { return l.gen }

// Population counts live cells in the current generation.
func (l *Life) Population() int { return l.grid.Population() }

// Reset reapplies the configured pattern.
func (l *Life) Reset() {
	core.Seed(l.grid.Cells(), l.pattern, l.seed)
	l.gen = 0
}

// Reseed switches to a random layout with the given seed and resets.
func (l *Life) Reseed(seed int64) {
	l.pattern = core.PatternRandom
	l.seed = seed
	l.Reset()
}

// NeighborCount sums the eight toroidal neighbors of (row, col).
func (l *Life) NeighborCount(row, col int) int {
	return neighborCount(l.grid.Cells(), l.grid.W, l.grid.H, row, col)
}

// neighborCount uses w-1 and h-1 as the "minus one" deltas so every operand
// of the modulo stays non-negative.
func neighborCount(cells []core.Cell, w, h, row, col int) int {
	count := 0
	for _, dr := range [3]int{h - 1, 0, 1} {
		for _, dc := range [3]int{w - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			nr := (row + dr) % h
			nc := (col + dc) % w
			count += int(cells[nr*w+nc])
		}
	}
	return count
}

// next applies the birth/survival rules to one cell.
func next(c core.Cell, neighbors int) core.Cell {
	switch {
	case c == core.Alive && neighbors < 2:
		return core.Dead
	case c == core.Alive && (neighbors == 2 || neighbors == 3):
		return core.Alive
	case c == core.Alive && neighbors > 3:
		return core.Dead
	case c == core.Dead && neighbors == 3:
		return core.Alive
	default:
		return c
	}
}

// stepRows computes rows [from, to) of the next generation into dst.
func stepRows(dst, src []core.Cell, w, h, from, to int) {
	for row := from; row < to; row++ {
		for col := 0; col < w; col++ {
			idx := row*w + col
			dst[idx] = next(src[idx], neighborCount(src, w, h, row, col))
		}
	}
}

// Step advances the simulation by one generation. Every cell of the next
// generation is computed from the frozen current one before the buffers swap.
func (l *Life) Step() {
	w, h := l.grid.W, l.grid.H
	src := l.grid.Cells()
	if l.workers < 2 || h < 2 {
		stepRows(l.nxt, src, w, h, 0, h)
	} else {
		l.stepParallel(src, w, h)
	}
	l.nxt = l.grid.Commit(l.nxt)
	l.gen++
}

func (l *Life) stepParallel(src []core.Cell, w, h int) {
	var eg errgroup.Group
	workers := min(l.workers, h)
	rowsPerBand := (h + workers - 1) / workers
	for start := 0; start < h; start += rowsPerBand {
		from, to := start, min(start+rowsPerBand, h)
		eg.Go(func() error {
			stepRows(l.nxt, src, w, h, from, to)
			return nil
		})
	}
	// Bands never fail; Wait is the barrier before the commit.
	_ = eg.Wait()
}
