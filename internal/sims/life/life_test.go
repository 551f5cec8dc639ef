package life

import (
	"slices"
	"testing"

	"lifegl/internal/core"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmpty(t *testing.T, w, h int, opts ...Option) *Life {
	t.Helper()
	l, err := New(w, h, append([]Option{WithPattern(core.PatternEmpty, 0)}, opts...)...)
	require.NoError(t, err)
	return l
}

func TestNewSeedsAlternatingPattern(t *testing.T) {
	for _, size := range []core.Size{{W: 1, H: 1}, {W: 3, H: 5}, {W: 16, H: 9}, {W: 64, H: 32}} {
		l, err := New(size.W, size.H)
		require.NoError(t, err)
		cells := l.Cells()
		require.Len(t, cells, size.W*size.H)
		for i, c := range cells {
			alive := i%2 == 0 || i%7 == 0
			if (c == core.Alive) != alive {
				t.Fatalf("%dx%d cell %d = %d", size.W, size.H, i, c)
			}
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a, err := New(37, 11)
	require.NoError(t, err)
	b, err := New(37, 11)
	require.NoError(t, err)
	assert.True(t, slices.Equal(a.Cells(), b.Cells()))
}

func TestNewRejectsInvalidSize(t *testing.T) {
	_, err := New(0, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidSize))

	_, err = New(10, -1)
	assert.True(t, errors.Is(err, core.ErrInvalidSize))
}

func TestNeighborCountSingleCellOnThreeByThree(t *testing.T) {
	l := newEmpty(t, 3, 3)
	l.Grid().Set(1, 1, core.Alive)

	assert.Equal(t, 0, l.NeighborCount(1, 1))
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			assert.Equal(t, 1, l.NeighborCount(row, col), "(%d,%d)", row, col)
		}
	}

	l.Step()
	assert.Equal(t, core.Dead, l.Grid().At(1, 1))
}

func TestNeighborCountWrapsAtEdges(t *testing.T) {
	l := newEmpty(t, 5, 4)
	g := l.Grid()
	g.Set(3, 4, core.Alive) // diagonal of (0,0) through both seams
	g.Set(0, 4, core.Alive) // left of (0,0)
	g.Set(3, 0, core.Alive) // above (0,0)

	assert.Equal(t, 3, l.NeighborCount(0, 0))
}

func TestNeighborCountInvariantUnderRowRotation(t *testing.T) {
	const w, h = 7, 6
	base, err := New(w, h, WithPattern(core.PatternRandom, 9))
	require.NoError(t, err)

	shifted := newEmpty(t, w, h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			shifted.Grid().Set((row+1)%h, col, base.Grid().At(row, col))
		}
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			want := base.NeighborCount(row, col)
			got := shifted.NeighborCount((row+1)%h, col)
			if want != got {
				t.Fatalf("(%d,%d): rotated count %d, want %d", row, col, got, want)
			}
		}
	}
}

func TestStepAllDeadStaysDead(t *testing.T) {
	l := newEmpty(t, 8, 8)
	l.Step()
	assert.Zero(t, l.Population())
	assert.Equal(t, 1, l.Generation())
}

func TestStepIsolatedCellDies(t *testing.T) {
	l := newEmpty(t, 6, 6)
	l.Grid().Set(2, 2, core.Alive)
	l.Step()
	assert.Zero(t, l.Population())
}

func TestStepRules(t *testing.T) {
	cases := []struct {
		cell      core.Cell
		neighbors int
		want      core.Cell
	}{
		{core.Alive, 0, core.Dead},
		{core.Alive, 1, core.Dead},
		{core.Alive, 2, core.Alive},
		{core.Alive, 3, core.Alive},
		{core.Alive, 4, core.Dead},
		{core.Alive, 8, core.Dead},
		{core.Dead, 2, core.Dead},
		{core.Dead, 3, core.Alive},
		{core.Dead, 4, core.Dead},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, next(tc.cell, tc.neighbors), "cell=%d n=%d", tc.cell, tc.neighbors)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	l := newEmpty(t, 5, 5)
	g := l.Grid()
	g.Set(1, 2, core.Alive)
	g.Set(2, 2, core.Alive)
	g.Set(3, 2, core.Alive)

	l.Step()
	expects := map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			alive := g.At(row, col) == core.Alive
			if expects[[2]int{row, col}] != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", row, col, alive, !alive)
			}
		}
	}

	l.Step()
	expects = map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			alive := g.At(row, col) == core.Alive
			if expects[[2]int{row, col}] != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", row, col, alive, !alive)
			}
		}
	}
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	const n = 8
	l := newEmpty(t, n, n)
	glider := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for _, p := range glider {
		l.Grid().Set(p[0], p[1], core.Alive)
	}

	// A glider moves one cell diagonally every four generations, so after
	// 4*n generations it is back where it started.
	for i := 0; i < 4*n; i++ {
		l.Step()
	}
	assert.Equal(t, 5, l.Population())
	for _, p := range glider {
		assert.Equal(t, core.Alive, l.Grid().At(p[0], p[1]), "(%d,%d)", p[0], p[1])
	}
}

func TestParallelStepMatchesSerial(t *testing.T) {
	for _, size := range []core.Size{{W: 1, H: 1}, {W: 9, H: 7}, {W: 64, H: 33}} {
		for _, workers := range []int{2, 3, 8, 100} {
			serial, err := New(size.W, size.H, WithPattern(core.PatternRandom, 5))
			require.NoError(t, err)
			parallel, err := New(size.W, size.H, WithPattern(core.PatternRandom, 5), WithWorkers(workers))
			require.NoError(t, err)

			for i := 0; i < 10; i++ {
				serial.Step()
				parallel.Step()
				if !slices.Equal(serial.Cells(), parallel.Cells()) {
					t.Fatalf("%dx%d workers=%d diverged at generation %d", size.W, size.H, workers, i+1)
				}
			}
		}
	}
}

func TestResetAndReseed(t *testing.T) {
	l, err := New(10, 10)
	require.NoError(t, err)
	initial := slices.Clone(l.Cells())

	l.Step()
	l.Step()
	l.Reset()
	assert.Equal(t, initial, l.Cells())
	assert.Zero(t, l.Generation())

	l.Reseed(3)
	assert.Equal(t, core.PatternRandom, l.pattern)
	first := slices.Clone(l.Cells())
	l.Step()
	l.Reset()
	assert.Equal(t, first, l.Cells())
}
