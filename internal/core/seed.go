package core

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
)

// Pattern names an initial population layout.
type Pattern string

const (
	// PatternAlternating marks cell i alive iff i%2 == 0 or i%7 == 0.
	PatternAlternating Pattern = "alternating"
	// PatternRandom fills cells from a seeded PCG source at 50% density.
	PatternRandom Pattern = "random"
	// PatternEmpty leaves every cell dead.
	PatternEmpty Pattern = "empty"
)

// ParsePattern resolves a pattern name, case-insensitively.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(strings.ToLower(strings.TrimSpace(s))); p {
	case PatternAlternating, PatternRandom, PatternEmpty:
		return p, nil
	case "":
		return PatternAlternating, nil
	default:
		return "", errors.Errorf("[ParsePattern] unknown pattern %q", s)
	}
}

// Seed fills cells according to p. The seed is only used by PatternRandom.
func Seed(cells []Cell, p Pattern, seed int64) {
	switch p {
	case PatternRandom:
		FillBinary(NewRNG(seed).Source(), cells)
	case PatternEmpty:
		for i := range cells {
			cells[i] = Dead
		}
	default:
		FillAlternating(cells)
	}
}

// FillAlternating applies the fixed startup layout.
func FillAlternating(cells []Cell) {
	for i := range cells {
		if i%2 == 0 || i%7 == 0 {
			cells[i] = Alive
			continue
		}
		cells[i] = Dead
	}
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Source exposes the underlying rand.Rand.
func (r *RNG) Source() *rand.Rand { return r.r }

// FillBinary fills the buffer with Dead/Alive values using r.
func FillBinary(r *rand.Rand, buf []Cell) {
	for i := range buf {
		buf[i] = Cell(r.IntN(2))
	}
}
