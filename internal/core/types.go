package core

import "github.com/pkg/errors"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Construction errors. Callers match them with errors.Is.
var (
	ErrInvalidSize = errors.New("grid dimensions must be positive")
	ErrNoSurface   = errors.New("no drawable surface")
	ErrNoContext   = errors.New("gpu context unavailable")
)
