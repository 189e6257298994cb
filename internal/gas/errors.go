package gas

import (
	"errors"
	"fmt"
)

// Configuration errors surface at construction time and are never retried.
var (
	// ErrInvalidConfig indicates non-positive radii or masses, mismatched
	// slice lengths, or an empty particle set.
	ErrInvalidConfig = errors.New("gas: invalid particle configuration")

	// ErrOutOfBounds indicates a disk that does not fit inside the domain.
	ErrOutOfBounds = errors.New("gas: particle outside domain bounds")

	// ErrInitialOverlap indicates two particles overlapping at construction
	// beyond the tolerance positional correction can absorb.
	ErrInitialOverlap = errors.New("gas: particles overlap at construction")

	// ErrNotFinite indicates NaN or Inf in a position or velocity.
	ErrNotFinite = errors.New("gas: non-finite position or velocity")
)

// ConfigError wraps a configuration error with the offending particle index.
type ConfigError struct {
	Index   int // -1 when not specific to one particle
	Detail  string
	Wrapped error
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", e.Wrapped, e.Detail)
	}
	return fmt.Sprintf("%v: particle %d: %s", e.Wrapped, e.Index, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }

// PairError wraps an error with the offending particle pair.
type PairError struct {
	I, J    int
	Detail  string
	Wrapped error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%v: pair (%d, %d): %s", e.Wrapped, e.I, e.J, e.Detail)
}

func (e *PairError) Unwrap() error { return e.Wrapped }
