package engine

import (
	"errors"
	"fmt"

	"github.com/eschmidt42/hardspheres-2d/internal/collision"
)

var (
	// ErrBadConfig indicates a non-positive time step or duration.
	ErrBadConfig = errors.New("engine: invalid run configuration")

	// ErrStalled indicates contacts failed to converge within the
	// per-step resolution budget.
	ErrStalled = errors.New("engine: collision resolution stalled")
)

// StallError reports the contacts still unresolved when a step exhausted
// its resolution budget. Near-simultaneous multi-body pileups are the
// usual cause.
type StallError struct {
	Time        float64
	Resolutions int
	Pairs       []collision.Pair
}

func (e *StallError) Error() string {
	return fmt.Sprintf("engine: resolution stalled at t=%.6f: %d contacts remain after %d resolutions",
		e.Time, len(e.Pairs), e.Resolutions)
}

func (e *StallError) Unwrap() error { return ErrStalled }

// SimulationError wraps a step failure with run context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error { return e.Wrapped }
