// Package boltzmann samples initial particle velocities from the
// Maxwell-Boltzmann distribution.
//
// Each velocity component is drawn independently from a normal
// distribution with mean 0 and standard deviation sqrt(kB*T/m), which is
// the equilibrium distribution the gas relaxes toward. Sampling is
// implemented for equal-mass systems only: mixtures need per-species
// treatment that is deliberately not approximated here.
package boltzmann

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// DefaultBoltzmannConstant is the kB used throughout the lab. Simulation
// units put kB at 1 so temperature is measured in energy units.
const DefaultBoltzmannConstant = 1.0

var (
	// ErrHeterogeneousMasses indicates a mass mixture, for which sampling
	// is unsupported rather than silently approximated.
	ErrHeterogeneousMasses = errors.New("boltzmann: velocity sampling requires equal masses")

	// ErrBadParams indicates an invalid dimension, temperature, constant
	// or mass list.
	ErrBadParams = errors.New("boltzmann: invalid sampling parameters")
)

// SupportsMasses reports whether sampling is implemented for the given
// masses. It is the capability check run before any computation: equal
// positive masses pass, mixtures fail with ErrHeterogeneousMasses.
func SupportsMasses(masses []float64) error {
	if len(masses) == 0 {
		return fmt.Errorf("%w: no masses", ErrBadParams)
	}
	first := masses[0]
	for i, m := range masses {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: mass %g at index %d", ErrBadParams, m, i)
		}
		if m != first {
			return fmt.Errorf("%w: mass %g at index %d differs from %g", ErrHeterogeneousMasses, m, i, first)
		}
	}
	return nil
}

// SampleVelocities draws one velocity per particle, each component
// independently normal with mean 0 and standard deviation sqrt(kB*T/m).
// The caller provides the random source, so runs reproduce by seed.
func SampleVelocities(rng *rand.Rand, masses []float64, dim int, temperature, kB float64) ([][]float64, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrBadParams)
	}
	if dim < 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrBadParams, dim)
	}
	if temperature < 0 || math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return nil, fmt.Errorf("%w: temperature %g", ErrBadParams, temperature)
	}
	if kB <= 0 || math.IsNaN(kB) || math.IsInf(kB, 0) {
		return nil, fmt.Errorf("%w: boltzmann constant %g", ErrBadParams, kB)
	}
	if err := SupportsMasses(masses); err != nil {
		return nil, err
	}

	std := math.Sqrt(kB * temperature / masses[0])
	out := make([][]float64, len(masses))
	for i := range out {
		v := make([]float64, dim)
		for d := 0; d < dim; d++ {
			v[d] = rng.NormFloat64() * std
		}
		out[i] = v
	}
	return out, nil
}

// SampleVec2 draws 2D velocities for n particles of equal mass.
func SampleVec2(rng *rand.Rand, n int, mass, temperature, kB float64) ([]gas.Vec2, error) {
	masses := make([]float64, n)
	for i := range masses {
		masses[i] = mass
	}
	raw, err := SampleVelocities(rng, masses, 2, temperature, kB)
	if err != nil {
		return nil, err
	}

	out := make([]gas.Vec2, n)
	for i, v := range raw {
		out[i] = gas.Vec2{X: v[0], Y: v[1]}
	}
	return out, nil
}
