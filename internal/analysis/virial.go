package analysis

import (
	"math"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// PressureVirial estimates the pressure of a gas from its collision rate
// via the hard-disk virial relation
//
//	P*A = N*kT + (rate*sigma/2) * sqrt(2*pi*mu*kT)
//
// where sigma is the contact distance and mu the reduced mass of a pair,
// both averaged over the disks. rate counts collisions per unit time
// across the whole gas. With rate zero this reduces to the ideal-gas law;
// the collisional term assumes Maxwell-Boltzmann velocities, so treat it
// as a cross-check for equilibrated runs, not an exact measurement.
func PressureVirial(st *gas.State, rate float64) float64 {
	if st == nil || st.N() == 0 {
		return 0
	}

	kT := st.Temperature()

	var meanRadius, meanMass float64
	for i := 0; i < st.N(); i++ {
		meanRadius += st.Radius[i]
		meanMass += st.Mass[i]
	}
	meanRadius /= float64(st.N())
	meanMass /= float64(st.N())

	sigma := 2 * meanRadius
	mu := meanMass / 2

	kinetic := float64(st.N()) * kT
	collisional := rate * sigma / 2 * math.Sqrt(2*math.Pi*mu*kT)
	return (kinetic + collisional) / st.Bounds.Area()
}
