package engine_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eschmidt42/hardspheres-2d/internal/boltzmann"
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// denseGas builds an 8x8 lattice of unit disks with Maxwell-Boltzmann
// velocities at T=1, dense enough to collide constantly.
func denseGas(seed int64) *gas.State {
	const (
		side    = 8
		spacing = 2.0
		radius  = 0.5
	)
	n := side * side

	pos := make([]gas.Vec2, 0, n)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			pos = append(pos, gas.Vec2{
				X: 1.5 + float64(x)*spacing,
				Y: 1.5 + float64(y)*spacing,
			})
		}
	}

	rng := rand.New(rand.NewSource(seed))
	vel, err := boltzmann.SampleVec2(rng, n, 1.0, 1.0, boltzmann.DefaultBoltzmannConstant)
	Expect(err).NotTo(HaveOccurred())

	radii := make([]float64, n)
	mass := make([]float64, n)
	for i := 0; i < n; i++ {
		radii[i] = radius
		mass[i] = 1
	}

	st, err := gas.NewState(pos, vel, radii, mass, gas.Bounds{Width: 17, Height: 17})
	Expect(err).NotTo(HaveOccurred())
	return st
}

var _ = Describe("Equilibrium run", func() {
	var (
		initial *gas.State
		result  *engine.Result
	)

	BeforeEach(func() {
		initial = denseGas(99)

		var err error
		result, err = engine.NewRunner().Run(context.Background(), initial, engine.Config{
			Dt:          0.01,
			Duration:    5.0,
			RecordEvery: 10,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Resolutions).To(BeNumerically(">", 0), "gas too dilute to collide")
	})

	It("conserves kinetic energy across thousands of collisions", func() {
		e0 := initial.KineticEnergy()
		for _, st := range result.States {
			Expect(st.KineticEnergy()).To(BeNumerically("~", e0, e0*1e-9))
		}
		Expect(result.EnergyDrift).To(BeNumerically("<", 1e-9))
	})

	It("never records interpenetrating disks", func() {
		for _, st := range result.States {
			for i := 0; i < st.N(); i++ {
				for j := i + 1; j < st.N(); j++ {
					contact := st.Radius[i] + st.Radius[j]
					Expect(st.Pos[i].Distance(st.Pos[j])).To(BeNumerically(">=", contact-1e-9),
						"pair (%d, %d) overlaps at t=%.3f", i, j, st.Time)
				}
			}
		}
	})

	It("keeps every disk inside the domain", func() {
		for _, st := range result.States {
			for i := 0; i < st.N(); i++ {
				r := st.Radius[i]
				Expect(st.Pos[i].X).To(BeNumerically(">=", r))
				Expect(st.Pos[i].X).To(BeNumerically("<=", st.Bounds.Width-r))
				Expect(st.Pos[i].Y).To(BeNumerically(">=", r))
				Expect(st.Pos[i].Y).To(BeNumerically("<=", st.Bounds.Height-r))
			}
		}
	})

	It("advances time monotonically to the configured duration", func() {
		for i := 1; i < len(result.Times); i++ {
			Expect(result.Times[i]).To(BeNumerically(">", result.Times[i-1]))
		}
		Expect(result.Times[len(result.Times)-1]).To(BeNumerically("~", 5.0, 1e-9))
	})

	It("does not mutate the initial state", func() {
		fresh := denseGas(99)
		Expect(initial.Pos).To(Equal(fresh.Pos))
		Expect(initial.Vel).To(Equal(fresh.Vel))
	})
})
