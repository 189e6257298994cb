package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/eschmidt42/hardspheres-2d/internal/collision"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

func mustState(t *testing.T, pos, vel []gas.Vec2, radius, mass []float64, bounds gas.Bounds) *gas.State {
	t.Helper()
	st, err := gas.NewState(pos, vel, radius, mass, bounds)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return st
}

// latticeState builds an nx*ny grid of unit-mass disks with seeded random
// velocities, spaced to fit the returned bounds.
func latticeState(t *testing.T, nx, ny int, spacing, radius float64, seed int64) *gas.State {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	n := nx * ny
	pos := make([]gas.Vec2, 0, n)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			pos = append(pos, gas.Vec2{
				X: spacing/2 + float64(x)*spacing,
				Y: spacing/2 + float64(y)*spacing,
			})
		}
	}

	vel := make([]gas.Vec2, n)
	rad := make([]float64, n)
	mass := make([]float64, n)
	for i := 0; i < n; i++ {
		vel[i] = gas.Vec2{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		rad[i] = radius
		mass[i] = 1
	}

	bounds := gas.Bounds{Width: float64(nx) * spacing, Height: float64(ny) * spacing}
	return mustState(t, pos, vel, rad, mass, bounds)
}

func TestStepper_FreeFlight(t *testing.T) {
	st := mustState(t,
		[]gas.Vec2{{X: 5, Y: 5}},
		[]gas.Vec2{{X: 1, Y: -2}},
		[]float64{0.5}, []float64{1},
		gas.Bounds{Width: 10, Height: 10},
	)

	s := NewStepper(0.1)
	out, err := s.Step(st)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("collision-free step emitted %d states, want 1", len(out))
	}

	final := out[0]
	if math.Abs(final.Pos[0].X-5.1) > 1e-12 || math.Abs(final.Pos[0].Y-4.8) > 1e-12 {
		t.Errorf("position = %v, want (5.1, 4.8)", final.Pos[0])
	}
	if math.Abs(final.Time-0.1) > 1e-12 {
		t.Errorf("time = %v, want 0.1", final.Time)
	}
}

func TestStepper_InputNotMutated(t *testing.T) {
	st := latticeState(t, 4, 4, 2.0, 0.5, 8)
	before := st.Clone()

	if _, err := NewStepper(0.05).Step(st); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	for i := 0; i < st.N(); i++ {
		if st.Pos[i] != before.Pos[i] || st.Vel[i] != before.Vel[i] {
			t.Fatalf("input state mutated at particle %d", i)
		}
	}
	if st.Time != before.Time {
		t.Error("input state time mutated")
	}
}

func TestStepper_WallReflection(t *testing.T) {
	tests := []struct {
		name    string
		pos     gas.Vec2
		vel     gas.Vec2
		wantPos gas.Vec2
		wantVel gas.Vec2
	}{
		{"right wall", gas.Vec2{X: 9.4, Y: 5}, gas.Vec2{X: 2, Y: 0}, gas.Vec2{X: 9.4, Y: 5}, gas.Vec2{X: -2, Y: 0}},
		{"left wall", gas.Vec2{X: 0.6, Y: 5}, gas.Vec2{X: -2, Y: 0}, gas.Vec2{X: 0.6, Y: 5}, gas.Vec2{X: 2, Y: 0}},
		{"top wall", gas.Vec2{X: 5, Y: 9.4}, gas.Vec2{X: 0, Y: 2}, gas.Vec2{X: 5, Y: 9.4}, gas.Vec2{X: 0, Y: -2}},
		{"bottom wall", gas.Vec2{X: 5, Y: 0.6}, gas.Vec2{X: 0, Y: -2}, gas.Vec2{X: 5, Y: 0.6}, gas.Vec2{X: 0, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := mustState(t,
				[]gas.Vec2{tt.pos}, []gas.Vec2{tt.vel},
				[]float64{0.5}, []float64{1},
				gas.Bounds{Width: 10, Height: 10},
			)

			s := NewStepper(0.1)
			out, err := s.Step(st)
			if err != nil {
				t.Fatalf("Step failed: %v", err)
			}

			// Overshoot of 0.1 past the wall inset mirrors back to the
			// starting coordinate.
			final := out[len(out)-1]
			if final.Pos[0].Distance(tt.wantPos) > 1e-12 {
				t.Errorf("position = %v, want %v", final.Pos[0], tt.wantPos)
			}
			if final.Vel[0] != tt.wantVel {
				t.Errorf("velocity = %v, want %v", final.Vel[0], tt.wantVel)
			}

			// Each reflection transfers 2*m*|v_n| to the wall.
			if imp := s.LastStats().WallImpulse; math.Abs(imp-4) > 1e-12 {
				t.Errorf("wall impulse = %v, want 4", imp)
			}
		})
	}
}

func TestStepper_HeadOnExchange(t *testing.T) {
	st := mustState(t,
		[]gas.Vec2{{X: 4, Y: 5}, {X: 5, Y: 5}},
		[]gas.Vec2{{X: 1, Y: 0}, {X: -1, Y: 0}},
		[]float64{0.5, 0.5}, []float64{1, 1},
		gas.Bounds{Width: 10, Height: 10},
	)

	out, err := NewStepper(0.01).Step(st)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// One resolution plus the post-flight state.
	if len(out) != 2 {
		t.Fatalf("emitted %d states, want 2", len(out))
	}

	mid := out[0]
	if mid.Vel[0] != (gas.Vec2{X: -1, Y: 0}) || mid.Vel[1] != (gas.Vec2{X: 1, Y: 0}) {
		t.Errorf("post-resolution velocities = %v, %v, want exchanged", mid.Vel[0], mid.Vel[1])
	}
	if mid.Time != 0 {
		t.Errorf("intermediate state time = %v, want 0 (collisions are instantaneous)", mid.Time)
	}

	final := out[1]
	if math.Abs(final.Pos[0].X-3.99) > 1e-12 || math.Abs(final.Pos[1].X-5.01) > 1e-12 {
		t.Errorf("final positions = %v, %v, want drifted apart", final.Pos[0], final.Pos[1])
	}
}

// Two particles squeezing a resting chain force repeated re-resolution:
// the cradle passes the impulse back and forth before everyone separates.
func squeezeChain(t *testing.T) *gas.State {
	t.Helper()
	return mustState(t,
		[]gas.Vec2{{X: 2, Y: 5}, {X: 3, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}},
		[]gas.Vec2{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 0}},
		[]float64{0.5, 0.5, 0.5, 0.5},
		[]float64{1, 1, 1, 1},
		gas.Bounds{Width: 10, Height: 10},
	)
}

func TestStepper_MultiBodyCradle(t *testing.T) {
	out, err := NewStepper(0.01).Step(squeezeChain(t))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	// Five impulses travel through the chain, each emitting a state, plus
	// the final post-flight state.
	if len(out) != 6 {
		t.Fatalf("emitted %d states, want 6", len(out))
	}

	final := out[len(out)-1]
	want := []gas.Vec2{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	for i, v := range want {
		if final.Vel[i].Distance(v) > 1e-12 {
			t.Errorf("final v%d = %v, want %v", i, final.Vel[i], v)
		}
	}

	if p := final.Momentum(); math.Abs(p.X) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Errorf("momentum = %v, want zero", p)
	}
	if e := final.KineticEnergy(); math.Abs(e-1) > 1e-12 {
		t.Errorf("energy = %v, want 1", e)
	}
}

func TestStepper_StallBudget(t *testing.T) {
	s := NewStepper(0.01)
	s.StallFactor = 1 // budget of N resolutions; the cradle needs 5 > 4

	_, err := s.Step(squeezeChain(t))
	if err == nil {
		t.Fatal("expected stall error, got nil")
	}
	if !errors.Is(err, ErrStalled) {
		t.Errorf("error = %v, want ErrStalled", err)
	}

	var stall *StallError
	if !errors.As(err, &stall) {
		t.Fatalf("error type = %T, want *StallError", err)
	}
	if len(stall.Pairs) == 0 {
		t.Error("stall error carries no offending pairs")
	}
	if stall.Resolutions != 4 {
		t.Errorf("resolutions = %d, want 4", stall.Resolutions)
	}
}

func TestStepper_DegenerateContactFailsStep(t *testing.T) {
	// Coincident centers cannot happen under correct stepping; when they
	// do, the step must fail loudly rather than skip the pair.
	st := &gas.State{
		Pos:    []gas.Vec2{{X: 5, Y: 5}, {X: 5, Y: 5}},
		Vel:    []gas.Vec2{{X: 1, Y: 0}, {X: -1, Y: 0}},
		Radius: []float64{0.5, 0.5},
		Mass:   []float64{1, 1},
		Bounds: gas.Bounds{Width: 10, Height: 10},
	}

	_, err := NewStepper(0.01).Step(st)
	var degen *collision.DegenerateContactError
	if !errors.As(err, &degen) {
		t.Fatalf("error = %v, want *DegenerateContactError", err)
	}
}

func TestStepper_RestingContactUndisturbed(t *testing.T) {
	st := mustState(t,
		[]gas.Vec2{{X: 4, Y: 5}, {X: 5, Y: 5}},
		[]gas.Vec2{{X: 0, Y: 0}, {X: 0, Y: 0}},
		[]float64{0.5, 0.5}, []float64{1, 1},
		gas.Bounds{Width: 10, Height: 10},
	)

	s := NewStepper(0.1)
	out, err := s.Step(st)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("resting pair emitted %d states, want 1", len(out))
	}
	if s.LastStats().Resolutions != 0 {
		t.Errorf("resting pair resolved %d times, want 0", s.LastStats().Resolutions)
	}
	if out[0].Vel[0] != (gas.Vec2{}) || out[0].Vel[1] != (gas.Vec2{}) {
		t.Error("resting contact acquired velocity")
	}
}

func TestStepper_NoOverlapAfterSteps(t *testing.T) {
	st := latticeState(t, 6, 6, 1.5, 0.5, 21)
	s := NewStepper(0.02)

	const eps = 1e-9
	for step := 0; step < 50; step++ {
		out, err := s.Step(st)
		if err != nil {
			t.Fatalf("step %d failed: %v", step, err)
		}
		st = out[len(out)-1]

		for i := 0; i < st.N(); i++ {
			for j := i + 1; j < st.N(); j++ {
				contact := st.Radius[i] + st.Radius[j]
				if d := st.Pos[i].Distance(st.Pos[j]); d < contact-eps {
					t.Fatalf("step %d: pair (%d, %d) overlaps: dist %v < %v", step, i, j, d, contact)
				}
			}
		}
	}
}

func TestStepper_BadTimeStep(t *testing.T) {
	st := latticeState(t, 2, 2, 2.0, 0.5, 1)

	if _, err := NewStepper(0).Step(st); !errors.Is(err, ErrBadConfig) {
		t.Errorf("error = %v, want ErrBadConfig", err)
	}
}

func BenchmarkStep_Gas256(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	const nx, ny = 16, 16
	n := nx * ny

	pos := make([]gas.Vec2, 0, n)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			pos = append(pos, gas.Vec2{X: 1 + float64(x)*1.5, Y: 1 + float64(y)*1.5})
		}
	}
	vel := make([]gas.Vec2, n)
	rad := make([]float64, n)
	mass := make([]float64, n)
	for i := 0; i < n; i++ {
		vel[i] = gas.Vec2{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		rad[i] = 0.5
		mass[i] = 1
	}
	st := &gas.State{Pos: pos, Vel: vel, Radius: rad, Mass: mass, Bounds: gas.Bounds{Width: 25, Height: 25}}

	s := NewStepper(0.005)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := s.Step(st)
		if err != nil {
			b.Fatal(err)
		}
		st = out[len(out)-1]
	}
}
