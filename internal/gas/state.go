package gas

import (
	"fmt"
	"math"
)

// Bounds is the rectangular simulation domain [0, Width] x [0, Height].
type Bounds struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (b Bounds) Area() float64 { return b.Width * b.Height }

func (b Bounds) Perimeter() float64 { return 2 * (b.Width + b.Height) }

// Contains reports whether a disk of radius r centered at p fits fully
// inside the domain.
func (b Bounds) Contains(p Vec2, r float64) bool {
	return p.X >= r && p.X <= b.Width-r && p.Y >= r && p.Y <= b.Height-r
}

// overlapSlack is the relative penetration tolerated at construction time;
// anything deeper is a configuration error rather than a correctable contact.
const overlapSlack = 1e-7

// State holds all particles as parallel slices plus the domain. Index i is
// a stable particle identity: steps mutate positions and velocities only,
// never count or ordering.
type State struct {
	Pos    []Vec2
	Vel    []Vec2
	Radius []float64
	Mass   []float64
	Bounds Bounds
	Time   float64
}

// NewState validates a particle configuration and returns the initial
// state. The input slices are copied. Validation rejects empty or
// mismatched slices, non-positive radii or masses, non-finite values,
// disks that do not fit in the domain, and pairs that already overlap
// beyond the correctable tolerance.
func NewState(pos, vel []Vec2, radius, mass []float64, bounds Bounds) (*State, error) {
	n := len(pos)
	if n == 0 {
		return nil, &ConfigError{Index: -1, Detail: "no particles", Wrapped: ErrInvalidConfig}
	}
	if len(vel) != n || len(radius) != n || len(mass) != n {
		return nil, &ConfigError{
			Index:   -1,
			Detail:  fmt.Sprintf("parallel slice lengths differ: pos=%d vel=%d radius=%d mass=%d", n, len(vel), len(radius), len(mass)),
			Wrapped: ErrInvalidConfig,
		}
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, &ConfigError{
			Index:   -1,
			Detail:  fmt.Sprintf("domain bounds must be positive, got %gx%g", bounds.Width, bounds.Height),
			Wrapped: ErrInvalidConfig,
		}
	}

	for i := 0; i < n; i++ {
		if radius[i] <= 0 || math.IsNaN(radius[i]) || math.IsInf(radius[i], 0) {
			return nil, &ConfigError{Index: i, Detail: fmt.Sprintf("radius %g must be positive", radius[i]), Wrapped: ErrInvalidConfig}
		}
		if mass[i] <= 0 || math.IsNaN(mass[i]) || math.IsInf(mass[i], 0) {
			return nil, &ConfigError{Index: i, Detail: fmt.Sprintf("mass %g must be positive", mass[i]), Wrapped: ErrInvalidConfig}
		}
		if !pos[i].IsFinite() || !vel[i].IsFinite() {
			return nil, &ConfigError{Index: i, Detail: "position or velocity is NaN/Inf", Wrapped: ErrNotFinite}
		}
		if !bounds.Contains(pos[i], radius[i]) {
			return nil, &ConfigError{
				Index:   i,
				Detail:  fmt.Sprintf("disk at (%g, %g) with radius %g does not fit in %gx%g", pos[i].X, pos[i].Y, radius[i], bounds.Width, bounds.Height),
				Wrapped: ErrOutOfBounds,
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			contact := radius[i] + radius[j]
			if d := pos[i].Distance(pos[j]); contact-d > overlapSlack*contact {
				return nil, &PairError{
					I:       i,
					J:       j,
					Detail:  fmt.Sprintf("center distance %g below contact distance %g", d, contact),
					Wrapped: ErrInitialOverlap,
				}
			}
		}
	}

	s := &State{
		Pos:    make([]Vec2, n),
		Vel:    make([]Vec2, n),
		Radius: make([]float64, n),
		Mass:   make([]float64, n),
		Bounds: bounds,
	}
	copy(s.Pos, pos)
	copy(s.Vel, vel)
	copy(s.Radius, radius)
	copy(s.Mass, mass)
	return s, nil
}

// N returns the particle count.
func (s *State) N() int { return len(s.Pos) }

func (s *State) Clone() *State {
	c := &State{
		Pos:    make([]Vec2, len(s.Pos)),
		Vel:    make([]Vec2, len(s.Vel)),
		Radius: make([]float64, len(s.Radius)),
		Mass:   make([]float64, len(s.Mass)),
		Bounds: s.Bounds,
		Time:   s.Time,
	}
	copy(c.Pos, s.Pos)
	copy(c.Vel, s.Vel)
	copy(c.Radius, s.Radius)
	copy(c.Mass, s.Mass)
	return c
}

// KineticEnergy returns the total kinetic energy sum(m/2 |v|^2).
func (s *State) KineticEnergy() float64 {
	e := 0.0
	for i := range s.Vel {
		e += 0.5 * s.Mass[i] * s.Vel[i].LengthSquared()
	}
	return e
}

// Momentum returns the total linear momentum sum(m v).
func (s *State) Momentum() Vec2 {
	var p Vec2
	for i := range s.Vel {
		p = p.Add(s.Vel[i].Scale(s.Mass[i]))
	}
	return p
}

// Temperature returns the equipartition temperature estimate in units where
// the Boltzmann constant is 1: each particle carries kT of kinetic energy
// across its two degrees of freedom.
func (s *State) Temperature() float64 {
	if len(s.Pos) == 0 {
		return 0
	}
	return s.KineticEnergy() / float64(len(s.Pos))
}

func (s *State) MaxRadius() float64 {
	max := 0.0
	for _, r := range s.Radius {
		if r > max {
			max = r
		}
	}
	return max
}

// PackingFraction returns the fraction of domain area covered by disks.
func (s *State) PackingFraction() float64 {
	covered := 0.0
	for _, r := range s.Radius {
		covered += math.Pi * r * r
	}
	return covered / s.Bounds.Area()
}

// IsValid reports whether every position and velocity is finite.
func (s *State) IsValid() bool {
	for i := range s.Pos {
		if !s.Pos[i].IsFinite() || !s.Vel[i].IsFinite() {
			return false
		}
	}
	return true
}
