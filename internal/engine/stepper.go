package engine

import (
	"github.com/eschmidt42/hardspheres-2d/internal/collision"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
	"github.com/eschmidt42/hardspheres-2d/internal/grid"
)

// defaultStallFactor bounds the contact work of one step at factor * N.
const defaultStallFactor = 32

// maxCellsPerAxis caps index memory for dilute domains of very small disks.
const maxCellsPerAxis = 1024

// settleSlack is the penetration depth below which a receding pair is
// left alone rather than settled. It sits well above the rounding error
// of a positional correction and well below any physically meaningful
// overlap, so settling terminates instead of chasing float noise.
const settleSlack = 1e-12

// Stepper advances a state by fixed time steps. Contacts present at the
// start of a step are resolved instantaneously, then every particle flies
// freely for the full dt with reflective walls. Penetration created by
// the flight itself is cleaned up at the end of the step: approaching
// pairs receive their impulse, receding ones are only pushed apart. A
// returned state therefore never contains interpenetrating disks.
type Stepper struct {
	Dt          float64
	CellSize    float64 // 0 picks twice the largest radius
	StallFactor int     // 0 picks the default

	det      *collision.Detector
	index    *grid.Index
	cellSize float64
	bounds   gas.Bounds

	stats StepStats
}

// StepStats summarizes the work done by the most recent Step call.
type StepStats struct {
	Resolutions int     // elastic impulses applied
	Settles     int     // positional corrections without an impulse
	WallImpulse float64 // total |dp| transferred to the walls
}

func NewStepper(dt float64) *Stepper {
	return &Stepper{Dt: dt, det: collision.NewDetector()}
}

// LastStats returns counters from the most recent Step call.
func (s *Stepper) LastStats() StepStats { return s.stats }

// Step advances the state by one time step and returns the chronological
// sequence of states it passed through: one per contact acted on, plus
// the final state. The input state is never mutated.
//
// Pairs resolve in ascending (i, j) order with full re-detection after
// each action, since acting on one contact can create or remove contact
// elsewhere. Only approaching pairs carry an impulse; a tangent pair
// already separating is left to drift apart.
func (s *Stepper) Step(st *gas.State) ([]*gas.State, error) {
	if s.Dt <= 0 {
		return nil, ErrBadConfig
	}

	work := st.Clone()
	g := s.indexFor(work)
	s.stats = StepStats{}

	out, err := s.resolveContacts(work, g, false, nil)
	if err != nil {
		return nil, err
	}

	s.freeFlight(work, s.Dt)
	g.Rebuild(work)

	out, err = s.resolveContacts(work, g, true, out)
	if err != nil {
		return nil, err
	}
	s.reflectWalls(work)

	out = append(out, work)
	return out, nil
}

// action classifies what a detected contact needs from the stepper:
// nothing, an elastic impulse (with positional correction), or a
// positional correction alone.
type action int

const (
	actNothing action = iota
	actResolve
	actSettle
)

// classify decides the stepper's response to a detected contact.
// Coincident centers are routed to the resolver, so the degenerate case
// fails the step instead of being skipped as a non-approaching contact.
// Settling receding penetration is enabled only after the flight phase:
// at the start of a step such overlap is residue the flight will shrink,
// at the end it would leak into the returned state.
func classify(st *gas.State, p collision.Pair, settle bool) action {
	d2 := st.Pos[p.I].DistanceSquared(st.Pos[p.J])
	if d2 == 0 || collision.Approaching(st, p.I, p.J) {
		return actResolve
	}
	if settle {
		contact := st.Radius[p.I] + st.Radius[p.J]
		if reach := contact - settleSlack; d2 < reach*reach {
			return actSettle
		}
	}
	return actNothing
}

// resolveContacts runs the detect-act-redetect loop until no contact
// needs work, appending one cloned state per action. The resolution
// budget is shared across both invocations of a step.
func (s *Stepper) resolveContacts(work *gas.State, g *grid.Index, settle bool, out []*gas.State) ([]*gas.State, error) {
	stallAfter := s.stallFactor() * work.N()

	for {
		pairs := s.det.Find(work, g)

		next := collision.Pair{}
		act := actNothing
		for _, p := range pairs {
			if a := classify(work, p, settle); a != actNothing {
				next, act = p, a
				break
			}
		}
		if act == actNothing {
			return out, nil
		}

		if s.stats.Resolutions+s.stats.Settles >= stallAfter {
			return nil, &StallError{
				Time:        work.Time,
				Resolutions: s.stats.Resolutions + s.stats.Settles,
				Pairs:       pendingPairs(work, pairs, settle),
			}
		}

		switch act {
		case actResolve:
			if err := collision.Resolve(work, next.I, next.J); err != nil {
				return nil, err
			}
			s.stats.Resolutions++
		case actSettle:
			collision.Separate(work, next.I, next.J)
			s.stats.Settles++
		}

		out = append(out, work.Clone())
		g.Rebuild(work) // the correction moved centers
	}
}

func (s *Stepper) stallFactor() int {
	if s.StallFactor > 0 {
		return s.StallFactor
	}
	return defaultStallFactor
}

// indexFor returns the bin index for the state, rebuilding the cached one
// when geometry allows and allocating a fresh one when it does not.
func (s *Stepper) indexFor(st *gas.State) *grid.Index {
	cell := s.CellSize
	if min := 2 * st.MaxRadius(); cell < min {
		cell = min
	}
	if w := st.Bounds.Width / maxCellsPerAxis; cell < w {
		cell = w
	}
	if h := st.Bounds.Height / maxCellsPerAxis; cell < h {
		cell = h
	}

	if s.index == nil || cell != s.cellSize || st.Bounds != s.bounds {
		s.index = grid.New(st.Bounds, cell)
		s.cellSize = cell
		s.bounds = st.Bounds
	}
	s.index.Rebuild(st)
	return s.index
}

// freeFlight moves every particle in a straight line for dt, then handles
// wall contact.
func (s *Stepper) freeFlight(st *gas.State, dt float64) {
	for i := range st.Pos {
		st.Pos[i] = st.Pos[i].Add(st.Vel[i].Scale(dt))
	}
	st.Time += dt

	s.reflectWalls(st)
}

// reflectWalls mirrors any overshoot past a wall back inside and flips
// the velocity component driving outward, preserving speed exactly. A
// disk that sits past a wall but already moves inward is mirrored without
// a flip, so positional corrections near a wall cannot trap it outside
// or reverse it twice.
func (s *Stepper) reflectWalls(st *gas.State) {
	w, h := st.Bounds.Width, st.Bounds.Height

	for i := range st.Pos {
		p := st.Pos[i]
		v := st.Vel[i]
		r := st.Radius[i]

		if p.X < r {
			p.X = 2*r - p.X
			if v.X < 0 {
				v.X = -v.X
				s.stats.WallImpulse += 2 * st.Mass[i] * v.X
			}
		} else if p.X > w-r {
			p.X = 2*(w-r) - p.X
			if v.X > 0 {
				v.X = -v.X
				s.stats.WallImpulse += 2 * st.Mass[i] * -v.X
			}
		}

		if p.Y < r {
			p.Y = 2*r - p.Y
			if v.Y < 0 {
				v.Y = -v.Y
				s.stats.WallImpulse += 2 * st.Mass[i] * v.Y
			}
		} else if p.Y > h-r {
			p.Y = 2*(h-r) - p.Y
			if v.Y > 0 {
				v.Y = -v.Y
				s.stats.WallImpulse += 2 * st.Mass[i] * -v.Y
			}
		}

		st.Pos[i] = p
		st.Vel[i] = v
	}
}

// pendingPairs lists the contacts still waiting for work, for stall
// diagnostics.
func pendingPairs(st *gas.State, pairs []collision.Pair, settle bool) []collision.Pair {
	var out []collision.Pair
	for _, p := range pairs {
		if classify(st, p, settle) != actNothing {
			out = append(out, p)
		}
	}
	return out
}
