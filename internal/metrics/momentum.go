package metrics

import (
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// MomentumDrift tracks how far total momentum has moved from its first
// observed value. Wall reflections legitimately exchange momentum with
// the box; pair collisions must not.
type MomentumDrift struct {
	name    string
	initial gas.Vec2
	max     float64
	samples int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(st *gas.State, _ engine.StepStats) {
	p := st.Momentum()

	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	if d := p.Sub(m.initial).Length(); d > m.max {
		m.max = d
	}
}

func (m *MomentumDrift) Value() float64 {
	return m.max
}

func (m *MomentumDrift) Reset() {
	m.initial = gas.Vec2{}
	m.max = 0
	m.samples = 0
}
