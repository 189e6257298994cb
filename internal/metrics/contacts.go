package metrics

import (
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// MaxOverlap records the deepest pair penetration seen in any observed
// state. Quadratic in N, so meant for diagnostic runs.
type MaxOverlap struct {
	name string
	max  float64
}

func NewMaxOverlap() *MaxOverlap {
	return &MaxOverlap{name: "max_overlap"}
}

func (m *MaxOverlap) Name() string { return m.name }

func (m *MaxOverlap) Observe(st *gas.State, _ engine.StepStats) {
	for i := 0; i < st.N(); i++ {
		for j := i + 1; j < st.N(); j++ {
			pen := st.Radius[i] + st.Radius[j] - st.Pos[i].Distance(st.Pos[j])
			if pen > m.max {
				m.max = pen
			}
		}
	}
}

func (m *MaxOverlap) Value() float64 {
	return m.max
}

func (m *MaxOverlap) Reset() {
	m.max = 0
}

// CollisionRate measures resolved collisions per unit simulated time.
// The first observation only anchors the time window, so the rate is
// unbiased from the second step on.
type CollisionRate struct {
	name        string
	resolutions int
	firstTime   float64
	lastTime    float64
	samples     int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(st *gas.State, stats engine.StepStats) {
	if c.samples == 0 {
		c.firstTime = st.Time
	} else {
		c.resolutions += stats.Resolutions
	}
	c.lastTime = st.Time
	c.samples++
}

func (c *CollisionRate) Value() float64 {
	span := c.lastTime - c.firstTime
	if span <= 0 {
		return 0
	}
	return float64(c.resolutions) / span
}

func (c *CollisionRate) Reset() {
	c.resolutions = 0
	c.firstTime = 0
	c.lastTime = 0
	c.samples = 0
}
