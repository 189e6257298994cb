package metrics

import (
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// WallPressure estimates pressure from the momentum the gas transfers to
// the walls: impulse per unit time per unit wall length. Like
// CollisionRate it uses the first observation only to anchor the time
// window.
type WallPressure struct {
	name      string
	impulse   float64
	perimeter float64
	firstTime float64
	lastTime  float64
	samples   int
}

func NewWallPressure() *WallPressure {
	return &WallPressure{name: "wall_pressure"}
}

func (w *WallPressure) Name() string { return w.name }

func (w *WallPressure) Observe(st *gas.State, stats engine.StepStats) {
	if w.samples == 0 {
		w.firstTime = st.Time
		w.perimeter = st.Bounds.Perimeter()
	} else {
		w.impulse += stats.WallImpulse
	}
	w.lastTime = st.Time
	w.samples++
}

func (w *WallPressure) Value() float64 {
	span := w.lastTime - w.firstTime
	if span <= 0 || w.perimeter == 0 {
		return 0
	}
	return w.impulse / (span * w.perimeter)
}

func (w *WallPressure) Reset() {
	w.impulse = 0
	w.perimeter = 0
	w.firstTime = 0
	w.lastTime = 0
	w.samples = 0
}
