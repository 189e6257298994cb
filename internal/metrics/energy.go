package metrics

import (
	"math"

	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(st *gas.State, _ engine.StepStats) {
	k.total += st.KineticEnergy()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(st *gas.State, _ engine.StepStats) {
	energy := st.KineticEnergy()

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

type Temperature struct {
	name    string
	total   float64
	samples int
}

func NewTemperature() *Temperature {
	return &Temperature{name: "temperature"}
}

func (t *Temperature) Name() string { return t.name }

func (t *Temperature) Observe(st *gas.State, _ engine.StepStats) {
	t.total += st.Temperature()
	t.samples++
}

func (t *Temperature) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.total / float64(t.samples)
}

func (t *Temperature) Reset() {
	t.total = 0
	t.samples = 0
}
