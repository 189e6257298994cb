package analysis

import (
	"math"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// Histogram is a binned speed distribution. Density is normalized to unit
// area so it can be compared directly against a probability density.
type Histogram struct {
	Edges   []float64 // bin boundaries, uniform over [0, max speed]
	Counts  []int
	Density []float64
}

// Centers returns the midpoint of each bin.
func (h *Histogram) Centers() []float64 {
	centers := make([]float64, len(h.Counts))
	for i := range centers {
		centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return centers
}

// SpeedHistogram bins the disk speeds of a state into uniform bins
// spanning [0, max speed]. Returns nil for an empty state or a
// non-positive bin count.
func SpeedHistogram(st *gas.State, bins int) *Histogram {
	if st == nil || st.N() == 0 || bins <= 0 {
		return nil
	}

	speeds := make([]float64, st.N())
	maxSpeed := 0.0
	for i := range speeds {
		speeds[i] = st.Vel[i].Length()
		if speeds[i] > maxSpeed {
			maxSpeed = speeds[i]
		}
	}
	if maxSpeed == 0 {
		maxSpeed = 1 // gas at rest: everything lands in the first bin
	}

	h := &Histogram{
		Edges:   make([]float64, bins+1),
		Counts:  make([]int, bins),
		Density: make([]float64, bins),
	}
	width := maxSpeed / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = float64(i) * width
	}

	for _, v := range speeds {
		bin := int(v / width)
		if bin >= bins {
			bin = bins - 1 // the max speed sits on the closing edge
		}
		h.Counts[bin]++
	}

	norm := float64(st.N()) * width
	for i, c := range h.Counts {
		h.Density[i] = float64(c) / norm
	}

	return h
}

// MaxwellBoltzmannPDF returns the two-dimensional Maxwell-Boltzmann speed
// density f(v) = (m*v/kT) * exp(-m*v^2/(2kT)) for disks of the given mass.
func MaxwellBoltzmannPDF(mass, kT float64) func(speed float64) float64 {
	return func(speed float64) float64 {
		return mass * speed / kT * math.Exp(-mass*speed*speed/(2*kT))
	}
}
