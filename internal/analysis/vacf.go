package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// VelocityAutocorrelation computes the velocity autocorrelation
// C(k) = <v_i(t) . v_i(t+k)> of a recorded trajectory, averaged over all
// time origins and all disks. C has one entry per recorded state; C[0] is
// the mean squared speed. States must come from a single run.
func VelocityAutocorrelation(states []*gas.State) []float64 {
	m := len(states)
	if m == 0 || states[0].N() == 0 {
		return nil
	}
	n := states[0].N()

	c := make([]float64, m)
	for k := 0; k < m; k++ {
		sum := 0.0
		for t := 0; t+k < m; t++ {
			for i := 0; i < n; i++ {
				sum += states[t].Vel[i].Dot(states[t+k].Vel[i])
			}
		}
		c[k] = sum / float64((m-k)*n)
	}
	return c
}

// PowerSpectrum returns the magnitudes of the first half of the discrete
// Fourier transform of a series.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	buf := make([]complex128, len(series))
	for i, v := range series {
		buf[i] = complex(v, 0)
	}
	spectrum := fft.FFT(buf)

	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}
