package analysis

import "github.com/eschmidt42/hardspheres-2d/internal/gas"

// MeanSquaredDisplacement computes <|r_i(t+k) - r_i(t)|^2> per lag k,
// averaged over all time origins and all disks. Entry 0 is always zero.
func MeanSquaredDisplacement(states []*gas.State) []float64 {
	m := len(states)
	if m == 0 || states[0].N() == 0 {
		return nil
	}
	n := states[0].N()

	msd := make([]float64, m)
	for k := 1; k < m; k++ {
		sum := 0.0
		for t := 0; t+k < m; t++ {
			for i := 0; i < n; i++ {
				sum += states[t].Pos[i].DistanceSquared(states[t+k].Pos[i])
			}
		}
		msd[k] = sum / float64((m-k)*n)
	}
	return msd
}

// DiffusionCoefficient fits MSD(t) = 4*D*t by least squares and returns D.
// dt is the time between consecutive entries. In a closed box the MSD
// saturates near the domain scale, so fit only the early diffusive part of
// the series.
func DiffusionCoefficient(msd []float64, dt float64) float64 {
	if len(msd) < 2 || dt <= 0 {
		return 0
	}

	var sumT, sumY, sumTY, sumTT float64
	for k, y := range msd {
		t := float64(k) * dt
		sumT += t
		sumY += y
		sumTY += t * y
		sumTT += t * t
	}
	n := float64(len(msd))
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	slope := (n*sumTY - sumT*sumY) / denom
	return slope / 4
}
