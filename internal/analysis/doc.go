// Package analysis provides post-run statistics for recorded trajectories.
//
// The package characterizes a gas run from its sequence of states:
//
//   - [SpeedHistogram]: binned speed distribution with a
//     [MaxwellBoltzmannPDF] overlay
//   - [VelocityAutocorrelation]: velocity autocorrelation and its
//     [PowerSpectrum]
//   - [MeanSquaredDisplacement]: squared displacement per lag with a
//     [DiffusionCoefficient] fit
//   - [PressureVirial]: pressure estimated from the collision rate
//
// # Equilibration Check
//
// An equilibrated gas matches the Maxwell-Boltzmann speed law:
//
//	hist := analysis.SpeedHistogram(final, 40)
//	pdf := analysis.MaxwellBoltzmannPDF(mass, kT)
//	for i, c := range hist.Centers() {
//	    fmt.Printf("%.3f measured=%.4f expected=%.4f\n", c, hist.Density[i], pdf(c))
//	}
package analysis
