// Package engine advances the hard-disk gas through time.
//
// The package provides two layers:
//
//   - [Stepper]: one fixed time step. Detects contacts, resolves them in
//     ascending (i, j) order with re-detection after every resolution,
//     applies free flight against the reflective walls, then settles any
//     penetration the flight created so the returned states never contain
//     interpenetrating disks. Returns the full chronological sequence of
//     states the step passed through.
//   - [Runner]: drives many steps under a [Config], observing [Metric] and
//     [Observer] instances per step and collecting a [Result].
//
// # Determinism
//
// Resolution is strictly ordered and single-threaded; only contact
// detection fans out to workers, and its merged result is re-sorted before
// use. Two runs over the same initial state produce identical trajectories.
//
// # Termination
//
// Only pairs approaching along their line of centers receive an impulse,
// so each resolution strictly shrinks the set of closing contacts it
// belongs to. Post-flight settling pushes pairs to exact tangency and
// never reselects them. A shared budget of StallFactor * N actions per
// step guards the remaining pathologies; exceeding it fails the step with
// a [StallError].
package engine
