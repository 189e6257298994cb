// Package gas defines the particle-state primitives for the hard-disk gas.
//
// The package holds the data model shared by every other package:
//
//   - [Vec2]: 2D vector value type
//   - [Bounds]: rectangular simulation domain
//   - [State]: positions, velocities, radii and masses of all particles
//
// States are replaced, never mutated: the stepper consumes one state and
// emits new ones, so callers can inspect or discard intermediate states
// without aliasing surprises.
//
// # Boundary policy
//
// The domain has reflective walls. Binning, free flight and rendering all
// assume this single policy.
package gas
