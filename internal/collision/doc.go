// Package collision implements contact detection and elastic resolution
// for the hard-disk gas.
//
//   - [Detector]: broad-phase sweep over the bin index, closed contact
//     test dist <= r_i + r_j, canonical (i, j) pair reporting
//   - [Resolve]: exact 2D elastic impulse plus positional correction
//   - [Separate]: mass-weighted de-overlap preserving the center of mass
//
// Detection and resolution are deliberately split: the detector reports
// every contacting pair including all pairs of a multi-body contact, and
// the stepper owns the order in which they resolve.
package collision
