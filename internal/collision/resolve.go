package collision

import (
	"fmt"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// DegenerateContactError reports a contact with coincident centers, where
// the collision normal is undefined. It indicates tunneling in a prior
// step, not a recoverable condition.
type DegenerateContactError struct {
	I, J int
}

func (e *DegenerateContactError) Error() string {
	return fmt.Sprintf("collision: degenerate contact: particles %d and %d have coincident centers", e.I, e.J)
}

// Approaching reports whether the pair's relative velocity has a closing
// component along the line of centers. Separating or sliding tangent
// contacts carry no impulse.
func Approaching(st *gas.State, i, j int) bool {
	d := st.Pos[j].Sub(st.Pos[i])
	rel := st.Vel[j].Sub(st.Vel[i])
	return rel.Dot(d) < 0
}

// Resolve applies an exact elastic impulse to the pair (i, j) in place,
// then separates any residual overlap. The disks are smooth, so only the
// velocity component along the line of centers changes; the tangential
// component passes through untouched.
//
// Total momentum m_i*v_i + m_j*v_j and total kinetic energy are conserved
// to floating-point precision for any masses and any approach angle.
// Equal masses head-on degenerate to a full velocity exchange.
func Resolve(st *gas.State, i, j int) error {
	d := st.Pos[i].Sub(st.Pos[j])
	dist2 := d.LengthSquared()
	if dist2 == 0 {
		return &DegenerateContactError{I: i, J: j}
	}

	mi, mj := st.Mass[i], st.Mass[j]
	total := mi + mj

	// Projection of the relative velocity onto the line of centers,
	// normalized by the squared distance so d itself can carry the
	// direction without an explicit sqrt.
	k := st.Vel[i].Sub(st.Vel[j]).Dot(d) / dist2

	st.Vel[i] = st.Vel[i].Sub(d.Scale(2 * mj / total * k))
	st.Vel[j] = st.Vel[j].Add(d.Scale(2 * mi / total * k))

	Separate(st, i, j)
	return nil
}

// Separate pushes an overlapping pair apart along the line of centers
// until it is exactly tangent. The displacement is split in proportion to
// the other particle's mass, which keeps the combined center of mass
// fixed. No-op for pairs at or beyond contact distance.
func Separate(st *gas.State, i, j int) {
	d := st.Pos[i].Sub(st.Pos[j])
	dist := d.Length()
	contact := st.Radius[i] + st.Radius[j]
	if dist >= contact || dist == 0 {
		return
	}

	normal := d.Scale(1 / dist)
	penetration := contact - dist

	total := st.Mass[i] + st.Mass[j]
	st.Pos[i] = st.Pos[i].Add(normal.Scale(penetration * st.Mass[j] / total))
	st.Pos[j] = st.Pos[j].Sub(normal.Scale(penetration * st.Mass[i] / total))
}
