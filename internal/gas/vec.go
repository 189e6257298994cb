package gas

import "math"

// Vec2 is a 2D vector. All methods are value-based and allocation-free.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

func (v Vec2) DistanceSquared(o Vec2) float64 { return v.Sub(o).LengthSquared() }

// Normalize returns the unit vector along v, or the zero vector when v has
// zero length. Callers that cannot tolerate the zero case (the collision
// normal) must check the length themselves first.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
