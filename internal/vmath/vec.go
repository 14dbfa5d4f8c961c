package vmath

import "math"

// Vec3 is a world-space position or velocity.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// PlanarLenSq is the squared length on the XZ plane.
func (a Vec3) PlanarLenSq() float64 {
	return a.X*a.X + a.Z*a.Z
}

func (a Vec3) PlanarLen() float64 {
	return math.Sqrt(a.PlanarLenSq())
}

// PlanarDistSq returns the squared XZ distance between two points, Y ignored.
func PlanarDistSq(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// Normalized returns the unit vector, or zero when the length is below Epsilon.
func (a Vec3) Normalized() Vec3 {
	l := a.Len()
	if l < Epsilon {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// PlanarDir returns the normalized XZ direction of a, or ok=false when a has
// no usable planar length.
func (a Vec3) PlanarDir() (Vec3, bool) {
	l := a.PlanarLen()
	if l < Epsilon {
		return Vec3{}, false
	}
	return Vec3{X: a.X / l, Z: a.Z / l}, true
}

// Yaw is the travel angle on the XZ plane, measured from +X toward +Z.
func Yaw(dir Vec3) float64 {
	return math.Atan2(dir.Z, dir.X)
}

// FromYaw builds a unit planar direction from a travel angle.
func FromYaw(angle float64) Vec3 {
	return Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
}

// MoveTowards steps current toward target by at most maxDelta.
func MoveTowards(current, target Vec3, maxDelta float64) Vec3 {
	d := target.Sub(current)
	l := d.Len()
	if l <= maxDelta || l < Epsilon {
		return target
	}
	return current.Add(d.Scale(maxDelta / l))
}
