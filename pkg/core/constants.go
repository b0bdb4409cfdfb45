package core

import "math"

const (
	// RayEpsilon offsets spawned and shadow rays from the surface they leave
	// or approach so they do not re-intersect it.
	RayEpsilon = 1e-4

	// PDFEpsilon is the smallest sampling density an estimator divides by.
	// Below it the term contributes zero.
	PDFEpsilon = 1e-7

	// UnitTolerance bounds |‖v‖-1| for a direction to count as normalized.
	UnitTolerance = 1e-4
)

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// IsUnit reports whether v has unit length within UnitTolerance
func IsUnit(v Vec3) bool {
	return math.Abs(v.Length()-1) <= UnitTolerance
}

// Reflect mirrors a local direction about the +Z normal
func Reflect(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, v.Z}
}

// ReflectAbout mirrors wi about the unit vector m (both pointing away from the surface)
func ReflectAbout(wi, m Vec3) Vec3 {
	return m.Multiply(2 * wi.Dot(m)).Subtract(wi)
}
