package core

import "math"

// Ray is a parametric segment origin + t*direction for t in [MinT, MaxT].
// Medium is the medium the ray travels through; nil means vacuum.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	MinT, MaxT   float64
	Medium       Medium
}

// NewRay creates a ray starting RayEpsilon away from origin with unbounded extent
func NewRay(origin, direction Vec3) Ray {
	return NewSegment(origin, direction, RayEpsilon, math.Inf(1))
}

// NewRayInMedium creates a ray travelling through the given medium
func NewRayInMedium(origin, direction Vec3, medium Medium) Ray {
	r := NewRay(origin, direction)
	r.Medium = medium
	return r
}

// NewSegment creates a ray restricted to [minT, maxT]
func NewSegment(origin, direction Vec3, minT, maxT float64) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: Vec3{1 / direction.X, 1 / direction.Y, 1 / direction.Z},
		MinT:         minT,
		MaxT:         maxT,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// WithBounds returns a copy of the ray with a new parametric interval.
// The medium is preserved.
func (r Ray) WithBounds(minT, maxT float64) Ray {
	r.MinT = minT
	r.MaxT = maxT
	return r
}

// Reverse returns the ray pointing back toward its origin
func (r Ray) Reverse() Ray {
	rev := NewSegment(r.Origin, r.Direction.Negate(), r.MinT, r.MaxT)
	rev.Medium = r.Medium
	return rev
}

// Length returns the world-space length of the ray's interval, or +Inf if unbounded
func (r Ray) Length() float64 {
	if math.IsInf(r.MaxT, 1) {
		return math.Inf(1)
	}
	return r.MaxT * r.Direction.Length()
}
