package core

import "math"

// Frame is an orthonormal basis. Local coordinates put N on the +Z axis,
// S on +X and T on +Y.
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around the unit normal n
func NewFrame(n Vec3) Frame {
	s, t := CoordinateSystem(n)
	return Frame{S: s, T: t, N: n}
}

// NewFrameFromTangent builds a frame from a normal and an approximate tangent,
// orthogonalizing the tangent against the normal
func NewFrameFromTangent(n, tangent Vec3) Frame {
	s := tangent.Subtract(n.Multiply(n.Dot(tangent)))
	if s.LengthSquared() < 1e-12 {
		return NewFrame(n)
	}
	s = s.Normalize()
	return Frame{S: s, T: n.Cross(s), N: n}
}

// CoordinateSystem completes a, which must be normalized, to an orthonormal basis
func CoordinateSystem(a Vec3) (Vec3, Vec3) {
	var c Vec3
	if math.Abs(a.X) > math.Abs(a.Y) {
		invLen := 1.0 / math.Sqrt(a.X*a.X+a.Z*a.Z)
		c = Vec3{a.Z * invLen, 0, -a.X * invLen}
	} else {
		invLen := 1.0 / math.Sqrt(a.Y*a.Y+a.Z*a.Z)
		c = Vec3{0, a.Z * invLen, -a.Y * invLen}
	}
	return c.Cross(a), c
}

// ToLocal converts a world-space vector into frame coordinates
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// ToWorld converts a frame-space vector into world coordinates
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine of the angle between a local vector and the normal
func CosTheta(v Vec3) float64 {
	return v.Z
}

// SinTheta2 returns sin²θ for a local unit vector
func SinTheta2(v Vec3) float64 {
	return max(0, 1-v.Z*v.Z)
}

// SinTheta returns sinθ for a local unit vector
func SinTheta(v Vec3) float64 {
	return math.Sqrt(SinTheta2(v))
}

// TanTheta returns tanθ for a local unit vector
func TanTheta(v Vec3) float64 {
	return SinTheta(v) / v.Z
}

// TanTheta2 returns tan²θ for a local unit vector
func TanTheta2(v Vec3) float64 {
	return SinTheta2(v) / (v.Z * v.Z)
}

// CosPhi returns cosφ for a local vector, 1 at the pole
func CosPhi(v Vec3) float64 {
	s := SinTheta(v)
	if s == 0 {
		return 1
	}
	return Clamp(v.X/s, -1, 1)
}

// SinPhi returns sinφ for a local vector, 0 at the pole
func SinPhi(v Vec3) float64 {
	s := SinTheta(v)
	if s == 0 {
		return 0
	}
	return Clamp(v.Y/s, -1, 1)
}

// SphericalDirection builds the vector with the given polar angles around the frame (s, t, n)
func SphericalDirection(sinTheta, cosTheta, phi float64, s, t, n Vec3) Vec3 {
	return s.Multiply(sinTheta * math.Cos(phi)).
		Add(t.Multiply(sinTheta * math.Sin(phi))).
		Add(n.Multiply(cosTheta))
}
