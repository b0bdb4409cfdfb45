// Package warp maps uniform samples on [0,1)² onto the domains used for
// importance sampling. Every SquareToX warp is paired with a SquareToXPDF
// density under the same measure: area for 2D domains, solid angle for
// directions. Directions are returned in a local frame where +Z is the
// distinguished axis. Densities are zero outside their support.
package warp

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

const (
	invPi     = 1.0 / math.Pi
	inv2Pi    = 1.0 / (2 * math.Pi)
	inv4Pi    = 1.0 / (4 * math.Pi)
	minAlpha  = 1e-4
	isotropic = 1e-3
)

// isDirection reports whether v is a unit vector within tolerance
func isDirection(v core.Vec3) bool {
	return core.IsUnit(v)
}

// SquareToUniformSquare is the identity warp
func SquareToUniformSquare(u core.Vec2) core.Vec2 {
	return u
}

// SquareToUniformSquarePDF is 1 on the unit square
func SquareToUniformSquarePDF(p core.Vec2) float64 {
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return 0
	}
	return 1
}

// SquareToUniformDisk maps to the unit disk with the sqrt-radius polar mapping
func SquareToUniformDisk(u core.Vec2) core.Vec2 {
	r := math.Sqrt(u.X)
	phi := 2 * math.Pi * u.Y
	return core.NewVec2(r*math.Cos(phi), r*math.Sin(phi))
}

// SquareToUniformDiskPDF is 1/π inside the unit disk
func SquareToUniformDiskPDF(p core.Vec2) float64 {
	if p.X*p.X+p.Y*p.Y > 1 {
		return 0
	}
	return invPi
}

// SquareToUniformSphereCap samples directions with cosθ ≥ cosThetaMax uniformly
func SquareToUniformSphereCap(u core.Vec2, cosThetaMax float64) core.Vec3 {
	z := 1 - u.X*(1-cosThetaMax)
	r := math.Sqrt(max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SquareToUniformSphereCapPDF is 1/(2π(1-cosThetaMax)) on the cap
func SquareToUniformSphereCapPDF(v core.Vec3, cosThetaMax float64) float64 {
	if cosThetaMax >= 1 || !isDirection(v) || v.Z < cosThetaMax {
		return 0
	}
	return inv2Pi / (1 - cosThetaMax)
}

// SquareToUniformSphere samples the whole sphere uniformly
func SquareToUniformSphere(u core.Vec2) core.Vec3 {
	return SquareToUniformSphereCap(u, -1)
}

// SquareToUniformSpherePDF is 1/(4π) for unit vectors
func SquareToUniformSpherePDF(v core.Vec3) float64 {
	if !isDirection(v) {
		return 0
	}
	return inv4Pi
}

// SquareToUniformHemisphere samples the upper hemisphere uniformly
func SquareToUniformHemisphere(u core.Vec2) core.Vec3 {
	return SquareToUniformSphereCap(u, 0)
}

// SquareToUniformHemispherePDF is 1/(2π) on the upper hemisphere
func SquareToUniformHemispherePDF(v core.Vec3) float64 {
	return SquareToUniformSphereCapPDF(v, 0)
}

// SquareToCosineHemisphere uses Malley's method: a uniform disk sample is
// projected up onto the hemisphere.
func SquareToCosineHemisphere(u core.Vec2) core.Vec3 {
	d := SquareToUniformDisk(u)
	z := math.Sqrt(max(0, 1-d.X*d.X-d.Y*d.Y))
	return core.NewVec3(d.X, d.Y, z)
}

// SquareToCosineHemispherePDF is cosθ/π on the upper hemisphere
func SquareToCosineHemispherePDF(v core.Vec3) float64 {
	if !isDirection(v) || v.Z < 0 {
		return 0
	}
	return v.Z * invPi
}

// SquareToBeckmann samples microfacet normals proportional to D(h)·cosθh
// for the Beckmann distribution with roughness alpha
func SquareToBeckmann(u core.Vec2, alpha float64) core.Vec3 {
	alpha = max(alpha, minAlpha)
	tan2 := -alpha * alpha * math.Log(1-u.X)
	cosTheta := 1 / math.Sqrt(1+tan2)
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// SquareToBeckmannPDF returns D(h)·cosθh
func SquareToBeckmannPDF(m core.Vec3, alpha float64) float64 {
	if alpha <= 0 || !isDirection(m) || m.Z <= 0 {
		return 0
	}
	cos2 := m.Z * m.Z
	tan2 := (1 - cos2) / cos2
	a2 := alpha * alpha
	return math.Exp(-tan2/a2) / (math.Pi * a2 * cos2 * m.Z)
}

// BeckmannD evaluates the Beckmann normal distribution
func BeckmannD(m core.Vec3, alpha float64) float64 {
	if m.Z <= 0 {
		return 0
	}
	return SquareToBeckmannPDF(m, alpha) / m.Z
}

// SquareToGTR1 samples the isotropic GTR1 (clearcoat) distribution
// proportional to D(h)·cosθh. Alpha at or above 1 makes GTR1 flat, where
// cosine-weighted hemisphere sampling is exact.
func SquareToGTR1(u core.Vec2, alpha float64) core.Vec3 {
	alpha = max(alpha, minAlpha)
	if gtr1IsFlat(alpha) {
		return SquareToCosineHemisphere(u)
	}
	a2 := alpha * alpha
	cos2 := (1 - math.Pow(a2, 1-u.X)) / (1 - a2)
	cosTheta := math.Sqrt(core.Clamp(cos2, 0, 1))
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// SquareToGTR1PDF returns D(h)·cosθh
func SquareToGTR1PDF(m core.Vec3, alpha float64) float64 {
	if !isDirection(m) || m.Z <= 0 {
		return 0
	}
	return GTR1D(m.Z, alpha) * m.Z
}

// GTR1D evaluates the GTR1 distribution at cosθh
func GTR1D(cosTheta, alpha float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	alpha = max(alpha, minAlpha)
	if gtr1IsFlat(alpha) {
		return invPi
	}
	a2 := alpha * alpha
	t := 1 + (a2-1)*cosTheta*cosTheta
	return (a2 - 1) / (math.Pi * math.Log(a2) * t)
}

func gtr1IsFlat(alpha float64) bool {
	return alpha >= 1 || math.Abs(alpha*alpha-1) < 1e-6
}

// SquareToGTR2 samples the anisotropic GTR2 (GGX) distribution with
// roughness ax along +X and ay along +Y, proportional to D(h)·cosθh
func SquareToGTR2(u core.Vec2, ax, ay float64) core.Vec3 {
	ax = max(ax, minAlpha)
	ay = max(ay, minAlpha)
	phi := 2 * math.Pi * u.Y
	s := math.Sqrt(u.X / (1 - u.X))
	h := core.NewVec3(s*ax*math.Cos(phi), s*ay*math.Sin(phi), 1)
	return h.Normalize()
}

// SquareToGTR2PDF returns D(h)·cosθh
func SquareToGTR2PDF(m core.Vec3, ax, ay float64) float64 {
	if !isDirection(m) || m.Z <= 0 {
		return 0
	}
	return GTR2D(m, ax, ay) * m.Z
}

// GTR2D evaluates the anisotropic GTR2 distribution
func GTR2D(m core.Vec3, ax, ay float64) float64 {
	if m.Z <= 0 {
		return 0
	}
	ax = max(ax, minAlpha)
	ay = max(ay, minAlpha)
	t := m.X*m.X/(ax*ax) + m.Y*m.Y/(ay*ay) + m.Z*m.Z
	return 1 / (math.Pi * ax * ay * t * t)
}

// SquareToUniformTriangle returns barycentric coordinates (b1, b2) uniform
// over the triangle b1, b2 ≥ 0, b1+b2 ≤ 1
func SquareToUniformTriangle(u core.Vec2) core.Vec2 {
	if u.X+u.Y > 1 {
		return core.NewVec2(1-u.X, 1-u.Y)
	}
	return u
}

// SquareToUniformTrianglePDF is 2 inside the barycentric triangle
func SquareToUniformTrianglePDF(p core.Vec2) float64 {
	if p.X < 0 || p.Y < 0 || p.X+p.Y > 1 {
		return 0
	}
	return 2
}

// SquareToHenyeyGreenstein samples a direction whose cosine with +Z follows
// the Henyey-Greenstein distribution. With +Z as the direction pointing back
// along the incoming ray, positive g favors forward scattering.
func SquareToHenyeyGreenstein(u core.Vec2, g float64) core.Vec3 {
	cosTheta := HenyeyGreensteinCosTheta(u.X, g)
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	return core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// HenyeyGreensteinCosTheta inverts the Henyey-Greenstein CDF. Near g=0 the
// closed form is 0/0 so the isotropic mapping is used instead.
func HenyeyGreensteinCosTheta(u, g float64) float64 {
	if math.Abs(g) < isotropic {
		return 1 - 2*u
	}
	sqrTerm := (1 - g*g) / (1 + g - 2*g*u)
	return core.Clamp(-(1+g*g-sqrTerm*sqrTerm)/(2*g), -1, 1)
}

// SquareToHenyeyGreensteinPDF returns the HG density for a unit vector
func SquareToHenyeyGreensteinPDF(v core.Vec3, g float64) float64 {
	if !isDirection(v) {
		return 0
	}
	return PhaseHG(v.Z, g)
}

// PhaseHG evaluates the Henyey-Greenstein phase function for the cosine
// between the two directions, both pointing away from the scattering point
func PhaseHG(cosTheta, g float64) float64 {
	denom := 1 + g*g + 2*g*cosTheta
	if denom <= 0 {
		return 0
	}
	return inv4Pi * (1 - g*g) / (denom * math.Sqrt(denom))
}
