package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Sphere represents a sphere shape
type Sphere struct {
	Surface
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (core.Intersection, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.Intersection{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < ray.MinT || root > ray.MaxT {
		root = (-halfB + sqrtD) / a
		if root < ray.MinT || root > ray.MaxT {
			return core.Intersection{}, false
		}
	}

	p := ray.At(root)
	n := p.Subtract(s.Center).Multiply(1.0 / s.Radius)
	return s.intersection(p, n, root), true
}

// intersection fills the hit record for point p with outward normal n
func (s *Sphere) intersection(p, n core.Vec3, t float64) core.Intersection {
	theta := math.Acos(core.Clamp(-n.Y, -1, 1))
	phi := math.Atan2(-n.Z, n.X) + math.Pi

	// dp/dphi lies in the horizontal plane
	tangent := core.NewVec3(-n.Z, 0, n.X)
	frame := core.NewFrameFromTangent(n, tangent)
	return core.Intersection{
		P:        p,
		T:        t,
		UV:       core.NewVec2(phi/(2*math.Pi), theta/math.Pi),
		ShFrame:  frame,
		GeoFrame: frame,
		Shape:    s,
	}
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// SampleSurface picks a point uniformly over the sphere's area
func (s *Sphere) SampleSurface(rec *core.ShapeQueryRecord, u core.Vec2) {
	n := warp.SquareToUniformSphere(u)
	rec.P = s.Center.Add(n.Multiply(s.Radius))
	rec.N = n
	rec.UV = s.intersection(rec.P, n, 0).UV
	rec.PDF = s.PDFSurface(*rec)
}

// PDFSurface returns 1/area
func (s *Sphere) PDFSurface(rec core.ShapeQueryRecord) float64 {
	return 1 / (4 * math.Pi * s.Radius * s.Radius)
}
