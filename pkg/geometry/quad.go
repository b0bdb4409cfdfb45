package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// The outward normal is U × V.
type Quad struct {
	Surface
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Normal vector (computed from U × V)
	D      float64   // Plane equation constant: n·p = d
	W      core.Vec3 // Cached vector for planar coordinates
	area   float64
	frame  core.Frame
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      cross.Multiply(1.0 / cross.Dot(cross)),
		area:   cross.Length(),
		frame:  core.NewFrameFromTangent(normal, u),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray) (core.Intersection, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return core.Intersection{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < ray.MinT || t > ray.MaxT {
		return core.Intersection{}, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)

	// Planar coordinates of the hit point along U and V
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.Intersection{}, false
	}

	return core.Intersection{
		P:        hitPoint,
		T:        t,
		UV:       core.NewVec2(alpha, beta),
		ShFrame:  q.frame,
		GeoFrame: q.frame,
		Shape:    q,
	}, true
}

// BoundingBox returns a slightly padded box so flat quads still have volume
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}

// SampleSurface picks a point uniformly over the quad
func (q *Quad) SampleSurface(rec *core.ShapeQueryRecord, u core.Vec2) {
	rec.P = q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
	rec.N = q.Normal
	rec.UV = u
	rec.PDF = q.PDFSurface(*rec)
}

// PDFSurface returns 1/area
func (q *Quad) PDFSurface(rec core.ShapeQueryRecord) float64 {
	return 1 / q.area
}

// Area returns |U × V|
func (q *Quad) Area() float64 {
	return q.area
}
