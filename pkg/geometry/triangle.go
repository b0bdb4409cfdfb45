package geometry

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	Surface
	V0, V1, V2 core.Vec3 // The three vertices
	normal     core.Vec3 // Cached normal vector
	frame      core.Frame
	area       float64
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices. The normal
// follows the right-hand rule on (V1-V0) × (V2-V0).
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	cross := edge1.Cross(edge2)
	normal := cross.Normalize()

	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: normal,
		frame:  core.NewFrameFromTangent(normal, edge1),
		area:   cross.Length() / 2,
		bbox:   core.NewAABBFromPoints(v0, v1, v2).Expand(1e-4),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray) (core.Intersection, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return core.Intersection{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return core.Intersection{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return core.Intersection{}, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < ray.MinT || tParam > ray.MaxT {
		return core.Intersection{}, false
	}

	return core.Intersection{
		P:        ray.At(tParam),
		T:        tParam,
		UV:       core.NewVec2(u, v),
		ShFrame:  t.frame,
		GeoFrame: t.frame,
		Shape:    t,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's normal vector
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// SampleSurface picks a point uniformly over the triangle
func (t *Triangle) SampleSurface(rec *core.ShapeQueryRecord, u core.Vec2) {
	b := warp.SquareToUniformTriangle(u)
	rec.P = t.V0.Add(t.V1.Subtract(t.V0).Multiply(b.X)).Add(t.V2.Subtract(t.V0).Multiply(b.Y))
	rec.N = t.normal
	rec.UV = b
	rec.PDF = t.PDFSurface(*rec)
}

// PDFSurface returns 1/area
func (t *Triangle) PDFSurface(rec core.ShapeQueryRecord) float64 {
	if t.area == 0 {
		return math.Inf(1)
	}
	return 1 / t.area
}
