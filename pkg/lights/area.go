package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// AreaLight emits constant radiance from the front side of its shape
type AreaLight struct {
	Radiance core.Vec3
	shape    core.Shape
}

// NewAreaLight creates an area light. It must be attached to a shape before use.
func NewAreaLight(radiance core.Vec3) *AreaLight {
	return &AreaLight{Radiance: radiance}
}

// SetShape attaches the light to the shape it emits from
func (al *AreaLight) SetShape(shape core.Shape) {
	al.shape = shape
}

// Shape returns the attached shape
func (al *AreaLight) Shape() core.Shape {
	return al.shape
}

func (al *AreaLight) mustShape() core.Shape {
	if al.shape == nil {
		panic("area light: no shape attached")
	}
	return al.shape
}

// Eval returns the radiance if the query looks at the front face
func (al *AreaLight) Eval(rec core.EmitterQueryRecord) core.Vec3 {
	al.mustShape()
	if rec.N.Dot(rec.Wi.Negate()) <= 0 {
		return core.Vec3{}
	}
	return al.Radiance
}

// Sample picks a point on the shape by area and returns eval/pdf in solid angle measure
func (al *AreaLight) Sample(rec *core.EmitterQueryRecord, u core.Vec2) core.Vec3 {
	shape := al.mustShape()
	sRec := core.ShapeQueryRecord{Ref: rec.Ref}
	shape.SampleSurface(&sRec, u)

	rec.P = sRec.P
	rec.N = sRec.N
	rec.UV = sRec.UV
	rec.Wi = rec.P.Subtract(rec.Ref).Normalize()
	rec.ShadowRay = core.ShadowRay(rec.Ref, rec.P)
	rec.PDF = al.PDF(*rec)
	if rec.PDF < core.PDFEpsilon {
		return core.Vec3{}
	}
	return al.Eval(*rec).Multiply(1 / rec.PDF)
}

// PDF converts the shape's area density to solid angle: pA·d²/cosθ
func (al *AreaLight) PDF(rec core.EmitterQueryRecord) float64 {
	shape := al.mustShape()
	cosTheta := rec.N.Dot(rec.Wi.Negate())
	if cosTheta <= 0 {
		return 0
	}
	pArea := shape.PDFSurface(core.ShapeQueryRecord{Ref: rec.Ref, P: rec.P})
	return pArea * rec.P.Subtract(rec.Ref).LengthSquared() / cosTheta
}

// IsDelta returns false
func (al *AreaLight) IsDelta() bool {
	return false
}

// SamplePhoton emits from a uniformly chosen surface point in a
// cosine-weighted direction. The power is Le·cos/(pA·cos/π) = π·Le/pA.
func (al *AreaLight) SamplePhoton(u1, u2 core.Vec2) (core.Ray, core.Vec3) {
	shape := al.mustShape()
	sRec := core.ShapeQueryRecord{}
	shape.SampleSurface(&sRec, u1)
	if sRec.PDF <= 0 {
		return core.NewRay(sRec.P, sRec.N), core.Vec3{}
	}

	frame := core.NewFrame(sRec.N)
	dir := frame.ToWorld(warp.SquareToCosineHemisphere(u2))
	return core.NewRay(sRec.P, dir), al.Radiance.Multiply(math.Pi / sRec.PDF)
}
