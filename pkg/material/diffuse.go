package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Diffuse is an ideal Lambertian reflector
type Diffuse struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewDiffuse creates a diffuse material with a solid albedo
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: NewSolidColor(albedo)}
}

// NewTexturedDiffuse creates a diffuse material with a texture
func NewTexturedDiffuse(albedo ColorSource) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// Eval returns albedo/π for front-facing solid-angle queries
func (d *Diffuse) Eval(rec core.BSDFQueryRecord) core.Vec3 {
	if !frontFacing(rec) {
		return core.Vec3{}
	}
	return d.Albedo.Evaluate(rec.UV).Multiply(1.0 / math.Pi)
}

// PDF returns the cosine-weighted hemisphere density
func (d *Diffuse) PDF(rec core.BSDFQueryRecord) float64 {
	if !frontFacing(rec) {
		return 0
	}
	return warp.SquareToCosineHemispherePDF(rec.Wo)
}

// Sample draws a cosine-weighted direction; cosine and pdf cancel to the albedo
func (d *Diffuse) Sample(rec *core.BSDFQueryRecord, u core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Measure = core.MeasureSolidAngle
	rec.Wo = warp.SquareToCosineHemisphere(u)
	rec.Eta = 1
	return d.Albedo.Evaluate(rec.UV)
}

// IsDiffuse returns true
func (d *Diffuse) IsDiffuse() bool {
	return true
}

// BaseColor returns the albedo at uv
func (d *Diffuse) BaseColor(uv core.Vec2) core.Vec3 {
	return d.Albedo.Evaluate(uv)
}
