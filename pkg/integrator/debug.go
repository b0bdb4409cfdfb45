package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// coverage is implemented by partially transparent surfaces
type coverage interface {
	Alpha(uv core.Vec2) float64
}

// baseColored is implemented by BSDFs with a meaningful surface color
type baseColored interface {
	BaseColor(uv core.Vec2) core.Vec3
}

// Albedo returns the base color of the first surface hit, skipping fully
// transparent surfaces. Dielectrics and other colorless BSDFs are black.
type Albedo struct{}

// NewAlbedo creates the albedo visualization integrator
func NewAlbedo() *Albedo {
	return &Albedo{}
}

// Li returns the base color at the first opaque hit
func (a *Albedo) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	for i := 0; i < maxPassThrough; i++ {
		its, hit := scene.RayIntersect(ray)
		if !hit {
			return core.Vec3{}
		}
		bsdf := its.Shape.BSDF()
		if c, ok := bsdf.(coverage); ok && c.Alpha(its.UV) == 0 {
			ray = continueRay(its, ray, false)
			continue
		}
		if b, ok := bsdf.(baseColored); ok {
			return b.BaseColor(its.UV)
		}
		return core.Vec3{}
	}
	return core.Vec3{}
}

// Normals maps the shading normal at the first hit to a color
type Normals struct{}

// NewNormals creates the normal visualization integrator
func NewNormals() *Normals {
	return &Normals{}
}

// Li returns (n+1)/2. Partially transparent surfaces scale n by their coverage.
func (n *Normals) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	its, hit := scene.RayIntersect(ray)
	if !hit {
		return core.Vec3{}
	}
	alpha := 1.0
	if c, ok := its.Shape.BSDF().(coverage); ok {
		alpha = c.Alpha(its.UV)
	}
	return its.ShFrame.N.Multiply(alpha).AddScalar(1).Multiply(0.5)
}

// AverageVisibility returns 1 when a random hemisphere direction at the first
// hit escapes within Length and 0 when it is blocked
type AverageVisibility struct {
	Length float64
}

// NewAverageVisibility creates an ambient visibility integrator
func NewAverageVisibility(length float64) *AverageVisibility {
	return &AverageVisibility{Length: length}
}

// Li returns 1 for unoccluded samples and for camera rays that miss
func (av *AverageVisibility) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	its, hit := scene.RayIntersect(ray)
	if !hit {
		return core.NewVec3(1, 1, 1)
	}
	dir := its.ToWorld(warp.SquareToUniformHemisphere(sampler.Get2D()))
	if scene.Occluded(core.NewSegment(its.P, dir, core.RayEpsilon, av.Length)) {
		return core.Vec3{}
	}
	return core.NewVec3(1, 1, 1)
}
