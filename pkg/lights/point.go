package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// PointLight radiates Power uniformly in all directions from a single point
type PointLight struct {
	Position core.Vec3
	Power    core.Vec3
}

// NewPointLight creates a point light with total emitted power
func NewPointLight(position, power core.Vec3) *PointLight {
	return &PointLight{Position: position, Power: power}
}

// Eval is zero: a delta light cannot be hit by a sampled direction
func (pl *PointLight) Eval(rec core.EmitterQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// Sample returns the incident radiance Φ/(4πd²) with pdf fixed at 1
func (pl *PointLight) Sample(rec *core.EmitterQueryRecord, u core.Vec2) core.Vec3 {
	distSq := fillDeltaSample(rec, pl.Position)
	if distSq == 0 {
		return core.Vec3{}
	}
	return pl.Power.Multiply(1 / (4 * math.Pi * distSq))
}

// PDF is zero for delta lights
func (pl *PointLight) PDF(rec core.EmitterQueryRecord) float64 {
	return 0
}

// IsDelta returns true
func (pl *PointLight) IsDelta() bool {
	return true
}

// SamplePhoton emits uniformly over the sphere carrying the full power
func (pl *PointLight) SamplePhoton(u1, u2 core.Vec2) (core.Ray, core.Vec3) {
	dir := warp.SquareToUniformSphere(u1)
	return core.NewRay(pl.Position, dir), pl.Power
}

// fillDeltaSample completes a light query toward a fixed point and returns
// the squared distance to it
func fillDeltaSample(rec *core.EmitterQueryRecord, p core.Vec3) float64 {
	rec.P = p
	rec.Wi = p.Subtract(rec.Ref).Normalize()
	rec.N = rec.Wi.Negate()
	rec.PDF = 1
	rec.ShadowRay = core.ShadowRay(rec.Ref, p)
	return p.Subtract(rec.Ref).LengthSquared()
}
