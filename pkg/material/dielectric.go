package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Default indices of refraction: BK7 glass inside, air outside
const (
	DefaultIntIOR = 1.5046
	DefaultExtIOR = 1.000277
)

// Dielectric is a smooth interface between two transparent media that
// reflects or refracts according to the exact Fresnel equations
type Dielectric struct {
	IntIOR float64 // interior index of refraction
	ExtIOR float64 // exterior index of refraction
}

// NewDielectric creates a dielectric with the given interior IOR against air
func NewDielectric(intIOR float64) *Dielectric {
	return &Dielectric{IntIOR: intIOR, ExtIOR: DefaultExtIOR}
}

// Eval is zero: discrete models never evaluate under a continuous query
func (d *Dielectric) Eval(rec core.BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero for the same reason
func (d *Dielectric) PDF(rec core.BSDFQueryRecord) float64 {
	return 0
}

// Sample picks reflection or refraction with probability equal to the
// Fresnel reflectance, so the estimator reduces to 1 for reflection and
// eta² for refraction (radiance scaling across the interface)
func (d *Dielectric) Sample(rec *core.BSDFQueryRecord, u core.Vec2) core.Vec3 {
	cosThetaI := core.CosTheta(rec.Wi)
	n := core.NewVec3(0, 0, 1)
	eta := d.ExtIOR / d.IntIOR
	if cosThetaI < 0 {
		// arriving from inside
		n = n.Negate()
		cosThetaI = -cosThetaI
		eta = d.IntIOR / d.ExtIOR
	}

	rec.Measure = core.MeasureDiscrete
	reflected := FresnelDielectric(core.CosTheta(rec.Wi), d.ExtIOR, d.IntIOR)

	if u.X < reflected {
		rec.Wo = core.Reflect(rec.Wi)
		rec.Eta = 1
		return core.NewVec3(1, 1, 1)
	}

	// reflected < 1 here, so Snell's law has a solution
	sinThetaI := math.Sqrt(max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := eta * sinThetaI
	cosThetaT := math.Sqrt(max(0, 1-sinThetaT*sinThetaT))

	tangent := rec.Wi.Subtract(n.Multiply(rec.Wi.Dot(n)))
	if tangent.LengthSquared() > 0 {
		tangent = tangent.Normalize()
	}
	rec.Wo = n.Multiply(-cosThetaT).Subtract(tangent.Multiply(sinThetaT))
	rec.Eta = eta
	return core.Splat(eta * eta)
}

// IsDiffuse returns false
func (d *Dielectric) IsDiffuse() bool {
	return false
}
