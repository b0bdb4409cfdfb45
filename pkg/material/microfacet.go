package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Microfacet is a rough dielectric coating (Beckmann distribution with Smith
// shadowing) over a diffuse base. The specular weight ks = 1 - max(kd) keeps
// the model energy conserving.
type Microfacet struct {
	Alpha  float64
	IntIOR float64
	ExtIOR float64
	Kd     core.Vec3
	ks     float64
}

// NewMicrofacet creates a microfacet BSDF with roughness alpha and diffuse albedo kd
func NewMicrofacet(alpha float64, kd core.Vec3) *Microfacet {
	return &Microfacet{
		Alpha:  alpha,
		IntIOR: DefaultIntIOR,
		ExtIOR: DefaultExtIOR,
		Kd:     kd,
		ks:     1 - kd.MaxComponent(),
	}
}

// smithG1 uses a rational approximation of the Beckmann shadowing term
// (under 0.35% relative error)
func (m *Microfacet) smithG1(v, h core.Vec3) float64 {
	tanTheta := math.Abs(core.TanTheta(v))
	if tanTheta == 0 {
		return 1
	}
	// back side of the microfacet is never visible
	if h.Dot(v)*core.CosTheta(v) <= 0 {
		return 0
	}
	a := 1 / (m.Alpha * tanTheta)
	if a >= 1.6 {
		return 1
	}
	a2 := a * a
	return (3.535*a + 2.181*a2) / (1 + 2.276*a + 2.577*a2)
}

// Eval returns kd/π plus the specular microfacet term
func (m *Microfacet) Eval(rec core.BSDFQueryRecord) core.Vec3 {
	if !frontFacing(rec) {
		return core.Vec3{}
	}
	h := halfVector(rec)
	spec := m.ks * warp.BeckmannD(h, m.Alpha) *
		FresnelDielectric(h.Dot(rec.Wi), m.ExtIOR, m.IntIOR) *
		m.smithG1(rec.Wi, h) * m.smithG1(rec.Wo, h) /
		(4 * core.CosTheta(rec.Wi) * core.CosTheta(rec.Wo))
	return m.Kd.Multiply(1 / math.Pi).AddScalar(spec)
}

// PDF mixes the reflected Beckmann density and the cosine hemisphere by ks
func (m *Microfacet) PDF(rec core.BSDFQueryRecord) float64 {
	if !frontFacing(rec) {
		return 0
	}
	h := halfVector(rec)
	specular := m.ks * warp.SquareToBeckmannPDF(h, m.Alpha) / (4 * h.Dot(rec.Wo))
	diffuse := (1 - m.ks) * warp.SquareToCosineHemispherePDF(rec.Wo)
	return specular + diffuse
}

// Sample chooses the specular lobe with probability ks, reusing u.X
func (m *Microfacet) Sample(rec *core.BSDFQueryRecord, u core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}

	if u.X < m.ks {
		h := warp.SquareToBeckmann(core.NewVec2(u.X/m.ks, u.Y), m.Alpha)
		rec.Wo = core.ReflectAbout(rec.Wi, h)
	} else {
		rec.Wo = warp.SquareToCosineHemisphere(core.NewVec2((u.X-m.ks)/(1-m.ks), u.Y))
	}
	rec.Measure = core.MeasureSolidAngle
	rec.Eta = m.ExtIOR / m.IntIOR

	pdf := m.PDF(*rec)
	if pdf < core.PDFEpsilon {
		return core.Vec3{}
	}
	return m.Eval(*rec).Multiply(core.CosTheta(rec.Wo) / pdf)
}

// IsDiffuse returns true: the diffuse base stores photons
func (m *Microfacet) IsDiffuse() bool {
	return true
}

// BaseColor returns the diffuse albedo of the base layer
func (m *Microfacet) BaseColor(uv core.Vec2) core.Vec3 {
	return m.Kd
}
