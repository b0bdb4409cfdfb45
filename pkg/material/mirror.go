package material

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Mirror is a perfectly specular reflector
type Mirror struct {
	Reflectance core.Vec3
}

// NewMirror creates a mirror with the given reflectance
func NewMirror(reflectance core.Vec3) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

// Eval is zero: discrete models never evaluate under a continuous query
func (m *Mirror) Eval(rec core.BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero for the same reason
func (m *Mirror) PDF(rec core.BSDFQueryRecord) float64 {
	return 0
}

// Sample reflects Wi about the normal
func (m *Mirror) Sample(rec *core.BSDFQueryRecord, u core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Wo = core.Reflect(rec.Wi)
	rec.Measure = core.MeasureDiscrete
	rec.Eta = 1
	return m.Reflectance
}

// IsDiffuse returns false
func (m *Mirror) IsDiffuse() bool {
	return false
}

func (m *Mirror) BaseColor(uv core.Vec2) core.Vec3 {
	return m.Reflectance
}
