package material

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Null is a pass-through surface used for medium boundaries and cutouts.
// Without an albedo it is fully transparent; with one it blends an
// emissive layer against transmission using an alpha map.
type Null struct {
	Strength float64 // emission strength multiplier

	albedo      ColorSource
	alphaMap    FloatSource
	emissionMap FloatSource
}

// NewNull creates a fully transparent boundary
func NewNull() *Null {
	return &Null{Strength: 1}
}

// SetAlbedo binds the layer color
func (n *Null) SetAlbedo(tex ColorSource) error {
	return bindColor(&n.albedo, "null baseColor", tex)
}

// SetAlphaMap binds the coverage map (1 = opaque layer, 0 = transparent)
func (n *Null) SetAlphaMap(tex FloatSource) error {
	return bindFloat(&n.alphaMap, "null alphamap", tex)
}

// SetEmissionMap binds the per-texel emission scale
func (n *Null) SetEmissionMap(tex FloatSource) error {
	return bindFloat(&n.emissionMap, "null emissionmap", tex)
}

func (n *Null) alpha(uv core.Vec2) float64 {
	if n.alphaMap == nil {
		return 1
	}
	return n.alphaMap.EvaluateFloat(uv)
}

func (n *Null) emission(uv core.Vec2) float64 {
	if n.emissionMap == nil {
		return 1
	}
	return n.emissionMap.EvaluateFloat(uv)
}

// Eval is zero: discrete models never evaluate under a continuous query
func (n *Null) Eval(rec core.BSDFQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// PDF is zero for the same reason
func (n *Null) PDF(rec core.BSDFQueryRecord) float64 {
	return 0
}

// Sample continues the ray unchanged
func (n *Null) Sample(rec *core.BSDFQueryRecord, u core.Vec2) core.Vec3 {
	rec.Wo = rec.Wi.Negate()
	rec.Measure = core.MeasureDiscrete
	rec.Eta = 1
	return n.Transmission(rec.UV)
}

// Alpha returns the coverage of the layer, 0 for a bare boundary
func (n *Null) Alpha(uv core.Vec2) float64 {
	if n.albedo == nil {
		return 0
	}
	return n.alpha(uv)
}

// Transmission is the factor applied to rays crossing the surface: 1 without
// an albedo, otherwise the emissive layer blended against transparency
func (n *Null) Transmission(uv core.Vec2) core.Vec3 {
	if n.albedo == nil {
		return core.NewVec3(1, 1, 1)
	}
	a := n.alpha(uv)
	layer := n.albedo.Evaluate(uv).Multiply(a * n.emission(uv) * n.Strength)
	return layer.AddScalar(1 - a)
}

// IsDiffuse returns false
func (n *Null) IsDiffuse() bool {
	return false
}

// BaseColor returns the layer color, black for a bare boundary
func (n *Null) BaseColor(uv core.Vec2) core.Vec3 {
	if n.albedo == nil {
		return core.Vec3{}
	}
	return n.albedo.Evaluate(uv)
}
