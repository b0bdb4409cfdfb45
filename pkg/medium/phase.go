package medium

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// HenyeyGreenstein is the single-parameter phase function. G in (-1, 1):
// positive values scatter forward, zero is isotropic.
type HenyeyGreenstein struct {
	G float64
}

// NewHenyeyGreenstein creates a phase function with asymmetry g
func NewHenyeyGreenstein(g float64) *HenyeyGreenstein {
	return &HenyeyGreenstein{G: g}
}

// Sample draws Wo around Wi. The pdf equals the phase function, so the
// weight is always 1.
func (hg *HenyeyGreenstein) Sample(rec *core.PhaseQueryRecord, u core.Vec2) float64 {
	cosTheta := warp.HenyeyGreensteinCosTheta(u.X, hg.G)
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y

	s, t := core.CoordinateSystem(rec.Wi)
	rec.Wo = core.SphericalDirection(sinTheta, cosTheta, phi, s, t, rec.Wi)
	rec.Measure = core.MeasureSolidAngle
	return 1
}

// PDF evaluates the phase function for the pair (Wi, Wo)
func (hg *HenyeyGreenstein) PDF(rec core.PhaseQueryRecord) float64 {
	if rec.Measure != core.MeasureSolidAngle {
		return 0
	}
	return warp.PhaseHG(rec.Wi.Dot(rec.Wo), hg.G)
}
