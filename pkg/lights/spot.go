package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// Default cone angles in degrees
const (
	DefaultSpotThetaMax  = 30.0
	DefaultSpotThetaFall = 5.0
)

// SpotLight is a point light restricted to a cone. Intensity is constant up
// to ThetaFall and falls off linearly in angle to zero at ThetaMax.
type SpotLight struct {
	Position  core.Vec3
	Direction core.Vec3 // normalized cone axis
	Intensity core.Vec3 // radiant intensity on the axis

	thetaMax     float64
	thetaFall    float64
	cosThetaMax  float64
	cosThetaFall float64
}

// NewSpotLight creates a spot light at from aimed at to. Angles are in degrees.
func NewSpotLight(from, to, intensity core.Vec3, thetaMaxDeg, thetaFallDeg float64) *SpotLight {
	thetaMax := thetaMaxDeg * math.Pi / 180
	thetaFall := min(thetaFallDeg, thetaMaxDeg) * math.Pi / 180
	return &SpotLight{
		Position:     from,
		Direction:    to.Subtract(from).Normalize(),
		Intensity:    intensity,
		thetaMax:     thetaMax,
		thetaFall:    thetaFall,
		cosThetaMax:  math.Cos(thetaMax),
		cosThetaFall: math.Cos(thetaFall),
	}
}

// falloff returns the angular attenuation for a direction leaving the light
func (sl *SpotLight) falloff(w core.Vec3) float64 {
	cosTheta := sl.Direction.Dot(w)
	if cosTheta < sl.cosThetaMax {
		return 0
	}
	if cosTheta >= sl.cosThetaFall {
		return 1
	}
	theta := math.Acos(core.Clamp(cosTheta, -1, 1))
	return (sl.thetaMax - theta) / (sl.thetaMax - sl.thetaFall)
}

// Eval is zero: a delta light cannot be hit by a sampled direction
func (sl *SpotLight) Eval(rec core.EmitterQueryRecord) core.Vec3 {
	return core.Vec3{}
}

// Sample returns I·falloff/d² with pdf fixed at 1
func (sl *SpotLight) Sample(rec *core.EmitterQueryRecord, u core.Vec2) core.Vec3 {
	distSq := fillDeltaSample(rec, sl.Position)
	if distSq == 0 {
		return core.Vec3{}
	}
	ratio := sl.falloff(rec.Wi.Negate())
	if ratio == 0 {
		return core.Vec3{}
	}
	return sl.Intensity.Multiply(ratio / distSq)
}

// PDF is zero for delta lights
func (sl *SpotLight) PDF(rec core.EmitterQueryRecord) float64 {
	return 0
}

// IsDelta returns true
func (sl *SpotLight) IsDelta() bool {
	return true
}

// SamplePhoton emits uniformly inside the cone weighted by the falloff
func (sl *SpotLight) SamplePhoton(u1, u2 core.Vec2) (core.Ray, core.Vec3) {
	local := warp.SquareToUniformSphereCap(u1, sl.cosThetaMax)
	dir := core.NewFrame(sl.Direction).ToWorld(local)
	pdf := warp.SquareToUniformSphereCapPDF(local, sl.cosThetaMax)
	if pdf <= 0 {
		return core.NewRay(sl.Position, dir), core.Vec3{}
	}
	power := sl.Intensity.Multiply(sl.falloff(dir) / pdf)
	return core.NewRay(sl.Position, dir), power
}
