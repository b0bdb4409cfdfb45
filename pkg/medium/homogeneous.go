package medium

import (
	"fmt"
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Homogeneous is a medium with constant absorption, scattering and emission.
// Coefficients are per unit length, one value per RGB channel.
type Homogeneous struct {
	SigmaA core.Vec3
	SigmaS core.Vec3
	Emit   core.Vec3 // radiance emitted per unit absorption
	Phase  core.PhaseFunction

	sigmaT core.Vec3
}

// NewHomogeneous creates a medium with an isotropic phase function
func NewHomogeneous(sigmaA, sigmaS core.Vec3) *Homogeneous {
	return NewHomogeneousWithPhase(sigmaA, sigmaS, NewHenyeyGreenstein(0))
}

// NewHomogeneousWithPhase creates a medium with an explicit phase function
func NewHomogeneousWithPhase(sigmaA, sigmaS core.Vec3, phase core.PhaseFunction) *Homogeneous {
	return &Homogeneous{
		SigmaA: sigmaA,
		SigmaS: sigmaS,
		Phase:  phase,
		sigmaT: sigmaA.Add(sigmaS),
	}
}

// SigmaT returns the extinction coefficient
func (m *Homogeneous) SigmaT() core.Vec3 {
	return m.sigmaT
}

// Tr returns exp(-σt·d) over the ray's interval
func (m *Homogeneous) Tr(ray core.Ray) core.Vec3 {
	d := ray.Length()
	if math.IsInf(d, 1) {
		return m.transmittanceAtInfinity()
	}
	return m.sigmaT.Multiply(-d).Exp()
}

// Le integrates σa·Le·Tr along the interval: σa·Le·(1-exp(-σt·d))/σt
func (m *Homogeneous) Le(ray core.Ray) core.Vec3 {
	if m.Emit.IsZero() {
		return core.Vec3{}
	}
	d := ray.Length()
	channel := func(i int) float64 {
		if m.SigmaA.Component(i) == 0 {
			return 0
		}
		st := m.sigmaT.Component(i)
		var integral float64
		switch {
		case st == 0:
			integral = d
		case math.IsInf(d, 1):
			integral = 1 / st
		default:
			integral = -math.Expm1(-st*d) / st
		}
		return m.SigmaA.Component(i) * m.Emit.Component(i) * integral
	}
	return core.NewVec3(channel(0), channel(1), channel(2))
}

// Sample draws a free-flight distance using one channel picked uniformly and
// weights by the channel-averaged density. Inside the medium the returned
// weight is Tr·σs/pdf; at the interval end it is Tr/pdf.
func (m *Homogeneous) Sample(ray core.Ray, sampler core.Sampler) (core.Vec3, core.Interaction) {
	channel := min(int(sampler.Get1D()*3), 2)
	dirLen := ray.Direction.Length()

	sigma := m.sigmaT.Component(channel)
	dist := math.Inf(1)
	if sigma > 0 {
		dist = -math.Log(1-sampler.Get1D()) / sigma
	}
	t := min(dist/dirLen, ray.MaxT)
	inside := t < ray.MaxT

	tr := m.sigmaT.Multiply(-t * dirLen).Exp()
	if math.IsInf(t, 1) {
		tr = m.transmittanceAtInfinity()
	}

	density := tr
	if inside {
		density = m.sigmaT.MultiplyVec(tr)
	}
	pdf := density.Average()
	if pdf == 0 {
		if !tr.IsBlack(1e-12) {
			panic(fmt.Sprintf("homogeneous medium: zero sampling density with transmittance %v", tr))
		}
		pdf = 1
	}

	if !inside {
		return tr.Multiply(1 / pdf), core.Interaction{}
	}

	p := ray.At(t)
	its := core.Interaction{
		Intersection: core.Intersection{P: p, T: t},
		Wi:           ray.Reverse().Direction.Normalize(),
		Phase:        m.Phase,
	}
	return tr.MultiplyVec(m.SigmaS).Multiply(1 / pdf), its
}

// transmittanceAtInfinity is 1 for non-extinguishing channels, 0 otherwise
func (m *Homogeneous) transmittanceAtInfinity() core.Vec3 {
	var tr core.Vec3
	if m.sigmaT.X == 0 {
		tr.X = 1
	}
	if m.sigmaT.Y == 0 {
		tr.Y = 1
	}
	if m.sigmaT.Z == 0 {
		tr.Z = 1
	}
	return tr
}
