package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// FresnelDielectric returns the unpolarized Fresnel reflectance for light
// arriving with the given cosine to the normal. A negative cosine means the
// ray arrives from the interior side.
func FresnelDielectric(cosThetaI, extIOR, intIOR float64) float64 {
	etaI, etaT := extIOR, intIOR
	if extIOR == intIOR {
		return 0
	}
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	eta := etaI / etaT
	sinThetaTSqr := eta * eta * (1 - cosThetaI*cosThetaI)
	if sinThetaTSqr > 1 {
		// total internal reflection
		return 1
	}

	cosThetaT := math.Sqrt(1 - sinThetaTSqr)
	rs := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	rp := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	return (rs*rs + rp*rp) / 2
}

// SchlickWeight returns (1-cos)^5
func SchlickWeight(cosTheta float64) float64 {
	m := core.Clamp(1-cosTheta, 0, 1)
	m2 := m * m
	return m2 * m2 * m
}

// frontFacing reports whether a solid-angle query has both directions above
// the surface. Every continuous BSDF evaluates to zero otherwise.
func frontFacing(rec core.BSDFQueryRecord) bool {
	return rec.Measure == core.MeasureSolidAngle &&
		core.CosTheta(rec.Wi) > 0 &&
		core.CosTheta(rec.Wo) > 0
}

// halfVector returns the normalized half vector of a reflection pair
func halfVector(rec core.BSDFQueryRecord) core.Vec3 {
	return rec.Wi.Add(rec.Wo).Normalize()
}
