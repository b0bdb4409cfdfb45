package integrator

import (
	"math"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
)

// PhotonMapper traces camera paths through specular surfaces and estimates
// radiance at the first diffuse hit from a precomputed photon map
type PhotonMapper struct {
	PhotonCount  int
	PhotonRadius float64 // 0 selects a radius from the scene size

	maxDepth  int
	rrDepth   int
	photonMap *PhotonMap
}

// NewPhotonMapper creates a photon mapper. Preprocess must run before Li.
func NewPhotonMapper(photonCount int, photonRadius float64, maxDepth, rrDepth int) *PhotonMapper {
	return &PhotonMapper{
		PhotonCount:  photonCount,
		PhotonRadius: photonRadius,
		maxDepth:     maxDepth,
		rrDepth:      rrDepth,
	}
}

// Preprocess builds the photon map
func (pm *PhotonMapper) Preprocess(scene core.Scene, sampler core.Sampler, logger core.Logger) error {
	logger.Printf("Gathering %d photons...\n", pm.PhotonCount)
	start := time.Now()

	photonMap, err := BuildPhotonMap(scene, sampler, pm.PhotonCount, pm.PhotonRadius, pm.rrDepth)
	if err != nil {
		return err
	}
	pm.photonMap = photonMap

	logger.Printf("Photon map: %d stored, %d emitted, radius %.4g (%v)\n",
		photonMap.Len(), photonMap.Emitted, photonMap.Radius, time.Since(start))
	return nil
}

// PhotonMap returns the map built by Preprocess
func (pm *PhotonMapper) PhotonMap() *PhotonMap {
	return pm.photonMap
}

// Li follows the camera path until the first diffuse surface and gathers photons there
func (pm *PhotonMapper) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	if pm.photonMap == nil {
		panic("photon mapper: Li called before Preprocess")
	}

	var radiance core.Vec3
	throughput := core.NewVec3(1, 1, 1)
	ray.Medium = nil

	bounces := 0
	for passes := 0; passes < maxPassThrough; {
		its, hit := scene.RayIntersect(ray)
		if !hit {
			radiance = radiance.Add(throughput.MultiplyVec(environment(scene, ray)))
			break
		}

		bsdf := its.Shape.BSDF()
		if pass, ok := bsdf.(core.PassThrough); ok {
			throughput = throughput.MultiplyVec(pass.Transmission(its.UV))
			if throughput.IsZero() {
				break
			}
			ray = continueRay(its, ray, false)
			passes++
			continue
		}

		radiance = radiance.Add(throughput.MultiplyVec(selfEmission(its, ray)))

		wiLocal := its.ToLocal(ray.Direction.Negate()).Normalize()
		if bsdf.IsDiffuse() {
			radiance = radiance.Add(throughput.MultiplyVec(pm.gather(its, bsdf, wiLocal)))
			break
		}

		if bounces >= pm.maxDepth {
			break
		}
		if bounces > pm.rrDepth && !russianRoulette(&throughput, sampler) {
			break
		}

		bRec := core.NewBSDFSampleQuery(wiLocal, its.UV)
		weight := bsdf.Sample(&bRec, sampler.Get2D())
		if weight.IsZero() {
			break
		}
		throughput = throughput.MultiplyVec(weight)
		ray = core.NewRay(its.P, its.ToWorld(bRec.Wo).Normalize())
		bounces++
		passes = 0
	}
	return radiance
}

// gather is the density estimate Σ f·Φ / (N·π·r²)
func (pm *PhotonMapper) gather(its core.Intersection, bsdf core.BSDF, wiLocal core.Vec3) core.Vec3 {
	var sum core.Vec3
	pm.photonMap.Query(its.P, func(ph *Photon) {
		rec := core.NewBSDFQuery(wiLocal, its.ToLocal(ph.Direction), core.MeasureSolidAngle, its.UV)
		sum = sum.Add(bsdf.Eval(rec).MultiplyVec(ph.Power))
	})
	r := pm.photonMap.Radius
	return sum.Multiply(1 / (float64(pm.photonMap.Emitted) * math.Pi * r * r))
}
