package integrator

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// PathTracer implements unidirectional path tracing. With nee set it adds
// next-event estimation combined with BSDF sampling through the balance
// heuristic; without it light is only found by sampled directions hitting
// emitters. With media set rays track the medium they travel through and
// may scatter inside it.
type PathTracer struct {
	maxDepth int
	rrDepth  int
	nee      bool
	media    bool
}

// NewPathTracer creates a path tracer. Paths stop after maxDepth scattering
// events; Russian roulette starts once more than rrDepth have happened.
func NewPathTracer(maxDepth, rrDepth int, nee, media bool) *PathTracer {
	return &PathTracer{
		maxDepth: maxDepth,
		rrDepth:  rrDepth,
		nee:      nee,
		media:    media,
	}
}

// vertex remembers the last scattering event for weighting emitter hits
type vertex struct {
	p        core.Vec3
	pdf      float64 // solid-angle density of the sampled direction
	discrete bool    // camera rays and delta lobes
}

// emitterWeight returns the MIS weight of a light found by the sampled
// direction leaving prev, given the light's own solid-angle density
func (pt *PathTracer) emitterWeight(prev vertex, lightPDF float64, emitterCount int) float64 {
	if !pt.nee || prev.discrete {
		return 1
	}
	return balanceHeuristic(prev.pdf, lightPDF/float64(emitterCount))
}

// Li traces one path from the camera ray
func (pt *PathTracer) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	var radiance core.Vec3
	throughput := core.NewVec3(1, 1, 1)
	emitterCount := len(scene.Lights())
	if !pt.media {
		ray.Medium = nil
	}
	prev := vertex{p: ray.Origin, discrete: true}

	bounces := 0
	for passes := 0; passes < maxPassThrough; {
		its, hit := scene.RayIntersect(ray)

		if ray.Medium != nil {
			segment := ray
			if hit {
				segment = ray.WithBounds(ray.MinT, its.T)
			}
			weight, ita := ray.Medium.Sample(segment, sampler)
			if ita.IsValid() {
				// Emission along the segment counts once per scattering event
				radiance = radiance.Add(throughput.MultiplyVec(ray.Medium.Le(segment)))
				throughput = throughput.MultiplyVec(weight)
				if throughput.IsZero() || bounces >= pt.maxDepth {
					break
				}
				if bounces > pt.rrDepth && !russianRoulette(&throughput, sampler) {
					break
				}
				var phaseWeight float64
				ray, prev, phaseWeight = pt.scatterMedium(scene, sampler, ray, ita, throughput, &radiance)
				throughput = throughput.Multiply(phaseWeight)
				bounces++
				passes = 0
				continue
			}
			throughput = throughput.MultiplyVec(weight)
		}

		if !hit {
			if env := scene.Environment(); env != nil {
				rec := core.NewEmitterDirectionQuery(prev.p, ray.Direction)
				le := env.Eval(rec)
				if !le.IsZero() {
					w := pt.emitterWeight(prev, env.PDF(rec), emitterCount)
					radiance = radiance.Add(throughput.MultiplyVec(le).Multiply(w))
				}
			}
			break
		}

		bsdf := its.Shape.BSDF()
		if pass, ok := bsdf.(core.PassThrough); ok {
			throughput = throughput.MultiplyVec(pass.Transmission(its.UV))
			if throughput.IsZero() {
				break
			}
			ray = continueRay(its, ray, pt.media)
			passes++
			continue
		}

		if emitter := its.Shape.Emitter(); emitter != nil {
			le, rec := emitterHit(emitter, prev.p, its)
			if !le.IsZero() {
				w := pt.emitterWeight(prev, emitter.PDF(rec), emitterCount)
				radiance = radiance.Add(throughput.MultiplyVec(le).Multiply(w))
			}
		}

		if bounces >= pt.maxDepth {
			break
		}
		if bounces > pt.rrDepth && !russianRoulette(&throughput, sampler) {
			break
		}

		wiLocal := its.ToLocal(ray.Direction.Negate()).Normalize()
		if pt.nee {
			direct := sampleEmitter(scene, sampler, its.P, true, pt.media,
				func(wi core.Vec3) core.Medium { return mediumAcross(its, wi) },
				surfaceScatter(its, bsdf, wiLocal))
			radiance = radiance.Add(throughput.MultiplyVec(direct))
		}

		bRec := core.NewBSDFSampleQuery(wiLocal, its.UV)
		weight := bsdf.Sample(&bRec, sampler.Get2D())
		if weight.IsZero() {
			break
		}
		throughput = throughput.MultiplyVec(weight)

		wo := its.ToWorld(bRec.Wo).Normalize()
		prev = vertex{
			p:        its.P,
			pdf:      bsdf.PDF(bRec),
			discrete: bRec.Measure == core.MeasureDiscrete,
		}
		ray = core.NewRay(its.P, wo)
		if pt.media {
			ray.Medium = mediumAcross(its, wo)
		}
		bounces++
		passes = 0
	}

	return radiance
}

// scatterMedium handles a scattering event inside the ray's medium: light
// sampling through the phase function and a phase-sampled continuation
func (pt *PathTracer) scatterMedium(scene core.Scene, sampler core.Sampler, ray core.Ray, ita core.Interaction,
	throughput core.Vec3, radiance *core.Vec3) (core.Ray, vertex, float64) {

	medium := ray.Medium
	if pt.nee {
		direct := sampleEmitter(scene, sampler, ita.P, true, true,
			func(core.Vec3) core.Medium { return medium },
			func(wi core.Vec3) (core.Vec3, float64) {
				rec := core.PhaseQueryRecord{Wi: ita.Wi, Wo: wi, Measure: core.MeasureSolidAngle}
				p := ita.Phase.PDF(rec)
				return core.Splat(p), p
			})
		*radiance = radiance.Add(throughput.MultiplyVec(direct))
	}

	pRec := core.NewPhaseSampleQuery(ita.Wi)
	weight := ita.Phase.Sample(&pRec, sampler.Get2D())
	next := vertex{p: ita.P, pdf: ita.Phase.PDF(pRec)}
	return core.NewRayInMedium(ita.P, pRec.Wo, medium), next, weight
}
