package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// Direct sums one sample of every light at the first hit. It is exact for
// point and spot lights and noisy for everything else.
type Direct struct{}

// NewDirect creates a direct lighting integrator
func NewDirect() *Direct {
	return &Direct{}
}

// Li returns the direct illumination reflected toward the camera
func (d *Direct) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	its, ray, tr, hit := nearestOpaque(scene, ray)
	if !hit {
		return core.Vec3{}
	}

	var radiance core.Vec3
	bsdf := its.Shape.BSDF()
	wiLocal := its.ToLocal(ray.Direction.Negate())
	for _, emitter := range scene.Lights() {
		rec := core.NewEmitterQuery(its.P)
		li := emitter.Sample(&rec, sampler.Get2D())
		if li.IsZero() || scene.Occluded(rec.ShadowRay) {
			continue
		}
		bRec := core.NewBSDFQuery(wiLocal, its.ToLocal(rec.Wi), core.MeasureSolidAngle, its.UV)
		f := bsdf.Eval(bRec)
		radiance = radiance.Add(f.MultiplyVec(li).Multiply(math.Abs(its.ShFrame.N.Dot(rec.Wi))))
	}
	return tr.MultiplyVec(radiance)
}

// DirectEMS estimates direct illumination with a single uniformly chosen light sample
type DirectEMS struct{}

// NewDirectEMS creates an emitter-sampling direct integrator
func NewDirectEMS() *DirectEMS {
	return &DirectEMS{}
}

// Li returns self-emission plus one light sample
func (d *DirectEMS) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	its, ray, tr, hit := nearestOpaque(scene, ray)
	if !hit {
		return tr.MultiplyVec(environment(scene, ray))
	}

	radiance := selfEmission(its, ray)
	bsdf := its.Shape.BSDF()
	wiLocal := its.ToLocal(ray.Direction.Negate())
	direct := sampleEmitter(scene, sampler, its.P, false, false, nil, surfaceScatter(its, bsdf, wiLocal))
	return tr.MultiplyVec(radiance.Add(direct))
}

// DirectMATS estimates direct illumination by sampling the BSDF only
type DirectMATS struct{}

// NewDirectMATS creates a material-sampling direct integrator
func NewDirectMATS() *DirectMATS {
	return &DirectMATS{}
}

// Li returns self-emission plus the light found along one BSDF sample
func (d *DirectMATS) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	its, ray, tr, hit := nearestOpaque(scene, ray)
	if !hit {
		return tr.MultiplyVec(environment(scene, ray))
	}

	radiance := selfEmission(its, ray)
	bsdf := its.Shape.BSDF()
	bRec := core.NewBSDFSampleQuery(its.ToLocal(ray.Direction.Negate()), its.UV)
	weight := bsdf.Sample(&bRec, sampler.Get2D())
	if weight.IsZero() {
		return tr.MultiplyVec(radiance)
	}

	nextIts, next, nextTr, nextHit := nearestOpaque(scene, core.NewRay(its.P, its.ToWorld(bRec.Wo).Normalize()))
	weight = weight.MultiplyVec(nextTr)
	if !nextHit {
		return tr.MultiplyVec(radiance.Add(weight.MultiplyVec(environment(scene, next))))
	}
	if emitter := nextIts.Shape.Emitter(); emitter != nil {
		le, _ := emitterHit(emitter, its.P, nextIts)
		radiance = radiance.Add(weight.MultiplyVec(le))
	}
	return tr.MultiplyVec(radiance)
}

// DirectMIS combines one light sample and one BSDF sample with the balance heuristic
type DirectMIS struct{}

// NewDirectMIS creates a multiple importance sampling direct integrator
func NewDirectMIS() *DirectMIS {
	return &DirectMIS{}
}

// Li returns self-emission plus the MIS-weighted light and BSDF samples
func (d *DirectMIS) Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3 {
	its, ray, tr, hit := nearestOpaque(scene, ray)
	if !hit {
		return tr.MultiplyVec(environment(scene, ray))
	}

	radiance := selfEmission(its, ray)
	bsdf := its.Shape.BSDF()
	wiLocal := its.ToLocal(ray.Direction.Negate())
	emitterCount := len(scene.Lights())

	direct := sampleEmitter(scene, sampler, its.P, true, false, nil, surfaceScatter(its, bsdf, wiLocal))
	radiance = radiance.Add(direct)

	bRec := core.NewBSDFSampleQuery(wiLocal, its.UV)
	weight := bsdf.Sample(&bRec, sampler.Get2D())
	if weight.IsZero() || emitterCount == 0 {
		return tr.MultiplyVec(radiance)
	}
	pdfMats := bsdf.PDF(bRec)
	discrete := bRec.Measure == core.MeasureDiscrete

	misWeight := func(pdfEms float64) float64 {
		if discrete {
			return 1
		}
		return balanceHeuristic(pdfMats, pdfEms/float64(emitterCount))
	}

	nextIts, next, nextTr, nextHit := nearestOpaque(scene, core.NewRay(its.P, its.ToWorld(bRec.Wo).Normalize()))
	weight = weight.MultiplyVec(nextTr)
	if !nextHit {
		env := scene.Environment()
		if env == nil {
			return tr.MultiplyVec(radiance)
		}
		rec := core.NewEmitterDirectionQuery(its.P, next.Direction)
		le := env.Eval(rec)
		return tr.MultiplyVec(radiance.Add(weight.MultiplyVec(le).Multiply(misWeight(env.PDF(rec)))))
	}
	if emitter := nextIts.Shape.Emitter(); emitter != nil {
		le, rec := emitterHit(emitter, its.P, nextIts)
		if !le.IsZero() {
			radiance = radiance.Add(weight.MultiplyVec(le).Multiply(misWeight(emitter.PDF(rec))))
		}
	}
	return tr.MultiplyVec(radiance)
}

// selfEmission returns the radiance emitted by the hit surface toward the ray origin
func selfEmission(its core.Intersection, ray core.Ray) core.Vec3 {
	emitter := its.Shape.Emitter()
	if emitter == nil {
		return core.Vec3{}
	}
	le, _ := emitterHit(emitter, ray.Origin, its)
	return le
}

// environment returns the environment radiance seen along an escaping ray
func environment(scene core.Scene, ray core.Ray) core.Vec3 {
	env := scene.Environment()
	if env == nil {
		return core.Vec3{}
	}
	return env.Eval(core.NewEmitterDirectionQuery(ray.Origin, ray.Direction))
}
