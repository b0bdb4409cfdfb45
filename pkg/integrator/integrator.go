package integrator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
)

// ErrUnknownIntegrator is returned for a type name with no registered integrator
var ErrUnknownIntegrator = errors.New("unknown integrator")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li estimates the radiance arriving along ray. It must not retain state
	// between calls so it can run concurrently from many workers.
	Li(scene core.Scene, sampler core.Sampler, ray core.Ray) core.Vec3
}

// Preprocessor is implemented by integrators that need a pass over the scene
// before rendering starts
type Preprocessor interface {
	Preprocess(scene core.Scene, sampler core.Sampler, logger core.Logger) error
}

// maxPassThrough bounds the number of transparent surfaces a single ray segment may cross
const maxPassThrough = 64

// unlimited is the depth used when a path is only ended by Russian roulette
const unlimited = math.MaxInt

type factory func(cfg config.IntegratorConfig) Integrator

var registry = map[string]factory{
	"albedo":  func(cfg config.IntegratorConfig) Integrator { return NewAlbedo() },
	"normals": func(cfg config.IntegratorConfig) Integrator { return NewNormals() },
	"av": func(cfg config.IntegratorConfig) Integrator {
		return NewAverageVisibility(cfg.AVLength)
	},
	"direct":      func(cfg config.IntegratorConfig) Integrator { return NewDirect() },
	"direct_ems":  func(cfg config.IntegratorConfig) Integrator { return NewDirectEMS() },
	"direct_mats": func(cfg config.IntegratorConfig) Integrator { return NewDirectMATS() },
	"direct_mis":  func(cfg config.IntegratorConfig) Integrator { return NewDirectMIS() },
	"path_mats": func(cfg config.IntegratorConfig) Integrator {
		return NewPathTracer(depthOr(cfg.MaxDepth, unlimited), cfg.RRDepth, false, false)
	},
	"path_mis": func(cfg config.IntegratorConfig) Integrator {
		return NewPathTracer(depthOr(cfg.MaxDepth, unlimited), cfg.RRDepth, true, false)
	},
	"vol_path_mats": func(cfg config.IntegratorConfig) Integrator {
		return NewPathTracer(depthOr(cfg.MaxDepth, 12), cfg.RRDepth, false, true)
	},
	"vol_path_mis": func(cfg config.IntegratorConfig) Integrator {
		return NewPathTracer(depthOr(cfg.MaxDepth, unlimited), cfg.RRDepth, true, true)
	},
	"photonmapper": func(cfg config.IntegratorConfig) Integrator {
		return NewPhotonMapper(cfg.PhotonCount, cfg.PhotonRadius, depthOr(cfg.MaxDepth, unlimited), cfg.RRDepth)
	},
}

// New creates the integrator named by cfg.Type
func New(cfg config.IntegratorConfig) (Integrator, error) {
	create, ok := registry[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownIntegrator, cfg.Type, Names())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return create(cfg), nil
}

// Names returns the registered integrator names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func depthOr(depth, fallback int) int {
	if depth > 0 {
		return depth
	}
	return fallback
}

// balanceHeuristic weights a strategy with density pdf against a competing
// strategy with density other. Densities below PDFEpsilon get weight zero.
func balanceHeuristic(pdf, other float64) float64 {
	if pdf < core.PDFEpsilon {
		return 0
	}
	return pdf / (pdf + other)
}

// russianRoulette continues the path with probability min(max(t), 0.99) and
// rescales the throughput of surviving paths
func russianRoulette(throughput *core.Vec3, sampler core.Sampler) bool {
	success := min(throughput.MaxComponent(), 0.99)
	if success <= 0 || sampler.Get1D() >= success {
		return false
	}
	*throughput = throughput.Multiply(1 / success)
	return true
}

// mediumAcross returns the medium a ray leaving its in direction dir travels
// through: the shape's interior when dir points inside, vacuum otherwise
func mediumAcross(its core.Intersection, dir core.Vec3) core.Medium {
	if dir.Dot(its.GeoFrame.N) < 0 {
		return its.Shape.Medium()
	}
	return nil
}

// continueRay restarts ray just past a pass-through surface, keeping the
// remaining extent of bounded rays
func continueRay(its core.Intersection, ray core.Ray, media bool) core.Ray {
	maxT := ray.MaxT
	if !math.IsInf(maxT, 1) {
		maxT -= its.T
	}
	next := core.NewSegment(its.P, ray.Direction, core.RayEpsilon, maxT)
	if media {
		next.Medium = mediumAcross(its, ray.Direction)
	}
	return next
}

// nearestOpaque follows ray past pass-through surfaces to the first surface
// that scatters. It returns that hit, the segment that reached it and the
// transmission of the surfaces crossed. Media are ignored.
func nearestOpaque(scene core.Scene, ray core.Ray) (core.Intersection, core.Ray, core.Vec3, bool) {
	tr := core.NewVec3(1, 1, 1)
	for i := 0; i < maxPassThrough; i++ {
		its, hit := scene.RayIntersect(ray)
		if !hit {
			return core.Intersection{}, ray, tr, false
		}
		pass, ok := its.Shape.BSDF().(core.PassThrough)
		if !ok {
			return its, ray, tr, true
		}
		tr = tr.MultiplyVec(pass.Transmission(its.UV))
		if tr.IsZero() {
			break
		}
		ray = continueRay(its, ray, false)
	}
	return core.Intersection{}, ray, core.Vec3{}, false
}

// transmittance returns the fraction of light that travels along ray, which
// starts in medium. Pass-through surfaces scale it, any other surface blocks
// it. Media are ignored unless media is set.
func transmittance(scene core.Scene, ray core.Ray, medium core.Medium, media bool) core.Vec3 {
	tr := core.NewVec3(1, 1, 1)
	if media {
		ray.Medium = medium
	} else {
		ray.Medium = nil
	}

	for i := 0; i < maxPassThrough; i++ {
		its, hit := scene.RayIntersect(ray)
		if ray.Medium != nil {
			segment := ray
			if hit {
				segment = ray.WithBounds(ray.MinT, its.T)
			}
			tr = tr.MultiplyVec(ray.Medium.Tr(segment))
		}
		if !hit {
			return tr
		}

		pass, ok := its.Shape.BSDF().(core.PassThrough)
		if !ok {
			return core.Vec3{}
		}
		tr = tr.MultiplyVec(pass.Transmission(its.UV))
		if tr.IsZero() {
			return tr
		}
		ray = continueRay(its, ray, media)
	}
	return core.Vec3{}
}

// sampleEmitter performs next-event estimation from p with a uniformly chosen
// light. scatter returns the scattering value toward wi (BSDF·cos or phase)
// and the density with which the path would have sampled wi itself.
// With mis unset the light sample gets full weight.
func sampleEmitter(scene core.Scene, sampler core.Sampler, p core.Vec3, mis, media bool,
	startMedium func(wi core.Vec3) core.Medium,
	scatter func(wi core.Vec3) (core.Vec3, float64)) core.Vec3 {

	count := len(scene.Lights())
	if count == 0 {
		return core.Vec3{}
	}
	emitter := scene.RandomEmitter(sampler.Get1D())
	rec := core.NewEmitterQuery(p)
	li := emitter.Sample(&rec, sampler.Get2D())
	if li.IsZero() {
		return core.Vec3{}
	}

	value, scatterPDF := scatter(rec.Wi)
	if value.IsZero() {
		return core.Vec3{}
	}

	weight := 1.0
	if mis && !emitter.IsDelta() {
		weight = balanceHeuristic(rec.PDF/float64(count), scatterPDF)
		if weight == 0 {
			return core.Vec3{}
		}
	}

	var medium core.Medium
	if media && startMedium != nil {
		medium = startMedium(rec.Wi)
	}
	tr := transmittance(scene, rec.ShadowRay, medium, media)
	if tr.IsZero() {
		return core.Vec3{}
	}
	return value.MultiplyVec(li).MultiplyVec(tr).Multiply(weight * float64(count))
}

// surfaceScatter returns the NEE callback for a surface vertex
func surfaceScatter(its core.Intersection, bsdf core.BSDF, wiLocal core.Vec3) func(core.Vec3) (core.Vec3, float64) {
	return func(wi core.Vec3) (core.Vec3, float64) {
		rec := core.NewBSDFQuery(wiLocal, its.ToLocal(wi), core.MeasureSolidAngle, its.UV)
		f := bsdf.Eval(rec)
		if f.IsZero() {
			return core.Vec3{}, 0
		}
		return f.Multiply(math.Abs(core.CosTheta(rec.Wo))), bsdf.PDF(rec)
	}
}

// emitterHit returns the radiance leaving a light at its toward ref
func emitterHit(emitter core.Emitter, ref core.Vec3, its core.Intersection) (core.Vec3, core.EmitterQueryRecord) {
	rec := core.NewEmitterHitQuery(ref, its.P, its.ShFrame.N)
	rec.UV = its.UV
	return emitter.Eval(rec), rec
}
