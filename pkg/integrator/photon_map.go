package integrator

import (
	"errors"
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/df07/go-light-transport/pkg/core"
)

var (
	// ErrPhotonEmissionUnsupported is returned when a scene light cannot emit photons
	ErrPhotonEmissionUnsupported = errors.New("light does not support photon emission")
	// ErrNoPhotonsStored is returned when tracing never reaches a diffuse surface
	ErrNoPhotonsStored = errors.New("no photons stored")
)

// R-tree node fan-out
const (
	photonTreeMinChildren = 25
	photonTreeMaxChildren = 50
)

// maxEmittedPerStored caps emission when no photon has landed yet
const maxEmittedPerStored = 100

// Photon is a light packet deposited on a diffuse surface
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3 // points back toward where the photon came from
	Power     core.Vec3
	bounds    *rtreego.Rect
}

// Bounds returns the degenerate box at the photon position
func (p *Photon) Bounds() *rtreego.Rect {
	return p.bounds
}

func newPhoton(position, direction, power core.Vec3) Photon {
	return Photon{
		Position:  position,
		Direction: direction,
		Power:     power,
		bounds:    rtreego.Point{position.X, position.Y, position.Z}.ToRect(0),
	}
}

// PhotonMap is an immutable spatial index over stored photons. It is safe
// for concurrent queries.
type PhotonMap struct {
	Emitted int     // photons emitted from lights, the density normalization
	Radius  float64 // gather radius

	photons []Photon
	tree    *rtreego.Rtree
}

// NewPhotonMap indexes photons for radius queries
func NewPhotonMap(photons []Photon, emitted int, radius float64) *PhotonMap {
	pm := &PhotonMap{
		Emitted: emitted,
		Radius:  radius,
		photons: photons,
		tree:    rtreego.NewTree(3, photonTreeMinChildren, photonTreeMaxChildren),
	}
	for i := range pm.photons {
		pm.tree.Insert(&pm.photons[i])
	}
	return pm
}

// Len returns the number of stored photons
func (pm *PhotonMap) Len() int {
	return len(pm.photons)
}

// Query calls fn for every photon within Radius of p
func (pm *PhotonMap) Query(p core.Vec3, fn func(ph *Photon)) {
	box := rtreego.Point{p.X, p.Y, p.Z}.ToRect(pm.Radius)
	r2 := pm.Radius * pm.Radius
	for _, item := range pm.tree.SearchIntersect(box) {
		ph := item.(*Photon)
		if ph.Position.Subtract(p).LengthSquared() <= r2 {
			fn(ph)
		}
	}
}

// BuildPhotonMap emits photons from uniformly chosen lights until count of
// them are stored on diffuse surfaces. A radius of zero selects the scene
// bounding box diagonal / 500.
func BuildPhotonMap(scene core.Scene, sampler core.Sampler, count int, radius float64, rrDepth int) (*PhotonMap, error) {
	emitters := scene.Lights()
	if len(emitters) == 0 {
		return nil, fmt.Errorf("%w: scene has no lights", ErrNoPhotonsStored)
	}
	for _, e := range emitters {
		if _, ok := e.(core.PhotonEmitter); !ok {
			return nil, fmt.Errorf("%w: %T", ErrPhotonEmissionUnsupported, e)
		}
	}
	if radius == 0 {
		radius = scene.BoundingBox().Diagonal() / 500
	}

	photons := make([]Photon, 0, count)
	emitted := 0
	lightCount := float64(len(emitters))
	for len(photons) < count {
		if len(photons) == 0 && emitted >= maxEmittedPerStored*count {
			return nil, fmt.Errorf("%w after emitting %d photons", ErrNoPhotonsStored, emitted)
		}

		emitter := scene.RandomEmitter(sampler.Get1D()).(core.PhotonEmitter)
		ray, power := emitter.SamplePhoton(sampler.Get2D(), sampler.Get2D())
		emitted++
		if power.IsZero() {
			continue
		}
		photons = tracePhoton(scene, sampler, ray, power.Multiply(lightCount), rrDepth, photons, count)
	}

	return NewPhotonMap(photons, emitted, radius), nil
}

// tracePhoton follows one photon path, appending a photon at every diffuse hit
func tracePhoton(scene core.Scene, sampler core.Sampler, ray core.Ray, power core.Vec3, rrDepth int, photons []Photon, count int) []Photon {
	throughput := core.NewVec3(1, 1, 1)
	for bounces := 0; len(photons) < count; bounces++ {
		its, hit := scene.RayIntersect(ray)
		if !hit {
			break
		}

		bsdf := its.Shape.BSDF()
		if bsdf.IsDiffuse() {
			photons = append(photons, newPhoton(its.P, ray.Direction.Negate().Normalize(), power.MultiplyVec(throughput)))
		}

		if bounces > rrDepth && !russianRoulette(&throughput, sampler) {
			break
		}

		bRec := core.NewBSDFSampleQuery(its.ToLocal(ray.Direction.Negate()).Normalize(), its.UV)
		weight := bsdf.Sample(&bRec, sampler.Get2D())
		if weight.IsZero() {
			break
		}
		throughput = throughput.MultiplyVec(weight)
		ray = core.NewRay(its.P, its.ToWorld(bRec.Wo).Normalize())
	}
	return photons
}
