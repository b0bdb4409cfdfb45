package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// testScene is a minimal core.Scene over a BVH
type testScene struct {
	shapes []core.Shape
	lights []core.Emitter
	env    core.Emitter
	bvh    *core.BVH
}

func newTestScene(shapes []core.Shape, env core.Emitter, extra ...core.Emitter) *testScene {
	s := &testScene{shapes: shapes, env: env}
	for _, shape := range shapes {
		if e := shape.Emitter(); e != nil {
			if area, ok := e.(*lights.AreaLight); ok {
				area.SetShape(shape)
			}
			s.lights = append(s.lights, e)
		}
	}
	s.lights = append(s.lights, extra...)
	if env != nil {
		s.lights = append(s.lights, env)
	}
	s.bvh = core.NewBVH(shapes)
	return s
}

func (s *testScene) RayIntersect(ray core.Ray) (core.Intersection, bool) { return s.bvh.Hit(ray) }
func (s *testScene) Occluded(ray core.Ray) bool { return s.bvh.Occluded(ray) }
func (s *testScene) Lights() []core.Emitter { return s.lights }
func (s *testScene) Environment() core.Emitter { return s.env }
func (s *testScene) BoundingBox() core.AABB { return s.bvh.BoundingBox() }

func (s *testScene) RandomEmitter(u float64) core.Emitter {
	n := len(s.lights)
	if n == 0 {
		return nil
	}
	return s.lights[min(int(u*float64(n)), n-1)]
}

// floorPlane is a diffuse quad in y=0 facing +Y with the given half extent
func floorPlane(albedo, halfSize float64) *geometry.Quad {
	q := geometry.NewQuad(core.NewVec3(-halfSize, 0, -halfSize),
		core.NewVec3(0, 0, 2*halfSize), core.NewVec3(2*halfSize, 0, 0))
	q.SetBSDF(material.NewDiffuse(core.Splat(albedo)))
	return q
}

// ceilingLight is a unit square light at y=1 centered over the origin, facing down
func ceilingLight(radiance float64) *geometry.Quad {
	q := geometry.NewQuad(core.NewVec3(-0.5, 1, -0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	q.SetBSDF(material.NewDiffuse(core.Vec3{}))
	q.SetEmitter(lights.NewAreaLight(core.Splat(radiance)))
	return q
}

// squareIrradiance is the irradiance at distance 1 below the center of a
// square light with half side a and unit radiance
func squareIrradiance(a float64) float64 {
	s := a / math.Sqrt(1+a*a)
	return 4 * s * math.Atan(s)
}

// estimate averages the red channel of n radiance samples along ray
func estimate(integ Integrator, scene core.Scene, ray core.Ray, n int, seed int64) (float64, float64) {
	sampler := core.NewSeededSampler(seed)
	values := make([]float64, n)
	for i := range values {
		values[i] = integ.Li(scene, sampler, ray).X
	}
	mean, std := stat.MeanStdDev(values, nil)
	return mean, std / math.Sqrt(float64(n))
}

// checkEstimate fails unless mean is within 5 standard errors of want
func checkEstimate(t *testing.T, name string, mean, stderr, want float64) {
	t.Helper()
	tol := 5*stderr + 1e-3*math.Abs(want)
	if math.Abs(mean-want) > tol {
		t.Errorf("%s: mean %.5f, want %.5f (±%.5f)", name, mean, want, tol)
	} else {
		t.Logf("%s: mean %.5f, want %.5f (stderr %.5f)", name, mean, want, stderr)
	}
}
