package integrator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func TestPhotonMapQuery(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	photons := make([]Photon, 2000)
	for i := range photons {
		p := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		photons[i] = newPhoton(p, core.NewVec3(0, 1, 0), core.Splat(1))
	}
	pm := NewPhotonMap(photons, len(photons), 0.3)
	if pm.Len() != len(photons) {
		t.Fatalf("Len() = %d, want %d", pm.Len(), len(photons))
	}

	queries := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(0.9, -0.9, 0.5),
		core.NewVec3(5, 5, 5),
	}
	for _, q := range queries {
		want := 0
		for _, ph := range photons {
			if ph.Position.Subtract(q).Length() <= 0.3 {
				want++
			}
		}
		got := 0
		pm.Query(q, func(ph *Photon) {
			if d := ph.Position.Subtract(q).Length(); d > 0.3+1e-12 {
				t.Errorf("Query(%v) returned photon at distance %v", q, d)
			}
			got++
		})
		if got != want {
			t.Errorf("Query(%v) found %d photons, want %d", q, got, want)
		}
	}
}

func TestBuildPhotonMapUnsupportedLight(t *testing.T) {
	pixels := []core.Vec3{core.Splat(1), core.Splat(1), core.Splat(1), core.Splat(1)}
	env := lights.NewEnvMapLight(2, 2, pixels, 1, core.NewVec3(0, 1, 0))
	scene := newTestScene([]core.Shape{floorPlane(0.5, 5)}, env)

	_, err := BuildPhotonMap(scene, core.NewSeededSampler(42), 100, 0, 3)
	if !errors.Is(err, ErrPhotonEmissionUnsupported) {
		t.Errorf("Expected ErrPhotonEmissionUnsupported, got %v", err)
	}
}

func TestBuildPhotonMapNothingStored(t *testing.T) {
	mirror := geometry.NewQuad(core.NewVec3(-5, 0, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0))
	mirror.SetBSDF(material.NewMirror(core.Splat(1)))
	// The light itself must not store photons reflected back up at it
	light := ceilingLight(1)
	light.SetBSDF(material.NewNull())
	scene := newTestScene([]core.Shape{mirror, light}, nil)

	_, err := BuildPhotonMap(scene, core.NewSeededSampler(42), 10, 0, 3)
	if !errors.Is(err, ErrNoPhotonsStored) {
		t.Errorf("Expected ErrNoPhotonsStored, got %v", err)
	}

	empty := newTestScene([]core.Shape{floorPlane(0.5, 1)}, nil)
	if _, err := BuildPhotonMap(empty, core.NewSeededSampler(42), 10, 0, 3); !errors.Is(err, ErrNoPhotonsStored) {
		t.Errorf("Scene without lights: expected ErrNoPhotonsStored, got %v", err)
	}
}

func TestBuildPhotonMapDefaultRadius(t *testing.T) {
	scene := newTestScene([]core.Shape{floorPlane(0.5, 5), ceilingLight(1)}, nil)
	pm, err := BuildPhotonMap(scene, core.NewSeededSampler(42), 500, 0, 3)
	if err != nil {
		t.Fatalf("BuildPhotonMap failed: %v", err)
	}
	want := scene.BoundingBox().Diagonal() / 500
	if math.Abs(pm.Radius-want) > 1e-12 {
		t.Errorf("Radius = %v, want %v", pm.Radius, want)
	}
	if pm.Len() != 500 {
		t.Errorf("Stored %d photons, want 500", pm.Len())
	}
	// One photon may deposit at several diffuse hits, so only positivity holds
	if pm.Emitted <= 0 {
		t.Errorf("Emitted count %d should be positive", pm.Emitted)
	}
}

func TestPhotonMapperDiffusePlane(t *testing.T) {
	const albedo, radiance = 0.5, 2.0
	scene := newTestScene([]core.Shape{floorPlane(albedo, 5), ceilingLight(radiance)}, nil)

	mapper := NewPhotonMapper(100000, 0.1, unlimited, 3)
	if err := mapper.Preprocess(scene, core.NewSeededSampler(42), discardLogger{}); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if mapper.PhotonMap() == nil || mapper.PhotonMap().Len() != 100000 {
		t.Fatalf("Photon map not built")
	}

	ray := core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0))
	got := mapper.Li(scene, core.NewSeededSampler(1), ray).X
	want := albedo / math.Pi * radiance * squareIrradiance(0.5)

	// Density estimation is biased by the kernel width, allow 15%
	if math.Abs(got-want) > 0.15*want {
		t.Errorf("Photon mapper radiance = %v, want %v", got, want)
	}
}

func TestPhotonMapperRequiresPreprocess(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic when Li runs before Preprocess")
		}
	}()
	scene := newTestScene([]core.Shape{floorPlane(0.5, 5)}, nil)
	NewPhotonMapper(10, 0.1, unlimited, 3).Li(scene, core.NewSeededSampler(1), core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)))
}
