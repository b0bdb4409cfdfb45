package scene

import (
	"errors"
	"sort"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

func TestNames(t *testing.T) {
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, want := range []string{"cornell", "disney", "fog", "spot", "veach"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("scene %q not registered", want)
		}
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("nope", 1)
	if !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestBuiltinScenesBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name, 1.5)
			if err != nil {
				t.Fatalf("Builtin(%q) failed: %v", name, err)
			}
			if len(s.Lights()) == 0 {
				t.Errorf("Scene %q has no lights", name)
			}
			if !s.BoundingBox().IsValid() {
				t.Errorf("Scene %q has invalid bounds", name)
			}

			// The center pixel must see something or, with an environment, escape to it
			camera := renderer.NewCamera(s.CameraConfig)
			ray := camera.GetRay(0.5, 0.5, core.NewVec2(0.5, 0.5))
			if _, hit := s.RayIntersect(ray); !hit && s.Environment() == nil {
				t.Errorf("Center ray of %q hits nothing", name)
			}
		})
	}
}

func TestPreprocessMissingBSDF(t *testing.T) {
	s := New("broken", renderer.CameraConfig{})
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(3, 0, 0), 1))

	err := s.Preprocess()
	if !errors.Is(err, ErrMissingBSDF) {
		t.Fatalf("Expected ErrMissingBSDF, got %v", err)
	}
}

func TestPreprocessAttachesAreaLights(t *testing.T) {
	s := New("attach", renderer.CameraConfig{})
	sphere := geometry.NewSphere(core.NewVec3(0, 2, 0), 0.5)
	light := s.AddAreaLight(sphere, material.NewDiffuse(core.Vec3{}), core.NewVec3(4, 4, 4))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1)))
	env := lights.NewEnvMapLight(2, 1, []core.Vec3{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}, 1, core.NewVec3(0, 1, 0))
	s.SetEnvironment(env)

	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if light.Shape() != core.Shape(sphere) {
		t.Errorf("Area light not bound to its sphere")
	}
	if got := len(s.Lights()); got != 3 {
		t.Fatalf("Expected 3 emitters, got %d", got)
	}

	// Preprocess is repeatable
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Second Preprocess failed: %v", err)
	}
	if got := len(s.Lights()); got != 3 {
		t.Errorf("Expected 3 emitters after second Preprocess, got %d", got)
	}
}

func TestRandomEmitter(t *testing.T) {
	s := New("lights", renderer.CameraConfig{})
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if e := s.RandomEmitter(0.5); e != nil {
		t.Errorf("Expected nil emitter for a scene without lights")
	}

	a := lights.NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))
	b := lights.NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1))
	s.AddLight(a)
	s.AddLight(b)
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	tests := []struct {
		u    float64
		want core.Emitter
	}{
		{0, a},
		{0.49, a},
		{0.5, b},
		{0.999, b},
		{1, b},
	}
	for _, tt := range tests {
		if got := s.RandomEmitter(tt.u); got != tt.want {
			t.Errorf("RandomEmitter(%v) picked the wrong light", tt.u)
		}
	}
}

func TestCornellWallsFaceInside(t *testing.T) {
	s, err := Builtin("cornell", 1)
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	center := core.NewVec3(cornellSize/2, cornellSize/2, cornellSize/2)
	quads := 0
	for _, shape := range s.Shapes {
		q, ok := shape.(*geometry.Quad)
		if !ok {
			continue
		}
		quads++
		mid := q.Corner.Add(q.U.Multiply(0.5)).Add(q.V.Multiply(0.5))
		if q.Normal.Dot(center.Subtract(mid)) <= 0 {
			t.Errorf("Quad at %v faces away from the box interior (normal %v)", q.Corner, q.Normal)
		}
	}
	if quads != 6 {
		t.Errorf("Expected 5 walls and a light, got %d quads", quads)
	}
}

func TestOccluded(t *testing.T) {
	s, err := Builtin("cornell", 1)
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	inside := core.NewVec3(100, 450, 100)
	if s.Occluded(core.ShadowRay(inside, core.NewVec3(100, 450, -500))) {
		t.Errorf("Segment through the open front should be clear")
	}
	if !s.Occluded(core.ShadowRay(inside, core.NewVec3(100, 450, 900))) {
		t.Errorf("Segment through the back wall should be occluded")
	}
	if s.Occluded(core.ShadowRay(inside, core.NewVec3(450, 450, 100))) {
		t.Errorf("Segment across the empty top of the box should be clear")
	}
}
