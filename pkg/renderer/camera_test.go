package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func TestCameraForward(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        45.0,
	}
	camera := NewCamera(config)

	forward := camera.Forward()
	expected := core.NewVec3(0, 0, -1)

	if math.Abs(forward.X-expected.X) > 1e-6 ||
		math.Abs(forward.Y-expected.Y) > 1e-6 ||
		math.Abs(forward.Z-expected.Z) > 1e-6 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraGetRay_FieldOfView(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(1, 2, 3),
		LookAt:      core.NewVec3(1, 2, -7),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 2.0,
		VFov:        90.0,
	}
	camera := NewCamera(config)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1).Normalize()},
		{"bottom edge", 0.5, 0, core.NewVec3(0, -1, -1).Normalize()},
		{"right edge", 1, 0.5, core.NewVec3(2, 0, -1).Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, core.Vec2{})
			if ray.Origin != config.Center {
				t.Errorf("Pinhole ray should start at the camera center, got %v", ray.Origin)
			}
			d := ray.Direction
			if math.Abs(d.X-tt.expected.X) > 1e-9 || math.Abs(d.Y-tt.expected.Y) > 1e-9 || math.Abs(d.Z-tt.expected.Z) > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, d)
			}
		})
	}
}

func TestCameraGetRay_ThinLensFocus(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   1.0,
		VFov:          40.0,
		Aperture:      0.5,
		FocusDistance: 4,
	}
	camera := NewCamera(config)
	random := rand.New(rand.NewSource(42))

	// every lens sample for the same pixel converges at the focal plane
	focal := core.NewVec3(0, 0, -4)
	for i := 0; i < 50; i++ {
		ray := camera.GetRay(0.5, 0.5, core.NewVec2(random.Float64(), random.Float64()))
		if ray.Origin.Length() > 0.25+1e-9 {
			t.Fatalf("Lens sample %v outside aperture", ray.Origin)
		}
		tHit := -4 / ray.Direction.Z
		p := ray.At(tHit)
		if p.Subtract(focal).Length() > 1e-9 {
			t.Errorf("Ray does not pass through the focus point: %v", p)
		}
	}
}

func TestCameraGetRay_CarriesMedium(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
	})
	ray := camera.GetRay(0.3, 0.7, core.Vec2{})
	if ray.Medium != nil {
		t.Error("Camera without medium should emit vacuum rays")
	}
	if !math.IsInf(ray.MaxT, 1) {
		t.Errorf("Primary rays should be unbounded, got MaxT=%f", ray.MaxT)
	}
}
