package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

func vecNear(a, b core.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// TestImageTextureEvaluate tests texel-center sampling and the V flip
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), // Row 0 (top in image coords)
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom-left", core.NewVec2(0.25, 0.25), black},
		{"bottom-right", core.NewVec2(0.75, 0.25), white},
		{"top-left", core.NewVec2(0.25, 0.75), white},
		{"top-right", core.NewVec2(0.75, 0.75), black},
		{"center blends", core.NewVec2(0.5, 0.5), core.NewVec3(0.5, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := texture.Evaluate(tt.uv)
			if !vecNear(result, tt.expected, 1e-9) {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, result)
			}
		})
	}
}

// TestImageTextureWrapping tests UV wrapping behavior
func TestImageTextureWrapping(t *testing.T) {
	texture := NewImageTexture(1, 1, []core.Vec3{core.NewVec3(1, 0, 0)})
	red := core.NewVec3(1, 0, 0)

	testCases := []core.Vec2{
		core.NewVec2(0.5, 0.5),
		core.NewVec2(1.5, 0.5),
		core.NewVec2(0.5, 1.5),
		core.NewVec2(-0.5, -0.5),
		core.NewVec2(2.3, 3.7),
	}

	for _, uv := range testCases {
		result := texture.Evaluate(uv)
		if !vecNear(result, red, 1e-12) {
			t.Errorf("UV%v: expected %v, got %v", uv, red, result)
		}
	}
}

func TestImageTextureScale(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1),
	}
	texture := NewImageTexture(2, 2, pixels)
	texture.Scale = core.NewVec2(2, 2)

	// Scaled UVs repeat the image twice per unit
	for _, uv := range []core.Vec2{core.NewVec2(0.125, 0.125), core.NewVec2(0.625, 0.625)} {
		result := texture.Evaluate(uv)
		if !vecNear(result, core.Vec3{}, 1e-9) {
			t.Errorf("UV%v: expected black, got %v", uv, result)
		}
	}
}

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0.1, 0.1, 0.1)
	checker := NewCheckerTexture(even, odd, 4)

	if got := checker.Evaluate(core.NewVec2(0.1, 0.1)); got != even {
		t.Errorf("Expected even color, got %v", got)
	}
	if got := checker.Evaluate(core.NewVec2(0.3, 0.1)); got != odd {
		t.Errorf("Expected odd color, got %v", got)
	}
	if got := checker.Evaluate(core.NewVec2(-0.1, 0.1)); got != odd {
		t.Errorf("Expected odd color for negative u, got %v", got)
	}
}

func TestChannelSource(t *testing.T) {
	src := ChannelSource{Source: NewSolidColor(core.NewVec3(0.1, 0.2, 0.3)), Channel: 1}
	if got := src.EvaluateFloat(core.Vec2{}); got != 0.2 {
		t.Errorf("Expected green channel 0.2, got %f", got)
	}
}

func TestDuplicateTextureBinding(t *testing.T) {
	disney := NewDisney(DefaultDisneyParams())
	if err := disney.SetRoughnessMap(ConstantFloat(0.3)); err != nil {
		t.Fatalf("First binding failed: %v", err)
	}
	err := disney.SetRoughnessMap(ConstantFloat(0.7))
	if !errors.Is(err, ErrDuplicateTexture) {
		t.Errorf("Expected ErrDuplicateTexture, got %v", err)
	}

	null := NewNull()
	if err := null.SetAlbedo(NewSolidColor(core.NewVec3(1, 0, 0))); err != nil {
		t.Fatalf("First binding failed: %v", err)
	}
	if err := null.SetAlbedo(NewSolidColor(core.NewVec3(0, 1, 0))); !errors.Is(err, ErrDuplicateTexture) {
		t.Errorf("Expected ErrDuplicateTexture, got %v", err)
	}
}

func TestUVTexture(t *testing.T) {
	var tex UVTexture
	tests := []struct {
		uv   core.Vec2
		want core.Vec3
	}{
		{core.Vec2{X: 0, Y: 0}, core.NewVec3(0, 0, 0.5)},
		// sin(16π·0.5) = 0, so the pattern leaves u and v untouched
		{core.Vec2{X: 0.25, Y: 0.5}, core.NewVec3(0.25, 0.5, 0.5)},
		{core.Vec2{X: 1.25, Y: 0.5}, core.NewVec3(0.25, 0.5, 0.5)},
	}
	for _, tt := range tests {
		if got := tex.Evaluate(tt.uv); !vecNear(got, tt.want, 1e-9) {
			t.Errorf("UVTexture(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}
}

func TestGradientTexture(t *testing.T) {
	top, bottom := core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)
	tex := NewGradientTexture(2, 5, top, bottom)

	if got := tex.Pixels[0]; got != top {
		t.Errorf("Top row = %v, want %v", got, top)
	}
	if got := tex.Pixels[4*2+1]; got != bottom {
		t.Errorf("Bottom row = %v, want %v", got, bottom)
	}
	if got, want := tex.Pixels[2*2], core.NewVec3(0.5, 0, 0.5); !vecNear(got, want, 1e-12) {
		t.Errorf("Middle row = %v, want %v", got, want)
	}
}
