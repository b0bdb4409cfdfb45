package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
)

// writePNG encodes img into a temporary file and returns its path
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	testFile := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return testFile
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	imageData, err := LoadImage(writePNG(t, img))
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if len(imageData.Pixels) != 4 {
		t.Errorf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	checkColor := func(name string, got, expected core.Vec3) {
		const tolerance = 0.01
		if got.Subtract(expected).Length() > tolerance {
			t.Errorf("%s: expected %v, got %v", name, expected, got)
		}
	}

	// Row-major, row 0 at the top
	checkColor("Top-left (white)", imageData.Pixels[0], core.NewVec3(1, 1, 1))
	checkColor("Top-right (red)", imageData.Pixels[1], core.NewVec3(1, 0, 0))
	checkColor("Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0, 1, 0))
	checkColor("Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0, 0, 1))
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestSRGBToLinear(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{0.04045, 0.04045 / 12.92},
		{0.5, 0.214041},
	}
	for _, tt := range tests {
		if got := srgbToLinear(tt.in); math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("srgbToLinear(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadEnvMap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	env, err := LoadEnvMap(writePNG(t, img), 2, core.NewVec3(0, 1, 0))
	if err != nil {
		t.Fatalf("LoadEnvMap failed: %v", err)
	}
	if env.Width != 8 || env.Height != 4 {
		t.Errorf("Expected 8x4 map, got %dx%d", env.Width, env.Height)
	}

	// A white map is constant radiance equal to the scale in every direction,
	// poles included
	dirs := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0.5, 1).Normalize(),
		core.NewVec3(-1, -0.3, 0.2).Normalize(),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
	}
	for _, dir := range dirs {
		le := env.Eval(core.NewEmitterDirectionQuery(core.Vec3{}, dir))
		if math.Abs(le.X-2) > 1e-6 {
			t.Errorf("Radiance toward %v = %v, want 2", dir, le)
		}
	}

	tiny := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, err := LoadEnvMap(writePNG(t, tiny), 1, core.NewVec3(0, 1, 0)); err == nil {
		t.Errorf("Expected error for a 1x1 environment map")
	}
}

func TestLoadTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	tex, err := LoadTexture(writePNG(t, img))
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}
	got := tex.Evaluate(core.NewVec2(0.5, 0.5))
	want := srgbToLinear(128.0 / 255.0)
	if math.Abs(got.X-want) > 1e-3 {
		t.Errorf("Texture value = %v, want %v", got.X, want)
	}
}
