package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array.
// Values are the encoded [0,1] channel values; call Linearize for radiance.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Linearize converts sRGB-encoded pixels to linear values in place
func (img *ImageData) Linearize() *ImageData {
	for i, p := range img.Pixels {
		img.Pixels[i] = core.NewVec3(srgbToLinear(p.X), srgbToLinear(p.Y), srgbToLinear(p.Z))
	}
	return img
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LoadTexture loads an sRGB image as a linear image texture
func LoadTexture(filename string) (*material.ImageTexture, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	img.Linearize()
	return material.NewImageTexture(img.Width, img.Height, img.Pixels), nil
}

// LoadEnvMap loads an equirectangular sRGB image as an environment light.
// Scale multiplies the radiance, up is the world zenith.
func LoadEnvMap(filename string, scale float64, up core.Vec3) (*lights.EnvMapLight, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	if img.Width < 2 || img.Height < 2 {
		return nil, fmt.Errorf("environment map %s is %dx%d, need at least 2x2", filename, img.Width, img.Height)
	}
	img.Linearize()
	return lights.NewEnvMapLight(img.Width, img.Height, img.Pixels, scale, up), nil
}
