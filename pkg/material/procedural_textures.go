package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		color := color1.Lerp(color2, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewImageTexture(width, height, pixels)
}

// CheckerTexture alternates two colors in UV space without an image
type CheckerTexture struct {
	Even, Odd core.Vec3
	Scale     float64 // checks per unit UV
}

// NewCheckerTexture creates a procedural UV checker
func NewCheckerTexture(even, odd core.Vec3, scale float64) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: scale}
}

// Evaluate returns Even or Odd depending on the UV cell parity
func (c *CheckerTexture) Evaluate(uv core.Vec2) core.Vec3 {
	i := int(math.Floor(uv.X * c.Scale))
	j := int(math.Floor(uv.Y * c.Scale))
	if (i+j)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// UVTexture visualizes surface parameterization: red follows u, green
// follows v, modulated by a fine sinusoidal pattern
type UVTexture struct{}

// Evaluate returns the parameterization color at uv
func (UVTexture) Evaluate(uv core.Vec2) core.Vec3 {
	const c = 16 * math.Pi
	r := math.Abs(math.Mod(uv.X, 1))
	g := math.Abs(math.Mod(uv.Y, 1))
	r *= 1 - 0.2*math.Sin(c*uv.X)*math.Sin(c*uv.Y)
	g *= 1 - 0.2*math.Cos(c*uv.X)*math.Sin(c*uv.Y)
	return core.NewVec3(r, g, 0.5)
}
