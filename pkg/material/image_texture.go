package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// ImageTexture provides color from a 2D image with bilinear filtering and wrapping
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
	Scale  core.Vec2   // UV repeat scale, (1,1) maps the image once
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Scale:  core.NewVec2(1, 1),
	}
}

// Evaluate bilinearly samples the texture at the given UV. V=0 is the bottom
// row; texel centers sit at half-integer coordinates.
func (t *ImageTexture) Evaluate(uv core.Vec2) core.Vec3 {
	u := uv.X * t.Scale.X
	v := uv.Y * t.Scale.Y
	u -= math.Floor(u)
	v = 1 - (v - math.Floor(v))

	x := u*float64(t.Width) - 0.5
	y := v*float64(t.Height) - 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	x1 := wrap(x0+1, t.Width)
	y1 := wrap(y0+1, t.Height)
	x0 = wrap(x0, t.Width)
	y0 = wrap(y0, t.Height)

	c00 := t.Pixels[y0*t.Width+x0]
	c10 := t.Pixels[y0*t.Width+x1]
	c01 := t.Pixels[y1*t.Width+x0]
	c11 := t.Pixels[y1*t.Width+x1]

	return c00.Multiply((1 - fx) * (1 - fy)).
		Add(c10.Multiply(fx * (1 - fy))).
		Add(c01.Multiply((1 - fx) * fy)).
		Add(c11.Multiply(fx * fy))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
