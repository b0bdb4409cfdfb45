package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// EnvMapLight is an infinitely distant light described by an
// equirectangular radiance image. Row 0 is the zenith, column 0 is φ=0.
type EnvMapLight struct {
	Width, Height int
	Pixels        []core.Vec3 // linear radiance, row-major
	Scale         float64     // radiance multiplier

	frame        core.Frame // local +Z is the zenith
	marginal     *core.DiscretePDF
	conditionals []*core.DiscretePDF
}

// NewEnvMapLight builds the light and its importance tables. Up is the world zenith.
func NewEnvMapLight(width, height int, pixels []core.Vec3, scale float64, up core.Vec3) *EnvMapLight {
	env := &EnvMapLight{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Scale:  scale,
		frame:  core.NewFrame(up.Normalize()),
	}
	env.buildDistribution()
	return env
}

// buildDistribution tabulates luminance·sinθ per pixel: a marginal over rows
// and one conditional per row over columns
func (env *EnvMapLight) buildDistribution() {
	env.marginal = core.NewDiscretePDF(env.Height)
	env.conditionals = make([]*core.DiscretePDF, env.Height)
	for y := 0; y < env.Height; y++ {
		sinTheta := math.Sin((float64(y) + 0.5) * math.Pi / float64(env.Height))
		row := core.NewDiscretePDF(env.Width)
		for x := 0; x < env.Width; x++ {
			row.Append(max(0, env.Pixels[y*env.Width+x].Luminance()) * sinTheta)
		}
		env.marginal.Append(row.Normalize())
		env.conditionals[y] = row
	}
	env.marginal.Normalize()
}

// cell maps a world direction to its pixel and returns sinθ
func (env *EnvMapLight) cell(w core.Vec3) (int, int, float64) {
	local := env.frame.ToLocal(w)
	theta := math.Acos(core.Clamp(local.Z, -1, 1))
	phi := math.Atan2(local.Y, local.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	y := min(int(theta/math.Pi*float64(env.Height)), env.Height-1)
	x := min(int(phi/(2*math.Pi)*float64(env.Width)), env.Width-1)
	return x, y, math.Sin(theta)
}

// direction maps continuous image coordinates (in pixels) to a world direction
func (env *EnvMapLight) direction(x, y float64) core.Vec3 {
	theta := y / float64(env.Height) * math.Pi
	phi := x / float64(env.Width) * 2 * math.Pi
	return core.SphericalDirection(math.Sin(theta), math.Cos(theta), phi, env.frame.S, env.frame.T, env.frame.N)
}

// Eval returns the radiance of the pixel seen in direction Wi
func (env *EnvMapLight) Eval(rec core.EmitterQueryRecord) core.Vec3 {
	x, y, _ := env.cell(rec.Wi)
	return env.Pixels[y*env.Width+x].Multiply(env.Scale)
}

// Sample draws a pixel proportionally to luminance·sinθ and a uniform
// position inside it
func (env *EnvMapLight) Sample(rec *core.EmitterQueryRecord, u core.Vec2) core.Vec3 {
	y, _, uy := env.marginal.SampleReuse(u.X)
	x, _, ux := env.conditionals[y].SampleReuse(u.Y)

	rec.Wi = env.direction(float64(x)+ux, float64(y)+uy)
	rec.N = rec.Wi.Negate()
	rec.P = rec.Ref.Add(rec.Wi)
	rec.ShadowRay = core.NewSegment(rec.Ref, rec.Wi, core.RayEpsilon, math.Inf(1))
	rec.PDF = env.PDF(*rec)
	if rec.PDF < core.PDFEpsilon {
		return core.Vec3{}
	}
	return env.Eval(*rec).Multiply(1 / rec.PDF)
}

// PDF converts the discrete pixel probability to solid angle:
// p(x,y)·W·H/(2π²·sinθ)
func (env *EnvMapLight) PDF(rec core.EmitterQueryRecord) float64 {
	x, y, sinTheta := env.cell(rec.Wi)
	if sinTheta < core.PDFEpsilon {
		return 0
	}
	pJoint := env.marginal.Get(y) * env.conditionals[y].Get(x)
	return pJoint * float64(env.Width*env.Height) / (2 * math.Pi * math.Pi * sinTheta)
}

// IsDelta returns false
func (env *EnvMapLight) IsDelta() bool {
	return false
}
