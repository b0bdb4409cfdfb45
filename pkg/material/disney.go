package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// DisneyParams holds the artist-facing parameters of the principled BSDF.
// All scalars live in [0,1].
type DisneyParams struct {
	BaseColor      core.Vec3
	Metallic       float64
	Subsurface     float64
	Specular       float64
	SpecularTint   float64
	Roughness      float64
	Anisotropic    float64
	Sheen          float64
	SheenTint      float64
	Clearcoat      float64
	ClearcoatGloss float64
}

// DefaultDisneyParams returns a grey plastic-like configuration
func DefaultDisneyParams() DisneyParams {
	return DisneyParams{
		BaseColor: core.NewVec3(0.5, 0.5, 0.5),
		Specular:  0.5,
		Roughness: 0.5,
	}
}

const disneyAlphaMin = 1e-4

// Disney is a layered reflectance model combining a retro-reflective diffuse
// base with subsurface approximation, an anisotropic GTR2 metal lobe, a GTR1
// clearcoat lobe and a grazing sheen.
type Disney struct {
	Params DisneyParams

	baseColorMap ColorSource
	roughnessMap FloatSource
	metallicMap  FloatSource
}

// NewDisney creates a Disney BSDF from constant parameters
func NewDisney(params DisneyParams) *Disney {
	return &Disney{Params: params}
}

// SetBaseColorMap binds a texture for the base color
func (d *Disney) SetBaseColorMap(tex ColorSource) error {
	return bindColor(&d.baseColorMap, "disney baseColor", tex)
}

// SetRoughnessMap binds a scalar texture for the roughness
func (d *Disney) SetRoughnessMap(tex FloatSource) error {
	return bindFloat(&d.roughnessMap, "disney roughnessmap", tex)
}

// SetMetallicMap binds a scalar texture for the metallic parameter
func (d *Disney) SetMetallicMap(tex FloatSource) error {
	return bindFloat(&d.metallicMap, "disney metallicmap", tex)
}

// disneyLobes is the parameter set resolved at a single surface point
type disneyLobes struct {
	base       core.Vec3
	tint       core.Vec3
	roughness  float64
	metallic   float64
	eta        float64
	alphaX     float64
	alphaY     float64
	alphaG     float64
	diffuseW   float64
	metalW     float64
	clearcoatW float64
	sheenW     float64
}

// at resolves texture lookups and derived quantities for a UV
func (d *Disney) at(uv core.Vec2) disneyLobes {
	p := d.Params
	l := disneyLobes{
		base:      p.BaseColor,
		roughness: p.Roughness,
		metallic:  p.Metallic,
	}
	if d.baseColorMap != nil {
		l.base = d.baseColorMap.Evaluate(uv)
	}
	if d.roughnessMap != nil {
		l.roughness = d.roughnessMap.EvaluateFloat(uv)
	}
	if d.metallicMap != nil {
		l.metallic = d.metallicMap.EvaluateFloat(uv)
	}

	l.tint = core.NewVec3(1, 1, 1)
	if lum := l.base.Luminance(); lum > 0 {
		l.tint = l.base.Multiply(1 / lum)
	}

	// specular maps to a normal-incidence reflectance, then to an IOR
	l.eta = 2/(1-math.Sqrt(0.08*p.Specular)) - 1

	aspect := math.Sqrt(1 - 0.9*p.Anisotropic)
	r2 := l.roughness * l.roughness
	l.alphaX = max(disneyAlphaMin, r2/aspect)
	l.alphaY = max(disneyAlphaMin, r2*aspect)
	l.alphaG = (1-p.ClearcoatGloss)*0.1 + p.ClearcoatGloss*0.001

	l.diffuseW = 1 - l.metallic
	l.metalW = l.metallic
	l.clearcoatW = 0.25 * p.Clearcoat
	l.sheenW = (1 - l.metallic) * p.Sheen
	return l
}

// samplingWeights normalizes the sampled lobes (diffuse, metal, clearcoat) to sum to 1
func (l disneyLobes) samplingWeights() (float64, float64, float64) {
	sum := l.diffuseW + l.metalW + l.clearcoatW
	if sum <= 0 {
		return 1, 0, 0
	}
	return l.diffuseW / sum, l.metalW / sum, l.clearcoatW / sum
}

func r0(eta float64) float64 {
	return (eta - 1) * (eta - 1) / ((eta + 1) * (eta + 1))
}

// smithLambda is the GGX masking auxiliary function for an anisotropic roughness
func smithLambda(w core.Vec3, ax, ay float64) float64 {
	x2 := w.X * ax * w.X * ax
	y2 := w.Y * ay * w.Y * ay
	return (math.Sqrt(1+(x2+y2)/(w.Z*w.Z)) - 1) / 2
}

func smithG(wi, wo core.Vec3, ax, ay float64) float64 {
	return 1 / (1 + smithLambda(wi, ax, ay)) / (1 + smithLambda(wo, ax, ay))
}

func (d *Disney) evalDiffuse(l disneyLobes, wi, wo, h core.Vec3) core.Vec3 {
	ci, co := core.CosTheta(wi), core.CosTheta(wo)
	hdo := math.Abs(h.Dot(wo))

	fd90 := 0.5 + 2*l.roughness*hdo*hdo
	fdi := 1 + (fd90-1)*SchlickWeight(ci)
	fdo := 1 + (fd90-1)*SchlickWeight(co)
	base := l.base.Multiply(fdi * fdo / math.Pi)

	fss90 := l.roughness * hdo * hdo
	fssi := 1 + (fss90-1)*SchlickWeight(ci)
	fsso := 1 + (fss90-1)*SchlickWeight(co)
	ss := l.base.Multiply(1.25 / math.Pi * (fssi*fsso*(1/(ci+co)-0.5) + 0.5))

	s := d.Params.Subsurface
	return base.Multiply(1 - s).Add(ss.Multiply(s))
}

func (d *Disney) evalMetal(l disneyLobes, wi, wo, h core.Vec3) core.Vec3 {
	p := d.Params
	ks := core.Splat(1 - p.SpecularTint).Add(l.tint.Multiply(p.SpecularTint))
	c0 := ks.Multiply(p.Specular * r0(l.eta) * (1 - l.metallic)).Add(l.base.Multiply(l.metallic))
	fw := SchlickWeight(h.Dot(wo))
	f := c0.Add(core.Splat(1).Subtract(c0).Multiply(fw))

	dm := warp.GTR2D(h, l.alphaX, l.alphaY)
	g := smithG(wi, wo, l.alphaX, l.alphaY)
	return f.Multiply(dm * g / (4 * core.CosTheta(wi) * core.CosTheta(wo)))
}

func (d *Disney) evalClearcoat(l disneyLobes, wi, wo, h core.Vec3) float64 {
	f0 := r0(1.5)
	f := f0 + (1-f0)*SchlickWeight(math.Abs(h.Dot(wo)))
	dc := warp.GTR1D(core.CosTheta(h), l.alphaG)
	g := smithG(wi, wo, 0.25, 0.25)
	return f * dc * g / (4 * core.CosTheta(wi) * core.CosTheta(wo))
}

func (d *Disney) evalSheen(l disneyLobes, wo, h core.Vec3) core.Vec3 {
	p := d.Params
	sheen := core.Splat(1 - p.SheenTint).Add(l.tint.Multiply(p.SheenTint))
	return sheen.Multiply(SchlickWeight(math.Abs(h.Dot(wo))))
}

func (d *Disney) eval(l disneyLobes, rec core.BSDFQueryRecord) core.Vec3 {
	h := halfVector(rec)
	result := d.evalDiffuse(l, rec.Wi, rec.Wo, h).Multiply(l.diffuseW)
	if l.metalW > 0 {
		result = result.Add(d.evalMetal(l, rec.Wi, rec.Wo, h).Multiply(l.metalW))
	}
	if l.clearcoatW > 0 {
		result = result.AddScalar(l.clearcoatW * d.evalClearcoat(l, rec.Wi, rec.Wo, h))
	}
	if l.sheenW > 0 {
		result = result.Add(d.evalSheen(l, rec.Wo, h).Multiply(l.sheenW))
	}
	return result
}

func (d *Disney) pdf(l disneyLobes, rec core.BSDFQueryRecord) float64 {
	wd, wm, wc := l.samplingWeights()
	h := halfVector(rec)
	hdo := math.Abs(h.Dot(rec.Wo))

	pdf := wd * warp.SquareToCosineHemispherePDF(rec.Wo)
	if wm > 0 && hdo > 0 {
		pdf += wm * warp.SquareToGTR2PDF(h, l.alphaX, l.alphaY) / (4 * hdo)
	}
	if wc > 0 && hdo > 0 {
		pdf += wc * warp.SquareToGTR1PDF(h, l.alphaG) / (4 * hdo)
	}
	return pdf
}

// Eval sums the weighted lobes
func (d *Disney) Eval(rec core.BSDFQueryRecord) core.Vec3 {
	if !frontFacing(rec) {
		return core.Vec3{}
	}
	return d.eval(d.at(rec.UV), rec)
}

// PDF mixes the lobe densities by their normalized sampling weights
func (d *Disney) PDF(rec core.BSDFQueryRecord) float64 {
	if !frontFacing(rec) {
		return 0
	}
	return d.pdf(d.at(rec.UV), rec)
}

// Sample selects a lobe with u.X, rescales it and samples that lobe
func (d *Disney) Sample(rec *core.BSDFQueryRecord, u core.Vec2) core.Vec3 {
	if core.CosTheta(rec.Wi) <= 0 {
		return core.Vec3{}
	}
	rec.Measure = core.MeasureSolidAngle
	rec.Eta = 1

	l := d.at(rec.UV)
	wd, wm, _ := l.samplingWeights()
	switch {
	case u.X < wd:
		rec.Wo = warp.SquareToCosineHemisphere(core.NewVec2(u.X/wd, u.Y))
	case u.X < wd+wm:
		h := warp.SquareToGTR2(core.NewVec2((u.X-wd)/wm, u.Y), l.alphaX, l.alphaY)
		rec.Wo = core.ReflectAbout(rec.Wi, h)
	default:
		wc := 1 - wd - wm
		h := warp.SquareToGTR1(core.NewVec2(core.Clamp((u.X-wd-wm)/wc, 0, 1), u.Y), l.alphaG)
		rec.Wo = core.ReflectAbout(rec.Wi, h)
	}

	if core.CosTheta(rec.Wo) <= 0 {
		return core.Vec3{}
	}
	pdf := d.pdf(l, *rec)
	if pdf < core.PDFEpsilon {
		return core.Vec3{}
	}
	return d.eval(l, *rec).Multiply(core.CosTheta(rec.Wo) / pdf)
}

// IsDiffuse returns true
func (d *Disney) IsDiffuse() bool {
	return true
}

// BaseColor returns the base color at uv, honoring the base color map
func (d *Disney) BaseColor(uv core.Vec2) core.Vec3 {
	if d.baseColorMap != nil {
		return d.baseColorMap.Evaluate(uv)
	}
	return d.Params.BaseColor
}
