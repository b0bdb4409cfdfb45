package material

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

func continuousBSDFs() map[string]core.BSDF {
	rough := DefaultDisneyParams()
	rough.BaseColor = core.NewVec3(0.8, 0.4, 0.2)
	rough.Roughness = 0.7

	metal := DefaultDisneyParams()
	metal.Metallic = 1
	metal.Roughness = 0.3
	metal.Anisotropic = 0.5

	coated := DefaultDisneyParams()
	coated.Metallic = 0.4
	coated.Clearcoat = 1
	coated.ClearcoatGloss = 0.8
	coated.Sheen = 0.5
	coated.Subsurface = 0.5

	return map[string]core.BSDF{
		"diffuse":       NewDiffuse(core.NewVec3(0.7, 0.5, 0.3)),
		"microfacet":    NewMicrofacet(0.3, core.NewVec3(0.5, 0.5, 0.5)),
		"microfacet-lo": NewMicrofacet(0.1, core.NewVec3(0.2, 0.2, 0.2)),
		"disney-rough":  NewDisney(rough),
		"disney-metal":  NewDisney(metal),
		"disney-coated": NewDisney(coated),
	}
}

var testIncident = []core.Vec3{
	core.NewVec3(0, 0, 1),
	core.NewVec3(math.Sin(0.5), 0, math.Cos(0.5)),
	core.NewVec3(0.3, -0.6, 0.5).Normalize(),
}

// Sample must return exactly eval*cos/pdf for the direction it produced
func TestBSDF_SampleMatchesEvalOverPDF(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for name, bsdf := range continuousBSDFs() {
		t.Run(name, func(t *testing.T) {
			for _, wi := range testIncident {
				for i := 0; i < 500; i++ {
					rec := core.NewBSDFSampleQuery(wi, core.NewVec2(0.5, 0.5))
					u := core.NewVec2(random.Float64(), random.Float64())
					weight := bsdf.Sample(&rec, u)
					if weight.IsZero() {
						continue
					}
					if rec.Measure != core.MeasureSolidAngle {
						t.Fatalf("Expected solid angle measure, got %v", rec.Measure)
					}
					pdf := bsdf.PDF(rec)
					if pdf <= 0 {
						t.Fatalf("Sampled direction %v has zero pdf", rec.Wo)
					}
					expected := bsdf.Eval(rec).Multiply(core.CosTheta(rec.Wo) / pdf)
					if !vecNear(weight, expected, 1e-6*max(1, expected.MaxComponent())) {
						t.Errorf("wi=%v wo=%v: sample weight %v != eval*cos/pdf %v", wi, rec.Wo, weight, expected)
					}
				}
			}
		})
	}
}

// The density over the upper hemisphere never exceeds 1 and, for a lobe-free
// diffuse model, equals 1
func TestBSDF_PDFIntegratesToAtMostOne(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	const n = 200000
	for name, bsdf := range continuousBSDFs() {
		t.Run(name, func(t *testing.T) {
			wi := testIncident[1]
			values := make([]float64, n)
			for i := range values {
				wo := warp.SquareToUniformHemisphere(core.NewVec2(random.Float64(), random.Float64()))
				rec := core.NewBSDFQuery(wi, wo, core.MeasureSolidAngle, core.Vec2{})
				values[i] = bsdf.PDF(rec) / warp.SquareToUniformHemispherePDF(wo)
			}
			mean, std := stat.MeanStdDev(values, nil)
			stderr := std / math.Sqrt(n)
			t.Logf("%s: integral %.4f ± %.4f", name, mean, stderr)
			if mean > 1+4*stderr+1e-3 {
				t.Errorf("PDF integrates to %f, exceeding 1", mean)
			}
			if name == "diffuse" && math.Abs(mean-1) > 4*stderr+1e-3 {
				t.Errorf("Diffuse PDF integrates to %f, expected 1", mean)
			}
		})
	}
}

func TestBSDF_EnergyConservation(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	bsdfs := map[string]core.BSDF{
		"diffuse":    NewDiffuse(core.NewVec3(0.9, 0.9, 0.9)),
		"microfacet": NewMicrofacet(0.3, core.NewVec3(0.5, 0.5, 0.5)),
	}
	const n = 100000
	for name, bsdf := range bsdfs {
		for _, wi := range testIncident {
			values := make([]float64, n)
			for i := range values {
				rec := core.NewBSDFSampleQuery(wi, core.Vec2{})
				values[i] = bsdf.Sample(&rec, core.NewVec2(random.Float64(), random.Float64())).MaxComponent()
			}
			albedo := stat.Mean(values, nil)
			if albedo > 1.01 {
				t.Errorf("%s wi=%v: albedo %f exceeds 1", name, wi, albedo)
			}
		}
	}
}

func TestBSDF_BacksideAndMeasure(t *testing.T) {
	below := core.NewVec3(0.2, 0.1, -0.9).Normalize()
	above := core.NewVec3(0, 0, 1)
	for name, bsdf := range continuousBSDFs() {
		queries := []core.BSDFQueryRecord{
			core.NewBSDFQuery(below, above, core.MeasureSolidAngle, core.Vec2{}),
			core.NewBSDFQuery(above, below, core.MeasureSolidAngle, core.Vec2{}),
			core.NewBSDFQuery(above, above, core.MeasureDiscrete, core.Vec2{}),
		}
		for _, rec := range queries {
			if !bsdf.Eval(rec).IsZero() || bsdf.PDF(rec) != 0 {
				t.Errorf("%s: expected zero eval/pdf for wi=%v wo=%v measure=%v", name, rec.Wi, rec.Wo, rec.Measure)
			}
		}
		rec := core.NewBSDFSampleQuery(below, core.Vec2{})
		if w := bsdf.Sample(&rec, core.NewVec2(0.3, 0.3)); !w.IsZero() {
			t.Errorf("%s: sampling from below returned %v", name, w)
		}
	}
}

func TestDiffuse_SampleWeightIsAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	diffuse := NewDiffuse(albedo)
	rec := core.NewBSDFSampleQuery(core.NewVec3(0, 0, 1), core.Vec2{})
	if w := diffuse.Sample(&rec, core.NewVec2(0.2, 0.7)); w != albedo {
		t.Errorf("Expected weight %v, got %v", albedo, w)
	}
	if !diffuse.IsDiffuse() {
		t.Error("Diffuse should report IsDiffuse")
	}
}

func TestDisney_TexturedBaseColor(t *testing.T) {
	disney := NewDisney(DefaultDisneyParams())
	red := core.NewVec3(1, 0, 0)
	if err := disney.SetBaseColorMap(NewSolidColor(red)); err != nil {
		t.Fatal(err)
	}
	rec := core.NewBSDFQuery(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.MeasureSolidAngle, core.Vec2{})
	f := disney.Eval(rec)
	if f.X <= 0 || f.Y != 0 || f.Z != 0 {
		t.Errorf("Expected pure red reflectance, got %v", f)
	}
}

func TestMirror_Reflects(t *testing.T) {
	mirror := NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	wi := core.NewVec3(0.6, 0, 0.8)
	rec := core.NewBSDFSampleQuery(wi, core.Vec2{})
	w := mirror.Sample(&rec, core.NewVec2(0.5, 0.5))
	if rec.Measure != core.MeasureDiscrete {
		t.Errorf("Expected discrete measure, got %v", rec.Measure)
	}
	if !vecNear(rec.Wo, core.NewVec3(-0.6, 0, 0.8), 1e-12) {
		t.Errorf("Unexpected reflection %v", rec.Wo)
	}
	if w != mirror.Reflectance {
		t.Errorf("Expected weight %v, got %v", mirror.Reflectance, w)
	}
}

func TestBaseColor(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	textured := NewDisney(DefaultDisneyParams())
	if err := textured.SetBaseColorMap(NewSolidColor(red)); err != nil {
		t.Fatal(err)
	}
	layer := NewNull()
	if err := layer.SetAlbedo(NewSolidColor(red)); err != nil {
		t.Fatal(err)
	}

	uv := core.Vec2{X: 0.3, Y: 0.7}
	tests := []struct {
		name string
		bsdf interface{ BaseColor(core.Vec2) core.Vec3 }
		want core.Vec3
	}{
		{"diffuse", NewDiffuse(core.Splat(0.4)), core.Splat(0.4)},
		{"microfacet", NewMicrofacet(0.2, core.NewVec3(0.1, 0.2, 0.3)), core.NewVec3(0.1, 0.2, 0.3)},
		{"mirror", NewMirror(core.Splat(0.9)), core.Splat(0.9)},
		{"disney", NewDisney(DefaultDisneyParams()), core.Splat(0.5)},
		{"textured disney", textured, red},
		{"bare null", NewNull(), core.Vec3{}},
		{"layered null", layer, red},
	}
	for _, tt := range tests {
		if got := tt.bsdf.BaseColor(uv); got != tt.want {
			t.Errorf("%s: BaseColor = %v, want %v", tt.name, got, tt.want)
		}
	}
}
