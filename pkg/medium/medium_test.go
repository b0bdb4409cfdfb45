package medium

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

func segment(length float64) core.Ray {
	// direction deliberately not normalized
	return core.NewSegment(core.Vec3{}, core.NewVec3(0, 0, 2), 0, length/2)
}

func TestHomogeneous_TrPureAbsorption(t *testing.T) {
	sigmaA := core.NewVec3(0.5, 1, 2)
	m := NewHomogeneous(sigmaA, core.Vec3{})
	d := 1.5

	tr := m.Tr(segment(d))
	for i := 0; i < 3; i++ {
		expected := math.Exp(-sigmaA.Component(i) * d)
		if math.Abs(tr.Component(i)-expected) > 1e-12 {
			t.Errorf("Channel %d: expected Tr %f, got %f", i, expected, tr.Component(i))
		}
	}
}

// channelMeans averages the sample weights split by whether the sample
// scattered inside the medium or reached the end of the segment
func channelMeans(m *Homogeneous, ray core.Ray, n int) (inside, boundary core.Vec3) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	in := [3][]float64{}
	out := [3][]float64{}
	for k := 0; k < n; k++ {
		w, its := m.Sample(ray, sampler)
		for i := 0; i < 3; i++ {
			if its.IsValid() {
				in[i] = append(in[i], w.Component(i))
				out[i] = append(out[i], 0)
			} else {
				in[i] = append(in[i], 0)
				out[i] = append(out[i], w.Component(i))
			}
		}
	}
	inside = core.NewVec3(stat.Mean(in[0], nil), stat.Mean(in[1], nil), stat.Mean(in[2], nil))
	boundary = core.NewVec3(stat.Mean(out[0], nil), stat.Mean(out[1], nil), stat.Mean(out[2], nil))
	return inside, boundary
}

func TestHomogeneous_SamplePureAbsorption(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(0.5, 1, 2), core.Vec3{})
	ray := segment(1.5)
	inside, boundary := channelMeans(m, ray, 100000)

	if !inside.IsZero() {
		t.Errorf("Absorbing medium should not scatter, got inside weight %v", inside)
	}
	expected := m.Tr(ray)
	for i := 0; i < 3; i++ {
		if math.Abs(boundary.Component(i)-expected.Component(i)) > 0.01 {
			t.Errorf("Channel %d: expected E[weight]=%f, got %f", i, expected.Component(i), boundary.Component(i))
		}
	}
}

func TestHomogeneous_SampleIsUnbiased(t *testing.T) {
	sigmaA := core.NewVec3(0.1, 0.2, 0.05)
	sigmaS := core.NewVec3(0.8, 0.3, 1.5)
	m := NewHomogeneous(sigmaA, sigmaS)
	d := 2.0
	inside, boundary := channelMeans(m, segment(d), 200000)

	sigmaT := m.SigmaT()
	for i := 0; i < 3; i++ {
		st := sigmaT.Component(i)
		expectedBoundary := math.Exp(-st * d)
		// ∫0^d σs exp(-σt s) ds
		expectedInside := sigmaS.Component(i) / st * (1 - math.Exp(-st*d))

		if math.Abs(boundary.Component(i)-expectedBoundary) > 0.01 {
			t.Errorf("Channel %d: boundary weight %f, expected %f", i, boundary.Component(i), expectedBoundary)
		}
		if math.Abs(inside.Component(i)-expectedInside) > 0.015 {
			t.Errorf("Channel %d: scattered weight %f, expected %f", i, inside.Component(i), expectedInside)
		}
	}
}

func TestHomogeneous_ScatterPointLiesOnSegment(t *testing.T) {
	m := NewHomogeneous(core.Vec3{}, core.NewVec3(1, 1, 1))
	ray := segment(3)
	sampler := core.NewSeededSampler(7)
	for k := 0; k < 1000; k++ {
		_, its := m.Sample(ray, sampler)
		if !its.IsValid() {
			continue
		}
		if its.T <= 0 || its.T >= ray.MaxT {
			t.Fatalf("Scatter parameter %f outside (0, %f)", its.T, ray.MaxT)
		}
		if its.P != ray.At(its.T) {
			t.Fatalf("Scatter point %v does not match ray.At(%f)", its.P, its.T)
		}
		if its.Wi != core.NewVec3(0, 0, -1) {
			t.Fatalf("Expected Wi pointing back along the ray, got %v", its.Wi)
		}
	}
}

func TestHomogeneous_UnboundedRayInVacuumChannel(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(0, 1, 1), core.Vec3{})
	ray := core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0))
	tr := m.Tr(ray)
	if tr != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected Tr (1,0,0) at infinity, got %v", tr)
	}
}

func TestHomogeneous_Emission(t *testing.T) {
	m := NewHomogeneous(core.NewVec3(1, 2, 0), core.Vec3{})
	m.Emit = core.NewVec3(1, 1, 1)
	d := 0.7
	le := m.Le(segment(d))

	expected := core.NewVec3(1-math.Exp(-d), 1-math.Exp(-2*d), 0)
	for i := 0; i < 3; i++ {
		if math.Abs(le.Component(i)-expected.Component(i)) > 1e-12 {
			t.Errorf("Channel %d: expected Le %f, got %f", i, expected.Component(i), le.Component(i))
		}
	}
}

func TestHenyeyGreenstein_MeanCosine(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	wi := core.NewVec3(1, 2, -0.5).Normalize()
	for _, g := range []float64{-0.7, -0.2, 0, 0.4, 0.9} {
		hg := NewHenyeyGreenstein(g)
		const n = 100000
		cosines := make([]float64, n)
		for i := range cosines {
			rec := core.NewPhaseSampleQuery(wi)
			if w := hg.Sample(&rec, core.NewVec2(random.Float64(), random.Float64())); w != 1 {
				t.Fatalf("Expected weight 1, got %f", w)
			}
			if math.Abs(rec.Wo.Length()-1) > 1e-9 {
				t.Fatalf("Sampled direction not normalized: %v", rec.Wo)
			}
			// forward direction is -wi
			cosines[i] = -rec.Wo.Dot(wi)
		}
		mean := stat.Mean(cosines, nil)
		if math.Abs(mean-g) > 0.01 {
			t.Errorf("g=%f: mean cosine %f", g, mean)
		}
	}
}

func TestHenyeyGreenstein_PDFIntegratesToOne(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	wi := core.NewVec3(0, 0, 1)
	for _, g := range []float64{-0.5, 0, 0.3} {
		hg := NewHenyeyGreenstein(g)
		const n = 200000
		values := make([]float64, n)
		for i := range values {
			wo := warp.SquareToUniformSphere(core.NewVec2(random.Float64(), random.Float64()))
			rec := core.PhaseQueryRecord{Wi: wi, Wo: wo, Measure: core.MeasureSolidAngle}
			values[i] = hg.PDF(rec) / warp.SquareToUniformSpherePDF(wo)
		}
		if mean := stat.Mean(values, nil); math.Abs(mean-1) > 0.01 {
			t.Errorf("g=%f: PDF integrates to %f", g, mean)
		}
	}
}
