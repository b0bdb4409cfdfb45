package core

// Measure identifies the measure a density is expressed in
type Measure int

const (
	MeasureUnknown Measure = iota
	MeasureSolidAngle
	MeasureDiscrete
)

func (m Measure) String() string {
	switch m {
	case MeasureSolidAngle:
		return "solid-angle"
	case MeasureDiscrete:
		return "discrete"
	default:
		return "unknown"
	}
}

// BSDFQueryRecord carries a BSDF query in the local shading frame.
// Wi and Wo both point away from the surface. Sample fills in Wo, Measure and Eta.
type BSDFQueryRecord struct {
	Wi      Vec3
	Wo      Vec3
	UV      Vec2
	Measure Measure
	// Eta is the relative index of refraction of the sampled event, 1 for reflection
	Eta float64
}

// NewBSDFSampleQuery prepares a record for sampling an outgoing direction
func NewBSDFSampleQuery(wi Vec3, uv Vec2) BSDFQueryRecord {
	return BSDFQueryRecord{Wi: wi, UV: uv, Measure: MeasureUnknown, Eta: 1}
}

// NewBSDFQuery prepares a record for evaluating a fixed pair of directions
func NewBSDFQuery(wi, wo Vec3, measure Measure, uv Vec2) BSDFQueryRecord {
	return BSDFQueryRecord{Wi: wi, Wo: wo, UV: uv, Measure: measure, Eta: 1}
}

// EmitterQueryRecord describes a light query from a reference point.
// Wi points from Ref toward the light.
type EmitterQueryRecord struct {
	Ref       Vec3
	P         Vec3
	N         Vec3
	Wi        Vec3
	UV        Vec2
	PDF       float64
	ShadowRay Ray
}

// NewEmitterQuery prepares a record for sampling a light from ref
func NewEmitterQuery(ref Vec3) EmitterQueryRecord {
	return EmitterQueryRecord{Ref: ref}
}

// NewEmitterHitQuery describes a light point p with normal n reached from ref
func NewEmitterHitQuery(ref, p, n Vec3) EmitterQueryRecord {
	rec := EmitterQueryRecord{Ref: ref, P: p, N: n}
	rec.Wi = p.Subtract(ref).Normalize()
	rec.ShadowRay = ShadowRay(ref, p)
	return rec
}

// NewEmitterDirectionQuery describes a query toward an infinitely distant light
func NewEmitterDirectionQuery(ref, wi Vec3) EmitterQueryRecord {
	return EmitterQueryRecord{Ref: ref, Wi: wi.Normalize()}
}

// ShadowRay returns the segment from ref to p trimmed by RayEpsilon at both ends
func ShadowRay(ref, p Vec3) Ray {
	d := p.Subtract(ref)
	dist := d.Length()
	if dist == 0 {
		return NewSegment(ref, Vec3{0, 0, 1}, RayEpsilon, RayEpsilon)
	}
	return NewSegment(ref, d.Multiply(1/dist), RayEpsilon, dist-RayEpsilon)
}

// PhaseQueryRecord carries a phase function query. Directions may be in any
// frame since phase functions are rotation invariant.
type PhaseQueryRecord struct {
	Wi      Vec3
	Wo      Vec3
	Measure Measure
}

// NewPhaseSampleQuery prepares a record for sampling an outgoing direction
func NewPhaseSampleQuery(wi Vec3) PhaseQueryRecord {
	return PhaseQueryRecord{Wi: wi, Measure: MeasureUnknown}
}

// ShapeQueryRecord describes area sampling of a shape surface
type ShapeQueryRecord struct {
	Ref Vec3
	P   Vec3
	N   Vec3
	UV  Vec2
	PDF float64
}
