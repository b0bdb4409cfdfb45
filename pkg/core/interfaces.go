package core

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// BSDF is a surface scattering model evaluated in the local shading frame
type BSDF interface {
	// Eval returns the BSDF value for the pair (Wi, Wo)
	Eval(rec BSDFQueryRecord) Vec3
	// Sample draws Wo and returns eval*cos/pdf, or zero on failure
	Sample(rec *BSDFQueryRecord, u Vec2) Vec3
	// PDF returns the density of Sample producing Wo
	PDF(rec BSDFQueryRecord) float64
	// IsDiffuse reports whether the model is a photon-storing surface
	IsDiffuse() bool
}

// PassThrough is implemented by surfaces that let rays continue straight
// through them, scaled by Transmission. Integrators skip such surfaces
// instead of treating them as scattering vertices.
type PassThrough interface {
	Transmission(uv Vec2) Vec3
}

// Emitter is a light source
type Emitter interface {
	Eval(rec EmitterQueryRecord) Vec3
	// Sample fills in P, N, Wi, PDF and ShadowRay and returns eval/pdf
	Sample(rec *EmitterQueryRecord, u Vec2) Vec3
	// PDF is the solid-angle density of Sample; zero for delta lights
	PDF(rec EmitterQueryRecord) float64
	IsDelta() bool
}

// PhotonEmitter is implemented by lights that can start photon paths
type PhotonEmitter interface {
	// SamplePhoton returns a ray leaving the light and the power it carries
	SamplePhoton(u1, u2 Vec2) (Ray, Vec3)
}

// PhaseFunction describes scattering within a medium
type PhaseFunction interface {
	// Sample draws Wo and returns the sampling weight
	Sample(rec *PhaseQueryRecord, u Vec2) float64
	// PDF returns the phase function value, which is also its sampling density
	PDF(rec PhaseQueryRecord) float64
}

// Medium is a participating medium filling the interior of a shape
type Medium interface {
	// Tr returns the transmittance along the ray's interval
	Tr(ray Ray) Vec3
	// Le returns the emission accumulated along the ray's interval
	Le(ray Ray) Vec3
	// Sample draws a free-flight distance along the ray. The returned
	// interaction is valid only when scattering happened before MaxT.
	Sample(ray Ray, sampler Sampler) (Vec3, Interaction)
}

// Shape is a geometric primitive with optional attachments
type Shape interface {
	// Hit reports the nearest intersection within the ray's interval
	Hit(ray Ray) (Intersection, bool)
	BoundingBox() AABB
	// SampleSurface samples a point uniformly by area
	SampleSurface(rec *ShapeQueryRecord, u Vec2)
	// PDFSurface returns the area density of SampleSurface
	PDFSurface(rec ShapeQueryRecord) float64

	BSDF() BSDF
	Emitter() Emitter
	Medium() Medium
}

// Scene is the view of a scene the integrators consume
type Scene interface {
	// RayIntersect finds the nearest hit along the ray
	RayIntersect(ray Ray) (Intersection, bool)
	// Occluded reports whether anything blocks the ray's interval
	Occluded(ray Ray) bool
	Lights() []Emitter
	// RandomEmitter picks a light uniformly
	RandomEmitter(u float64) Emitter
	// Environment returns the environment light or nil
	Environment() Emitter
	BoundingBox() AABB
}
