package core

// Intersection records a ray hit. Lifetime is a single query.
type Intersection struct {
	P        Vec3
	T        float64
	UV       Vec2
	ShFrame  Frame // shading frame
	GeoFrame Frame // geometric frame
	Shape    Shape
}

// ToLocal converts a world vector into the shading frame
func (its *Intersection) ToLocal(v Vec3) Vec3 {
	return its.ShFrame.ToLocal(v)
}

// ToWorld converts a shading-frame vector into world space
func (its *Intersection) ToWorld(v Vec3) Vec3 {
	return its.ShFrame.ToWorld(v)
}

// Interaction is a scattering event inside a participating medium.
// Wi points back along the incoming ray.
type Interaction struct {
	Intersection
	Wi    Vec3
	Phase PhaseFunction
}

// IsValid reports whether the interaction scattered inside the medium
// before the ray reached its end
func (it Interaction) IsValid() bool {
	return it.Phase != nil
}
