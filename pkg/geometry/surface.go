package geometry

import (
	"github.com/df07/go-light-transport/pkg/core"
)

// Surface holds the attachments every shape may carry. Shapes embed it.
type Surface struct {
	bsdf    core.BSDF
	emitter core.Emitter
	medium  core.Medium
}

// BSDF returns the surface scattering model
func (s *Surface) BSDF() core.BSDF {
	return s.bsdf
}

// Emitter returns the attached light, or nil
func (s *Surface) Emitter() core.Emitter {
	return s.emitter
}

// Medium returns the medium filling the shape's interior, or nil
func (s *Surface) Medium() core.Medium {
	return s.medium
}

// SetBSDF attaches a scattering model
func (s *Surface) SetBSDF(bsdf core.BSDF) {
	s.bsdf = bsdf
}

// SetEmitter attaches a light
func (s *Surface) SetEmitter(emitter core.Emitter) {
	s.emitter = emitter
}

// SetMedium attaches an interior medium
func (s *Surface) SetMedium(medium core.Medium) {
	s.medium = medium
}
