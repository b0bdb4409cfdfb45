package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// ErrMissingBSDF is returned when a shape has no scattering model attached
var ErrMissingBSDF = errors.New("shape has no BSDF")

// Object is a shape that accepts attachments
type Object interface {
	core.Shape
	SetBSDF(bsdf core.BSDF)
	SetEmitter(emitter core.Emitter)
	SetMedium(medium core.Medium)
}

// shapeAttacher is implemented by emitters bound to the shape they live on
type shapeAttacher interface {
	SetShape(shape core.Shape)
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	Shapes       []core.Shape // Objects in the scene

	deltaLights []core.Emitter // Lights without geometry (point, spot)
	environment core.Emitter
	emitters    []core.Emitter
	bvh         *core.BVH
}

// New creates an empty scene
func New(name string, camera renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: camera,
	}
}

// AddShape adds a shape with its scattering model
func (s *Scene) AddShape(shape Object, bsdf core.BSDF) Object {
	shape.SetBSDF(bsdf)
	s.Shapes = append(s.Shapes, shape)
	return shape
}

// AddAreaLight adds an emissive shape. The shape keeps bsdf for reflection.
func (s *Scene) AddAreaLight(shape Object, bsdf core.BSDF, radiance core.Vec3) *lights.AreaLight {
	light := lights.NewAreaLight(radiance)
	shape.SetEmitter(light)
	s.AddShape(shape, bsdf)
	return light
}

// AddMedium adds a shape whose interior is filled by medium. The boundary
// uses bsdf, usually a null or dielectric interface.
func (s *Scene) AddMedium(shape Object, bsdf core.BSDF, medium core.Medium) Object {
	shape.SetMedium(medium)
	return s.AddShape(shape, bsdf)
}

// AddLight adds a light without geometry
func (s *Scene) AddLight(light core.Emitter) {
	s.deltaLights = append(s.deltaLights, light)
}

// SetEnvironment sets the light seen by rays that leave the scene
func (s *Scene) SetEnvironment(env core.Emitter) {
	s.environment = env
}

// Preprocess validates attachments, binds area lights to their shapes and
// builds the acceleration structure
func (s *Scene) Preprocess() error {
	s.emitters = s.emitters[:0]
	for i, shape := range s.Shapes {
		if shape.BSDF() == nil {
			return fmt.Errorf("scene %q shape %d: %w", s.Name, i, ErrMissingBSDF)
		}
		if emitter := shape.Emitter(); emitter != nil {
			if attacher, ok := emitter.(shapeAttacher); ok {
				attacher.SetShape(shape)
			}
			s.emitters = append(s.emitters, emitter)
		}
	}
	s.emitters = append(s.emitters, s.deltaLights...)
	if s.environment != nil {
		s.emitters = append(s.emitters, s.environment)
	}

	s.bvh = core.NewBVH(s.Shapes)
	return nil
}

// RayIntersect finds the nearest hit along the ray
func (s *Scene) RayIntersect(ray core.Ray) (core.Intersection, bool) {
	return s.bvh.Hit(ray)
}

// Occluded reports whether anything blocks the ray's interval
func (s *Scene) Occluded(ray core.Ray) bool {
	return s.bvh.Occluded(ray)
}

// Lights returns every emitter including the environment
func (s *Scene) Lights() []core.Emitter {
	return s.emitters
}

// RandomEmitter picks an emitter uniformly
func (s *Scene) RandomEmitter(u float64) core.Emitter {
	n := len(s.emitters)
	if n == 0 {
		return nil
	}
	return s.emitters[min(int(u*float64(n)), n-1)]
}

// Environment returns the environment light or nil
func (s *Scene) Environment() core.Emitter {
	return s.environment
}

// BoundingBox returns the bounds of all shapes
func (s *Scene) BoundingBox() core.AABB {
	return s.bvh.BoundingBox()
}

// PrimitiveCount returns the number of shapes
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes)
}
