package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

const cornellSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera(aspectRatio float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        40,
	}
}

// addCornellBox adds the five walls and the ceiling light. All wall normals face the interior.
func addCornellBox(s *Scene) {
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	size := cornellSize
	x := core.NewVec3(size, 0, 0)
	y := core.NewVec3(0, size, 0)
	z := core.NewVec3(0, 0, size)

	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), z, x)
	ceiling := geometry.NewQuad(core.NewVec3(0, size, 0), x, z)
	back := geometry.NewQuad(core.NewVec3(0, 0, size), y, x)
	left := geometry.NewQuad(core.NewVec3(size, 0, 0), z, y)
	right := geometry.NewQuad(core.NewVec3(0, 0, 0), y, z)

	s.AddShape(floor, white)
	s.AddShape(ceiling, white)
	s.AddShape(back, white)
	s.AddShape(left, red)
	s.AddShape(right, green)

	// Light sits just below the ceiling facing down
	light := geometry.NewQuad(core.NewVec3(213, size-1, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105))
	s.AddAreaLight(light, material.NewDiffuse(core.NewVec3(0.78, 0.78, 0.78)), core.NewVec3(15, 15, 15))
}

// NewCornellScene creates the Cornell box with a mirror and a glass sphere
func NewCornellScene(aspectRatio float64) (*Scene, error) {
	s := New("cornell", cornellCamera(aspectRatio))
	addCornellBox(s)

	s.AddShape(geometry.NewSphere(core.NewVec3(370, 100, 370), 100), material.NewMirror(core.NewVec3(0.95, 0.95, 0.95)))
	s.AddShape(geometry.NewSphere(core.NewVec3(185, 100, 170), 100), material.NewDielectric(material.DefaultIntIOR))
	return s, nil
}
