package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// NewSpotScene creates a floor and gradient back wall lit only by a spot light and a
// point light. A checker cutout sphere shows partial transparency.
func NewSpotScene(aspectRatio float64) (*Scene, error) {
	s := New("spot", renderer.CameraConfig{
		Center:      core.NewVec3(0, 2.5, 9),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        40,
	})

	grey := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6))
	floor := geometry.NewQuad(core.NewVec3(-10, 0, -10), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0))
	back := geometry.NewQuad(core.NewVec3(-10, 0, -3), core.NewVec3(0, 10, 0), core.NewVec3(20, 0, 0))
	s.AddShape(floor, grey)
	s.AddShape(back, material.NewTexturedDiffuse(
		material.NewGradientTexture(1, 64, core.NewVec3(0.3, 0.4, 0.6), core.NewVec3(0.7, 0.7, 0.7))))

	// Parameterization preview on the left sphere
	s.AddShape(geometry.NewSphere(core.NewVec3(-1.8, 0.7, 0), 0.7), material.NewTexturedDiffuse(material.UVTexture{}))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0.7, 0.5), 0.7), material.NewMicrofacet(0.1, core.NewVec3(0.1, 0.3, 0.6)))

	// Opaque white checks over transparent ones
	cutout := material.NewNull()
	if err := cutout.SetAlbedo(material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9))); err != nil {
		return nil, err
	}
	if err := cutout.SetAlphaMap(material.ChannelSource{
		Source: material.NewCheckerTexture(core.NewVec3(1, 1, 1), core.Vec3{}, 8),
	}); err != nil {
		return nil, err
	}
	s.AddShape(geometry.NewSphere(core.NewVec3(1.8, 0.7, 0), 0.7), cutout)

	s.AddLight(lights.NewSpotLight(core.NewVec3(0, 6, 3), core.NewVec3(0, 0, 0), core.Splat(60),
		lights.DefaultSpotThetaMax, lights.DefaultSpotThetaFall))
	s.AddLight(lights.NewPointLight(core.NewVec3(-3, 4, 4), core.Splat(150)))
	return s, nil
}
