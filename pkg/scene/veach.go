package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// veachPlate builds a plate centered at center, tilted so it mirrors the point
// light toward eye. The plate spans width along X.
func veachPlate(center, eye, light core.Vec3, width, depth float64) *geometry.Quad {
	n := eye.Subtract(center).Normalize().Add(light.Subtract(center).Normalize()).Normalize()
	// n lies in the YZ plane, so X × (n × X) = n
	a := core.NewVec3(1, 0, 0)
	b := n.Cross(a)

	u := a.Multiply(width)
	v := b.Multiply(depth)
	corner := center.Subtract(u.Multiply(0.5)).Subtract(v.Multiply(0.5))
	return geometry.NewQuad(corner, u, v)
}

// NewVeachScene creates the multiple importance sampling test scene: four
// glossy plates of increasing roughness lit by four spheres of increasing size
// and equal power
func NewVeachScene(aspectRatio float64) (*Scene, error) {
	eye := core.NewVec3(0, 6, 27.5)
	s := New("veach", renderer.CameraConfig{
		Center:      eye,
		LookAt:      core.NewVec3(0, -1.5, 2.5),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        16,
	})

	lightCenter := core.NewVec3(0, 4, -3)
	plates := []struct {
		center core.Vec3
		alpha  float64
	}{
		{core.NewVec3(0, -2.8, 7.2), 0.005},
		{core.NewVec3(0, -2.2, 4.6), 0.02},
		{core.NewVec3(0, -1.5, 2.2), 0.05},
		{core.NewVec3(0, -0.7, 0), 0.1},
	}
	for _, p := range plates {
		plate := veachPlate(p.center, eye, lightCenter, 8, 2)
		s.AddShape(plate, material.NewMicrofacet(p.alpha, core.NewVec3(0.07, 0.09, 0.13)))
	}

	spheres := []struct {
		x, radius float64
		radiance  float64
	}{
		{-3.75, 0.0333, 901.803},
		{-1.25, 0.1, 100},
		{1.25, 0.3, 11.1111},
		{3.75, 0.9, 1.23457},
	}
	black := material.NewDiffuse(core.Vec3{})
	for _, sp := range spheres {
		sphere := geometry.NewSphere(core.NewVec3(sp.x, lightCenter.Y, lightCenter.Z), sp.radius)
		s.AddAreaLight(sphere, black, core.Splat(sp.radiance))
	}

	// Dim fill light so the plates' diffuse part is visible
	fill := geometry.NewQuad(core.NewVec3(-5, 12, 0), core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 10))
	s.AddAreaLight(fill, black, core.NewVec3(0.8, 0.8, 0.8))

	back := geometry.NewQuad(core.NewVec3(-20, -5, -8), core.NewVec3(0, 25, 0), core.NewVec3(40, 0, 0))
	s.AddShape(back, material.NewDiffuse(core.NewVec3(0.4, 0.4, 0.4)))
	return s, nil
}
