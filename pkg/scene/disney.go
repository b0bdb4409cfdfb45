package scene

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
)

// Procedural sky resolution
const (
	skyWidth  = 128
	skyHeight = 64
)

// NewSkyPixels returns an equirectangular sky: a zenith-to-horizon gradient,
// a dim ground below the horizon and a small bright sun. Row 0 is the zenith.
func NewSkyPixels(width, height int) []core.Vec3 {
	zenith := core.NewVec3(0.25, 0.45, 0.9)
	horizon := core.NewVec3(0.9, 0.9, 0.95)
	ground := core.NewVec3(0.15, 0.13, 0.1)
	sun := core.NewVec3(60, 56, 50)

	sunTheta, sunPhi := 55*math.Pi/180, 1.0
	sunDir := core.SphericalDirection(math.Sin(sunTheta), math.Cos(sunTheta), sunPhi,
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1))
	cosSun := math.Cos(4 * math.Pi / 180)

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		theta := (float64(y) + 0.5) / float64(height) * math.Pi
		for x := 0; x < width; x++ {
			phi := (float64(x) + 0.5) / float64(width) * 2 * math.Pi
			c := ground
			if theta < math.Pi/2 {
				c = horizon.Lerp(zenith, math.Cos(theta))
			}
			dir := core.SphericalDirection(math.Sin(theta), math.Cos(theta), phi,
				core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1))
			if dir.Dot(sunDir) > cosSun {
				c = sun
			}
			pixels[y*width+x] = c
		}
	}
	return pixels
}

// NewDisneyScene creates a row of Disney spheres on a checkered floor lit by a sky
func NewDisneyScene(aspectRatio float64) (*Scene, error) {
	s := New("disney", renderer.CameraConfig{
		Center:      core.NewVec3(0, 3, 11),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        35,
	})

	checker := material.NewCheckerTexture(core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0.2, 0.2, 0.2), 20)
	floor := geometry.NewQuad(core.NewVec3(-20, 0, -20), core.NewVec3(0, 0, 40), core.NewVec3(40, 0, 0))
	s.AddShape(floor, material.NewTexturedDiffuse(checker))

	variants := []func(p *material.DisneyParams){
		func(p *material.DisneyParams) { // rough dielectric base with subsurface
			p.BaseColor = core.NewVec3(0.8, 0.3, 0.2)
			p.Roughness = 0.8
			p.Subsurface = 0.7
		},
		func(p *material.DisneyParams) { // glossy plastic
			p.BaseColor = core.NewVec3(0.2, 0.5, 0.8)
			p.Roughness = 0.2
			p.Clearcoat = 1
			p.ClearcoatGloss = 0.9
		},
		func(p *material.DisneyParams) { // brushed metal
			p.BaseColor = core.NewVec3(0.95, 0.75, 0.4)
			p.Metallic = 1
			p.Roughness = 0.35
			p.Anisotropic = 0.8
		},
		func(p *material.DisneyParams) { // velvet
			p.BaseColor = core.NewVec3(0.5, 0.1, 0.4)
			p.Roughness = 0.9
			p.Sheen = 1
			p.SheenTint = 0.5
		},
		func(p *material.DisneyParams) { // polished metal
			p.BaseColor = core.NewVec3(0.9, 0.9, 0.9)
			p.Metallic = 1
			p.Roughness = 0.05
		},
	}
	for i, apply := range variants {
		params := material.DefaultDisneyParams()
		apply(&params)
		x := -4 + 2*float64(i)
		s.AddShape(geometry.NewSphere(core.NewVec3(x, 0.8, 0), 0.8), material.NewDisney(params))
	}

	s.SetEnvironment(lights.NewEnvMapLight(skyWidth, skyHeight, NewSkyPixels(skyWidth, skyHeight), 1, core.NewVec3(0, 1, 0)))
	return s, nil
}
