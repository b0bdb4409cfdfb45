package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/medium"
)

// NewFogScene creates a Cornell box holding a ball of scattering fog behind
// an invisible boundary, with a glass sphere beside it
func NewFogScene(aspectRatio float64) (*Scene, error) {
	s := New("fog", cornellCamera(aspectRatio))
	addCornellBox(s)

	fog := medium.NewHomogeneousWithPhase(
		core.NewVec3(0.001, 0.001, 0.001),
		core.NewVec3(0.008, 0.009, 0.01),
		medium.NewHenyeyGreenstein(0.3),
	)
	s.AddMedium(geometry.NewSphere(core.NewVec3(330, 200, 320), 160), material.NewNull(), fog)

	s.AddShape(geometry.NewSphere(core.NewVec3(130, 80, 150), 80), material.NewDielectric(material.DefaultIntIOR))
	return s, nil
}
