package renderer

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/warp"
)

// CameraConfig describes a look-at perspective camera
type CameraConfig struct {
	Center        core.Vec3   // Camera position
	LookAt        core.Vec3   // Point the camera looks at
	Up            core.Vec3   // Up direction
	AspectRatio   float64     // Width / height
	VFov          float64     // Vertical field of view in degrees
	Aperture      float64     // Lens diameter, 0 for a pinhole
	FocusDistance float64     // Distance to the focal plane, 0 means |LookAt-Center|
	Medium        core.Medium // Medium surrounding the camera, nil for vacuum
}

// Camera generates primary rays
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.LookAt.Subtract(config.Center).Length()
	}

	horizontal := u.Multiply(viewportWidth * focus)
	vertical := v.Multiply(viewportHeight * focus)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focus))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
// and t=0 is the bottom of the image. lens is used only with a finite aperture.
func (c *Camera) GetRay(s, t float64, lens core.Vec2) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		d := warp.SquareToUniformDisk(lens).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(d.X)).Add(c.v.Multiply(d.Y))
	}
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin).
		Normalize()

	ray := core.NewRay(origin, direction)
	ray.MinT = 0
	ray.Medium = c.config.Medium
	return ray
}

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
