package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
)

// ErrDuplicateTexture is returned when a texture slot is bound twice
var ErrDuplicateTexture = errors.New("texture slot already bound")

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at the given surface UV
	Evaluate(uv core.Vec2) core.Vec3
}

// FloatSource provides spatially-varying scalar parameters (roughness, alpha, ...)
type FloatSource interface {
	EvaluateFloat(uv core.Vec2) float64
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV
func (s *SolidColor) Evaluate(uv core.Vec2) core.Vec3 {
	return s.Color
}

// ConstantFloat is a FloatSource with a single value
type ConstantFloat float64

// EvaluateFloat returns the constant
func (c ConstantFloat) EvaluateFloat(uv core.Vec2) float64 {
	return float64(c)
}

// ChannelSource reads one channel (0=R, 1=G, 2=B) of a color texture as a scalar map
type ChannelSource struct {
	Source  ColorSource
	Channel int
}

// EvaluateFloat returns the selected channel
func (c ChannelSource) EvaluateFloat(uv core.Vec2) float64 {
	return c.Source.Evaluate(uv).Component(c.Channel)
}

// bindColor stores tex in slot unless the slot is already taken
func bindColor(slot *ColorSource, name string, tex ColorSource) error {
	if *slot != nil {
		return fmt.Errorf("%s: %w", name, ErrDuplicateTexture)
	}
	*slot = tex
	return nil
}

// bindFloat stores tex in slot unless the slot is already taken
func bindFloat(slot *FloatSource, name string, tex FloatSource) error {
	if *slot != nil {
		return fmt.Errorf("%s: %w", name, ErrDuplicateTexture)
	}
	*slot = tex
	return nil
}
