package renderer

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
	InvalidSamples int     // NaN or infinite samples replaced by black
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum    core.Vec3 // RGB accumulator for final result
	LuminanceMean float64   // Running mean of sample luminance
	LuminanceM2   float64   // Running sum of squared deviations from the mean
	SampleCount   int
	InvalidCount  int
}

// AddSample adds a new color sample to the pixel statistics. Invalid
// samples count as black so a single bad path cannot poison the pixel.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if !color.IsValid() {
		color = core.Vec3{}
		ps.InvalidCount++
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++

	// Welford update
	luminance := color.Luminance()
	delta := luminance - ps.LuminanceMean
	ps.LuminanceMean += delta / float64(ps.SampleCount)
	ps.LuminanceM2 += delta * (luminance - ps.LuminanceMean)
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// StandardError returns the standard error of the mean luminance
func (ps *PixelStats) StandardError() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	variance := ps.LuminanceM2 / (n - 1)
	return math.Sqrt(variance / n)
}
