package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         *core.RandomSampler
}

// NewTile creates a tile whose random stream depends only on seed and id, so
// results do not depend on which worker renders it
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewRandomSampler(rand.New(rand.NewSource(seed + int64(id)))),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer evaluates camera samples for the pixels of a tile
type TileRenderer struct {
	scene         core.Scene
	camera        *Camera
	integrator    integrator.Integrator
	width, height int
}

// NewTileRenderer creates a tile renderer for an image of the given size
func NewTileRenderer(scene core.Scene, camera *Camera, integ integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     camera,
		integrator: integ,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds brings every pixel within bounds up to targetSamples
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.samplePixel(i, j, &pixelStats[j][i], sampler, targetSamples)
			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// samplePixel adds jittered camera samples to pixel (i, j) until it holds
// maxSamples. Image row 0 is the top of the frame.
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler, maxSamples int) int {
	initialSampleCount := ps.SampleCount

	for ps.SampleCount < maxSamples {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(tr.width)
		t := (float64(tr.height-1-j) + jitter.Y) / float64(tr.height)
		ray := tr.camera.GetRay(s, t, sampler.Get2D())
		ps.AddSample(tr.integrator.Li(tr.scene, sampler, ray))
	}

	return ps.SampleCount - initialSampleCount
}
