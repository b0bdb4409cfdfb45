package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-light-transport/pkg/config"
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/loaders"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "YAML render configuration (flags override it)")
	sceneName := flag.String("scene", "", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	integratorName := flag.String("integrator", "", "Integrator: "+strings.Join(integrator.Names(), ", "))
	width := flag.Int("width", 0, "Image width in pixels")
	height := flag.Int("height", 0, "Image height in pixels")
	spp := flag.Int("spp", 0, "Samples per pixel")
	passes := flag.Int("passes", 0, "Progressive passes")
	workers := flag.Int("workers", -1, "Worker goroutines (0 = one per CPU)")
	maxDepth := flag.Int("max-depth", -1, "Maximum path depth (0 = integrator default)")
	envMap := flag.String("envmap", "", "PNG/JPEG environment map replacing the scene environment")
	outputDir := flag.String("output", "", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Light Transport Renderer")
		fmt.Println("Usage: go-light-transport [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to <output>/<scene>/render_<integrator>_<timestamp>.png")
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the configuration file
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *integratorName != "" {
		cfg.Integrator.Type = *integratorName
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *spp > 0 {
		cfg.SamplesPerPixel = *spp
	}
	if *passes > 0 {
		cfg.Passes = *passes
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *maxDepth >= 0 {
		cfg.Integrator.MaxDepth = *maxDepth
	}
	if *envMap != "" {
		cfg.EnvMap = *envMap
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	cfg.Passes = min(cfg.Passes, cfg.SamplesPerPixel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	filename, err := run(ctx, cfg, renderer.NewDefaultLogger())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Render cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// loadConfig returns the defaults when path is empty
func loadConfig(path string) (*config.RenderConfig, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// createScene builds the configured scene, replacing its environment when an
// environment map is configured
func createScene(cfg *config.RenderConfig) (*scene.Scene, error) {
	s, err := scene.Builtin(cfg.Scene, float64(cfg.Width)/float64(cfg.Height))
	if err != nil {
		return nil, err
	}
	if cfg.EnvMap == "" {
		return s, nil
	}

	env, err := loaders.LoadEnvMap(cfg.EnvMap, cfg.EnvScale, core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("loading environment map: %w", err)
	}
	s.SetEnvironment(env)
	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}

// run renders cfg and writes the final pass as PNG, returning its path
func run(ctx context.Context, cfg *config.RenderConfig, logger core.Logger) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	integ, err := integrator.New(cfg.Integrator)
	if err != nil {
		return "", err
	}

	s, err := createScene(cfg)
	if err != nil {
		return "", err
	}
	logger.Printf("Scene %q: %d primitives, %d lights\n", s.Name, s.PrimitiveCount(), len(s.Lights()))

	camera := renderer.NewCamera(s.CameraConfig)
	pr := renderer.NewProgressiveRenderer(s, camera, integ, cfg.Width, cfg.Height,
		renderer.ProgressiveConfigFrom(cfg), logger)

	startTime := time.Now()
	img, stats, err := pr.Render(ctx)
	if err != nil {
		return "", err
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Samples per pixel: %.1f (range %d - %d), average luminance %.4f\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, renderer.CalculateAverageLuminance(img))
	if stats.InvalidSamples > 0 {
		logger.Printf("Warning: %d invalid samples replaced by black\n", stats.InvalidSamples)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(cfg.OutputDir, cfg.Scene,
		fmt.Sprintf("render_%s_%s.png", cfg.Integrator.Type, timestamp))
	if err := renderer.SavePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}
