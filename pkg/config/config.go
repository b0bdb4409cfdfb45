package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// RenderConfig is the top-level render configuration
type RenderConfig struct {
	Scene           string           `yaml:"scene"`
	Width           int              `yaml:"width"`
	Height          int              `yaml:"height"`
	SamplesPerPixel int              `yaml:"samples_per_pixel"`
	Passes          int              `yaml:"passes"`    // progressive passes, samples are split between them
	TileSize        int              `yaml:"tile_size"` // tile edge in pixels
	Workers         int              `yaml:"workers"`   // 0 means one per CPU
	OutputDir       string           `yaml:"output_dir"`
	Seed            int64            `yaml:"seed"`
	EnvMap          string           `yaml:"env_map"`   // optional image replacing the scene environment
	EnvScale        float64          `yaml:"env_scale"` // radiance multiplier for EnvMap
	Integrator      IntegratorConfig `yaml:"integrator"`
}

// IntegratorConfig selects and parameterizes the light transport algorithm
type IntegratorConfig struct {
	Type         string  `yaml:"type"`
	MaxDepth     int     `yaml:"max_depth"`     // 0 means the integrator default
	RRDepth      int     `yaml:"rr_depth"`      // bounces before Russian roulette starts
	PhotonCount  int     `yaml:"photon_count"`  // photons stored by the photon mapper
	PhotonRadius float64 `yaml:"photon_radius"` // 0 means bounding box diagonal / 500
	AVLength     float64 `yaml:"av_length"`     // visibility ray length for the av integrator
}

// DefaultConfig returns the default render configuration
func DefaultConfig() *RenderConfig {
	return &RenderConfig{
		Scene:           "cornell",
		Width:           400,
		Height:          400,
		SamplesPerPixel: 64,
		Passes:          4,
		TileSize:        32,
		Workers:         0,
		OutputDir:       "output",
		Seed:            42,
		EnvScale:        1,
		Integrator:      DefaultIntegratorConfig("path_mis"),
	}
}

// DefaultIntegratorConfig returns default parameters for the named integrator
func DefaultIntegratorConfig(name string) IntegratorConfig {
	return IntegratorConfig{
		Type:        name,
		RRDepth:     3,
		PhotonCount: 1000000,
		AVLength:    10,
	}
}

// LoadConfig reads a YAML file over the defaults. On error the defaults are
// returned along with it.
func LoadConfig(filePath string) (*RenderConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(config *RenderConfig, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks value ranges. Integrator and scene names are checked by
// their registries.
func (c *RenderConfig) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene name is empty", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples_per_pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.Passes <= 0 || c.Passes > c.SamplesPerPixel:
		return fmt.Errorf("%w: passes must be in [1, %d], got %d", ErrInvalidConfig, c.SamplesPerPixel, c.Passes)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.EnvMap != "" && c.EnvScale <= 0:
		return fmt.Errorf("%w: env_scale must be positive, got %v", ErrInvalidConfig, c.EnvScale)
	}
	return c.Integrator.Validate()
}

// Validate checks the integrator parameter ranges
func (c IntegratorConfig) Validate() error {
	switch {
	case c.Type == "":
		return fmt.Errorf("%w: integrator type is empty", ErrInvalidConfig)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.RRDepth < 0:
		return fmt.Errorf("%w: rr_depth must not be negative, got %d", ErrInvalidConfig, c.RRDepth)
	case c.PhotonCount <= 0:
		return fmt.Errorf("%w: photon_count must be positive, got %d", ErrInvalidConfig, c.PhotonCount)
	case c.PhotonRadius < 0:
		return fmt.Errorf("%w: photon_radius must not be negative, got %v", ErrInvalidConfig, c.PhotonRadius)
	case c.AVLength <= 0:
		return fmt.Errorf("%w: av_length must be positive, got %v", ErrInvalidConfig, c.AVLength)
	}
	return nil
}
