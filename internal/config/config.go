// Package config handles viewer configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/noise"
)

// Config holds all viewer settings.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Noise      NoiseConfig      `yaml:"noise"`
	Animation  AnimationConfig  `yaml:"animation"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
}

// GenerationConfig holds mesh generation parameters.
type GenerationConfig struct {
	Radius   float32 `yaml:"radius"`
	Segments int     `yaml:"segments"` // Initial build resolution
	// RegenerateSegments is the resolution used by regenerate commands.
	// Zero means Segments.
	RegenerateSegments   int     `yaml:"regenerate_segments"`
	NoiseScale           float32 `yaml:"noise_scale"`
	DisplacementStrength float32 `yaml:"displacement_strength"`
	Workers              int     `yaml:"workers"` // 0 = GOMAXPROCS
}

// NoiseConfig holds noise field settings.
type NoiseConfig struct {
	Kind        string  `yaml:"kind"` // simplex or perlin
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Seed        *int64  `yaml:"seed,omitempty"` // nil = random per generation
}

// AnimationConfig holds the initial animation state.
type AnimationConfig struct {
	RotationSpeed float32 `yaml:"rotation_speed"` // radians per second
	Wireframe     bool    `yaml:"wireframe"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // sample count, 0 disables
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// WatchConfig controls hot reload of the config file.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generation: GenerationConfig{
			Radius:               mesh.DefaultRadius,
			Segments:             64,
			RegenerateSegments:   128,
			NoiseScale:           mesh.DefaultNoiseScale,
			DisplacementStrength: mesh.DefaultDisplacementStrength,
		},
		Noise: NoiseConfig{
			Kind:        string(noise.KindSimplex),
			Octaves:     1,
			Persistence: 0.5,
		},
		Animation: AnimationConfig{
			RotationSpeed: 0.1,
			Wireframe:     false,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
			FPSLimit:   0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 200 * time.Millisecond,
		},
	}
}

// InitialParams returns the parameters for the startup build.
func (c *Config) InitialParams() mesh.Params {
	g := c.Generation
	return mesh.Params{
		Radius:               g.Radius,
		Segments:             g.Segments,
		NoiseScale:           g.NoiseScale,
		DisplacementStrength: g.DisplacementStrength,
		Workers:              g.Workers,
	}
}

// RegenerateParams returns the parameters used by regenerate commands.
func (c *Config) RegenerateParams() mesh.Params {
	p := c.InitialParams()
	if c.Generation.RegenerateSegments > 0 {
		p.Segments = c.Generation.RegenerateSegments
	}
	return p
}

// SamplerConfig converts the noise section for noise.New.
func (c *Config) SamplerConfig() (noise.Config, error) {
	kind, err := noise.ParseKind(c.Noise.Kind)
	if err != nil {
		return noise.Config{}, err
	}
	return noise.Config{
		Kind:        kind,
		Octaves:     c.Noise.Octaves,
		Persistence: c.Noise.Persistence,
		Seed:        c.Noise.Seed,
	}, nil
}
