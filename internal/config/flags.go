package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSeed      = flag.String("seed", "", "Fixed noise seed (reproducible fruit)")
	flagSegments  = flag.Int("segments", 0, "Sphere segments for the initial build")
	flagWireframe = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagNoise     = flag.String("noise", "", "Noise kind: simplex or perlin")
	flagWatch     = flag.Bool("watch", false, "Reload config file on change")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", *flagSeed, err)
		}
		cfg.Noise.Seed = &seed
	}
	if *flagSegments > 0 {
		cfg.Generation.Segments = *flagSegments
	}
	if *flagWireframe {
		cfg.Animation.Wireframe = true
	}
	if *flagNoise != "" {
		cfg.Noise.Kind = *flagNoise
	}
	if *flagWatch {
		cfg.Watch.Enabled = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	return nil
}
