package config

import (
	"fmt"

	"go.uber.org/multierr"
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error

	if err := c.InitialParams().Validate(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("generation: %w", err))
	}
	if rs := c.Generation.RegenerateSegments; rs != 0 {
		if err := c.RegenerateParams().Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("generation.regenerate_segments: %w", err))
		}
	}

	if _, err := c.SamplerConfig(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("noise.kind: %w", err))
	}
	if c.Noise.Octaves < 1 {
		errs = multierr.Append(errs, fmt.Errorf("noise.octaves must be at least 1, got %d", c.Noise.Octaves))
	}
	if c.Noise.Octaves > 1 && c.Noise.Persistence <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("noise.persistence must be positive, got %v", c.Noise.Persistence))
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("graphics: window size must be positive, got %dx%d",
			c.Graphics.Width, c.Graphics.Height))
	}
	if m := c.Graphics.MSAA; m < 0 || m > 16 || m&(m-1) != 0 {
		errs = multierr.Append(errs, fmt.Errorf("graphics.msaa must be 0 or a power of two up to 16, got %d", m))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("graphics.fps_limit must not be negative, got %d", c.Graphics.FPSLimit))
	}

	if !validLevels[c.Logging.Level] {
		errs = multierr.Append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	if c.Watch.Debounce < 0 {
		errs = multierr.Append(errs, fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce))
	}

	return errs
}
