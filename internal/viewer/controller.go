// Package viewer holds the front-end independent side of the viewers:
// commands, config reload and the initial scene build.
package viewer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/config"
	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/scene"
	"github.com/Faultbox/strangefruit/internal/logger"
)

// Command is a UI action.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdToggleWireframe
	CmdRegenerate
	CmdSpeedUp
	CmdSpeedDown
	CmdScreenshot
	CmdResetCamera
)

var commandNames = map[Command]string{
	CmdNone:            "none",
	CmdQuit:            "quit",
	CmdToggleWireframe: "toggle_wireframe",
	CmdRegenerate:      "regenerate",
	CmdSpeedUp:         "speed_up",
	CmdSpeedDown:       "speed_down",
	CmdScreenshot:      "screenshot",
	CmdResetCamera:     "reset_camera",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Controller turns UI commands and config reloads into scene mutations.
// It is safe for concurrent use; the config watcher and the render loop
// both drive it.
type Controller struct {
	scene *scene.Scene
	cfg   atomic.Pointer[config.Config]
	log   *zap.Logger
}

// NewController wraps sc with the active configuration.
func NewController(sc *scene.Scene, cfg *config.Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{scene: sc, log: log}
	c.cfg.Store(cfg)
	return c
}

// Scene returns the controlled scene.
func (c *Controller) Scene() *scene.Scene {
	return c.scene
}

// Config returns the active configuration.
func (c *Controller) Config() *config.Config {
	return c.cfg.Load()
}

// Apply executes cmd. Commands that only concern the front-end (quit,
// screenshot, camera) are accepted and ignored here.
func (c *Controller) Apply(cmd Command) error {
	switch cmd {
	case CmdToggleWireframe:
		on := c.scene.ToggleWireframe()
		c.log.Debug("wireframe toggled", zap.Bool("wireframe", on))
	case CmdSpeedUp:
		v := c.scene.StepRotationSpeed(scene.RotationStep)
		c.log.Debug("rotation speed", zap.Float32("speed", v))
	case CmdSpeedDown:
		v := c.scene.StepRotationSpeed(-scene.RotationStep)
		c.log.Debug("rotation speed", zap.Float32("speed", v))
	case CmdRegenerate:
		_, err := c.Regenerate()
		return err
	}
	return nil
}

// Regenerate rebuilds the fruit with the configured regenerate parameters.
// A configured seed makes the result reproducible; otherwise every call
// grows a new fruit.
func (c *Controller) Regenerate() (*mesh.Mesh, error) {
	cfg := c.Config()
	params := cfg.RegenerateParams()
	if seed := cfg.Noise.Seed; seed != nil {
		return c.scene.RegenerateSeeded(params, *seed)
	}
	return c.scene.Regenerate(params)
}

// ApplyConfig switches to a reloaded configuration. Animation settings and
// the log level apply immediately; a change to generation or noise
// settings regenerates the fruit.
func (c *Controller) ApplyConfig(cfg *config.Config) error {
	nc, err := cfg.SamplerConfig()
	if err != nil {
		return err
	}

	prev := c.cfg.Swap(cfg)

	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		c.log.Warn("keeping log level", zap.Error(err))
	}
	c.scene.SetRotationSpeed(cfg.Animation.RotationSpeed)
	c.scene.SetWireframe(cfg.Animation.Wireframe)
	c.scene.SetFactory(nc.Factory())

	if prev != nil && prev.Generation == cfg.Generation && sameNoise(prev.Noise, cfg.Noise) {
		c.log.Info("config reloaded")
		return nil
	}

	c.log.Info("config reloaded, regenerating")
	_, err = c.Regenerate()
	return err
}

func sameNoise(a, b config.NoiseConfig) bool {
	if a.Kind != b.Kind || a.Octaves != b.Octaves || a.Persistence != b.Persistence {
		return false
	}
	if a.Seed == nil || b.Seed == nil {
		return a.Seed == b.Seed
	}
	return *a.Seed == *b.Seed
}

// WatchConfig applies every change to the file at path until ctx ends.
func WatchConfig(ctx context.Context, path string, debounce time.Duration, c *Controller) error {
	c.log.Info("watching config", zap.String("path", path))
	return config.Watch(ctx, path, debounce, func(cfg *config.Config, err error) {
		if err != nil {
			c.log.Warn("config reload failed", zap.Error(err))
			return
		}
		if err := c.ApplyConfig(cfg); err != nil {
			c.log.Warn("applying reloaded config failed", zap.Error(err))
		}
	})
}

// NewScene builds the scene described by cfg and publishes the initial fruit
// at the startup resolution.
func NewScene(cfg *config.Config, log *zap.Logger) (*scene.Scene, error) {
	nc, err := cfg.SamplerConfig()
	if err != nil {
		return nil, err
	}

	sc := scene.New(scene.Options{
		Factory:       nc.Factory(),
		RotationSpeed: cfg.Animation.RotationSpeed,
		Wireframe:     cfg.Animation.Wireframe,
		Logger:        log,
	})

	params := cfg.InitialParams()
	if seed := cfg.Noise.Seed; seed != nil {
		_, err = sc.RegenerateSeeded(params, *seed)
	} else {
		_, err = sc.Regenerate(params)
	}
	if err != nil {
		return nil, fmt.Errorf("initial build: %w", err)
	}
	return sc, nil
}
