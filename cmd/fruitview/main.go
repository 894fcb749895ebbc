// Package main is the entry point for the Strange Fruit viewer.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/config"
	"github.com/Faultbox/strangefruit/internal/logger"
	"github.com/Faultbox/strangefruit/internal/viewer"
	"github.com/Faultbox/strangefruit/internal/viewer/sdlview"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, path, err := config.LoadWithPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Strange Fruit ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, path); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config, path string) error {
	sc, err := viewer.NewScene(cfg, logger.Named("scene"))
	if err != nil {
		return err
	}
	ctrl := viewer.NewController(sc, cfg, logger.Named("controller"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch.Enabled {
		if path == "" {
			logger.Warn("watch enabled but no config file in use")
		} else {
			go func() {
				if err := viewer.WatchConfig(ctx, path, cfg.Watch.Debounce, ctrl); err != nil {
					logger.Error("config watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	v, err := sdlview.New(ctrl, sdlview.Options{
		ScreenshotDir: "screenshots",
		Logger:        logger.Named("viewer"),
	})
	if err != nil {
		return err
	}
	defer v.Close()

	return v.Run()
}
