// Strange Fruit Lab - an ImGui front-end with live controls for the fruit.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/config"
	"github.com/Faultbox/strangefruit/internal/logger"
	"github.com/Faultbox/strangefruit/internal/viewer"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, path, err := config.LoadWithPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sc, err := viewer.NewScene(cfg, logger.Named("scene"))
	if err != nil {
		logger.Error("failed to build fruit", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	ctrl := viewer.NewController(sc, cfg, logger.Named("controller"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch.Enabled && path != "" {
		go func() {
			if err := viewer.WatchConfig(ctx, path, cfg.Watch.Debounce, ctrl); err != nil {
				logger.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}

	app, err := NewApp(ctrl, logger.Named("lab"))
	if err != nil {
		logger.Error("failed to start lab", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}
