// Package sdlview is the SDL2 front-end: key bindings and the render loop.
package sdlview

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/engine/camera"
	"github.com/Faultbox/strangefruit/internal/engine/debug"
	"github.com/Faultbox/strangefruit/internal/engine/framebuffer"
	"github.com/Faultbox/strangefruit/internal/engine/input"
	"github.com/Faultbox/strangefruit/internal/engine/renderer"
	"github.com/Faultbox/strangefruit/internal/engine/window"
	"github.com/Faultbox/strangefruit/internal/viewer"
)

const windowTitle = "Strange Fruit"

// Options configures the SDL viewer.
type Options struct {
	ScreenshotDir string
	Logger        *zap.Logger
}

// Viewer is the SDL2 window that shows the rotating fruit.
type Viewer struct {
	ctrl     *viewer.Controller
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture

	width, height int
}

// New opens the window and GPU resources for ctrl's scene.
func New(ctrl *viewer.Controller, opts Options) (*Viewer, error) {
	cfg := ctrl.Config().Graphics

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	v := &Viewer{
		ctrl:   ctrl,
		log:    log,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshotCapture(opts.ScreenshotDir, "fruit"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
		Samples:    cfg.MSAA,
		Logger:     log.Named("window"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created
	v.width, v.height = v.window.DrawableSize()
	rcfg := renderer.DefaultConfig(v.width, v.height)
	rcfg.Logger = log.Named("renderer")
	v.renderer, err = renderer.New(rcfg)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Resize(v.width, v.height)

	return v, nil
}

// Run drives the loop until the window closes or quit is pressed.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		snap := v.ctrl.Scene().Snapshot()
		aspect := v.renderer.Aspect()

		v.renderer.Begin()
		v.renderer.Draw(renderer.Frame{
			Snapshot: snap,
			Model:    snap.ModelMatrix(now.Sub(start)),
			View:     v.camera.ViewMatrix(),
			Proj:     v.camera.ProjectionMatrix(aspect),
			Eye:      v.camera.Position(),
		})

		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot(snap.Seed)
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Uint64("generation", snap.Generation))
			if v.ctrl.Config().Graphics.ShowFPS {
				v.window.SetTitle(window.Title(windowTitle, window.Status{
					FPS:       frameCount,
					Seed:      snap.Seed,
					Wireframe: snap.Wireframe,
				}))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		v.limitFrame(now)
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.width, v.height = v.window.DrawableSize()
			v.renderer.Resize(v.width, v.height)

		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			if event.Key == sdl.SCANCODE_F11 {
				if err := v.window.ToggleFullscreen(); err != nil {
					v.log.Warn("fullscreen toggle failed", zap.Error(err))
				}
				continue
			}
			v.dispatch(CommandForKey(event.Key))

		case input.EventMouseMove:
			if v.input.IsButtonDown(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)
		}
	}
}

func (v *Viewer) dispatch(cmd viewer.Command) {
	switch cmd {
	case viewer.CmdNone, viewer.CmdScreenshot:
		// Screenshots are taken after the frame is drawn
	case viewer.CmdQuit:
		v.running = false
	case viewer.CmdResetCamera:
		v.camera.Reset()
	default:
		if err := v.ctrl.Apply(cmd); err != nil {
			v.log.Warn("command failed", zap.Stringer("command", cmd), zap.Error(err))
		}
	}
}

func (v *Viewer) screenshot(seed int64) {
	img := framebuffer.ReadBackbuffer(v.width, v.height)
	path, err := v.shots.Capture(img, seed)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) limitFrame(frameStart time.Time) {
	limit := v.ctrl.Config().Graphics.FPSLimit
	if limit <= 0 {
		return
	}
	budget := time.Second / time.Duration(limit)
	if spent := time.Since(frameStart); spent < budget {
		time.Sleep(budget - spent)
	}
}

// Close releases GPU and window resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// CommandForKey maps a key to its command.
func CommandForKey(key sdl.Scancode) viewer.Command {
	switch key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		return viewer.CmdQuit
	case sdl.SCANCODE_W:
		return viewer.CmdToggleWireframe
	case sdl.SCANCODE_R, sdl.SCANCODE_SPACE:
		return viewer.CmdRegenerate
	case sdl.SCANCODE_UP, sdl.SCANCODE_KP_PLUS, sdl.SCANCODE_EQUALS:
		return viewer.CmdSpeedUp
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_KP_MINUS, sdl.SCANCODE_MINUS:
		return viewer.CmdSpeedDown
	case sdl.SCANCODE_F12:
		return viewer.CmdScreenshot
	case sdl.SCANCODE_HOME, sdl.SCANCODE_C:
		return viewer.CmdResetCamera
	default:
		return viewer.CmdNone
	}
}
