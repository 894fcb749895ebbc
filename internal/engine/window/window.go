// Package window opens the SDL2 window and OpenGL 4.1 core context the fruit
// viewer draws into.
package window

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Samples is the MSAA sample count; 0 disables multisampling.
	Samples int
	Logger  *zap.Logger
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config     Config
	log        *zap.Logger
	sdlWindow  *sdl.Window
	glContext  sdl.GLContext
	samples    int
	fullscreen bool
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

// contextAttributes lists the GL attributes for a context with the given
// MSAA sample count.
func contextAttributes(samples int) []glAttribute {
	attrs := []glAttribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	buffers := 0
	if samples > 0 {
		buffers = 1
	} else {
		samples = 0
	}
	return append(attrs,
		glAttribute{sdl.GL_MULTISAMPLEBUFFERS, buffers},
		glAttribute{sdl.GL_MULTISAMPLESAMPLES, samples},
	)
}

// sampleFallbacks returns the sample counts to try, highest first, ending
// with 0.
func sampleFallbacks(samples int) []int {
	var out []int
	for s := samples; s > 1; s /= 2 {
		out = append(out, s)
	}
	return append(out, 0)
}

// swapIntervals returns the swap intervals to try in order. Adaptive vsync
// (-1) is not supported by every driver.
func swapIntervals(vsync bool) []int {
	if vsync {
		return []int{-1, 1}
	}
	return []int{0}
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:     cfg,
		log:        cfg.Logger,
		fullscreen: cfg.Fullscreen,
	}
	if w.log == nil {
		w.log = zap.NewNop()
	}

	w.log.Debug("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	// Drivers without MSAA reject the window, so step the sample count down
	var err error
	for _, samples := range sampleFallbacks(cfg.Samples) {
		if err = w.open(flags, samples); err == nil {
			w.samples = samples
			break
		}
		w.log.Warn("window creation failed", zap.Int("samples", samples), zap.Error(err))
	}
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	w.setSwapInterval(cfg.VSync)

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", w.samples),
	)

	return w, nil
}

// open sets the context attributes and creates the window and its context.
func (w *Window) open(flags uint32, samples int) error {
	for _, a := range contextAttributes(samples) {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return fmt.Errorf("SDL_GL_SetAttribute(%d) failed: %w", a.attr, err)
		}
	}

	win, err := sdl.CreateWindow(
		w.config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(w.config.Width),
		int32(w.config.Height),
		flags,
	)
	if err != nil {
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	w.sdlWindow, w.glContext = win, ctx
	return nil
}

func (w *Window) setSwapInterval(vsync bool) {
	for _, interval := range swapIntervals(vsync) {
		err := sdl.GLSetSwapInterval(interval)
		if err == nil {
			w.log.Debug("swap interval set", zap.Int("interval", interval))
			return
		}
		w.log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Debug("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// Samples reports the MSAA sample count the context was created with.
func (w *Window) Samples() int {
	return w.samples
}

// ToggleFullscreen switches between windowed and desktop fullscreen.
func (w *Window) ToggleFullscreen() error {
	var flags uint32
	if !w.fullscreen {
		flags = uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	if err := w.sdlWindow.SetFullscreen(flags); err != nil {
		return fmt.Errorf("SDL_SetWindowFullscreen failed: %w", err)
	}
	w.fullscreen = !w.fullscreen
	w.log.Debug("fullscreen toggled", zap.Bool("fullscreen", w.fullscreen))
	return nil
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Status is what the title bar reports about the running viewer.
type Status struct {
	FPS       int
	Seed      int64
	Wireframe bool
}

// Title formats base with the viewer status, e.g.
// "Strange Fruit - 60 fps - seed 42 - wireframe".
func Title(base string, st Status) string {
	parts := []string{base, fmt.Sprintf("%d fps", st.FPS), fmt.Sprintf("seed %d", st.Seed)}
	if st.Wireframe {
		parts = append(parts, "wireframe")
	}
	return strings.Join(parts, " - ")
}
