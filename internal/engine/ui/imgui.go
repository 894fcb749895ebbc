// Package ui provides the ImGui backend and widgets used by the lab viewer.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds backend window settings.
type Config struct {
	Title  string
	Width  int
	Height int
	// FontPath optionally replaces the built-in ImGui font.
	FontPath string
	FontSize float32
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	config  Config
}

// NewBackend creates the window, the ImGui context and loads GL.
func NewBackend(cfg Config) (*Backend, error) {
	b := &Backend{config: cfg}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added before the first frame
	b.backend.SetAfterCreateContextHook(b.loadFont)

	b.backend.SetBgColor(imgui.NewVec4(0.05, 0.05, 0.08, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

func (b *Backend) loadFont() {
	path := b.config.FontPath
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	size := b.config.FontSize
	if size <= 0 {
		size = 16
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, size, fontCfg, nil)
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// FramebufferScale returns the ratio of drawable pixels to logical pixels.
func FramebufferScale() float32 {
	return imgui.CurrentIO().DisplayFramebufferScale().X
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// FitAspect returns the largest size with the given aspect ratio that fits
// in availW x availH.
func FitAspect(availW, availH, aspect float32) (w, h float32) {
	if availW <= 0 || availH <= 0 || aspect <= 0 {
		return 0, 0
	}
	w, h = availW, availW/aspect
	if h > availH {
		h = availH
		w = h * aspect
	}
	return math32.Floor(w), math32.Floor(h)
}
