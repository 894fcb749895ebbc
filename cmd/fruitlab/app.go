package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/engine/camera"
	"github.com/Faultbox/strangefruit/internal/engine/debug"
	"github.com/Faultbox/strangefruit/internal/engine/framebuffer"
	"github.com/Faultbox/strangefruit/internal/engine/renderer"
	"github.com/Faultbox/strangefruit/internal/engine/scene"
	"github.com/Faultbox/strangefruit/internal/engine/ui"
	"github.com/Faultbox/strangefruit/internal/viewer"
)

const (
	controlsPanelWidth = float32(280)
	statusBarHeight    = float32(30)
	maxRotationSpeed   = float32(2)
	statusMessageTTL   = 3 * time.Second
)

// App is the lab window state.
type App struct {
	ctrl     *viewer.Controller
	log      *zap.Logger
	backend  *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture

	start        time.Time
	lastMousePos imgui.Vec2

	// Widget state mirrors the scene between frames
	speed     float32
	wireframe bool

	statusMsg  string
	statusTime time.Time
}

// NewApp opens the lab window for ctrl's scene.
func NewApp(ctrl *viewer.Controller, log *zap.Logger) (*App, error) {
	g := ctrl.Config().Graphics

	app := &App{
		ctrl:   ctrl,
		log:    log,
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshotCapture("screenshots", "fruitlab"),
		start:  time.Now(),
	}

	var err error
	app.backend, err = ui.NewBackend(ui.Config{
		Title:  "Strange Fruit Lab",
		Width:  g.Width,
		Height: g.Height,
	})
	if err != nil {
		return nil, err
	}

	rcfg := renderer.DefaultConfig(g.Width, g.Height)
	rcfg.Logger = log.Named("renderer")
	app.renderer, err = renderer.New(rcfg)
	if err != nil {
		return nil, err
	}

	app.fb, err = framebuffer.New(int32(g.Width), int32(g.Height))
	if err != nil {
		app.renderer.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the ImGui loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close releases GPU resources.
func (app *App) Close() {
	if app.fb != nil {
		app.fb.Destroy()
	}
	if app.renderer != nil {
		app.renderer.Close()
	}
}

func (app *App) render() {
	sc := app.ctrl.Scene()
	app.speed = sc.RotationSpeed()
	app.wireframe = sc.Wireframe()

	app.handleShortcuts()

	x, y, w, h := ui.Viewport()
	contentHeight := h - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsPanelWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+controlsPanelWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-controlsPanelWidth, contentHeight))
	if imgui.BeginV("Fruit", nil, flags) {
		app.renderFruit()
	}
	imgui.End()

	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	imgui.SetNextWindowPos(imgui.NewVec2(x, y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(w, statusBarHeight))
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

func (app *App) handleShortcuts() {
	if imgui.CurrentIO().WantTextInput() {
		return
	}
	switch {
	case ui.IsKeyPressed(imgui.KeyR), ui.IsKeyPressed(imgui.KeySpace):
		app.apply(viewer.CmdRegenerate)
	case ui.IsKeyPressed(imgui.KeyW):
		app.apply(viewer.CmdToggleWireframe)
	case ui.IsKeyPressed(imgui.KeyUpArrow):
		app.apply(viewer.CmdSpeedUp)
	case ui.IsKeyPressed(imgui.KeyDownArrow):
		app.apply(viewer.CmdSpeedDown)
	case ui.IsKeyPressed(imgui.KeyHome):
		app.camera.Reset()
	case ui.IsKeyPressed(imgui.KeyF12):
		app.screenshot()
	}
}

func (app *App) apply(cmd viewer.Command) {
	if err := app.ctrl.Apply(cmd); err != nil {
		app.log.Warn("command failed", zap.Stringer("command", cmd), zap.Error(err))
		app.setStatus(fmt.Sprintf("%s failed: %v", cmd, err))
		return
	}
	if cmd == viewer.CmdRegenerate {
		app.setStatus(fmt.Sprintf("Regenerated (seed %d)", app.ctrl.Scene().Seed()))
	}
}

func (app *App) renderControls() {
	sc := app.ctrl.Scene()

	imgui.Text("Animation")
	imgui.Separator()

	if imgui.SliderFloatV("Rotation", &app.speed, -maxRotationSpeed, maxRotationSpeed, "%.2f rad/s", imgui.SliderFlagsNone) {
		sc.SetRotationSpeed(scene.SnapRotationSpeed(app.speed))
	}
	if imgui.Button("-") {
		app.apply(viewer.CmdSpeedDown)
	}
	imgui.SameLine()
	if imgui.Button("+") {
		app.apply(viewer.CmdSpeedUp)
	}
	imgui.SameLine()
	imgui.TextDisabled(fmt.Sprintf("step %.2f", scene.RotationStep))

	if imgui.Checkbox("Wireframe", &app.wireframe) {
		sc.SetWireframe(app.wireframe)
	}

	imgui.Spacing()
	imgui.Text("Generation")
	imgui.Separator()

	if imgui.ButtonV("Regenerate", imgui.NewVec2(-1, 0)) {
		app.apply(viewer.CmdRegenerate)
	}
	if imgui.ButtonV("Reset View", imgui.NewVec2(-1, 0)) {
		app.camera.Reset()
	}
	if imgui.ButtonV("Screenshot", imgui.NewVec2(-1, 0)) {
		app.screenshot()
	}

	imgui.Spacing()
	imgui.Text("Mesh")
	imgui.Separator()

	snap := sc.Snapshot()
	if snap.Mesh == nil {
		imgui.TextDisabled("no mesh")
		return
	}
	m := snap.Mesh
	minR, maxR := m.RadiusRange()
	imgui.Text(fmt.Sprintf("Seed:       %d", snap.Seed))
	imgui.Text(fmt.Sprintf("Generation: %d", snap.Generation))
	imgui.Text(fmt.Sprintf("Segments:   %d", m.Segments))
	imgui.Text(fmt.Sprintf("Vertices:   %d", len(m.Vertices)))
	imgui.Text(fmt.Sprintf("Triangles:  %d", m.TriangleCount()))
	imgui.Text(fmt.Sprintf("Radius:     %.3f .. %.3f", minR, maxR))

	cfg := app.ctrl.Config()
	imgui.Spacing()
	imgui.TextDisabled(fmt.Sprintf("noise %s x%d", cfg.Noise.Kind, cfg.Noise.Octaves))
	if cfg.Noise.Seed != nil {
		imgui.TextDisabled("fixed seed (reproducible)")
	}
}

func (app *App) renderFruit() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	// Render at drawable resolution so high-DPI screens stay sharp
	scale := ui.FramebufferScale()
	if scale <= 0 {
		scale = 1
	}
	pw, ph := int32(avail.X*scale), int32(avail.Y*scale)
	app.fb.Resize(pw, ph)

	snap := app.ctrl.Scene().Snapshot()
	aspect := avail.X / avail.Y

	restore := app.fb.BindWithViewport()
	app.renderer.Resize(int(pw), int(ph))
	app.renderer.Begin()
	app.renderer.Draw(renderer.Frame{
		Snapshot: snap,
		Model:    snap.ModelMatrix(time.Since(app.start)),
		View:     app.camera.ViewMatrix(),
		Proj:     app.camera.ProjectionMatrix(aspect),
		Eye:      app.camera.Position(),
	})
	restore()

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.camera.HandleDrag(mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y)
		}
		app.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.camera.HandleZoom(wheel)
		}
	}
}

func (app *App) renderStatusBar() {
	if app.statusMsg != "" && time.Since(app.statusTime) < statusMessageTTL {
		imgui.Text(app.statusMsg)
		return
	}
	io := imgui.CurrentIO()
	imgui.TextDisabled(fmt.Sprintf("%.0f fps | R regenerate | W wireframe | Up/Down speed | F12 screenshot",
		io.Framerate()))
}

func (app *App) screenshot() {
	img := app.fb.ReadImage()
	path, err := app.shots.Capture(img, app.ctrl.Scene().Seed())
	if err != nil {
		app.log.Warn("screenshot failed", zap.Error(err))
		app.setStatus(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	app.log.Info("screenshot saved", zap.String("path", path))
	app.setStatus("Saved " + path)
}

func (app *App) setStatus(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}
