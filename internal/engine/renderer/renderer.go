// Package renderer draws the fruit mesh with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/engine/lighting"
	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/scene"
	"github.com/Faultbox/strangefruit/internal/engine/shader"
	"github.com/Faultbox/strangefruit/internal/engine/texture"
	"github.com/Faultbox/strangefruit/pkg/math"
)

const gradientHeight = 256

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	Rig        lighting.Rig
	Logger     *zap.Logger
}

// DefaultConfig returns the studio look on a dark background.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0.05, 0.05, 0.08, 1.0},
		Rig:        lighting.DefaultRig(),
	}
}

// Frame is the per-frame input to Draw.
type Frame struct {
	Snapshot scene.Snapshot
	Model    math.Mat4
	View     math.Mat4
	Proj     math.Mat4
	Eye      math.Vec3
}

// Renderer owns the GPU copy of the published fruit mesh.
type Renderer struct {
	config Config
	log    *zap.Logger

	program  *shader.Program
	gradient uint32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	generation uint64
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    cfg.Logger,
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.program, err = shader.NewProgram(fruitVertexShader, fruitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create fruit shader: %w", err)
	}

	if err := r.createGradient(); err != nil {
		return nil, fmt.Errorf("failed to create gradient: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	r.log.Debug("renderer created",
		zap.Uint32("program", r.program.ID),
		zap.Uint32("vao", r.vao))

	return r, nil
}

func (r *Renderer) createGradient() error {
	pixels := GradientPixels(gradientHeight, GradientTop, GradientBottom)

	var err error
	r.gradient, err = texture.Upload(pixels, 1, gradientHeight, texture.DefaultOptions())
	return err
}

// Sync uploads the snapshot's mesh if a new generation was published.
func (r *Renderer) Sync(snap scene.Snapshot) {
	if snap.Mesh == nil || snap.Generation == r.generation {
		return
	}
	r.upload(snap.Mesh)
	r.generation = snap.Generation

	r.log.Debug("mesh uploaded",
		zap.Uint64("generation", snap.Generation),
		zap.Int("vertices", len(snap.Mesh.Vertices)),
		zap.Int32("indices", r.indexCount))
}

func (r *Renderer) upload(m *mesh.Mesh) {
	const stride = int32(unsafe.Sizeof(mesh.Vertex{}))

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(mesh.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(mesh.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	// TexCoord (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(mesh.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.indexCount = int32(len(m.Indices))
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears the current render target.
func (r *Renderer) Begin() {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the fruit. It uploads a new mesh first when needed.
func (r *Renderer) Draw(f Frame) {
	r.Sync(f.Snapshot)
	if r.indexCount == 0 {
		return
	}

	rig := r.config.Rig
	p := r.program
	p.Use()
	p.SetMat4("uModel", f.Model)
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Proj)
	p.SetVec3("uViewPos", f.Eye.Array())
	p.SetVec3("uAmbient", rig.AmbientTerm())
	p.SetVec3("uLightPos", rig.Point.Position)
	p.SetVec3("uLightColor", rig.PointTerm())
	p.SetVec3("uSpecular", rig.Material.Specular)
	p.SetVec3("uEmissive", rig.Material.Emissive)
	p.SetFloat("uShininess", rig.Material.Shininess)

	wireframe := int32(0)
	if f.Snapshot.Wireframe {
		wireframe = 1
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	p.SetInt("uWireframe", wireframe)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.gradient)
	p.SetInt("uGradient", 0)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if f.Snapshot.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Generation returns the generation currently on the GPU.
func (r *Renderer) Generation() uint64 {
	return r.generation
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	texture.Delete(r.gradient)
	if r.program != nil {
		r.program.Delete()
	}
}
