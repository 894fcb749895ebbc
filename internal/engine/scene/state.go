// Package scene holds the animation state of the fruit and the currently
// published mesh. Render loops read it once per tick; UI handlers mutate it.
package scene

import (
	"fmt"
	gomath "math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/noise"
	"github.com/Faultbox/strangefruit/pkg/math"
)

// DefaultRotationSpeed is the reference spin in radians per second.
const DefaultRotationSpeed = 0.1

// RotationStep is the UI increment for rotation speed.
const RotationStep = 0.01

// Options configures a Scene.
type Options struct {
	// Factory builds a fresh noise field per regeneration.
	// Nil uses single-octave simplex noise.
	Factory       noise.Factory
	RotationSpeed float32
	Wireframe     bool
	Logger        *zap.Logger
}

// Snapshot is one consistent read of the scene for a render tick.
type Snapshot struct {
	Mesh          *mesh.Mesh
	Generation    uint64
	Seed          int64
	RotationSpeed float32
	Wireframe     bool
}

type published struct {
	mesh       *mesh.Mesh
	seed       int64
	generation uint64
}

// Scene owns the animation state and the mesh handle.
//
// Rotation speed and wireframe are plain atomics. The mesh, its seed and the
// generation counter are published together with one pointer store, so a
// reader never sees a mesh paired with another generation's seed.
// Regenerations are serialized; readers never block.
type Scene struct {
	factory noise.Factory
	log     *zap.Logger

	rotationSpeed atomic.Uint32
	wireframe     atomic.Bool
	current       atomic.Pointer[published]

	regenMu sync.Mutex
}

// New creates a scene with no mesh published yet.
func New(opts Options) *Scene {
	s := &Scene{
		factory: opts.Factory,
		log:     opts.Logger,
	}
	if s.factory == nil {
		s.factory = noise.DefaultConfig().Factory()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.SetRotationSpeed(opts.RotationSpeed)
	s.wireframe.Store(opts.Wireframe)
	return s
}

// SetRotationSpeed sets the spin in radians per second.
func (s *Scene) SetRotationSpeed(v float32) {
	s.rotationSpeed.Store(gomath.Float32bits(v))
}

// RotationSpeed returns the spin in radians per second.
func (s *Scene) RotationSpeed() float32 {
	return gomath.Float32frombits(s.rotationSpeed.Load())
}

// StepRotationSpeed adds delta and snaps the result to the UI step grid.
func (s *Scene) StepRotationSpeed(delta float32) float32 {
	for {
		old := s.rotationSpeed.Load()
		v := SnapRotationSpeed(gomath.Float32frombits(old) + delta)
		if s.rotationSpeed.CompareAndSwap(old, gomath.Float32bits(v)) {
			return v
		}
	}
}

// SnapRotationSpeed rounds v to the nearest RotationStep.
func SnapRotationSpeed(v float32) float32 {
	return float32(gomath.Round(float64(v)/RotationStep) * RotationStep)
}

// SetWireframe sets the wireframe flag.
func (s *Scene) SetWireframe(on bool) {
	s.wireframe.Store(on)
}

// Wireframe reports whether the fruit renders as wireframe.
func (s *Scene) Wireframe() bool {
	return s.wireframe.Load()
}

// ToggleWireframe flips the wireframe flag and returns the new value.
func (s *Scene) ToggleWireframe() bool {
	for {
		old := s.wireframe.Load()
		if s.wireframe.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetFactory replaces the noise factory used by later regenerations.
// Nil restores the default.
func (s *Scene) SetFactory(f noise.Factory) {
	if f == nil {
		f = noise.DefaultConfig().Factory()
	}
	s.regenMu.Lock()
	s.factory = f
	s.regenMu.Unlock()
}

// Regenerate builds a new mesh from a freshly seeded noise field and
// publishes it. On error the previously published mesh stays in place.
func (s *Scene) Regenerate(params mesh.Params) (*mesh.Mesh, error) {
	return s.RegenerateSeeded(params, noise.RandomSeed())
}

// RegenerateSeeded is Regenerate with an explicit seed, for reproducible fruit.
func (s *Scene) RegenerateSeeded(params mesh.Params, seed int64) (*mesh.Mesh, error) {
	s.regenMu.Lock()
	defer s.regenMu.Unlock()

	field, err := s.factory(seed)
	if err != nil {
		return nil, fmt.Errorf("build noise field: %w", err)
	}

	start := time.Now()
	m, err := mesh.Generate(params, field, mesh.WithLogger(s.log))
	if err != nil {
		s.log.Warn("regeneration failed, keeping previous mesh",
			zap.Int64("seed", seed),
			zap.Error(err))
		return nil, fmt.Errorf("regenerate: %w", err)
	}

	var generation uint64 = 1
	if prev := s.current.Load(); prev != nil {
		generation = prev.generation + 1
	}
	s.current.Store(&published{mesh: m, seed: seed, generation: generation})

	s.log.Info("fruit regenerated",
		zap.Uint64("generation", generation),
		zap.Int64("seed", seed),
		zap.Int("segments", params.Segments),
		zap.Int("vertices", len(m.Vertices)),
		zap.Duration("elapsed", time.Since(start)))

	return m, nil
}

// Mesh returns the published mesh, or nil before the first generation.
func (s *Scene) Mesh() *mesh.Mesh {
	if p := s.current.Load(); p != nil {
		return p.mesh
	}
	return nil
}

// Generation returns a counter bumped on every publish. Zero means no mesh.
func (s *Scene) Generation() uint64 {
	if p := s.current.Load(); p != nil {
		return p.generation
	}
	return 0
}

// Seed returns the noise seed of the published mesh.
func (s *Scene) Seed() int64 {
	if p := s.current.Load(); p != nil {
		return p.seed
	}
	return 0
}

// Snapshot reads the whole scene state for one render tick.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		RotationSpeed: s.RotationSpeed(),
		Wireframe:     s.Wireframe(),
	}
	if p := s.current.Load(); p != nil {
		snap.Mesh = p.mesh
		snap.Generation = p.generation
		snap.Seed = p.seed
	}
	return snap
}

// RotationAngle returns the spin angle about +Y after elapsed time.
func (s *Scene) RotationAngle(elapsed time.Duration) float32 {
	return RotationAngle(elapsed, s.RotationSpeed())
}

// ModelMatrix returns the fruit's model transform after elapsed time.
func (s *Scene) ModelMatrix(elapsed time.Duration) math.Mat4 {
	return math.RotateY(s.RotationAngle(elapsed))
}

// RotationAngle returns elapsed seconds times speed.
func RotationAngle(elapsed time.Duration, speed float32) float32 {
	return float32(elapsed.Seconds()) * speed
}

// ModelMatrix returns the model transform of snap after elapsed time.
func (snap Snapshot) ModelMatrix(elapsed time.Duration) math.Mat4 {
	return math.RotateY(RotationAngle(elapsed, snap.RotationSpeed))
}
