package mesh

import (
	gomath "math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/strangefruit/internal/engine/noise"
)

// Option configures Deform and Generate.
type Option func(*options)

type options struct {
	workers int
	log     *zap.Logger
}

// WithWorkers bounds the number of goroutines used for displacement.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger for generation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Deform displaces every vertex of topo radially by the noise sampled at its
// undisplaced position, then recomputes normals from the displaced surface.
//
// The displacement phase runs in parallel over disjoint vertex ranges. Normals
// are computed only after every position has been written, in a fixed order,
// so the result does not depend on the worker count.
func Deform(topo *Topology, field noise.Field, noiseScale, strength float32, opts ...Option) (*Mesh, error) {
	if topo == nil {
		return nil, &ParameterError{Field: "topology", Value: nil, Reason: "must not be nil"}
	}
	if field == nil {
		return nil, &ParameterError{Field: "noise field", Value: nil, Reason: "must not be nil"}
	}
	if err := checkNoiseScale(noiseScale); err != nil {
		return nil, err
	}
	if err := checkStrength(strength); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	count := topo.VertexCount()
	vertices := make([]Vertex, count)

	workers := min(o.workers, count)
	chunk := (count + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < count; lo += chunk {
		hi := min(lo+chunk, count)
		g.Go(func() error {
			return displace(topo, field, noiseScale, strength, vertices, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	computeNormals(vertices, topo)

	m := &Mesh{
		Vertices: vertices,
		Indices:  topo.Indices,
		Bounds:   computeBounds(vertices),
		Segments: topo.Segments,
		Radius:   topo.Radius,
	}

	o.log.Debug("mesh deformed",
		zap.Int("vertices", count),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("workers", workers))

	return m, nil
}

func displace(topo *Topology, field noise.Field, noiseScale, strength float32, out []Vertex, lo, hi int) error {
	scale := float64(noiseScale)
	for i := lo; i < hi; i++ {
		p := topo.Positions[i]
		x, y, z := float64(p.X)*scale, float64(p.Y)*scale, float64(p.Z)*scale

		n := field.Sample(x, y, z)
		if gomath.IsNaN(n) || gomath.IsInf(n, 0) {
			return &SamplerError{Vertex: i, X: x, Y: y, Z: z, Value: n}
		}

		r := topo.Radius * (1 + float32(n)*strength)
		out[i] = Vertex{
			Position: topo.Directions[i].Scale(r),
			TexCoord: topo.TexCoords[i],
		}
	}
	return nil
}
