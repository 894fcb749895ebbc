package mesh

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/strangefruit/internal/engine/noise"
)

// Generate validates params, builds the sphere and deforms it with field.
func Generate(params Params, field noise.Field, opts ...Option) (*Mesh, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	start := time.Now()

	topo, err := BuildSphere(params.Radius, params.Segments)
	if err != nil {
		return nil, err
	}

	workers := params.Workers
	if workers < 1 {
		workers = o.workers
	}

	m, err := Deform(topo, field, params.NoiseScale, params.DisplacementStrength,
		WithWorkers(workers), WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("deform sphere: %w", err)
	}

	o.log.Debug("mesh generated",
		zap.Int("segments", params.Segments),
		zap.Float32("radius", params.Radius),
		zap.Float32("noise_scale", params.NoiseScale),
		zap.Duration("elapsed", time.Since(start)))

	return m, nil
}
