package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"
)

// Reference generation parameters.
const (
	DefaultRadius               = 1.0
	DefaultSegments             = 64
	DefaultNoiseScale           = 0.5
	DefaultDisplacementStrength = 0.2
	MinSegments                 = 3
	// MaxSegments keeps (segments+1)² vertex indices well inside uint32.
	MaxSegments                 = 4096
)

// Params fully determines the topology and, combined with a noise field,
// the displaced geometry.
type Params struct {
	Radius               float32
	Segments             int
	NoiseScale           float32
	DisplacementStrength float32
	// Workers bounds displacement parallelism. Zero means GOMAXPROCS.
	Workers int
}

// DefaultParams returns the reference parameters.
func DefaultParams() Params {
	return Params{
		Radius:               DefaultRadius,
		Segments:             DefaultSegments,
		NoiseScale:           DefaultNoiseScale,
		DisplacementStrength: DefaultDisplacementStrength,
	}
}

// Validate checks every field and returns all violations combined.
func (p Params) Validate() error {
	return multierr.Combine(
		checkRadius(p.Radius),
		checkSegments(p.Segments),
		checkNoiseScale(p.NoiseScale),
		checkStrength(p.DisplacementStrength),
		checkWorkers(p.Workers),
	)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func checkRadius(r float32) error {
	if !finite(r) || r <= 0 {
		return &ParameterError{Field: "radius", Value: r, Reason: "must be positive and finite"}
	}
	return nil
}

func checkSegments(s int) error {
	if s < MinSegments {
		return &ParameterError{Field: "segments", Value: s, Reason: "must be at least 3"}
	}
	if s > MaxSegments {
		return &ParameterError{Field: "segments", Value: s, Reason: fmt.Sprintf("must be at most %d", MaxSegments)}
	}
	return nil
}

func checkNoiseScale(s float32) error {
	if !finite(s) || s <= 0 {
		return &ParameterError{Field: "noise scale", Value: s, Reason: "must be positive and finite"}
	}
	return nil
}

func checkStrength(s float32) error {
	if !finite(s) || s < 0 {
		return &ParameterError{Field: "displacement strength", Value: s, Reason: "must be non-negative and finite"}
	}
	return nil
}

func checkWorkers(w int) error {
	if w < 0 {
		return &ParameterError{Field: "workers", Value: w, Reason: "must not be negative"}
	}
	return nil
}
