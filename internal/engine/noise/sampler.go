package noise

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind selects the noise backend.
type Kind string

const (
	// KindSimplex uses OpenSimplex noise.
	KindSimplex Kind = "simplex"
	// KindPerlin uses classic Perlin noise.
	KindPerlin Kind = "perlin"
)

// Perlin parameters for a single octave; fractal summation happens in Sampler.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	// perlinPeriod is the width of go-perlin's permutation lattice. Noise3D
	// repeats with this period and loses precision far from the origin.
	perlinPeriod = 256.0
)

// ParseKind converts a config string to a Kind. Empty means simplex.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindSimplex:
		return KindSimplex, nil
	case KindPerlin:
		return KindPerlin, nil
	default:
		return "", fmt.Errorf("unknown noise kind %q", s)
	}
}

// Config describes how to build a Sampler.
type Config struct {
	Kind        Kind
	Octaves     int
	Persistence float64
	// Seed fixes the generator seed. Nil draws a random one.
	Seed *int64
}

// DefaultConfig returns a single-octave simplex configuration.
func DefaultConfig() Config {
	return Config{
		Kind:        KindSimplex,
		Octaves:     1,
		Persistence: 0.5,
	}
}

// Factory returns a Factory that builds samplers from c with the given seed.
func (c Config) Factory() Factory {
	return func(seed int64) (Field, error) {
		cfg := c
		cfg.Seed = &seed
		return New(cfg)
	}
}

type evaluator func(x, y, z float64) float64

// Sampler is a seeded, optionally fractal, noise field.
type Sampler struct {
	kind       Kind
	seed       int64
	eval       evaluator
	period     float64 // lattice period of eval, 0 when aperiodic
	amplitudes []float64
}

// New builds a Sampler from cfg.
func New(cfg Config) (*Sampler, error) {
	kind, err := ParseKind(string(cfg.Kind))
	if err != nil {
		return nil, err
	}
	if cfg.Octaves < 1 {
		return nil, fmt.Errorf("octaves must be at least 1, got %d", cfg.Octaves)
	}
	if cfg.Octaves > 1 && (cfg.Persistence <= 0 || math.IsNaN(cfg.Persistence) || math.IsInf(cfg.Persistence, 0)) {
		return nil, fmt.Errorf("persistence must be positive and finite, got %v", cfg.Persistence)
	}

	seed := RandomSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	s := &Sampler{
		kind:       kind,
		seed:       seed,
		amplitudes: make([]float64, cfg.Octaves),
	}

	switch kind {
	case KindPerlin:
		p := perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed)
		s.eval = p.Noise3D
		s.period = perlinPeriod
	default:
		os := opensimplex.New(seed)
		s.eval = os.Eval3
	}

	amp := 1.0
	for i := range s.amplitudes {
		s.amplitudes[i] = amp
		amp *= cfg.Persistence
	}

	return s, nil
}

// Sample returns the noise value at (x, y, z), clamped to [-1, 1]. Every
// finite input yields a finite value.
func (s *Sampler) Sample(x, y, z float64) float64 {
	x, y, z = s.wrap(x), s.wrap(y), s.wrap(z)

	var sum, ampSum float64
	freq := 1.0
	for _, amp := range s.amplitudes {
		px, py, pz := s.wrap(x*freq), s.wrap(y*freq), s.wrap(z*freq)
		// Higher octaves of an aperiodic backend can overflow far out
		if !isFinite(px) || !isFinite(py) || !isFinite(pz) {
			break
		}
		sum += amp * s.eval(px, py, pz)
		ampSum += amp
		freq *= 2
	}
	if ampSum == 0 {
		return 0
	}
	return clamp(sum / ampSum)
}

// wrap reduces v into the backend's lattice period. Scaling a wrapped
// coordinate by a power of two stays congruent to scaling the original.
func (s *Sampler) wrap(v float64) float64 {
	if s.period == 0 {
		return v
	}
	return math.Mod(v, s.period)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Seed returns the seed the sampler was built from.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Kind returns the backend in use.
func (s *Sampler) Kind() Kind {
	return s.kind
}

// Octaves returns the number of summed octaves.
func (s *Sampler) Octaves() int {
	return len(s.amplitudes)
}

// RandomSeed draws a seed from the process-wide random source.
func RandomSeed() int64 {
	return rand.Int64()
}
