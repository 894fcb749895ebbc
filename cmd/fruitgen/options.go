package main

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/noise"
	"github.com/Faultbox/strangefruit/internal/export"
	"github.com/Faultbox/strangefruit/internal/logger"
)

// options are the generation flags shared by every subcommand.
type options struct {
	params   mesh.Params
	kind     string
	octaves  int
	persist  float64
	seedFlag string
	seed     int64
	flat     bool
	verbose  bool
}

type result struct {
	Mesh    *mesh.Mesh
	Seed    int64
	Noise   string
	Elapsed time.Duration
}

func bindOptions(fs *flag.FlagSet) *options {
	o := &options{params: mesh.DefaultParams()}
	def := noise.DefaultConfig()

	fs.IntVar(&o.params.Segments, "segments", o.params.Segments, "Sphere segments")
	fs.Func("radius", "Base radius", float32Flag(&o.params.Radius))
	fs.Func("scale", "Noise scale", float32Flag(&o.params.NoiseScale))
	fs.Func("strength", "Displacement strength", float32Flag(&o.params.DisplacementStrength))
	fs.IntVar(&o.params.Workers, "workers", 0, "Displacement workers (0 = GOMAXPROCS)")
	fs.StringVar(&o.kind, "noise", string(def.Kind), "Noise kind: simplex or perlin")
	fs.IntVar(&o.octaves, "octaves", def.Octaves, "Fractal octaves")
	fs.Float64Var(&o.persist, "persistence", def.Persistence, "Amplitude falloff per octave")
	fs.StringVar(&o.seedFlag, "seed", "", "Fixed seed (default random)")
	fs.BoolVar(&o.flat, "flat", false, "Skip noise and output the plain sphere")
	fs.BoolVar(&o.verbose, "v", false, "Debug logging")
	return o
}

func float32Flag(dst *float32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		*dst = float32(v)
		return nil
	}
}

func (o *options) seedSet() bool {
	return o.seedFlag != ""
}

// resolve parses the deferred flag values and sets up logging. It must run
// before any fruit is built.
func (o *options) resolve() error {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		return err
	}

	if o.seedSet() {
		seed, err := strconv.ParseInt(o.seedFlag, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid -seed %q: %w", o.seedFlag, err)
		}
		o.seed = seed
	}

	_, err := o.noiseConfig()
	return err
}

func (o *options) generate() (*result, error) {
	if err := o.resolve(); err != nil {
		return nil, err
	}
	seed := noise.RandomSeed()
	if o.seedSet() {
		seed = o.seed
	}
	return o.build(seed)
}

func (o *options) build(seed int64) (*result, error) {
	nc, err := o.noiseConfig()
	if err != nil {
		return nil, err
	}

	var (
		field noise.Field
		label string
	)
	if o.flat {
		field, label = noise.Constant(0), "flat"
	} else {
		f, err := nc.Factory()(seed)
		if err != nil {
			return nil, err
		}
		field = f
		label = fmt.Sprintf("%s x%d", nc.Kind, nc.Octaves)
	}

	start := time.Now()
	m, err := mesh.Generate(o.params, field, mesh.WithLogger(logger.Named("mesh")))
	if err != nil {
		return nil, err
	}

	return &result{Mesh: m, Seed: seed, Noise: label, Elapsed: time.Since(start)}, nil
}

func (o *options) noiseConfig() (noise.Config, error) {
	kind, err := noise.ParseKind(o.kind)
	if err != nil {
		return noise.Config{}, err
	}
	return noise.Config{Kind: kind, Octaves: o.octaves, Persistence: o.persist}, nil
}

func (r *result) objOptions() export.OBJOptions {
	return export.OBJOptions{
		Name: fmt.Sprintf("fruit_%d", r.Seed),
		Comments: []string{
			"strange fruit",
			fmt.Sprintf("seed %d", r.Seed),
			fmt.Sprintf("noise %s", r.Noise),
			fmt.Sprintf("segments %d radius %g", r.Mesh.Segments, r.Mesh.Radius),
		},
	}
}
