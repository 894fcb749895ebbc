// fruitgen is a headless CLI for generating strange fruit meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/strangefruit/internal/engine/noise"
	"github.com/Faultbox/strangefruit/internal/export"
	"github.com/Faultbox/strangefruit/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "stats", "info":
		err = cmdStats(args)
	case "export", "x":
		err = cmdExport(args)
	case "generate", "gen":
		err = cmdGenerate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`fruitgen - strange fruit mesh generator

Usage:
  fruitgen <command> [options]

Commands:
  stats [options]                    Generate one fruit and print mesh statistics
  export [options] <out.obj>         Generate one fruit and write it as OBJ
  generate [options] -n N -dir DIR   Generate N fruits with consecutive seeds

Common options:
  -segments N    sphere segments (default 64)
  -radius R      base radius (default 1)
  -scale S       noise scale (default 0.5)
  -strength S    displacement strength (default 0.2)
  -noise KIND    simplex or perlin
  -octaves N     fractal octaves (default 1)
  -seed S        fixed seed (default random)
  -flat          skip noise; output the plain sphere
  -v             debug logging

Examples:
  fruitgen stats -seed 42
  fruitgen export -segments 128 -seed 7 fruit.obj
  fruitgen generate -n 10 -seed 100 -dir ./fruits`)
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	opts := bindOptions(fs)
	fs.Parse(args)

	res, err := opts.generate()
	if err != nil {
		return err
	}
	printStats(res)
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	opts := bindOptions(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: fruitgen export [options] <out.obj>")
	}
	out := fs.Arg(0)

	res, err := opts.generate()
	if err != nil {
		return err
	}
	if err := export.SaveOBJ(out, res.Mesh, res.objOptions()); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d vertices, %d triangles, seed %d)\n",
		out, len(res.Mesh.Vertices), res.Mesh.TriangleCount(), res.Seed)
	return nil
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	opts := bindOptions(fs)
	count := fs.Int("n", 1, "Number of fruits")
	dir := fs.String("dir", ".", "Output directory")
	jobs := fs.Int("j", 4, "Fruits generated in parallel")
	fs.Parse(args)

	if err := opts.resolve(); err != nil {
		return err
	}
	if *count < 1 {
		return fmt.Errorf("-n must be at least 1")
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	base := noise.RandomSeed()
	if opts.seedSet() {
		base = opts.seed
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))

	for i := 0; i < *count; i++ {
		seed := base + int64(i)
		g.Go(func() error {
			res, err := opts.build(seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			path := filepath.Join(*dir, fmt.Sprintf("fruit_%d.obj", seed))
			if err := export.SaveOBJ(path, res.Mesh, res.objOptions()); err != nil {
				return err
			}
			logger.Info("fruit written", zap.String("path", path), zap.Int64("seed", seed))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Generated %d fruits in %s (seeds %d..%d)\n",
		*count, time.Since(start).Round(time.Millisecond), base, base+int64(*count)-1)
	return nil
}

func printStats(res *result) {
	m := res.Mesh
	minR, maxR := m.RadiusRange()
	size := m.Bounds.Size()

	fmt.Printf("Seed:      %d\n", res.Seed)
	fmt.Printf("Noise:     %s\n", res.Noise)
	fmt.Printf("Segments:  %d\n", m.Segments)
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Radius:    %.4f .. %.4f (base %.4f)\n", minR, maxR, m.Radius)
	fmt.Printf("Bounds:    %.4f x %.4f x %.4f\n", size.X, size.Y, size.Z)
	fmt.Printf("Elapsed:   %s\n", res.Elapsed.Round(time.Microsecond))
}
