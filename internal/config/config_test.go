package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test generation defaults
	if cfg.Generation.Radius != 1 {
		t.Errorf("expected radius 1, got %f", cfg.Generation.Radius)
	}
	if cfg.Generation.Segments != 64 {
		t.Errorf("expected segments 64, got %d", cfg.Generation.Segments)
	}
	if cfg.Generation.RegenerateSegments != 128 {
		t.Errorf("expected regenerate segments 128, got %d", cfg.Generation.RegenerateSegments)
	}
	if cfg.Generation.NoiseScale != 0.5 {
		t.Errorf("expected noise scale 0.5, got %f", cfg.Generation.NoiseScale)
	}
	if cfg.Generation.DisplacementStrength != 0.2 {
		t.Errorf("expected displacement strength 0.2, got %f", cfg.Generation.DisplacementStrength)
	}

	// Test noise defaults
	if cfg.Noise.Kind != "simplex" {
		t.Errorf("expected simplex noise, got %s", cfg.Noise.Kind)
	}
	if cfg.Noise.Seed != nil {
		t.Errorf("expected random seed by default, got %d", *cfg.Noise.Seed)
	}

	// Test animation defaults
	if cfg.Animation.RotationSpeed != 0.1 {
		t.Errorf("expected rotation speed 0.1, got %f", cfg.Animation.RotationSpeed)
	}
	if cfg.Animation.Wireframe {
		t.Error("expected wireframe to be false by default")
	}

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestParams(t *testing.T) {
	cfg := Default()

	initial := cfg.InitialParams()
	if initial.Segments != 64 {
		t.Errorf("expected initial segments 64, got %d", initial.Segments)
	}
	regen := cfg.RegenerateParams()
	if regen.Segments != 128 {
		t.Errorf("expected regenerate segments 128, got %d", regen.Segments)
	}
	if regen.NoiseScale != initial.NoiseScale || regen.Radius != initial.Radius {
		t.Error("regenerate params should only differ in segments")
	}

	// Zero unifies both builds on Segments
	cfg.Generation.RegenerateSegments = 0
	if got := cfg.RegenerateParams().Segments; got != 64 {
		t.Errorf("expected unified segments 64, got %d", got)
	}
}

func TestSamplerConfig(t *testing.T) {
	cfg := Default()
	seed := int64(77)
	cfg.Noise.Kind = "perlin"
	cfg.Noise.Seed = &seed

	nc, err := cfg.SamplerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nc.Kind != noise.KindPerlin {
		t.Errorf("expected perlin, got %s", nc.Kind)
	}
	if nc.Seed == nil || *nc.Seed != 77 {
		t.Error("expected seed to carry over")
	}

	cfg.Noise.Kind = "voronoi"
	if _, err := cfg.SamplerConfig(); err == nil {
		t.Error("expected error for unknown noise kind")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Generation.Segments = 2
	cfg.Generation.Radius = 0
	cfg.Noise.Kind = "voronoi"
	cfg.Graphics.Width = 0
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, mesh.ErrInvalidParameter) {
		t.Errorf("expected error to wrap mesh.ErrInvalidParameter, got %v", err)
	}
	if n := len(multierr.Errors(err)); n < 5 {
		t.Errorf("expected at least 5 collected errors, got %d: %v", n, err)
	}
}

func TestValidateMSAA(t *testing.T) {
	tests := []struct {
		samples int
		wantErr bool
	}{
		{0, false},
		{2, false},
		{4, false},
		{16, false},
		{3, true},
		{32, true},
		{-4, true},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Graphics.MSAA = tt.samples
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("msaa %d: Validate() error = %v, wantErr %v", tt.samples, err, tt.wantErr)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
generation:
  radius: 2.5
  segments: 32
  regenerate_segments: 0
  noise_scale: 1.5
  displacement_strength: 0.3
  workers: 4

noise:
  kind: perlin
  octaves: 3
  persistence: 0.6
  seed: 1234

animation:
  rotation_speed: 0.25
  wireframe: true

graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

logging:
  level: "debug"
  log_file: "fruit.log"

watch:
  enabled: true
  debounce: 50ms
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Generation.Radius != 2.5 {
		t.Errorf("expected radius 2.5, got %f", cfg.Generation.Radius)
	}
	if cfg.Generation.Segments != 32 {
		t.Errorf("expected segments 32, got %d", cfg.Generation.Segments)
	}
	if cfg.Generation.RegenerateSegments != 0 {
		t.Errorf("expected regenerate segments 0, got %d", cfg.Generation.RegenerateSegments)
	}
	if cfg.Generation.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Generation.Workers)
	}

	if cfg.Noise.Kind != "perlin" {
		t.Errorf("expected perlin noise, got %s", cfg.Noise.Kind)
	}
	if cfg.Noise.Octaves != 3 {
		t.Errorf("expected 3 octaves, got %d", cfg.Noise.Octaves)
	}
	if cfg.Noise.Seed == nil || *cfg.Noise.Seed != 1234 {
		t.Error("expected seed 1234")
	}

	if cfg.Animation.RotationSpeed != 0.25 {
		t.Errorf("expected rotation speed 0.25, got %f", cfg.Animation.RotationSpeed)
	}
	if !cfg.Animation.Wireframe {
		t.Error("expected wireframe to be true")
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "fruit.log" {
		t.Errorf("expected log file 'fruit.log', got %s", cfg.Logging.LogFile)
	}

	if !cfg.Watch.Enabled || cfg.Watch.Debounce != 50*time.Millisecond {
		t.Errorf("unexpected watch config %+v", cfg.Watch)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
generation:
  segments: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Create temp directory and change to it
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	if err := os.WriteFile("config.yaml", []byte("generation:\n  segments: 16\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = "-42"
			},
			verify: func(cfg *Config) {
				if cfg.Noise.Seed == nil || *cfg.Noise.Seed != -42 {
					t.Error("expected seed -42")
				}
			},
			teardown: func() {
				*flagSeed = ""
			},
		},
		{
			name: "segments and wireframe flags",
			setup: func() {
				*flagSegments = 24
				*flagWireframe = true
			},
			verify: func(cfg *Config) {
				if cfg.Generation.Segments != 24 {
					t.Errorf("expected segments 24, got %d", cfg.Generation.Segments)
				}
				if cfg.Generation.RegenerateSegments != 128 {
					t.Errorf("segments flag should not touch regenerate segments, got %d", cfg.Generation.RegenerateSegments)
				}
				if !cfg.Animation.Wireframe {
					t.Error("expected wireframe with wireframe flag")
				}
			},
			teardown: func() {
				*flagSegments = 0
				*flagWireframe = false
			},
		},
		{
			name: "noise and watch flags",
			setup: func() {
				*flagNoise = "perlin"
				*flagWatch = true
			},
			verify: func(cfg *Config) {
				if cfg.Noise.Kind != "perlin" {
					t.Errorf("expected perlin, got %s", cfg.Noise.Kind)
				}
				if !cfg.Watch.Enabled {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() {
				*flagNoise = ""
				*flagWatch = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags: %v", err)
			}

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestApplyFlagsInvalidSeed(t *testing.T) {
	*flagSeed = "banana"
	defer func() { *flagSeed = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
generation:
  segments: 48
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, path, err := LoadWithPath()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if path != configPath {
		t.Errorf("expected path %s, got %s", configPath, path)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height and segments should be from file since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Generation.Segments != 48 {
		t.Errorf("expected segments 48 from file, got %d", cfg.Generation.Segments)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("generation:\n  segments: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, mesh.ErrInvalidParameter) {
		t.Errorf("expected invalid parameter error, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	seed := int64(9)
	cfg.Noise.Seed = &seed
	cfg.Generation.Segments = 20

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Generation.Segments != 20 {
		t.Errorf("expected segments 20, got %d", loaded.Generation.Segments)
	}
	if loaded.Noise.Seed == nil || *loaded.Noise.Seed != 9 {
		t.Error("expected seed to survive save")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml in directory, got %d entries", len(entries))
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Default().SaveTo(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		reloads []*Config
	)
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path, 10*time.Millisecond, func(cfg *Config, err error) {
			if err != nil {
				t.Errorf("reload error: %v", err)
				return
			}
			mu.Lock()
			reloads = append(reloads, cfg)
			mu.Unlock()
			changed <- struct{}{}
		})
	}()

	updated := Default()
	updated.Animation.RotationSpeed = 0.5

	// The watcher may not be registered yet; keep writing until it reports.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

wait:
	for {
		if err := updated.SaveTo(path); err != nil {
			t.Fatal(err)
		}
		select {
		case <-changed:
			break wait
		case <-ticker.C:
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	last := reloads[len(reloads)-1]
	if last.Animation.RotationSpeed != 0.5 {
		t.Errorf("expected reloaded rotation speed 0.5, got %f", last.Animation.RotationSpeed)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/dir/config.yaml", 0, func(*Config, error) {})
	if err == nil {
		t.Error("expected error watching missing directory")
	}
}
