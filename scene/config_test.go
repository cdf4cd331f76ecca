package scene

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GravitationalConstant != 1.0 {
		t.Errorf("G = %v, want 1.0", cfg.GravitationalConstant)
	}
	if cfg.WallElasticity != 0.5 {
		t.Errorf("elasticity = %v, want 0.5", cfg.WallElasticity)
	}
	if cfg.BodyDefaults.Radius != 10 {
		t.Errorf("default radius = %v, want 10", cfg.BodyDefaults.Radius)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestResolvedBodiesFillsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BodyDefaults = BodySpec{Radius: 5, Color: "#ff0000", Velocity: [3]float64{1, 0, 0}}
	cfg.Bodies = []BodySpec{
		{Position: [3]float64{10, 0, 0}},
		{Position: [3]float64{-10, 0, 0}, Radius: 2, Color: "#00ff00", Velocity: [3]float64{0, 3, 0}},
	}

	bodies, err := cfg.ResolvedBodies()
	if err != nil {
		t.Fatalf("ResolvedBodies: %v", err)
	}

	first := bodies[0]
	if first.Radius != 5 || first.Color != "#ff0000" || first.Velocity != [3]float64{1, 0, 0} {
		t.Errorf("defaults not applied: %+v", first)
	}
	if first.Position != [3]float64{10, 0, 0} {
		t.Errorf("position lost: %+v", first)
	}

	second := bodies[1]
	if second.Radius != 2 || second.Color != "#00ff00" || second.Velocity != [3]float64{0, 3, 0} {
		t.Errorf("overrides lost: %+v", second)
	}

	// Source specs are not modified
	if cfg.Bodies[0].Radius != 0 {
		t.Error("ResolvedBodies mutated the config")
	}
}

func TestMassBasis(t *testing.T) {
	if got := MassBasis(10); got != 1000 {
		t.Errorf("MassBasis(10) = %v, want 1000", got)
	}
	if got := MassBasis(-2); got >= 0 {
		t.Errorf("MassBasis(-2) = %v, want negative", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nan G", func(c *Config) { c.GravitationalConstant = math.NaN() }},
		{"inf elasticity", func(c *Config) { c.WallElasticity = math.Inf(1) }},
		{"negative time scale", func(c *Config) { c.TimeScale = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	// Negative G and out-of-range elasticity are physical parameters, not errors
	cfg := DefaultConfig()
	cfg.GravitationalConstant = -3
	cfg.WallElasticity = 1.5
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDecodeOverDefaults(t *testing.T) {
	doc := `
name: binary
wall_elasticity: 0.9
body_defaults:
  color: "#3366ff"
bodies:
  - position: [-50, 0, 0]
  - position: [50, 0, 0]
    radius: 4
`
	cfg, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if cfg.Name != "binary" || cfg.WallElasticity != 0.9 {
		t.Errorf("scalars not decoded: %+v", cfg)
	}
	if cfg.GravitationalConstant != DefaultGravitationalConstant {
		t.Errorf("absent key lost default: G = %v", cfg.GravitationalConstant)
	}
	if cfg.BodyDefaults.Radius != DefaultBodyRadius {
		t.Errorf("partial body_defaults lost radius: %v", cfg.BodyDefaults.Radius)
	}
	if len(cfg.Bodies) != 2 {
		t.Fatalf("bodies = %d, want 2", len(cfg.Bodies))
	}

	bodies, err := cfg.ResolvedBodies()
	if err != nil {
		t.Fatal(err)
	}
	if bodies[0].Radius != DefaultBodyRadius || bodies[1].Radius != 4 {
		t.Errorf("radii = %v, %v", bodies[0].Radius, bodies[1].Radius)
	}
	if bodies[1].Color != "#3366ff" {
		t.Errorf("color default not applied: %q", bodies[1].Color)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := Decode(strings.NewReader("gravity: 3\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestDecodeRejectsInvalidParameters(t *testing.T) {
	if _, err := Decode(strings.NewReader("time_scale: -2\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode empty: %v", err)
	}
	if len(cfg.Bodies) != len(DefaultConfig().Bodies) {
		t.Errorf("empty document should keep default bodies")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "round-trip"
	cfg.AutoOrbit = true

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Name != "round-trip" || !got.AutoOrbit || len(got.Bodies) != len(cfg.Bodies) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte("name: from-file\nworkers: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-file" || cfg.Workers != 4 {
		t.Errorf("Load = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBundledScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "scenes", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no bundled scenes")
	}
	for _, p := range paths {
		cfg, err := Load(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if _, err := cfg.ResolvedBodies(); err != nil {
			t.Errorf("%s: %v", p, err)
		}
	}
}
