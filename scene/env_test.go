package scene

import (
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvGravitationalConstant, "2.5")
	t.Setenv(EnvWallElasticity, "0.9")
	t.Setenv(EnvTimeScale, "3")
	t.Setenv(EnvWorkers, "4")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if cfg.GravitationalConstant != 2.5 {
		t.Errorf("G = %v, want 2.5", cfg.GravitationalConstant)
	}
	if cfg.WallElasticity != 0.9 {
		t.Errorf("elasticity = %v, want 0.9", cfg.WallElasticity)
	}
	if cfg.TimeScale != 3 {
		t.Errorf("time scale = %v, want 3", cfg.TimeScale)
	}
	if cfg.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Workers)
	}
}

func TestApplyEnvIgnoresInvalid(t *testing.T) {
	t.Setenv(EnvGravitationalConstant, "heavy")
	t.Setenv(EnvTimeScale, "-1")
	t.Setenv(EnvWorkers, "many")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	want := DefaultConfig()
	if cfg.GravitationalConstant != want.GravitationalConstant ||
		cfg.TimeScale != want.TimeScale ||
		cfg.Workers != want.Workers {
		t.Errorf("invalid env applied: %+v", cfg)
	}
}
