package scene

import (
	"os"
	"strconv"
)

// Environment overrides
const (
	EnvGravitationalConstant = "VI_GRAVITY_G"
	EnvWallElasticity        = "VI_GRAVITY_ELASTICITY"
	EnvTimeScale             = "VI_GRAVITY_TIME_SCALE"
	EnvWorkers               = "VI_GRAVITY_WORKERS"
)

// ApplyEnv overrides scene parameters from environment variables
// Unparseable or out-of-range values are ignored
func ApplyEnv(cfg *Config) {
	if s := os.Getenv(EnvGravitationalConstant); s != "" {
		if val, err := strconv.ParseFloat(s, 64); err == nil {
			cfg.GravitationalConstant = val
		}
	}

	if s := os.Getenv(EnvWallElasticity); s != "" {
		if val, err := strconv.ParseFloat(s, 64); err == nil {
			cfg.WallElasticity = val
		}
	}

	if s := os.Getenv(EnvTimeScale); s != "" {
		if val, err := strconv.ParseFloat(s, 64); err == nil && val >= 0 {
			cfg.TimeScale = val
		}
	}

	if s := os.Getenv(EnvWorkers); s != "" {
		if val, err := strconv.Atoi(s); err == nil && val >= 0 {
			cfg.Workers = val
		}
	}
}
