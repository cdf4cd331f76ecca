package audio

import (
	"os"
	"strconv"
)

// Environment overrides
const (
	EnvEnabled    = "VI_GRAVITY_AUDIO_ENABLED"
	EnvVolume     = "VI_GRAVITY_VOLUME" // 0-100
	EnvSampleRate = "VI_GRAVITY_SAMPLE_RATE"
)

// Config controls wall-contact audio
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	// MaxVoices caps simultaneously sounding impacts, extra contacts are dropped
	MaxVoices int
	// MinImpactSpeed mutes contacts slower than this, resting bodies grind silently
	MinImpactSpeed float64
	// ReferenceSpeed is the impact speed that plays at full level
	ReferenceSpeed float64
}

// DefaultConfig returns audio enabled at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MasterVolume:   0.5,
		SampleRate:     44100,
		MaxVoices:      8,
		MinImpactSpeed: 0.5,
		ReferenceSpeed: 50,
	}
}

// LoadConfig reads audio settings from the environment over DefaultConfig
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if s := os.Getenv(EnvEnabled); s != "" {
		if val, err := strconv.ParseBool(s); err == nil {
			cfg.Enabled = val
		}
	}

	if s := os.Getenv(EnvVolume); s != "" {
		if val, err := strconv.Atoi(s); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if s := os.Getenv(EnvSampleRate); s != "" {
		if val, err := strconv.Atoi(s); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
