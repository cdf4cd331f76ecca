package scene

import (
	"fmt"
	"math"

	"github.com/jinzhu/copier"
)

// Reference parameters of the gravitational system
const (
	DefaultBodyRadius            = 10.0
	DefaultGravitationalConstant = 1.0
	DefaultWallElasticity        = 0.5
	DefaultTimeScale             = 1.0
)

// BodySpec describes one body at setup, zero fields fall back to the scene's body defaults
type BodySpec struct {
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Radius   float64    `yaml:"radius"`
	Color    string     `yaml:"color"` // "#rrggbb", empty picks from palette
}

// Config is a complete scene: simulation parameters plus initial bodies
type Config struct {
	Name                  string     `yaml:"name"`
	GravitationalConstant float64    `yaml:"gravitational_constant"`
	WallElasticity        float64    `yaml:"wall_elasticity"`
	TimeScale             float64    `yaml:"time_scale"`
	Workers               int        `yaml:"workers"`
	AutoOrbit             bool       `yaml:"auto_orbit"`
	BodyDefaults          BodySpec   `yaml:"body_defaults"`
	Bodies                []BodySpec `yaml:"bodies"`
}

// DefaultConfig returns a four-body scene with reference parameters
func DefaultConfig() Config {
	return Config{
		Name:                  "default",
		GravitationalConstant: DefaultGravitationalConstant,
		WallElasticity:        DefaultWallElasticity,
		TimeScale:             DefaultTimeScale,
		Workers:               1,
		BodyDefaults: BodySpec{
			Radius: DefaultBodyRadius,
		},
		Bodies: []BodySpec{
			{Position: [3]float64{-200, 0, 0}},
			{Position: [3]float64{200, 0, 0}},
			{Position: [3]float64{0, 120, 0}, Radius: 14},
			{Position: [3]float64{0, -120, 0}, Radius: 6},
		},
	}
}

// Validate checks simulation parameters
// Body radii are not checked here: bad mass bases are rejected per body at registration
func (c *Config) Validate() error {
	if math.IsNaN(c.GravitationalConstant) || math.IsInf(c.GravitationalConstant, 0) {
		return fmt.Errorf("gravitational_constant must be finite, got %v", c.GravitationalConstant)
	}
	if math.IsNaN(c.WallElasticity) || math.IsInf(c.WallElasticity, 0) {
		return fmt.Errorf("wall_elasticity must be finite, got %v", c.WallElasticity)
	}
	if !(c.TimeScale >= 0) || math.IsInf(c.TimeScale, 1) {
		return fmt.Errorf("time_scale must be non-negative and finite, got %v", c.TimeScale)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// ResolvedBodies returns every body with the scene defaults filled in
// AutoOrbit velocities are applied after defaults
func (c *Config) ResolvedBodies() ([]BodySpec, error) {
	out := make([]BodySpec, len(c.Bodies))
	for i := range c.Bodies {
		resolved := c.BodyDefaults
		if err := copier.CopyWithOption(&resolved, &c.Bodies[i], copier.Option{IgnoreEmpty: true}); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		out[i] = resolved
	}

	if c.AutoOrbit {
		ApplyOrbitalVelocities(out, c.GravitationalConstant)
	}
	return out, nil
}

// MassBasis maps a rendered radius to a mass basis, mass ∝ radius³
func MassBasis(radius float64) float64 {
	return radius * radius * radius
}
