package physics

import (
	"math"

	"github.com/lixenwraith/vi-gravity/vmath"
)

// Momentum returns Σ m·v over all bodies
func Momentum(store *Store) vmath.Vec3F {
	var p vmath.Vec3F
	store.each(func(_ int, b *PointMass) {
		p = vmath.V3FAdd(p, vmath.V3FScale(b.Velocity, b.mass))
	})
	return p
}

// KineticEnergy returns Σ ½·m·|v|²
func KineticEnergy(store *Store) float64 {
	var e float64
	store.each(func(_ int, b *PointMass) {
		e += 0.5 * b.mass * vmath.V3FMagSq(b.Velocity)
	})
	return e
}

// PotentialEnergy returns Σ -G·mi·mj/d over unordered pairs
// Coincident pairs make the result non-finite
func PotentialEnergy(store *Store, G float64) float64 {
	var e float64
	bodies := store.bodies
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := math.Sqrt(vmath.V3FDistSq(bodies[i].Position, bodies[j].Position))
			e -= G * bodies[i].mass * bodies[j].mass / d
		}
	}
	return e
}
