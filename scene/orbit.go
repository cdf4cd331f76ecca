package scene

import (
	"math"
)

// ApplyOrbitalVelocities gives every resting body after the first a circular orbit
// velocity around bodies[0] in the XY plane, v = sqrt(G·M/r), counter-clockwise
// Bodies with a preset velocity, at the center, or under non-attractive G are left alone
func ApplyOrbitalVelocities(bodies []BodySpec, G float64) {
	if len(bodies) < 2 {
		return
	}

	central := bodies[0]
	gm := G * MassBasis(central.Radius)
	if !(gm > 0) {
		return
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i].Velocity != [3]float64{} {
			continue
		}
		dx := bodies[i].Position[0] - central.Position[0]
		dy := bodies[i].Position[1] - central.Position[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}

		v := math.Sqrt(gm / r)
		bodies[i].Velocity = [3]float64{
			-dy / r * v,
			dx / r * v,
			0,
		}
	}
}
