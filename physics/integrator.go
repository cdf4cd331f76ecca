package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-gravity/vmath"
)

// WallContact records one reflected velocity component
type WallContact struct {
	ID    BodyID
	Axis  int     // 0=X, 1=Y, 2=Z
	Speed float64 // |axis velocity| before reflection
}

// StepReport summarizes one integration step for the host
type StepReport struct {
	Bodies   int
	Contacts []WallContact
}

// Integrator advances a Store by one tick
// Holds configuration only; all simulation state lives in the Store
type Integrator struct {
	// Workers splits the force pass across goroutines, <= 1 is serial
	Workers int
}

// Step advances the store with a serial integrator
func Step(store *Store, timeStep, gravitationalConstant, wallElasticity float64, bounds vmath.Box3F) (StepReport, error) {
	return Integrator{}.Step(store, timeStep, gravitationalConstant, wallElasticity, bounds)
}

// Step runs force accumulation on a snapshot of pre-step positions, then per body:
// semi-implicit Euler velocity update, wall reflection against pre-step position, clamp,
// and position update with the new velocity
// A failed step leaves the store untouched
func (it Integrator) Step(store *Store, timeStep, gravitationalConstant, wallElasticity float64, bounds vmath.Box3F) (StepReport, error) {
	if !(timeStep >= 0) || math.IsInf(timeStep, 1) {
		return StepReport{}, fmt.Errorf("step: %w: got %v", ErrInvalidTimeStep, timeStep)
	}

	snap := takeSnapshot(store)
	forces, err := snap.computeForces(gravitationalConstant, it.Workers)
	if err != nil {
		return StepReport{}, fmt.Errorf("step: %w", err)
	}

	report := StepReport{Bodies: store.Len()}

	// Commit: each body reads only its own force slot
	store.each(func(i int, b *PointMass) {
		accel := vmath.V3FScale(forces[i], 1.0/b.mass)
		b.Velocity = vmath.V3FAdd(b.Velocity, vmath.V3FScale(accel, timeStep))

		for axis := 0; axis < 3; axis++ {
			if !bounds.OutsideAxis(b.Position, axis) {
				continue
			}
			v := b.Velocity.AxisPtr(axis)
			report.Contacts = append(report.Contacts, WallContact{
				ID:    b.ID,
				Axis:  axis,
				Speed: math.Abs(*v),
			})
			*v = -*v * wallElasticity
		}
		b.Position = bounds.ClampPoint(b.Position)

		b.Position = vmath.V3FAdd(b.Position, vmath.V3FScale(b.Velocity, timeStep))
	})

	return report, nil
}
