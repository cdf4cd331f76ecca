package physics

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/vi-gravity/vmath"
)

// snapshot is the read-only view of pre-step state shared by force workers
type snapshot struct {
	ids       []BodyID
	positions []vmath.Vec3F
	masses    []float64
}

func takeSnapshot(s *Store) snapshot {
	n := s.Len()
	snap := snapshot{
		ids:       make([]BodyID, n),
		positions: make([]vmath.Vec3F, n),
		masses:    make([]float64, n),
	}
	s.each(func(i int, b *PointMass) {
		snap.ids[i] = b.ID
		snap.positions[i] = b.Position
		snap.masses[i] = b.mass
	})
	return snap
}

// GravitationalForce returns the force on a body at posA exerted by a body at posB
// F = G * mA * mB / d² along the unit vector from A to B
// Coincident positions yield a non-finite vector, callers must check distance first
func GravitationalForce(posA, posB vmath.Vec3F, massA, massB, G float64) vmath.Vec3F {
	delta := vmath.V3FSub(posB, posA)
	distSq := vmath.V3FMagSq(delta)
	dir := vmath.V3FNormalize(delta)
	return vmath.V3FScale(dir, G*massA*massB/distSq)
}

// netForce sums the pairwise force on body i over all j != i in snapshot order
func (snap *snapshot) netForce(i int, G float64) (vmath.Vec3F, error) {
	var net vmath.Vec3F
	pi, mi := snap.positions[i], snap.masses[i]
	for j := range snap.positions {
		if j == i {
			continue
		}
		pj := snap.positions[j]
		if vmath.V3FDistSq(pi, pj) == 0 {
			return vmath.Vec3F{}, fmt.Errorf("%w: bodies %d and %d at %v",
				ErrDegenerateConfiguration, snap.ids[i], snap.ids[j], pi)
		}
		net = vmath.V3FAdd(net, GravitationalForce(pi, pj, mi, snap.masses[j], G))
	}
	return net, nil
}

// computeForces fills one net force per body
// workers <= 1 runs serially; otherwise contiguous index ranges are split across goroutines,
// each writing only its own slots of the output buffer
func (snap *snapshot) computeForces(G float64, workers int) ([]vmath.Vec3F, error) {
	n := len(snap.positions)
	forces := make([]vmath.Vec3F, n)
	if n == 0 {
		return forces, nil
	}

	if workers <= 1 || n < 2*workers {
		for i := 0; i < n; i++ {
			f, err := snap.netForce(i, G)
			if err != nil {
				return nil, err
			}
			forces[i] = f
		}
		return forces, nil
	}

	chunk := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				f, err := snap.netForce(i, G)
				if err != nil {
					errs[w] = err
					return
				}
				forces[i] = f
			}
		}(w, start, end)
	}
	wg.Wait()

	// Chunks are index-ordered, first error is the lowest-index degenerate body
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return forces, nil
}
