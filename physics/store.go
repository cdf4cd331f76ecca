package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/vi-gravity/vmath"
)

// Sentinel errors
var (
	ErrInvalidMassBasis        = errors.New("mass basis must be positive and finite")
	ErrUnknownBody             = errors.New("unknown body")
	ErrDegenerateConfiguration = errors.New("degenerate configuration: coincident bodies")
	ErrInvalidTimeStep         = errors.New("time step must be non-negative and finite")
)

// BodyID identifies a point mass for the lifetime of a store, zero is never issued
type BodyID uint64

// PointMass is a body with position, velocity and an immutable mass
type PointMass struct {
	ID       BodyID
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	mass     float64
}

// Mass returns the body's mass, always > 0
func (p *PointMass) Mass() float64 {
	return p.mass
}

// Store owns the state of every simulated body
// Dense slice gives stable insertion-order iteration, index map gives O(1) lookup
// Not safe for concurrent use, one store belongs to one simulation run
type Store struct {
	bodies []*PointMass
	index  map[BodyID]int
	nextID BodyID
}

// NewStore creates an empty body store
func NewStore() *Store {
	return &Store{
		bodies: make([]*PointMass, 0, 16),
		index:  make(map[BodyID]int),
		nextID: 1,
	}
}

// Create registers a body at rest with mass equal to massBasis
func (s *Store) Create(initialPosition vmath.Vec3F, massBasis float64) (BodyID, error) {
	if !(massBasis > 0) || math.IsInf(massBasis, 1) {
		return 0, fmt.Errorf("create body: %w: got %v", ErrInvalidMassBasis, massBasis)
	}

	id := s.nextID
	s.nextID++

	s.index[id] = len(s.bodies)
	s.bodies = append(s.bodies, &PointMass{
		ID:       id,
		Position: initialPosition,
		mass:     massBasis,
	})
	return id, nil
}

// All returns body ids in insertion order
func (s *Store) All() []BodyID {
	ids := make([]BodyID, len(s.bodies))
	for i, b := range s.bodies {
		ids[i] = b.ID
	}
	return ids
}

// Get returns a copy of the body state
func (s *Store) Get(id BodyID) (PointMass, error) {
	b, err := s.GetMut(id)
	if err != nil {
		return PointMass{}, err
	}
	return *b, nil
}

// GetMut returns a pointer to the stored body, valid until Clear
func (s *Store) GetMut(id BodyID) (*PointMass, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("body %d: %w", id, ErrUnknownBody)
	}
	return s.bodies[i], nil
}

// Len returns the number of registered bodies
func (s *Store) Len() int {
	return len(s.bodies)
}

// Clear removes every body, ids already issued stay retired
func (s *Store) Clear() {
	s.bodies = make([]*PointMass, 0, 16)
	s.index = make(map[BodyID]int)
}

// each iterates bodies in store order
func (s *Store) each(fn func(i int, b *PointMass)) {
	for i, b := range s.bodies {
		fn(i, b)
	}
}
