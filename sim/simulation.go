package sim

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/scene"
	"github.com/lixenwraith/vi-gravity/status"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Metric keys published to the status registry
const (
	MetricSteps      = "sim.steps"
	MetricBodies     = "sim.bodies"
	MetricContacts   = "sim.wall_contacts"
	MetricRejected   = "sim.rejected_bodies"
	MetricStepMicros = "sim.step_us"
	MetricMomentum   = "sim.momentum"
	MetricEnergy     = "sim.energy"
	MetricGravity    = "sim.g"
	MetricElasticity = "sim.elasticity"
	MetricSceneName  = "scene.name"
)

// ContactListener receives wall contacts after each successful tick
type ContactListener interface {
	OnWallContacts(contacts []physics.WallContact)
}

// BodyState is the host view of one body after a tick
type BodyState struct {
	ID       physics.BodyID
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Mass     float64
	Radius   float64
	Color    string
}

// appearance holds host-only attributes, never read by the integrator
type appearance struct {
	radius float64
	color  string
}

// Simulation runs one scene: it owns the body store and per-run parameters
// and is driven by the host once per frame via Tick
type Simulation struct {
	cfg        scene.Config
	store      *physics.Store
	integrator physics.Integrator
	looks      map[physics.BodyID]appearance

	gravitationalConstant float64
	wallElasticity        float64

	listener ContactListener

	// Cached metric pointers
	steps      *atomic.Int64
	bodies     *atomic.Int64
	contacts   *atomic.Int64
	rejected   *atomic.Int64
	stepMicros *atomic.Int64
	momentum   *status.AtomicFloat
	energy     *status.AtomicFloat
	gravity    *status.AtomicFloat
	elasticity *status.AtomicFloat
}

// New creates a simulation for cfg and registers its bodies
// A non-nil error alongside a non-nil Simulation lists bodies that were skipped
func New(cfg scene.Config, metrics *status.Registry) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", cfg.Name, err)
	}
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	s := &Simulation{
		cfg:                   cfg,
		store:                 physics.NewStore(),
		integrator:            physics.Integrator{Workers: cfg.Workers},
		looks:                 make(map[physics.BodyID]appearance),
		gravitationalConstant: cfg.GravitationalConstant,
		wallElasticity:        cfg.WallElasticity,

		steps:      metrics.Ints.Get(MetricSteps),
		bodies:     metrics.Ints.Get(MetricBodies),
		contacts:   metrics.Ints.Get(MetricContacts),
		rejected:   metrics.Ints.Get(MetricRejected),
		stepMicros: metrics.Ints.Get(MetricStepMicros),
		momentum:   metrics.Floats.Get(MetricMomentum),
		energy:     metrics.Floats.Get(MetricEnergy),
		gravity:    metrics.Floats.Get(MetricGravity),
		elasticity: metrics.Floats.Get(MetricElasticity),
	}
	metrics.Strings.Get(MetricSceneName).Store(cfg.Name)

	err := s.Populate()
	return s, err
}

// SetContactListener registers l to receive wall contacts, nil disables
func (s *Simulation) SetContactListener(l ContactListener) {
	s.listener = l
}

// Populate registers every scene body in the store
// Bodies whose mass basis is rejected are skipped; their errors are joined and returned
func (s *Simulation) Populate() error {
	specs, err := s.cfg.ResolvedBodies()
	if err != nil {
		return fmt.Errorf("resolve bodies: %w", err)
	}

	var errs []error
	for i, spec := range specs {
		if _, err := s.AddBody(spec); err != nil {
			errs = append(errs, fmt.Errorf("scene body %d: %w", i, err))
		}
	}

	s.rejected.Store(int64(len(errs)))
	s.publish(physics.StepReport{Bodies: s.store.Len()})
	return errors.Join(errs...)
}

// AddBody registers one body, mass is derived from its radius
func (s *Simulation) AddBody(spec scene.BodySpec) (physics.BodyID, error) {
	pos := vmath.V3F(spec.Position[0], spec.Position[1], spec.Position[2])
	id, err := s.store.Create(pos, scene.MassBasis(spec.Radius))
	if err != nil {
		return 0, err
	}

	b, err := s.store.GetMut(id)
	if err != nil {
		return 0, err
	}
	b.Velocity = vmath.V3F(spec.Velocity[0], spec.Velocity[1], spec.Velocity[2])

	s.looks[id] = appearance{radius: spec.Radius, color: spec.Color}
	s.bodies.Store(int64(s.store.Len()))
	return id, nil
}

// Reset tears down all bodies and re-registers the scene
func (s *Simulation) Reset() error {
	s.store.Clear()
	s.looks = make(map[physics.BodyID]appearance)
	s.steps.Store(0)
	s.contacts.Store(0)
	s.gravitationalConstant = s.cfg.GravitationalConstant
	s.wallElasticity = s.cfg.WallElasticity
	return s.Populate()
}

// Tick advances the simulation by elapsed host time scaled by the scene time scale
// Bounds are taken fresh every call
func (s *Simulation) Tick(elapsed time.Duration, bounds vmath.Box3F) (physics.StepReport, error) {
	dt := elapsed.Seconds() * s.cfg.TimeScale

	start := time.Now()
	report, err := s.integrator.Step(s.store, dt, s.gravitationalConstant, s.wallElasticity, bounds)
	if err != nil {
		return report, err
	}
	s.stepMicros.Store(time.Since(start).Microseconds())

	s.steps.Add(1)
	s.contacts.Add(int64(len(report.Contacts)))
	s.publish(report)

	if s.listener != nil && len(report.Contacts) > 0 {
		s.listener.OnWallContacts(report.Contacts)
	}
	return report, nil
}

func (s *Simulation) publish(report physics.StepReport) {
	s.bodies.Store(int64(report.Bodies))
	s.momentum.Set(vmath.V3FMag(physics.Momentum(s.store)))
	s.energy.Set(physics.KineticEnergy(s.store) + physics.PotentialEnergy(s.store, s.gravitationalConstant))
	s.gravity.Set(s.gravitationalConstant)
	s.elasticity.Set(s.wallElasticity)
}

// Bodies returns the current state of every body in store order
func (s *Simulation) Bodies() []BodyState {
	ids := s.store.All()
	out := make([]BodyState, 0, len(ids))
	for _, id := range ids {
		if b, err := s.Body(id); err == nil {
			out = append(out, b)
		}
	}
	return out
}

// Body returns the state of one body
func (s *Simulation) Body(id physics.BodyID) (BodyState, error) {
	b, err := s.store.Get(id)
	if err != nil {
		return BodyState{}, err
	}
	look := s.looks[id]
	return BodyState{
		ID:       id,
		Position: b.Position,
		Velocity: b.Velocity,
		Mass:     b.Mass(),
		Radius:   look.radius,
		Color:    look.color,
	}, nil
}

func (s *Simulation) GravitationalConstant() float64 { return s.gravitationalConstant }
func (s *Simulation) WallElasticity() float64        { return s.wallElasticity }
func (s *Simulation) SceneName() string              { return s.cfg.Name }

// SetGravitationalConstant changes G for subsequent ticks, negative values repel
func (s *Simulation) SetGravitationalConstant(g float64) {
	s.gravitationalConstant = g
	s.gravity.Set(g)
}

// SetWallElasticity changes restitution for subsequent ticks
func (s *Simulation) SetWallElasticity(e float64) {
	s.wallElasticity = e
	s.elasticity.Set(e)
}

// ViewportBounds returns the reflective box for a viewport of the given world size:
// x and y span the viewport centered on the origin, z spans [-1, 1]
func ViewportBounds(width, height float64) vmath.Box3F {
	return vmath.CenteredBox3F(width/2, height/2, 1)
}
