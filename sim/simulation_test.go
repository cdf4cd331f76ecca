package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/scene"
	"github.com/lixenwraith/vi-gravity/status"
	"github.com/lixenwraith/vi-gravity/vmath"
)

type recordingListener struct {
	calls    int
	contacts []physics.WallContact
}

func (r *recordingListener) OnWallContacts(c []physics.WallContact) {
	r.calls++
	r.contacts = append(r.contacts, c...)
}

func twoBodyScene() scene.Config {
	cfg := scene.DefaultConfig()
	cfg.Name = "pair"
	cfg.BodyDefaults = scene.BodySpec{Radius: 1}
	cfg.Bodies = []scene.BodySpec{
		{Position: [3]float64{-10, 0, 0}, Color: "#ff0000"},
		{Position: [3]float64{10, 0, 0}},
	}
	return cfg
}

func TestNewRegistersBodies(t *testing.T) {
	metrics := status.NewRegistry()
	s, err := New(twoBodyScene(), metrics)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	bodies := s.Bodies()
	if len(bodies) != 2 {
		t.Fatalf("bodies = %d, want 2", len(bodies))
	}
	if bodies[0].Mass != 1 || bodies[0].Radius != 1 || bodies[0].Color != "#ff0000" {
		t.Errorf("body 0 = %+v", bodies[0])
	}
	if got := metrics.Ints.Get(MetricBodies).Load(); got != 2 {
		t.Errorf("bodies metric = %d, want 2", got)
	}
	if got := metrics.Strings.Get(MetricSceneName).Load(); got != "pair" {
		t.Errorf("scene metric = %q", got)
	}
}

func TestNewSkipsInvalidBodies(t *testing.T) {
	cfg := twoBodyScene()
	cfg.Bodies = append(cfg.Bodies, scene.BodySpec{Position: [3]float64{0, 5, 0}, Radius: -3})

	metrics := status.NewRegistry()
	s, err := New(cfg, metrics)
	if !errors.Is(err, physics.ErrInvalidMassBasis) {
		t.Fatalf("err = %v, want ErrInvalidMassBasis", err)
	}
	if s == nil {
		t.Fatal("simulation should still be usable")
	}
	if len(s.Bodies()) != 2 {
		t.Errorf("bodies = %d, want 2 (invalid one skipped)", len(s.Bodies()))
	}
	if got := metrics.Ints.Get(MetricRejected).Load(); got != 1 {
		t.Errorf("rejected metric = %d, want 1", got)
	}
}

func TestNewRejectsInvalidScene(t *testing.T) {
	cfg := twoBodyScene()
	cfg.TimeScale = -1
	if s, err := New(cfg, nil); err == nil || s != nil {
		t.Errorf("New = %v, %v; want nil, error", s, err)
	}
}

func TestTickAttraction(t *testing.T) {
	s, err := New(twoBodyScene(), nil)
	if err != nil {
		t.Fatal(err)
	}

	report, err := s.Tick(time.Second, ViewportBounds(1000, 1000))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if report.Bodies != 2 || len(report.Contacts) != 0 {
		t.Errorf("report = %+v", report)
	}

	bodies := s.Bodies()
	if math.Abs(bodies[0].Velocity.X-0.0025) > 1e-12 {
		t.Errorf("left velocity = %v", bodies[0].Velocity)
	}
	if math.Abs(bodies[1].Velocity.X+0.0025) > 1e-12 {
		t.Errorf("right velocity = %v", bodies[1].Velocity)
	}
}

func TestTickTimeScale(t *testing.T) {
	cfg := twoBodyScene()
	cfg.TimeScale = 2
	s, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Tick(500*time.Millisecond, ViewportBounds(1000, 1000)); err != nil {
		t.Fatal(err)
	}
	// 0.5s scaled by 2 is one simulated second
	if got := s.Bodies()[0].Velocity.X; math.Abs(got-0.0025) > 1e-12 {
		t.Errorf("velocity = %v, want 0.0025", got)
	}
}

func TestTickNotifiesContacts(t *testing.T) {
	cfg := twoBodyScene()
	cfg.Bodies = []scene.BodySpec{{Position: [3]float64{105, 0, 0}, Velocity: [3]float64{10, 0, 0}}}
	metrics := status.NewRegistry()
	s, err := New(cfg, metrics)
	if err != nil {
		t.Fatal(err)
	}

	l := &recordingListener{}
	s.SetContactListener(l)

	if _, err := s.Tick(0, ViewportBounds(200, 200)); err != nil {
		t.Fatal(err)
	}
	if l.calls != 1 || len(l.contacts) != 1 || l.contacts[0].Speed != 10 {
		t.Errorf("listener = %+v", l)
	}

	b := s.Bodies()[0]
	if b.Velocity.X != -5 || b.Position.X != 100 {
		t.Errorf("body = %+v, want v.x=-5 x=100", b)
	}
	if got := metrics.Ints.Get(MetricContacts).Load(); got != 1 {
		t.Errorf("contacts metric = %d", got)
	}
	if got := metrics.Ints.Get(MetricSteps).Load(); got != 1 {
		t.Errorf("steps metric = %d", got)
	}

	// Quiet tick: no callback
	if _, err := s.Tick(0, ViewportBounds(200, 200)); err != nil {
		t.Fatal(err)
	}
	if l.calls != 1 {
		t.Errorf("listener called without contacts")
	}
}

func TestTickDegenerateSurfaces(t *testing.T) {
	cfg := twoBodyScene()
	cfg.Bodies = []scene.BodySpec{
		{Position: [3]float64{3, 3, 0}},
		{Position: [3]float64{3, 3, 0}},
	}
	metrics := status.NewRegistry()
	s, err := New(cfg, metrics)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Tick(time.Second, ViewportBounds(100, 100)); !errors.Is(err, physics.ErrDegenerateConfiguration) {
		t.Errorf("err = %v, want ErrDegenerateConfiguration", err)
	}
	if got := metrics.Ints.Get(MetricSteps).Load(); got != 0 {
		t.Errorf("failed tick counted: steps = %d", got)
	}
}

func TestRuntimeParameters(t *testing.T) {
	metrics := status.NewRegistry()
	s, err := New(twoBodyScene(), metrics)
	if err != nil {
		t.Fatal(err)
	}

	s.SetGravitationalConstant(-1)
	s.SetWallElasticity(0.9)
	if s.GravitationalConstant() != -1 || s.WallElasticity() != 0.9 {
		t.Fatal("setters not applied")
	}
	if metrics.Floats.Get(MetricElasticity).Get() != 0.9 {
		t.Error("elasticity metric not updated")
	}

	if _, err := s.Tick(time.Second, ViewportBounds(1000, 1000)); err != nil {
		t.Fatal(err)
	}
	if got := s.Bodies()[0].Velocity.X; got >= 0 {
		t.Errorf("negative G should repel, velocity = %v", got)
	}
}

func TestReset(t *testing.T) {
	s, err := New(twoBodyScene(), nil)
	if err != nil {
		t.Fatal(err)
	}
	before := s.Bodies()

	s.SetGravitationalConstant(50)
	for i := 0; i < 5; i++ {
		if _, err := s.Tick(time.Second, ViewportBounds(1000, 1000)); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	after := s.Bodies()
	if len(after) != len(before) {
		t.Fatalf("bodies after reset = %d", len(after))
	}
	for i := range after {
		if after[i].Position != before[i].Position || after[i].Velocity != before[i].Velocity {
			t.Errorf("body %d not restored: %+v", i, after[i])
		}
		if after[i].ID == before[i].ID {
			t.Errorf("body %d kept stale id %d", i, after[i].ID)
		}
	}
	if s.GravitationalConstant() != 1 {
		t.Errorf("G not restored: %v", s.GravitationalConstant())
	}

	if _, err := s.Body(before[0].ID); !errors.Is(err, physics.ErrUnknownBody) {
		t.Errorf("stale id lookup: err = %v", err)
	}
}

func TestViewportBounds(t *testing.T) {
	b := ViewportBounds(200, 100)
	if b.Min != vmath.V3F(-100, -50, -1) || b.Max != vmath.V3F(100, 50, 1) {
		t.Errorf("bounds = %+v", b)
	}
}
