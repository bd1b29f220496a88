package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

type countMetric struct{ n int }

func (c *countMetric) Name() string             { return "count" }
func (c *countMetric) Observe(w *physics.World) { c.n++ }
func (c *countMetric) Value() float64           { return float64(c.n) }
func (c *countMetric) Reset()                   { c.n = 0 }

type timeObserver struct{ times []float64 }

func (o *timeObserver) OnStep(w *physics.World) { o.times = append(o.times, w.Time) }

func newStepper(t *testing.T, cfg Config) *Stepper {
	t.Helper()
	w := physics.NewWorld(100, 100, -1000)
	b := physics.NewBody("ball", 1, vec.New(50, 0), vec.New(0, 10))
	b.ApplyForce(physics.NewGravity(9.8))
	if err := w.AddBody(b); err != nil {
		t.Fatal(err)
	}
	s, err := New(w, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, MaxTime: 1}},
		{"negative dt", Config{Dt: -0.1, MaxTime: 1}},
		{"zero max time", Config{Dt: 0.1, MaxTime: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(physics.NewWorld(1, 1, 0), tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStepper_IdleIsNoop(t *testing.T) {
	s := newStepper(t, DefaultConfig())
	snap := s.RunSteps(10)
	if snap.Time != 0 || s.Steps() != 0 {
		t.Errorf("expected no progress while idle, got time %f", snap.Time)
	}
}

func TestStepper_StepOnce(t *testing.T) {
	s := newStepper(t, DefaultConfig())

	snap := s.StepOnce()
	if math.Abs(snap.Time-s.Dt()) > 1e-12 {
		t.Errorf("expected time %f, got %f", s.Dt(), snap.Time)
	}
	if s.Running() {
		t.Error("single step must not start the stepper")
	}
	// pending flag is cleared
	if s.Step() {
		t.Error("expected Step to be a no-op after the single step")
	}
	if len(snap.EnergyHistory.History) != 1 {
		t.Errorf("expected 1 energy sample, got %d", len(snap.EnergyHistory.History))
	}
}

func TestStepper_MaxTime(t *testing.T) {
	s := newStepper(t, Config{Dt: 0.1, MaxTime: 1})
	s.Start()

	s.RunSteps(50)
	if s.Running() {
		t.Error("expected stepper to stop at max time")
	}
	if s.Steps() != 10 && s.Steps() != 11 {
		t.Errorf("expected about 10 steps, got %d", s.Steps())
	}
	if !s.Done() {
		t.Error("expected Done at max time")
	}

	before := s.World().Time
	s.StepOnce()
	if s.World().Time != before {
		t.Error("single step must not advance past max time")
	}
}

func TestStepper_ConcreteScenario(t *testing.T) {
	s := newStepper(t, DefaultConfig())
	s.Start()

	n := int(math.Ceil(2 * 10 / 9.8 / s.Dt()))
	snap := s.RunSteps(n)

	ball := snap.Objects[0]
	if math.Abs(ball.Position.Y) > 0.5 {
		t.Errorf("expected y ≈ 0, got %f", ball.Position.Y)
	}
	if math.Abs(ball.Velocity.Y+10) > 0.2 {
		t.Errorf("expected vy ≈ -10, got %f", ball.Velocity.Y)
	}
}

func TestStepper_Reset(t *testing.T) {
	s := newStepper(t, DefaultConfig())
	m := &countMetric{}
	s.AddMetric(m)
	s.Start()
	s.RunSteps(30)

	s.Reset()

	w := s.World()
	if s.Running() || w.Time != 0 || w.Tracker().Len() != 0 || m.n != 0 {
		t.Errorf("expected clean state, got running=%v time=%f history=%d metric=%d",
			s.Running(), w.Time, w.Tracker().Len(), m.n)
	}
	b, _ := w.Body("ball")
	if b.Position != vec.New(50, 0) || b.Velocity != vec.New(0, 10) {
		t.Errorf("expected initial state, got %v %v", b.Position, b.Velocity)
	}
}

func TestStepper_Run(t *testing.T) {
	s := newStepper(t, Config{Dt: 0.01, MaxTime: 0.5})
	m := &countMetric{}
	o := &timeObserver{}
	s.AddMetric(m)
	s.AddObserver(o)

	res, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Steps != m.n || len(o.times) != m.n {
		t.Errorf("expected metric and observer to see every step, got %d/%d/%d", res.Steps, m.n, len(o.times))
	}
	if res.Metrics["count"] != float64(res.Steps) {
		t.Errorf("expected count metric %d, got %f", res.Steps, res.Metrics["count"])
	}
	if res.Time < 0.5-1e-9 {
		t.Errorf("expected to reach max time, got %f", res.Time)
	}
	if s.Running() {
		t.Error("expected stepper stopped after run")
	}
}

func TestStepper_RunCanceled(t *testing.T) {
	s := newStepper(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestStepper_RunInvalidState(t *testing.T) {
	s := newStepper(t, DefaultConfig())
	b, _ := s.World().Body("ball")
	b.ApplyForce(physics.NewConstant(vec.New(math.Inf(1), 0)))

	_, err := s.Run(context.Background())
	var stepErr *StepError
	if !errors.As(err, &stepErr) || !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected StepError wrapping ErrInvalidState, got %v", err)
	}
	if stepErr.Body != "ball" || stepErr.Step != 1 {
		t.Errorf("unexpected error context: %+v", stepErr)
	}
}

func TestPace(t *testing.T) {
	calls := 0
	err := Pace(context.Background(), time.Millisecond, func() bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 ticks, got %d", calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Pace(ctx, time.Hour, func() bool { return true }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
