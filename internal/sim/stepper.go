package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/mechsim/internal/physics"
)

// Stepper drives a World with a fixed timestep. It is Idle until Start,
// runs until Stop or until world time reaches MaxTime, and honors a
// one-shot single step request in either state.
//
// Stepper is not safe for concurrent use.
type Stepper struct {
	world      *physics.World
	dt         float64
	maxTime    float64
	running    bool
	singleStep bool
	steps      int

	metrics   []Metric
	observers []Observer
}

func New(w *physics.World, cfg Config) (*Stepper, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Stepper{
		world:   w,
		dt:      cfg.Dt,
		maxTime: cfg.MaxTime,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxTime <= 0 {
		return fmt.Errorf("%w: max time must be positive, got %f", ErrInvalidConfig, cfg.MaxTime)
	}
	return nil
}

func (s *Stepper) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Stepper) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Stepper) World() *physics.World { return s.world }
func (s *Stepper) Dt() float64           { return s.dt }
func (s *Stepper) MaxTime() float64      { return s.maxTime }
func (s *Stepper) Running() bool         { return s.running }
func (s *Stepper) Steps() int            { return s.steps }

// SetMaxTime changes the simulated time ceiling. Non-positive values are ignored.
func (s *Stepper) SetMaxTime(t float64) {
	if t > 0 {
		s.maxTime = t
	}
}

// Done reports whether world time has reached the ceiling.
func (s *Stepper) Done() bool { return s.world.Time >= s.maxTime }

func (s *Stepper) Start() { s.running = true }
func (s *Stepper) Stop()  { s.running = false }

// Step executes one world step if running or a single step is pending,
// and reports whether it did. Reaching MaxTime stops the stepper and
// clears any pending single step.
func (s *Stepper) Step() bool {
	if !s.running && !s.singleStep {
		return false
	}
	if s.Done() {
		s.running = false
		s.singleStep = false
		return false
	}

	s.world.Step(s.dt)
	s.steps++

	for _, m := range s.metrics {
		m.Observe(s.world)
	}
	for _, o := range s.observers {
		o.OnStep(s.world)
	}

	s.singleStep = false
	return true
}

// RunSteps calls Step n times and returns the resulting snapshot.
func (s *Stepper) RunSteps(n int) *physics.WorldSnapshot {
	for i := 0; i < n; i++ {
		s.Step()
	}
	return s.world.Snapshot()
}

// StepOnce executes exactly one step regardless of the running state.
func (s *Stepper) StepOnce() *physics.WorldSnapshot {
	s.singleStep = true
	s.Step()
	return s.world.Snapshot()
}

// Reset stops the stepper and restores the world to its initial state.
func (s *Stepper) Reset() {
	s.running = false
	s.singleStep = false
	s.steps = 0
	s.world.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Run starts the stepper and steps as fast as possible until the time
// ceiling, Stop, or ctx cancellation. Non-finite body state aborts the
// run with a StepError.
func (s *Stepper) Run(ctx context.Context) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
	}

	s.Start()
	for s.running {
		select {
		case <-ctx.Done():
			s.Stop()
			return s.result(), ctx.Err()
		default:
		}

		if !s.Step() {
			break
		}
		if err := s.validate(); err != nil {
			s.Stop()
			return s.result(), err
		}
	}
	s.Stop()
	return s.result(), nil
}

func (s *Stepper) validate() error {
	for _, b := range s.world.Bodies() {
		if !finite(b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y) {
			return &StepError{Step: s.steps, Time: s.world.Time, Body: b.ID, Wrapped: ErrInvalidState}
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Metrics returns the current value of every attached metric.
func (s *Stepper) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Stepper) result() *Result {
	r := &Result{
		Steps:      s.steps,
		Time:       s.world.Time,
		EnergyLoss: s.world.Tracker().Loss(),
		Metrics:    s.Metrics(),
	}
	if e, ok := s.world.Tracker().Initial(); ok {
		r.InitialEnergy = e
	}
	return r
}

// Pace calls tick once per interval until it returns false or ctx is done.
func Pace(ctx context.Context, interval time.Duration, tick func() bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !tick() {
				return nil
			}
		}
	}
}
