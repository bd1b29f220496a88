// Package service owns the live simulation for the transport layer and
// serializes every call into the engine.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/metrics"
	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/sim"
	"github.com/san-kum/mechsim/internal/vec"
)

// Parser turns problem text into a scenario.
type Parser interface {
	Parse(ctx context.Context, text string) (scenario.Scenario, error)
}

// Service holds at most one simulation. All methods are safe for
// concurrent use.
type Service struct {
	mu      sync.Mutex
	cfg     config.SimConfig
	parser  Parser
	logger  *slog.Logger
	stepper *sim.Stepper
	current *scenario.Scenario
}

func New(cfg config.SimConfig, p Parser, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, parser: p, logger: logger}
}

// BodySpec describes a body added to a running simulation.
type BodySpec struct {
	Mass     float64  `json:"mass"`
	Position vec.Vec2 `json:"position"`
	Velocity vec.Vec2 `json:"velocity"`
	Radius   float64  `json:"radius"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Shape    string   `json:"shape"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
}

// WorldUpdate changes only the fields that are set.
type WorldUpdate struct {
	GravityEnabled   *bool    `json:"gravity_enabled"`
	GravityStrength  *float64 `json:"gravity_strength"`
	CollisionEnabled *bool    `json:"collision_enabled"`
}

type CircularSettings struct {
	Center          vec.Vec2 `json:"center"`
	Radius          float64  `json:"radius"`
	AngularVelocity float64  `json:"angular_velocity"`
	InitialAngle    float64  `json:"initial_angle"`
	Enabled         bool     `json:"enabled"`
}

func (s *Service) create(sc scenario.Scenario, source string) (*physics.WorldSnapshot, error) {
	w, err := scenario.Build(sc)
	if err != nil {
		return nil, err
	}
	st, err := sim.New(w, sim.Config{Dt: s.cfg.Dt, MaxTime: s.cfg.MaxTime})
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		st.AddMetric(m)
	}

	s.stepper = st
	s.current = &sc
	s.logger.Info("simulation created",
		"source", source,
		"scenario", sc.ScenarioType,
		"bodies", w.Len(),
	)
	return w.Snapshot(), nil
}

func (s *Service) CreateFromScenario(sc scenario.Scenario) (*physics.WorldSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(sc, "scenario")
}

// CreateFromText parses text and builds a simulation from the result.
// The parser runs outside the lock.
func (s *Service) CreateFromText(ctx context.Context, text string) (*physics.WorldSnapshot, error) {
	sc, err := s.parser.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(sc, "text")
}

func (s *Service) CreatePreset(name string, params map[string]float64) (*physics.WorldSnapshot, error) {
	sc, err := scenario.Preset(name, params)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(sc, "preset")
}

// Scenario returns the scenario the current simulation was built from.
func (s *Service) Scenario() (scenario.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return scenario.Scenario{}, ErrNoSimulation
	}
	return *s.current, nil
}

// with runs fn under the lock with the active stepper.
func (s *Service) with(fn func(st *sim.Stepper) error) (*physics.WorldSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepper == nil {
		return nil, ErrNoSimulation
	}
	if err := fn(s.stepper); err != nil {
		return nil, err
	}
	return s.stepper.World().Snapshot(), nil
}

func (s *Service) State() (*physics.WorldSnapshot, error) {
	return s.with(func(*sim.Stepper) error { return nil })
}

// Step advances up to n steps; it is a no-op while stopped.
func (s *Service) Step(n int) (*physics.WorldSnapshot, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: num_steps must be at least 1, got %d", ErrInvalidParameter, n)
	}
	return s.with(func(st *sim.Stepper) error {
		st.RunSteps(n)
		return nil
	})
}

func (s *Service) StepOnce() (*physics.WorldSnapshot, error) {
	return s.with(func(st *sim.Stepper) error {
		st.StepOnce()
		return nil
	})
}

func (s *Service) Reset() (*physics.WorldSnapshot, error) {
	return s.with(func(st *sim.Stepper) error {
		st.Reset()
		return nil
	})
}

func (s *Service) Start() error {
	_, err := s.with(func(st *sim.Stepper) error {
		st.Start()
		return nil
	})
	return err
}

func (s *Service) Stop() error {
	_, err := s.with(func(st *sim.Stepper) error {
		st.Stop()
		return nil
	})
	return err
}

func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepper != nil && s.stepper.Running()
}

// Metrics returns the current value of every attached metric.
func (s *Service) Metrics() (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepper == nil {
		return nil, ErrNoSimulation
	}
	return s.stepper.Metrics(), nil
}

// Tick advances one step and reports whether the simulation is still
// running afterwards.
func (s *Service) Tick() (*physics.WorldSnapshot, bool, error) {
	var running bool
	snap, err := s.with(func(st *sim.Stepper) error {
		st.Step()
		running = st.Running()
		return nil
	})
	return snap, running, err
}

// Stream starts the simulation and emits one snapshot per interval until
// the simulation stops, emit returns false, or ctx is done.
func (s *Service) Stream(ctx context.Context, interval time.Duration, emit func(*physics.WorldSnapshot) bool) error {
	if err := s.Start(); err != nil {
		return err
	}
	var tickErr error
	err := sim.Pace(ctx, interval, func() bool {
		snap, running, err := s.Tick()
		if err != nil {
			tickErr = err
			return false
		}
		return emit(snap) && running
	})
	if err != nil {
		return err
	}
	return tickErr
}
