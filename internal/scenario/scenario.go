// Package scenario describes simulations as data and builds physics worlds
// from them.
package scenario

import (
	"fmt"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

// Entity defaults.
const (
	DefaultMass   = 1.0
	DefaultRadius = 0.5
	DefaultColor  = "#3498db"

	DefaultWidth    = 100.0
	DefaultHeight   = 100.0
	DefaultDuration = 10.0
)

var (
	DefaultPosition = vec.New(50, 0)
	DefaultCenter   = vec.New(50, 50)
)

type Scenario struct {
	Description  string      `json:"description" yaml:"description"`
	ScenarioType string      `json:"scenario_type" yaml:"scenario_type"`
	Entities     []Entity    `json:"entities" yaml:"entities"`
	Forces       []ForceSpec `json:"forces,omitempty" yaml:"forces,omitempty"`
	Environment  Environment `json:"environment" yaml:"environment"`
	Duration     float64     `json:"duration,omitempty" yaml:"duration,omitempty"`
}

type Entity struct {
	Name            string        `json:"name" yaml:"name"`
	Type            string        `json:"type,omitempty" yaml:"type,omitempty"`
	Mass            float64       `json:"mass,omitempty" yaml:"mass,omitempty"`
	Radius          float64       `json:"radius,omitempty" yaml:"radius,omitempty"`
	Color           string        `json:"color,omitempty" yaml:"color,omitempty"`
	Shape           string        `json:"shape,omitempty" yaml:"shape,omitempty"`
	Width           float64       `json:"width,omitempty" yaml:"width,omitempty"`
	Height          float64       `json:"height,omitempty" yaml:"height,omitempty"`
	InitialPosition *vec.Vec2     `json:"initial_position,omitempty" yaml:"initial_position,omitempty"`
	InitialVelocity vec.Vec2      `json:"initial_velocity" yaml:"initial_velocity"`
	CollisionType   string        `json:"collision_type,omitempty" yaml:"collision_type,omitempty"`
	Restitution     *float64      `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	Static          bool          `json:"static,omitempty" yaml:"static,omitempty"`
	Forces          []ForceSpec   `json:"forces,omitempty" yaml:"forces,omitempty"`
	CircularMotion  *CircularSpec `json:"circular_motion,omitempty" yaml:"circular_motion,omitempty"`
}

// CircularSpec places an entity on a circle. LinearVelocity wins over
// AngularVelocity when both are set.
type CircularSpec struct {
	Center          *vec.Vec2 `json:"center,omitempty" yaml:"center,omitempty"`
	Radius          float64   `json:"radius,omitempty" yaml:"radius,omitempty"`
	LinearVelocity  *float64  `json:"linear_velocity,omitempty" yaml:"linear_velocity,omitempty"`
	AngularVelocity float64   `json:"angular_velocity,omitempty" yaml:"angular_velocity,omitempty"`
	Clockwise       bool      `json:"clockwise,omitempty" yaml:"clockwise,omitempty"`
}

type Environment struct {
	Width            float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height           float64 `json:"height,omitempty" yaml:"height,omitempty"`
	GroundLevel      float64 `json:"ground_level" yaml:"ground_level"`
	GravityEnabled   *bool   `json:"gravity_enabled,omitempty" yaml:"gravity_enabled,omitempty"`
	GravityStrength  float64 `json:"gravity_strength,omitempty" yaml:"gravity_strength,omitempty"`
	CollisionEnabled *bool   `json:"collision_enabled,omitempty" yaml:"collision_enabled,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// Validate reports structural problems that Build cannot default away.
func (s *Scenario) Validate() error {
	if len(s.Entities) == 0 {
		return fmt.Errorf("%w: no entities", ErrInvalidScenario)
	}
	for i, e := range s.Entities {
		if e.Mass < 0 {
			return fmt.Errorf("%w: entity %d (%s) has negative mass", ErrInvalidScenario, i, e.Name)
		}
		if e.Radius < 0 {
			return fmt.Errorf("%w: entity %d (%s) has negative radius", ErrInvalidScenario, i, e.Name)
		}
		if e.Shape != "" {
			if _, err := physics.ParseShape(e.Shape); err != nil {
				return fmt.Errorf("%w: entity %d: %w", ErrInvalidScenario, i, err)
			}
		}
		if e.CollisionType != "" {
			if _, err := physics.ParseCollisionType(e.CollisionType); err != nil {
				return fmt.Errorf("%w: entity %d: %w", ErrInvalidScenario, i, err)
			}
		}
		for _, f := range e.Forces {
			if err := f.validate(); err != nil {
				return err
			}
		}
	}
	for _, f := range s.Forces {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) width() float64 {
	if e.Width > 0 {
		return e.Width
	}
	return DefaultWidth
}

func (e *Environment) height() float64 {
	if e.Height > 0 {
		return e.Height
	}
	return DefaultHeight
}

func (e *Environment) gravityStrength() float64 {
	if e.GravityStrength > 0 {
		return e.GravityStrength
	}
	return physics.StandardGravity
}

func orTrue(b *bool) bool { return b == nil || *b }
