package service

import (
	"fmt"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/sim"
)

// AddBody adds a body built from spec. It gets the world's gravity when
// gravity is enabled. The id is the label, made unique.
func (s *Service) AddBody(spec BodySpec) (*physics.WorldSnapshot, error) {
	if !(spec.Mass > 0) {
		return nil, fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, spec.Mass)
	}
	if spec.Radius < 0 {
		return nil, fmt.Errorf("%w: radius must not be negative", ErrInvalidParameter)
	}
	var shape physics.Shape
	if spec.Shape != "" {
		var err error
		if shape, err = physics.ParseShape(spec.Shape); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
	}

	return s.with(func(st *sim.Stepper) error {
		w := st.World()
		if err := checkState(spec.Mass, spec.Position, spec.Velocity, w.GravityStrength); err != nil {
			return err
		}
		label := spec.Label
		if label == "" {
			label = "Object"
		}
		b := physics.NewBody(scenario.UniqueID(w, label), spec.Mass, spec.Position, spec.Velocity)
		b.Label = label
		if spec.Radius > 0 {
			b.Radius = spec.Radius
		}
		if spec.Color != "" {
			b.Color = spec.Color
		}
		if shape != "" {
			b.Shape = shape
		}
		if spec.Width > 0 {
			b.Width = spec.Width
		}
		if spec.Height > 0 {
			b.Height = spec.Height
		}
		if w.GravityEnabled {
			b.ApplyForce(physics.NewGravity(w.GravityStrength))
		}
		b.Refresh(w.GravityStrength)
		if err := w.AddBody(b); err != nil {
			return err
		}
		s.logger.Debug("body added", "id", b.ID)
		return nil
	})
}

func (s *Service) RemoveBody(id string) (*physics.WorldSnapshot, error) {
	return s.with(func(st *sim.Stepper) error {
		return st.World().RemoveBody(id)
	})
}

// UpdateParameter sets one body parameter and resets the simulation.
// Position and velocity also become the new reset target. A value of the
// wrong shape leaves the body unchanged.
func (s *Service) UpdateParameter(id, name string, value any) (*physics.WorldSnapshot, error) {
	return s.with(func(st *sim.Stepper) error {
		b, err := st.World().Body(id)
		if err != nil {
			return err
		}
		if err := applyParameter(b, name, value, st.World().GravityStrength); err != nil {
			return err
		}
		st.Reset()
		return nil
	})
}

func applyParameter(b *physics.Body, name string, value any, g float64) error {
	switch name {
	case "velocity":
		v, err := toVec(value)
		if err != nil {
			return err
		}
		if err := checkState(b.Mass, b.Position, v, g); err != nil {
			return err
		}
		b.Velocity = v
		b.InitialVelocity = v
	case "position":
		p, err := toVec(value)
		if err != nil {
			return err
		}
		if err := checkState(b.Mass, p, b.Velocity, g); err != nil {
			return err
		}
		b.Position = p
		b.InitialPosition = p
	case "mass":
		m, err := toFloat(value)
		if err != nil {
			return err
		}
		if m <= 0 {
			return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, m)
		}
		if err := checkState(m, b.Position, b.Velocity, g); err != nil {
			return err
		}
		b.Mass = m
	case "radius":
		r, err := toFloat(value)
		if err != nil {
			return err
		}
		if r < 0 {
			return fmt.Errorf("%w: radius must not be negative", ErrInvalidParameter)
		}
		b.Radius = r
	case "collision_type":
		str, err := toString(value)
		if err != nil {
			return err
		}
		ct, err := physics.ParseCollisionType(str)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
		b.CollisionType = ct
	case "restitution":
		e, err := toFloat(value)
		if err != nil {
			return err
		}
		b.Restitution = e
	case "shape":
		str, err := toString(value)
		if err != nil {
			return err
		}
		shape, err := physics.ParseShape(str)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
		b.Shape = shape
	case "color":
		c, err := toString(value)
		if err != nil {
			return err
		}
		b.Color = c
	case "show_velocity_vector", "show_force_vectors", "show_trajectory":
		on, err := toBool(value)
		if err != nil {
			return err
		}
		switch name {
		case "show_velocity_vector":
			b.ShowVelocityVector = on
		case "show_force_vectors":
			b.ShowForceVectors = on
		default:
			b.ShowTrajectory = on
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return nil
}

// UpdateWorld applies the set fields. Changing gravity rewrites every
// body's gravity force.
func (s *Service) UpdateWorld(u WorldUpdate) (*physics.WorldSnapshot, error) {
	if u.GravityStrength != nil && *u.GravityStrength < 0 {
		return nil, fmt.Errorf("%w: gravity strength must not be negative", ErrInvalidParameter)
	}
	return s.with(func(st *sim.Stepper) error {
		w := st.World()
		if u.CollisionEnabled != nil {
			w.CollisionEnabled = *u.CollisionEnabled
		}
		if u.GravityEnabled == nil && u.GravityStrength == nil {
			return nil
		}
		enabled, g := w.GravityEnabled, w.GravityStrength
		if u.GravityEnabled != nil {
			enabled = *u.GravityEnabled
		}
		if u.GravityStrength != nil {
			g = *u.GravityStrength
		}
		w.SetGravity(enabled, g)
		return nil
	})
}

// SetCircularMotion enables circular motion on a body, or disables it.
func (s *Service) SetCircularMotion(id string, c CircularSettings) (*physics.WorldSnapshot, error) {
	if c.Enabled && c.Radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", ErrInvalidParameter)
	}
	return s.with(func(st *sim.Stepper) error {
		b, err := st.World().Body(id)
		if err != nil {
			return err
		}
		if c.Enabled {
			b.EnableCircularMotion(c.Center, c.Radius, c.AngularVelocity, c.InitialAngle)
		} else {
			b.DisableCircularMotion()
		}
		return nil
	})
}

// SetCircularRadius changes the orbit radius and keeps ω.
func (s *Service) SetCircularRadius(id string, radius float64) (*physics.WorldSnapshot, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", ErrInvalidParameter)
	}
	return s.with(func(st *sim.Stepper) error {
		b, err := st.World().Body(id)
		if err != nil {
			return err
		}
		if !b.InCircularMotion() {
			return fmt.Errorf("%w: %s", physics.ErrNotCircular, id)
		}
		b.Circular.SetRadius(radius)
		return nil
	})
}

func (s *Service) SetCollisionSettings(id, collisionType string, restitution float64) (*physics.WorldSnapshot, error) {
	ct, err := physics.ParseCollisionType(collisionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return s.with(func(st *sim.Stepper) error {
		b, err := st.World().Body(id)
		if err != nil {
			return err
		}
		b.CollisionType = ct
		b.Restitution = restitution
		return nil
	})
}
