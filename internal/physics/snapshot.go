package physics

import (
	"math"

	"github.com/san-kum/mechsim/internal/vec"
)

// CircularSnapshot is the serialized circular motion block. Period is nil
// when ω is zero.
type CircularSnapshot struct {
	Center                  vec.Vec2 `json:"center"`
	Radius                  float64  `json:"radius"`
	AngularVelocity         float64  `json:"angular_velocity"`
	Angle                   float64  `json:"angle"`
	AngleDegrees            float64  `json:"angle_degrees"`
	TangentialVelocity      float64  `json:"tangential_velocity"`
	CentripetalAcceleration float64  `json:"centripetal_acceleration"`
	Period                  *float64 `json:"period"`
	Frequency               float64  `json:"frequency"`
	Enabled                 bool     `json:"enabled"`
	Clockwise               bool     `json:"clockwise"`
}

type BodySnapshot struct {
	ID           string   `json:"id"`
	Mass         float64  `json:"mass"`
	Position     vec.Vec2 `json:"position"`
	Velocity     vec.Vec2 `json:"velocity"`
	Acceleration vec.Vec2 `json:"acceleration"`
	Radius       float64  `json:"radius"`
	Label        string   `json:"label"`
	Color        string   `json:"color"`
	IsStatic     bool     `json:"is_static"`
	Shape        Shape    `json:"shape"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`

	KineticEnergy     float64  `json:"kinetic_energy"`
	PotentialEnergy   float64  `json:"potential_energy"`
	MechanicalEnergy  float64  `json:"mechanical_energy"`
	Momentum          vec.Vec2 `json:"momentum"`
	MomentumMagnitude float64  `json:"momentum_magnitude"`

	InitialPosition       vec.Vec2 `json:"initial_position"`
	InitialVelocity       vec.Vec2 `json:"initial_velocity"`
	Displacement          vec.Vec2 `json:"displacement"`
	DisplacementMagnitude float64  `json:"displacement_magnitude"`
	DistanceTraveled      float64  `json:"distance_traveled"`

	ShowVelocityVector bool `json:"show_velocity_vector"`
	ShowForceVectors   bool `json:"show_force_vectors"`
	ShowTrajectory     bool `json:"show_trajectory"`

	CollisionType CollisionType `json:"collision_type"`
	Restitution   float64       `json:"restitution"`

	CircularMotion *CircularSnapshot `json:"circular_motion,omitempty"`

	// Trajectory is not part of the wire shape; renderers read it directly.
	Trajectory []TrajectoryPoint `json:"-"`
}

type EnergyHistory struct {
	History       []EnergySample `json:"history"`
	InitialEnergy *float64       `json:"initial_energy"`
	EnergyLoss    float64        `json:"energy_loss"`
}

type WorldSnapshot struct {
	Width            float64        `json:"width"`
	Height           float64        `json:"height"`
	GroundLevel      float64        `json:"ground_level"`
	Objects          []BodySnapshot `json:"objects"`
	Time             float64        `json:"time"`
	GravityEnabled   bool           `json:"gravity_enabled"`
	GravityStrength  float64        `json:"gravity_strength"`
	CollisionEnabled bool           `json:"collision_enabled"`

	TotalKineticEnergy     float64  `json:"total_kinetic_energy"`
	TotalPotentialEnergy   float64  `json:"total_potential_energy"`
	TotalMechanicalEnergy  float64  `json:"total_mechanical_energy"`
	TotalMomentum          vec.Vec2 `json:"total_momentum"`
	TotalMomentumMagnitude float64  `json:"total_momentum_magnitude"`

	EnergyHistory EnergyHistory `json:"energy_history"`
}

func (c *CircularMotion) Snapshot() CircularSnapshot {
	s := CircularSnapshot{
		Center:                  c.Center,
		Radius:                  c.Radius,
		AngularVelocity:         c.AngularVelocity,
		Angle:                   c.Angle,
		AngleDegrees:            Degrees(c.Angle),
		TangentialVelocity:      c.TangentialVelocity(),
		CentripetalAcceleration: c.CentripetalAcceleration(),
		Frequency:               c.Frequency(),
		Enabled:                 c.Enabled,
		Clockwise:               c.Clockwise,
	}
	if p := c.Period(); !math.IsInf(p, 0) {
		s.Period = &p
	}
	return s
}

func (b *Body) Snapshot() BodySnapshot {
	disp := b.Displacement()
	s := BodySnapshot{
		ID:                    b.ID,
		Mass:                  b.Mass,
		Position:              b.Position,
		Velocity:              b.Velocity,
		Acceleration:          b.Acceleration,
		Radius:                b.Radius,
		Label:                 b.Label,
		Color:                 b.Color,
		IsStatic:              b.Static,
		Shape:                 b.Shape,
		Width:                 b.Width,
		Height:                b.Height,
		KineticEnergy:         b.kinetic,
		PotentialEnergy:       b.potential,
		MechanicalEnergy:      b.kinetic + b.potential,
		Momentum:              b.momentum,
		MomentumMagnitude:     b.momentum.Magnitude(),
		InitialPosition:       b.InitialPosition,
		InitialVelocity:       b.InitialVelocity,
		Displacement:          disp,
		DisplacementMagnitude: disp.Magnitude(),
		DistanceTraveled:      b.DistanceTraveled(),
		ShowVelocityVector:    b.ShowVelocityVector,
		ShowForceVectors:      b.ShowForceVectors,
		ShowTrajectory:        b.ShowTrajectory,
		CollisionType:         b.CollisionType,
		Restitution:           b.Restitution,
		Trajectory:            b.Trajectory(),
	}
	if b.InCircularMotion() {
		cs := b.Circular.Snapshot()
		s.CircularMotion = &cs
	}
	return s
}

func (w *World) Snapshot() *WorldSnapshot {
	energy := w.TotalEnergy()
	momentum := w.TotalMomentum()

	objects := make([]BodySnapshot, 0, len(w.bodies))
	for _, b := range w.bodies {
		objects = append(objects, b.Snapshot())
	}

	hist := EnergyHistory{
		History:    w.tracker.History(),
		EnergyLoss: w.tracker.Loss(),
	}
	if e, ok := w.tracker.Initial(); ok {
		hist.InitialEnergy = &e
	}

	return &WorldSnapshot{
		Width:                  w.Width,
		Height:                 w.Height,
		GroundLevel:            w.GroundLevel,
		Objects:                objects,
		Time:                   w.Time,
		GravityEnabled:         w.GravityEnabled,
		GravityStrength:        w.GravityStrength,
		CollisionEnabled:       w.CollisionEnabled,
		TotalKineticEnergy:     energy.Kinetic,
		TotalPotentialEnergy:   energy.Potential,
		TotalMechanicalEnergy:  energy.Mechanical,
		TotalMomentum:          momentum,
		TotalMomentumMagnitude: momentum.Magnitude(),
		EnergyHistory:          hist,
	}
}
