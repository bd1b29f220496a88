package physics

import (
	"fmt"

	"github.com/san-kum/mechsim/internal/vec"
)

// MaxTrajectory caps the number of stored trajectory samples per body.
const MaxTrajectory = 1000

type Shape string

const (
	ShapeCircle    Shape = "circle"
	ShapeSquare    Shape = "square"
	ShapeRectangle Shape = "rectangle"
)

func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeCircle, ShapeSquare, ShapeRectangle:
		return Shape(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidShape, s)
}

type CollisionType string

const (
	Elastic            CollisionType = "elastic"
	Inelastic          CollisionType = "inelastic"
	PerfectlyInelastic CollisionType = "perfectly_inelastic"
)

func ParseCollisionType(s string) (CollisionType, error) {
	switch CollisionType(s) {
	case Elastic, Inelastic, PerfectlyInelastic:
		return CollisionType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCollisionType, s)
}

// TrajectoryPoint is one stored position sample.
type TrajectoryPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Time float64 `json:"time"`
}

// Body is a point mass with a circular or box extent.
type Body struct {
	ID    string
	Label string
	Color string

	Mass         float64
	Position     vec.Vec2
	Velocity     vec.Vec2
	Acceleration vec.Vec2

	Radius float64
	Shape  Shape
	Width  float64
	Height float64
	Static bool

	Forces   []Force
	Circular *CircularMotion

	InitialPosition vec.Vec2
	InitialVelocity vec.Vec2

	CollisionType CollisionType
	Restitution   float64

	ShowVelocityVector bool
	ShowForceVectors   bool
	ShowTrajectory     bool

	trajectory []TrajectoryPoint
	kinetic    float64
	potential  float64
	momentum   vec.Vec2
}

// NewBody creates an elastic circle of radius 0.5 and snapshots its
// initial position and velocity as the reset target.
func NewBody(id string, mass float64, pos, vel vec.Vec2) *Body {
	b := &Body{
		ID:                 id,
		Label:              id,
		Color:              "#3498db",
		Mass:               mass,
		Position:           pos,
		Velocity:           vel,
		Radius:             0.5,
		Shape:              ShapeCircle,
		Width:              1,
		Height:             1,
		InitialPosition:    pos,
		InitialVelocity:    vel,
		CollisionType:      Elastic,
		Restitution:        1,
		ShowVelocityVector: true,
		ShowTrajectory:     true,
	}
	b.Refresh(StandardGravity)
	return b
}

func (b *Body) ApplyForce(f Force) { b.Forces = append(b.Forces, f) }

func (b *Body) ClearForces() { b.Forces = nil }

// RemoveForces drops every attached force of the given kind.
func (b *Body) RemoveForces(kind string) {
	kept := b.Forces[:0]
	for _, f := range b.Forces {
		if f.Kind() != kind {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(b.Forces); i++ {
		b.Forces[i] = nil
	}
	b.Forces = kept
}

// NetForce sums every attached force at the current state.
func (b *Body) NetForce() vec.Vec2 {
	net := vec.Zero()
	for _, f := range b.Forces {
		net = net.Add(f.Compute(b))
	}
	return net
}

func (b *Body) EnableCircularMotion(center vec.Vec2, radius, omega, angle float64) {
	b.Circular = NewCircularMotion(center, radius, omega, angle)
	b.Circular.Enabled = true
}

func (b *Body) DisableCircularMotion() {
	if b.Circular != nil {
		b.Circular.Enabled = false
	}
}

// InCircularMotion reports whether an enabled override drives the body.
func (b *Body) InCircularMotion() bool {
	return b.Circular != nil && b.Circular.Enabled
}

// Update advances the body one step with explicit Euler, or through its
// circular override when one is enabled. Static bodies do not move.
func (b *Body) Update(dt, g float64) {
	if b.Static {
		return
	}

	if b.InCircularMotion() {
		b.Circular.Update(b, dt)
	} else {
		net := b.NetForce()
		if b.Mass > 0 {
			b.Acceleration = net.Scale(1 / b.Mass)
		} else {
			b.Acceleration = vec.Zero()
		}
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	b.Refresh(g)
	b.record(dt)
}

// Refresh recomputes cached energy (potential from y = 0) and momentum.
func (b *Body) Refresh(g float64) {
	b.kinetic = KineticEnergy(b)
	b.potential = PotentialEnergy(b, g, 0)
	b.momentum = LinearMomentum(b)
}

func (b *Body) record(dt float64) {
	if !b.ShowTrajectory || len(b.trajectory) >= MaxTrajectory {
		return
	}
	b.trajectory = append(b.trajectory, TrajectoryPoint{
		X:    b.Position.X,
		Y:    b.Position.Y,
		Time: float64(len(b.trajectory)) * dt,
	})
}

func (b *Body) Kinetic() float64 { return b.kinetic }

func (b *Body) Potential() float64 { return b.potential }

func (b *Body) Momentum() vec.Vec2 { return b.momentum }

func (b *Body) Trajectory() []TrajectoryPoint {
	out := make([]TrajectoryPoint, len(b.trajectory))
	copy(out, b.trajectory)
	return out
}

func (b *Body) Displacement() vec.Vec2 { return b.Position.Sub(b.InitialPosition) }

// DistanceTraveled is the polyline length of the stored trajectory.
func (b *Body) DistanceTraveled() float64 {
	var d float64
	for i := 1; i < len(b.trajectory); i++ {
		p, q := b.trajectory[i-1], b.trajectory[i]
		d += vec.New(p.X, p.Y).DistanceTo(vec.New(q.X, q.Y))
	}
	return d
}

// SetInitialState replaces the reset target.
func (b *Body) SetInitialState(pos, vel vec.Vec2) {
	b.InitialPosition = pos
	b.InitialVelocity = vel
}

// ResetToInitial restores the initial snapshot and clears the trajectory.
// A circular override only has its angle zeroed.
func (b *Body) ResetToInitial() {
	b.Position = b.InitialPosition
	b.Velocity = b.InitialVelocity
	b.Acceleration = vec.Zero()
	b.trajectory = b.trajectory[:0]
	if b.Circular != nil {
		b.Circular.Angle = 0
	}
}

// LowerExtent is the distance from the center to the body's bottom edge.
func (b *Body) LowerExtent() float64 {
	switch b.Shape {
	case ShapeSquare, ShapeRectangle:
		return b.Height / 2
	default:
		return b.Radius
	}
}
