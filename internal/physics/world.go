package physics

import (
	"fmt"

	"github.com/san-kum/mechsim/internal/vec"
)

// Ground contact constants.
const (
	restSpeed      = 0.5
	groundDampingX = 0.9
)

// World owns its bodies. Iteration order is insertion order.
type World struct {
	Width            float64
	Height           float64
	GroundLevel      float64
	Time             float64
	GravityEnabled   bool
	GravityStrength  float64
	CollisionEnabled bool

	bodies  []*Body
	tracker EnergyTracker

	lastContacts int
}

func NewWorld(width, height, groundLevel float64) *World {
	return &World{
		Width:            width,
		Height:           height,
		GroundLevel:      groundLevel,
		GravityEnabled:   true,
		GravityStrength:  StandardGravity,
		CollisionEnabled: true,
	}
}

func (w *World) index(id string) int {
	for i, b := range w.bodies {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (w *World) AddBody(b *Body) error {
	if w.index(b.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateBody, b.ID)
	}
	w.bodies = append(w.bodies, b)
	return nil
}

// RemoveBody deletes a body and disables interaction forces aimed at it.
func (w *World) RemoveBody(id string) error {
	i := w.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBodyNotFound, id)
	}
	removed := w.bodies[i]
	w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)

	for _, b := range w.bodies {
		for _, f := range b.Forces {
			if in, ok := f.(*Interaction); ok && in.Other == removed {
				in.Other = nil
				in.SetEnabled(false)
			}
		}
	}
	return nil
}

func (w *World) Body(id string) (*Body, error) {
	i := w.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBodyNotFound, id)
	}
	return w.bodies[i], nil
}

// Bodies returns the bodies in iteration order. The slice is a copy.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *World) Len() int { return len(w.bodies) }

// Clear removes every body and zeroes time and energy history.
func (w *World) Clear() {
	w.bodies = nil
	w.Time = 0
	w.tracker.Clear()
}

func (w *World) Tracker() *EnergyTracker { return &w.tracker }

// Step updates every body, handles collisions, advances time by dt and
// records system energy.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.Update(dt, w.GravityStrength)
	}
	w.lastContacts = w.HandleCollisions()
	w.Time += dt
	w.tracker.Record(w.Time, w.TotalEnergy())
}

// LastContacts is the number of pairwise contacts resolved by the last Step.
func (w *World) LastContacts() int { return w.lastContacts }

// HandleCollisions runs the ground pass and, when enabled, one pairwise
// pass. It returns the number of pairwise contacts resolved.
func (w *World) HandleCollisions() int {
	w.HandleGroundCollisions()
	if !w.CollisionEnabled {
		return 0
	}
	return w.HandleBodyCollisions()
}

// HandleGroundCollisions clamps bodies whose lower extent is below the
// ground and reflects their vertical velocity with their restitution.
func (w *World) HandleGroundCollisions() {
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		ext := b.LowerExtent()
		if b.Position.Y-ext >= w.GroundLevel {
			continue
		}
		b.Position.Y = w.GroundLevel + ext
		vy := b.Velocity.Y
		if vy < 0 {
			vy = -vy
		}
		b.Velocity.Y = vy * b.Restitution
		if b.Velocity.Y < restSpeed {
			b.Velocity.Y = 0
			b.Velocity.X *= groundDampingX
		}
	}
}

// HandleBodyCollisions checks every non-static pair i<j once.
func (w *World) HandleBodyCollisions() int {
	n := 0
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			if w.resolvePair(i, j) {
				n++
			}
		}
	}
	return n
}

func (w *World) resolvePair(i, j int) bool {
	a, b := w.bodies[i], w.bodies[j]
	if a.Static || b.Static {
		return false
	}
	c := Detect(a, b)
	if !c.Collided {
		return false
	}
	Separate(a, b, c.Penetration, c.Normal)
	Resolve(a, b, c)
	return true
}

// TotalEnergy measures potential energy from the ground level.
func (w *World) TotalEnergy() Energy {
	return TotalEnergy(w.bodies, w.GravityStrength, w.GroundLevel)
}

func (w *World) TotalMomentum() vec.Vec2 { return TotalMomentum(w.bodies) }

// SetGravity replaces every body's gravity forces with one of strength g,
// or none when disabled.
func (w *World) SetGravity(enabled bool, g float64) {
	w.GravityEnabled = enabled
	w.GravityStrength = g
	for _, b := range w.bodies {
		b.RemoveForces("gravity")
		if enabled {
			b.ApplyForce(NewGravity(g))
		}
	}
}

// Reset zeroes time and energy history and restores every body.
func (w *World) Reset() {
	w.Time = 0
	w.lastContacts = 0
	w.tracker.Clear()
	for _, b := range w.bodies {
		b.ResetToInitial()
		b.Refresh(w.GravityStrength)
	}
}
