package scenario

import (
	"fmt"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

const (
	centerMarkerID    = "center_point"
	centerMarkerColor = "#34495e"
	circularType      = "circular_motion"
)

// Build creates a world from s. Body ids are entity names, made unique
// with a numeric suffix. Circular entities start at center+(r,0) and get
// no forces; other entities get the scenario forces then their own.
// Circular-motion scenarios also get a static marker at each center.
func Build(s Scenario) (*physics.World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	env := s.Environment
	w := physics.NewWorld(env.width(), env.height(), env.GroundLevel)
	w.GravityEnabled = orTrue(env.GravityEnabled)
	w.GravityStrength = env.gravityStrength()
	w.CollisionEnabled = orTrue(env.CollisionEnabled)

	byName := make(map[string]*physics.Body, len(s.Entities))
	lookup := func(name string) *physics.Body { return byName[name] }

	type pending struct {
		body  *physics.Body
		specs []ForceSpec
	}
	var deferred []pending
	var centers []vec.Vec2

	for _, e := range s.Entities {
		b, err := newBody(w, e)
		if err != nil {
			return nil, err
		}
		if _, seen := byName[e.Name]; !seen {
			byName[e.Name] = b
		}

		if e.CircularMotion != nil {
			centers = append(centers, placeOnCircle(b, e))
		} else {
			deferred = append(deferred, pending{body: b, specs: append(append([]ForceSpec{}, s.Forces...), e.Forces...)})
		}

		if err := w.AddBody(b); err != nil {
			return nil, err
		}
	}

	// forces go on after every body exists so interactions can resolve
	for _, p := range deferred {
		for _, spec := range p.specs {
			f, err := spec.build(lookup)
			if err != nil {
				return nil, fmt.Errorf("entity %s: %w", p.body.ID, err)
			}
			p.body.ApplyForce(f)
		}
	}

	if s.ScenarioType == circularType {
		for _, c := range centers {
			marker := physics.NewBody(UniqueID(w, centerMarkerID), 0.1, c, vec.Zero())
			marker.Label = "Center"
			marker.Color = centerMarkerColor
			marker.Radius = 0.3
			marker.Static = true
			if err := w.AddBody(marker); err != nil {
				return nil, err
			}
		}
	}

	for _, b := range w.Bodies() {
		b.Refresh(w.GravityStrength)
	}
	return w, nil
}

func newBody(w *physics.World, e Entity) (*physics.Body, error) {
	name := e.Name
	if name == "" {
		name = "object"
	}

	mass := e.Mass
	if mass == 0 {
		mass = DefaultMass
	}
	pos := DefaultPosition
	if e.InitialPosition != nil {
		pos = *e.InitialPosition
	}

	b := physics.NewBody(UniqueID(w, name), mass, pos, e.InitialVelocity)
	b.Label = name
	if e.Radius > 0 {
		b.Radius = e.Radius
	} else {
		b.Radius = DefaultRadius
	}
	if e.Color != "" {
		b.Color = e.Color
	}
	if e.Shape != "" {
		shape, err := physics.ParseShape(e.Shape)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		b.Shape = shape
	}
	if e.Width > 0 {
		b.Width = e.Width
	}
	if e.Height > 0 {
		b.Height = e.Height
	}
	if e.CollisionType != "" {
		ct, err := physics.ParseCollisionType(e.CollisionType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		b.CollisionType = ct
	}
	if e.Restitution != nil {
		b.Restitution = *e.Restitution
	}
	b.Static = e.Static
	return b, nil
}

// placeOnCircle enables circular motion on b and returns the center.
func placeOnCircle(b *physics.Body, e Entity) vec.Vec2 {
	cm := e.CircularMotion
	center := DefaultCenter
	if cm.Center != nil {
		center = *cm.Center
	}
	radius := cm.Radius
	if radius <= 0 {
		radius = b.Radius * 20
	}

	var c *physics.CircularMotion
	switch {
	case cm.LinearVelocity != nil:
		c = physics.CircularFromLinearVelocity(center, radius, *cm.LinearVelocity, 0)
	case cm.AngularVelocity != 0:
		c = physics.NewCircularMotion(center, radius, cm.AngularVelocity, 0)
	default:
		c = physics.CircularFromLinearVelocity(center, radius, e.InitialVelocity.Magnitude(), 0)
	}
	c.Enabled = true
	c.Clockwise = cm.Clockwise
	b.Circular = c

	start := vec.New(center.X+radius, center.Y)
	vel := vec.New(0, c.TangentialVelocity())
	b.Position, b.Velocity = start, vel
	b.SetInitialState(start, vel)
	return center
}

// UniqueID returns id, or id_N for the smallest N ≥ 2 not in w.
func UniqueID(w *physics.World, id string) string {
	if _, err := w.Body(id); err != nil {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", id, n)
		if _, err := w.Body(candidate); err != nil {
			return candidate
		}
	}
}
