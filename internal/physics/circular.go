package physics

import (
	"math"

	"github.com/san-kum/mechsim/internal/vec"
)

const twoPi = 2 * math.Pi

// CircularMotion drives a body around a fixed center in closed form.
// While enabled it replaces force integration for its body.
type CircularMotion struct {
	Center          vec.Vec2
	Radius          float64
	AngularVelocity float64
	Angle           float64
	Enabled         bool
	Clockwise       bool
}

func NewCircularMotion(center vec.Vec2, radius, omega, angle float64) *CircularMotion {
	return &CircularMotion{
		Center:          center,
		Radius:          radius,
		AngularVelocity: omega,
		Angle:           wrapAngle(angle),
	}
}

// CircularFromLinearVelocity derives ω = v/r. ω is zero for a non-positive radius.
func CircularFromLinearVelocity(center vec.Vec2, radius, v, angle float64) *CircularMotion {
	omega := 0.0
	if radius > 0 {
		omega = v / radius
	}
	return NewCircularMotion(center, radius, omega, angle)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// Update advances the angle by ω·dt and writes position, velocity and
// acceleration onto b. Velocity uses (-v·sinθ, v·cosθ) in both directions.
func (c *CircularMotion) Update(b *Body, dt float64) {
	if !c.Enabled {
		return
	}
	if c.Clockwise {
		c.Angle -= c.AngularVelocity * dt
	} else {
		c.Angle += c.AngularVelocity * dt
	}
	c.Angle = wrapAngle(c.Angle)

	sin, cos := math.Sincos(c.Angle)
	b.Position = vec.New(c.Center.X+c.Radius*cos, c.Center.Y+c.Radius*sin)

	speed := c.TangentialVelocity()
	b.Velocity = vec.New(-speed*sin, speed*cos)

	toCenter := c.Center.Sub(b.Position)
	if toCenter.IsZero() {
		b.Acceleration = vec.Zero()
		return
	}
	b.Acceleration = toCenter.Normalize().Scale(c.CentripetalAcceleration())
}

// SetRadius changes the radius and keeps ω.
func (c *CircularMotion) SetRadius(r float64) { c.Radius = r }

// SetLinearVelocity sets ω = v/r. No-op for a non-positive radius.
func (c *CircularMotion) SetLinearVelocity(v float64) {
	if c.Radius > 0 {
		c.AngularVelocity = v / c.Radius
	}
}

func (c *CircularMotion) CentripetalAcceleration() float64 {
	return c.AngularVelocity * c.AngularVelocity * c.Radius
}

func (c *CircularMotion) CentripetalForce(mass float64) float64 {
	return mass * c.CentripetalAcceleration()
}

func (c *CircularMotion) TangentialVelocity() float64 {
	return c.AngularVelocity * c.Radius
}

// Period is 2π/|ω|, or +Inf when ω is zero.
func (c *CircularMotion) Period() float64 {
	if c.AngularVelocity == 0 {
		return math.Inf(1)
	}
	return twoPi / math.Abs(c.AngularVelocity)
}

func (c *CircularMotion) Frequency() float64 {
	return math.Abs(c.AngularVelocity) / twoPi
}
