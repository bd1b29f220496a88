package physics

import "github.com/san-kum/mechsim/internal/vec"

// StandardGravity is the gravitational acceleration used for friction's
// normal force, independent of the world's gravity setting.
const StandardGravity = 9.8

// Force computes an instantaneous force on a body from its current state.
type Force interface {
	Compute(b *Body) vec.Vec2
	Kind() string
	Enabled() bool
	SetEnabled(on bool)
}

type toggle struct{ off bool }

func (t *toggle) Enabled() bool      { return !t.off }
func (t *toggle) SetEnabled(on bool) { t.off = !on }

// Gravity pulls downward with magnitude G·m.
type Gravity struct {
	toggle
	G float64
}

func NewGravity(g float64) *Gravity { return &Gravity{G: g} }

func (f *Gravity) Kind() string { return "gravity" }

func (f *Gravity) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() {
		return vec.Zero()
	}
	return vec.New(0, -f.G*b.Mass)
}

// Drag opposes velocity with magnitude c·|v|².
type Drag struct {
	toggle
	Coefficient float64
}

func NewDrag(c float64) *Drag { return &Drag{Coefficient: c} }

func (f *Drag) Kind() string { return "drag" }

func (f *Drag) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() {
		return vec.Zero()
	}
	speed := b.Velocity.Magnitude()
	if speed == 0 {
		return vec.Zero()
	}
	return b.Velocity.Normalize().Scale(-f.Coefficient * speed * speed)
}

// Friction applies kinetic friction μk·m·g against the direction of motion.
// MuS is carried for callers but resting friction is not modeled.
type Friction struct {
	toggle
	MuK float64
	MuS float64
}

func NewFriction(muK, muS float64) *Friction { return &Friction{MuK: muK, MuS: muS} }

func (f *Friction) Kind() string { return "friction" }

func (f *Friction) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() {
		return vec.Zero()
	}
	if b.Velocity.Magnitude() == 0 {
		return vec.Zero()
	}
	normal := b.Mass * StandardGravity
	return b.Velocity.Normalize().Scale(-f.MuK * normal)
}

// Spring is a Hooke's law spring between the body and a fixed anchor.
type Spring struct {
	toggle
	K          float64
	Anchor     vec.Vec2
	RestLength float64
}

func NewSpring(k float64, anchor vec.Vec2, restLength float64) *Spring {
	return &Spring{K: k, Anchor: anchor, RestLength: restLength}
}

func (f *Spring) Kind() string { return "spring" }

func (f *Spring) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() {
		return vec.Zero()
	}
	d := b.Position.Sub(f.Anchor)
	dist := d.Magnitude()
	if dist == 0 {
		return vec.Zero()
	}
	return d.Normalize().Scale(-f.K * (dist - f.RestLength))
}

// Extension is the spring's current stretch beyond its rest length.
func (f *Spring) Extension(b *Body) float64 {
	return b.Position.DistanceTo(f.Anchor) - f.RestLength
}

// Constant applies the same vector every step.
type Constant struct {
	toggle
	Vector vec.Vec2
}

func NewConstant(v vec.Vec2) *Constant { return &Constant{Vector: v} }

func (f *Constant) Kind() string { return "constant" }

func (f *Constant) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() {
		return vec.Zero()
	}
	return f.Vector
}

// Centripetal pulls toward a fixed center with magnitude m·ω²·r.
type Centripetal struct {
	toggle
	Center          vec.Vec2
	Radius          float64
	AngularVelocity float64
}

func NewCentripetal(center vec.Vec2, radius, omega float64) *Centripetal {
	return &Centripetal{Center: center, Radius: radius, AngularVelocity: omega}
}

func (f *Centripetal) Kind() string { return "centripetal" }

func (f *Centripetal) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() {
		return vec.Zero()
	}
	toCenter := f.Center.Sub(b.Position)
	if toCenter.Magnitude() == 0 {
		return vec.Zero()
	}
	mag := b.Mass * f.AngularVelocity * f.AngularVelocity * f.Radius
	return toCenter.Normalize().Scale(mag)
}

// Interaction is an inverse-square attraction toward another body.
// Other is not owned; the world disables the force if Other is removed.
type Interaction struct {
	toggle
	Other    *Body
	Strength float64
}

func NewInteraction(other *Body, strength float64) *Interaction {
	return &Interaction{Other: other, Strength: strength}
}

func (f *Interaction) Kind() string { return "interaction" }

func (f *Interaction) Compute(b *Body) vec.Vec2 {
	if !f.Enabled() || f.Other == nil {
		return vec.Zero()
	}
	d := f.Other.Position.Sub(b.Position)
	dist := d.Magnitude()
	if dist == 0 {
		return vec.Zero()
	}
	return d.Normalize().Scale(f.Strength / (dist * dist))
}
