package physics

import (
	"math"

	"github.com/san-kum/mechsim/internal/vec"
)

// Contact is the result of a pairwise overlap test.
type Contact struct {
	Collided    bool
	Normal      vec.Vec2 // unit, from A toward B
	Penetration float64
}

// EffectiveRadius is the circle used for contact tests. Squares and
// rectangles use half their diagonal.
func EffectiveRadius(b *Body) float64 {
	switch b.Shape {
	case ShapeSquare, ShapeRectangle:
		return math.Hypot(b.Width, b.Height) / 2
	default:
		return b.Radius
	}
}

// Detect tests two bodies as circles. Coincident centers use normal (1,0).
func Detect(a, b *Body) Contact {
	d := b.Position.Sub(a.Position)
	dist := d.Magnitude()
	minDist := EffectiveRadius(a) + EffectiveRadius(b)
	if dist >= minDist {
		return Contact{}
	}
	normal := vec.New(1, 0)
	if dist > 0 {
		normal = d.Normalize()
	}
	return Contact{Collided: true, Normal: normal, Penetration: minDist - dist}
}

// ResolveElastic applies an impulse with restitution 1.
func ResolveElastic(a, b *Body, normal vec.Vec2) {
	ResolveInelastic(a, b, normal, 1)
}

// ResolveInelastic applies an impulse with restitution e along normal.
// Separating pairs and pairs with a non-positive mass are left untouched.
func ResolveInelastic(a, b *Body, normal vec.Vec2, e float64) {
	if a.Mass <= 0 || b.Mass <= 0 {
		return
	}
	vn := b.Velocity.Sub(a.Velocity).Dot(normal)
	if vn >= 0 {
		return
	}
	j := -(1 + e) * vn / (1/a.Mass + 1/b.Mass)
	impulse := normal.Scale(j)
	a.Velocity = a.Velocity.Sub(impulse.Scale(1 / a.Mass))
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
}

// ResolvePerfectlyInelastic gives both bodies the common velocity
// (m1·v1 + m2·v2)/(m1 + m2).
func ResolvePerfectlyInelastic(a, b *Body) {
	total := a.Mass + b.Mass
	if a.Mass <= 0 || b.Mass <= 0 {
		return
	}
	v := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass)).Scale(1 / total)
	a.Velocity = v
	b.Velocity = v
}

// Separate pushes the bodies apart along normal (A backward, B forward),
// each by the other's share of the total mass so the heavier body moves less.
func Separate(a, b *Body, penetration float64, normal vec.Vec2) {
	total := a.Mass + b.Mass
	if a.Mass <= 0 || b.Mass <= 0 {
		return
	}
	a.Position = a.Position.Sub(normal.Scale(penetration * b.Mass / total))
	b.Position = b.Position.Add(normal.Scale(penetration * a.Mass / total))
}

// Resolve picks the law from both collision types: elastic only when both
// are elastic, perfectly inelastic when either is, otherwise inelastic with
// the mean restitution.
func Resolve(a, b *Body, c Contact) {
	switch {
	case a.CollisionType == Elastic && b.CollisionType == Elastic:
		ResolveElastic(a, b, c.Normal)
	case a.CollisionType == PerfectlyInelastic || b.CollisionType == PerfectlyInelastic:
		ResolvePerfectlyInelastic(a, b)
	default:
		ResolveInelastic(a, b, c.Normal, (a.Restitution+b.Restitution)/2)
	}
}
