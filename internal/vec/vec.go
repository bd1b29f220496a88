package vec

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp/v2"
)

// ErrDivideByZero is returned when a vector is divided by a zero scalar.
var ErrDivideByZero = errors.New("vec: division by zero scalar")

// Vec2 is an immutable 2D vector. All methods return new values. It
// converts directly to and from cp.Vector, which does the arithmetic.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func Zero() Vec2 { return Vec2{} }

// FromCP converts a chipmunk vector.
func FromCP(v cp.Vector) Vec2 { return Vec2(v) }

func (v Vec2) CP() cp.Vector { return cp.Vector(v) }

// FromPolar builds a vector of the given magnitude at angle (radians) from +x.
func FromPolar(magnitude, angle float64) Vec2 {
	return Vec2(cp.ForAngle(angle).Mult(magnitude))
}

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%.2f, %.2f)", v.X, v.Y)
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2(v.CP().Add(o.CP())) }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2(v.CP().Sub(o.CP())) }
func (v Vec2) Scale(s float64) Vec2 { return Vec2(v.CP().Mult(s)) }
func (v Vec2) Neg() Vec2            { return Vec2(v.CP().Neg()) }

// Div divides by a scalar. Dividing by zero is an error, never a silent zero.
func (v Vec2) Div(s float64) (Vec2, error) {
	if s == 0 {
		return Vec2{}, ErrDivideByZero
	}
	return Vec2{v.X / s, v.Y / s}, nil
}

func (v Vec2) Magnitude() float64 { return v.CP().Length() }

func (v Vec2) MagnitudeSquared() float64 { return v.CP().LengthSq() }

// Normalize returns the unit vector, or the zero vector when v is zero.
// cp's own Normalize yields NaN for a zero input.
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	return Vec2(v.CP().Normalize())
}

func (v Vec2) Dot(o Vec2) float64 { return v.CP().Dot(o.CP()) }

// Cross is the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.CP().Cross(o.CP()) }

// Perpendicular rotates v by 90 degrees counter-clockwise.
func (v Vec2) Perpendicular() Vec2 { return Vec2(v.CP().Perp()) }

func (v Vec2) DistanceTo(o Vec2) float64 { return v.CP().Distance(o.CP()) }

// Angle is the angle of v from the positive x axis, in radians.
func (v Vec2) Angle() float64 { return v.CP().ToAngle() }

// AngleTo is the unsigned angle between v and o. Zero if either is zero.
func (v Vec2) AngleTo(o Vec2) float64 {
	denom := v.Magnitude() * o.Magnitude()
	if denom == 0 {
		return 0
	}
	return math.Acos(cp.Clamp(v.Dot(o)/denom, -1, 1))
}

func (v Vec2) Rotate(angle float64) Vec2 {
	return Vec2(v.CP().Rotate(cp.ForAngle(angle)))
}

// ProjectOnto projects v onto o. Projection onto the zero vector is zero.
func (v Vec2) ProjectOnto(o Vec2) Vec2 {
	if o.IsZero() {
		return Vec2{}
	}
	return Vec2(v.CP().Project(o.CP()))
}

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
