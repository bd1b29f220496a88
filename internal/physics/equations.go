package physics

import (
	"math"

	"github.com/san-kum/mechsim/internal/vec"
)

// Constant-acceleration kinematics along one axis.

func FinalVelocity(v0, a, t float64) float64 { return v0 + a*t }

func Displacement(v0, a, t float64) float64 { return v0*t + 0.5*a*t*t }

func MaxProjectileHeight(vy0, g float64) float64 { return vy0 * vy0 / (2 * g) }

func TimeToPeak(vy0, g float64) float64 { return vy0 / g }

// ProjectileRange is v0²·sin(2θ)/g with θ in degrees.
func ProjectileRange(v0, angleDeg, g float64) float64 {
	return v0 * v0 * math.Sin(2*Radians(angleDeg)) / g
}

// DecomposeVelocity splits a speed at angleDeg into x and y components.
func DecomposeVelocity(speed, angleDeg float64) vec.Vec2 {
	return vec.FromPolar(speed, Radians(angleDeg))
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
