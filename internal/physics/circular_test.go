package physics

import (
	"math"
	"testing"

	"github.com/san-kum/mechsim/internal/vec"
)

func angleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 2*math.Pi-d)
}

func TestCircularFromLinearVelocity(t *testing.T) {
	c := CircularFromLinearVelocity(vec.Zero(), 5, 10, 0)
	if c.AngularVelocity != 2 {
		t.Errorf("expected ω 2, got %f", c.AngularVelocity)
	}
	c = CircularFromLinearVelocity(vec.Zero(), 0, 10, 0)
	if c.AngularVelocity != 0 {
		t.Errorf("expected ω 0 for zero radius, got %f", c.AngularVelocity)
	}
	if !math.IsInf(c.Period(), 1) {
		t.Errorf("expected infinite period, got %f", c.Period())
	}
}

func TestCircularMotion_Derived(t *testing.T) {
	c := NewCircularMotion(vec.Zero(), 4, -2, 0)
	if c.TangentialVelocity() != -8 {
		t.Errorf("expected tangential -8, got %f", c.TangentialVelocity())
	}
	if c.CentripetalAcceleration() != 16 {
		t.Errorf("expected centripetal 16, got %f", c.CentripetalAcceleration())
	}
	if c.CentripetalForce(3) != 48 {
		t.Errorf("expected centripetal force 48, got %f", c.CentripetalForce(3))
	}
	if math.Abs(c.Period()-math.Pi) > tol {
		t.Errorf("expected period π, got %f", c.Period())
	}
	if math.Abs(c.Frequency()-1/math.Pi) > tol {
		t.Errorf("expected frequency 1/π, got %f", c.Frequency())
	}

	c.SetRadius(8)
	if c.AngularVelocity != -2 {
		t.Errorf("SetRadius changed ω to %f", c.AngularVelocity)
	}
	c.SetLinearVelocity(16)
	if c.AngularVelocity != 2 {
		t.Errorf("expected ω 2, got %f", c.AngularVelocity)
	}
}

func TestCircularMotion_AngleWraps(t *testing.T) {
	b := NewBody("a", 1, vec.New(10, 0), vec.Zero())
	b.EnableCircularMotion(vec.Zero(), 10, 1, 0)
	b.Circular.Clockwise = true

	for i := 0; i < 500; i++ {
		b.Update(0.05, 9.8)
		if a := b.Circular.Angle; a < 0 || a >= 2*math.Pi {
			t.Fatalf("step %d: angle %f out of [0, 2π)", i, a)
		}
	}
}

func TestCircularMotion_Closure(t *testing.T) {
	const steps = 1000
	omega := 1.0
	dt := 2 * math.Pi / omega / steps

	center := vec.New(50, 50)
	start := vec.New(60, 50)
	b := NewBody("a", 1, start, vec.Zero())
	b.EnableCircularMotion(center, 10, omega, 0)
	// Gravity must not affect an overridden body.
	b.ApplyForce(NewGravity(9.8))

	for i := 0; i < steps; i++ {
		b.Update(dt, 9.8)
	}

	if d := angleDiff(b.Circular.Angle, 0); d > 1e-9 {
		t.Errorf("expected angle back at 0, off by %g", d)
	}
	if !vecNear(b.Position, start, 1e-6) {
		t.Errorf("expected position %v, got %v", start, b.Position)
	}
}

func TestCircularMotion_Kinematics(t *testing.T) {
	b := NewBody("a", 2, vec.Zero(), vec.Zero())
	b.EnableCircularMotion(vec.Zero(), 2, 3, 0)
	b.Update(math.Pi/6, 9.8) // quarter turn

	if !vecNear(b.Position, vec.New(0, 2), 1e-9) {
		t.Errorf("expected position (0,2), got %v", b.Position)
	}
	if !vecNear(b.Velocity, vec.New(-6, 0), 1e-9) {
		t.Errorf("expected velocity (-6,0), got %v", b.Velocity)
	}
	if !vecNear(b.Acceleration, vec.New(0, -18), 1e-9) {
		t.Errorf("expected acceleration (0,-18), got %v", b.Acceleration)
	}
	if math.Abs(b.Kinetic()-36) > 1e-9 {
		t.Errorf("expected kinetic 36, got %f", b.Kinetic())
	}

	b.DisableCircularMotion()
	if b.InCircularMotion() {
		t.Error("expected circular motion disabled")
	}
}
