package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

func fallingWorld(t *testing.T) *physics.World {
	t.Helper()
	w := physics.NewWorld(100, 100, 0)
	b := physics.NewBody("a", 1, vec.New(50, 20), vec.Zero())
	b.ApplyForce(physics.NewGravity(9.8))
	if err := w.AddBody(b); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestEnergy(t *testing.T) {
	w := fallingWorld(t)
	m := NewEnergy()

	m.Observe(w)
	expected := 1 * 9.8 * 20.0
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	w := fallingWorld(t)
	m := NewEnergyDrift()

	m.Observe(w)
	if m.Value() != 0 {
		t.Errorf("expected zero drift on first sample, got %f", m.Value())
	}

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
		m.Observe(w)
	}
	// the integrator bleeds a little energy under constant gravity
	if m.Value() <= 0 || m.Value() > 0.1 {
		t.Errorf("expected small positive drift, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	w := physics.NewWorld(100, 100, -100)
	a := physics.NewBody("a", 2, vec.New(0, 0), vec.New(2, 0))
	b := physics.NewBody("b", 1, vec.New(0.8, 0), vec.New(-1, 0))
	_ = w.AddBody(a)
	_ = w.AddBody(b)

	m := NewMomentumDrift()
	c := NewCollisions()
	m.Observe(w)
	w.Step(0.001)
	m.Observe(w)
	c.Observe(w)

	if m.Value() > 1e-9 {
		t.Errorf("expected conserved momentum, drift %g", m.Value())
	}
	if c.Value() != 1 {
		t.Errorf("expected 1 collision, got %f", c.Value())
	}
}

func TestInBounds(t *testing.T) {
	w := physics.NewWorld(10, 10, 0)
	b := physics.NewBody("a", 1, vec.New(5, 5), vec.Zero())
	_ = w.AddBody(b)

	m := NewInBounds(0)
	m.Observe(w)
	b.Position = vec.New(20, 5)
	m.Observe(w)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %f", m.Value())
	}
}

func TestDefault(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if !seen["energy_drift"] || !seen["collisions"] {
		t.Errorf("missing default metrics: %v", seen)
	}
}
