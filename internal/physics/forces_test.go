package physics

import (
	"math"
	"testing"

	"github.com/san-kum/mechsim/internal/vec"
)

const tol = 1e-9

func vecNear(a, b vec.Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestForces_Compute(t *testing.T) {
	other := NewBody("other", 1, vec.New(2, 0), vec.Zero())

	tests := []struct {
		name  string
		force Force
		body  *Body
		want  vec.Vec2
	}{
		{"gravity", NewGravity(9.8), NewBody("a", 2, vec.Zero(), vec.Zero()), vec.New(0, -19.6)},
		{"drag", NewDrag(0.1), NewBody("a", 1, vec.Zero(), vec.New(3, 4)), vec.New(-1.5, -2)},
		{"drag at rest", NewDrag(0.1), NewBody("a", 1, vec.Zero(), vec.Zero()), vec.Zero()},
		{"friction", NewFriction(0.5, 0.8), NewBody("a", 2, vec.Zero(), vec.New(1, 0)), vec.New(-9.8, 0)},
		{"friction at rest", NewFriction(0.5, 0.8), NewBody("a", 2, vec.Zero(), vec.Zero()), vec.Zero()},
		{"spring stretched", NewSpring(10, vec.Zero(), 2), NewBody("a", 1, vec.New(5, 0), vec.Zero()), vec.New(-30, 0)},
		{"spring at anchor", NewSpring(10, vec.Zero(), 2), NewBody("a", 1, vec.Zero(), vec.Zero()), vec.Zero()},
		{"constant", NewConstant(vec.New(1, -2)), NewBody("a", 1, vec.Zero(), vec.Zero()), vec.New(1, -2)},
		{"centripetal", NewCentripetal(vec.Zero(), 2, 3), NewBody("a", 1, vec.New(0, 5), vec.Zero()), vec.New(0, -18)},
		{"centripetal at center", NewCentripetal(vec.Zero(), 2, 3), NewBody("a", 1, vec.Zero(), vec.Zero()), vec.Zero()},
		{"interaction", NewInteraction(other, 8), NewBody("a", 1, vec.Zero(), vec.Zero()), vec.New(2, 0)},
		{"interaction coincident", NewInteraction(other, 8), NewBody("a", 1, vec.New(2, 0), vec.Zero()), vec.Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.force.Compute(tt.body)
			if !vecNear(got, tt.want, tol) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestForces_Disabled(t *testing.T) {
	b := NewBody("a", 1, vec.New(3, 0), vec.New(1, 1))
	forces := []Force{
		NewGravity(9.8),
		NewDrag(1),
		NewFriction(1, 1),
		NewSpring(1, vec.Zero(), 0),
		NewConstant(vec.New(5, 5)),
		NewCentripetal(vec.Zero(), 1, 1),
		NewInteraction(NewBody("b", 1, vec.Zero(), vec.Zero()), 1),
	}

	for _, f := range forces {
		if !f.Enabled() {
			t.Errorf("%s: expected enabled by default", f.Kind())
		}
		f.SetEnabled(false)
		if got := f.Compute(b); !got.IsZero() {
			t.Errorf("%s: expected zero when disabled, got %v", f.Kind(), got)
		}
	}
}

func TestSpring_Extension(t *testing.T) {
	s := NewSpring(10, vec.Zero(), 2)
	b := NewBody("a", 1, vec.New(0, 5), vec.Zero())
	if got := s.Extension(b); math.Abs(got-3) > tol {
		t.Errorf("expected extension 3, got %f", got)
	}
	if e := ElasticPotentialEnergy(s.Extension(b), s.K); math.Abs(e-45) > tol {
		t.Errorf("expected elastic energy 45, got %f", e)
	}
}
