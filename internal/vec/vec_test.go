package vec

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestVec2_Arithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(3, -4)

	if got := a.Add(b); got != New(4, -2) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := a.Sub(b); got != New(-2, 6) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(3); got != New(3, 6) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Neg(); got != New(-1, -2) {
		t.Errorf("Neg failed: got %v", got)
	}
}

func TestVec2_Div(t *testing.T) {
	got, err := New(4, 2).Div(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != New(2, 1) {
		t.Errorf("expected (2,1), got %v", got)
	}

	if _, err := New(1, 1).Div(0); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero", Zero(), Zero()},
		{"x axis", New(5, 0), New(1, 0)},
		{"3-4-5", New(3, 4), New(0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec2_Products(t *testing.T) {
	a := New(1, 0)
	b := New(0, 1)

	if a.Dot(b) != 0 {
		t.Errorf("expected orthogonal dot 0, got %f", a.Dot(b))
	}
	if a.Cross(b) != 1 {
		t.Errorf("expected cross 1, got %f", a.Cross(b))
	}
	if a.Perpendicular() != b {
		t.Errorf("expected perpendicular %v, got %v", b, a.Perpendicular())
	}
	if !near(New(3, 4).Magnitude(), 5) {
		t.Errorf("expected magnitude 5, got %f", New(3, 4).Magnitude())
	}
	if New(3, 4).MagnitudeSquared() != 25 {
		t.Errorf("expected magnitude² 25, got %f", New(3, 4).MagnitudeSquared())
	}
}

func TestVec2_RotateAndPolar(t *testing.T) {
	r := New(1, 0).Rotate(math.Pi / 2)
	if !near(r.X, 0) || !near(r.Y, 1) {
		t.Errorf("expected (0,1), got %v", r)
	}

	p := FromPolar(2, math.Pi)
	if !near(p.X, -2) || !near(p.Y, 0) {
		t.Errorf("expected (-2,0), got %v", p)
	}

	if !near(New(0, 3).Angle(), math.Pi/2) {
		t.Errorf("expected angle π/2, got %f", New(0, 3).Angle())
	}
	if !near(New(1, 0).AngleTo(New(0, 2)), math.Pi/2) {
		t.Errorf("expected angle to π/2")
	}
}

func TestVec2_ProjectOnto(t *testing.T) {
	got := New(3, 4).ProjectOnto(New(2, 0))
	if got != New(3, 0) {
		t.Errorf("expected (3,0), got %v", got)
	}
	if got := New(3, 4).ProjectOnto(Zero()); got != Zero() {
		t.Errorf("expected zero projection, got %v", got)
	}
}

func TestVec2_ChipmunkConversion(t *testing.T) {
	v := New(1.5, -2)
	if got := FromCP(v.CP()); got != v {
		t.Errorf("expected round trip %v, got %v", v, got)
	}

	// the zero guard keeps Normalize finite where cp.Vector.Normalize is not
	n := Zero().Normalize()
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || !n.IsZero() {
		t.Errorf("expected zero, got %v", n)
	}
}
