package metrics

import (
	"math"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

// MomentumDrift is the largest distance of the total momentum vector from
// its first observed value.
type MomentumDrift struct {
	name     string
	initial  vec.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(w *physics.World) {
	p := w.TotalMomentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.DistanceTo(m.initial))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = vec.Zero()
	m.maxDrift = 0
	m.samples = 0
}
