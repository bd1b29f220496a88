package metrics

import (
	"math"

	"github.com/san-kum/mechsim/internal/physics"
)

// MaxHeight is the greatest height above ground reached by any non-static
// body.
type MaxHeight struct {
	name string
	peak float64
	seen bool
}

func NewMaxHeight() *MaxHeight { return &MaxHeight{name: "max_height"} }

func (m *MaxHeight) Name() string { return m.name }

func (m *MaxHeight) Observe(w *physics.World) {
	for _, b := range w.Bodies() {
		if b.Static {
			continue
		}
		h := b.Position.Y - w.GroundLevel
		if !m.seen || h > m.peak {
			m.peak, m.seen = h, true
		}
	}
}

func (m *MaxHeight) Value() float64 { return m.peak }

func (m *MaxHeight) Reset() { m.peak, m.seen = 0, false }

// MaxDistance is the largest horizontal displacement of any non-static
// body from its initial position.
type MaxDistance struct {
	name string
	max  float64
}

func NewMaxDistance() *MaxDistance { return &MaxDistance{name: "max_distance"} }

func (m *MaxDistance) Name() string { return m.name }

func (m *MaxDistance) Observe(w *physics.World) {
	for _, b := range w.Bodies() {
		if b.Static {
			continue
		}
		m.max = math.Max(m.max, math.Abs(b.Position.X-b.InitialPosition.X))
	}
}

func (m *MaxDistance) Value() float64 { return m.max }

func (m *MaxDistance) Reset() { m.max = 0 }
