package metrics

import "github.com/san-kum/mechsim/internal/physics"

// InBounds is the fraction of observed steps in which every body stayed
// inside the world rectangle above the ground. A margin widens the box.
type InBounds struct {
	name       string
	margin     float64
	violations int
	samples    int
}

func NewInBounds(margin float64) *InBounds {
	return &InBounds{
		name:   "in_bounds",
		margin: margin,
	}
}

func (s *InBounds) Name() string {
	return s.name
}

func (s *InBounds) Observe(w *physics.World) {
	s.samples++
	for _, b := range w.Bodies() {
		p := b.Position
		if p.X < -s.margin || p.X > w.Width+s.margin ||
			p.Y < w.GroundLevel-s.margin || p.Y > w.Height+s.margin {
			s.violations++
			break
		}
	}
}

func (s *InBounds) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *InBounds) Reset() {
	s.violations = 0
	s.samples = 0
}

