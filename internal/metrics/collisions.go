package metrics

import "github.com/san-kum/mechsim/internal/physics"

// Collisions counts resolved pairwise contacts.
type Collisions struct {
	name  string
	count int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(w *physics.World) {
	c.count += w.LastContacts()
}

func (c *Collisions) Value() float64 { return float64(c.count) }

func (c *Collisions) Reset() { c.count = 0 }
