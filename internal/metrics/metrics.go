// Package metrics provides per-step observers of a physics world.
package metrics

import "github.com/san-kum/mechsim/internal/sim"

// Default returns the metrics attached to every recorded run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewCollisions(),
		NewInBounds(5),
		NewMaxHeight(),
		NewMaxDistance(),
	}
}
