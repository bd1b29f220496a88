package physics

import "github.com/san-kum/mechsim/internal/vec"

func KineticEnergy(b *Body) float64 {
	return 0.5 * b.Mass * b.Velocity.MagnitudeSquared()
}

// PotentialEnergy is m·g·(y - ref).
func PotentialEnergy(b *Body, g, ref float64) float64 {
	return b.Mass * g * (b.Position.Y - ref)
}

func MechanicalEnergy(b *Body, g, ref float64) float64 {
	return KineticEnergy(b) + PotentialEnergy(b, g, ref)
}

// ElasticPotentialEnergy is ½·k·x².
func ElasticPotentialEnergy(x, k float64) float64 {
	return 0.5 * k * x * x
}

func Work(force, displacement vec.Vec2) float64 { return force.Dot(displacement) }

func Power(force, velocity vec.Vec2) float64 { return force.Dot(velocity) }

// Energy is a system energy total.
type Energy struct {
	Kinetic    float64
	Potential  float64
	Mechanical float64
}

// TotalEnergy sums energies over bodies with potential measured from ref.
func TotalEnergy(bodies []*Body, g, ref float64) Energy {
	var e Energy
	for _, b := range bodies {
		e.Kinetic += KineticEnergy(b)
		e.Potential += PotentialEnergy(b, g, ref)
	}
	e.Mechanical = e.Kinetic + e.Potential
	return e
}

// EnergySample is one recorded point of the energy history.
type EnergySample struct {
	Time       float64 `json:"time"`
	Kinetic    float64 `json:"kinetic"`
	Potential  float64 `json:"potential"`
	Mechanical float64 `json:"mechanical"`
}

// EnergyTracker records system energy over time. The first recorded
// mechanical energy becomes the initial energy until Clear.
type EnergyTracker struct {
	history []EnergySample
	initial *float64
}

func (t *EnergyTracker) Record(time float64, e Energy) {
	t.history = append(t.history, EnergySample{
		Time:       time,
		Kinetic:    e.Kinetic,
		Potential:  e.Potential,
		Mechanical: e.Mechanical,
	})
	if t.initial == nil {
		m := e.Mechanical
		t.initial = &m
	}
}

// Initial returns the initial mechanical energy, if one was recorded.
func (t *EnergyTracker) Initial() (float64, bool) {
	if t.initial == nil {
		return 0, false
	}
	return *t.initial, true
}

// Loss is initial minus latest mechanical energy, zero with no history.
func (t *EnergyTracker) Loss() float64 {
	if len(t.history) == 0 || t.initial == nil {
		return 0
	}
	return *t.initial - t.history[len(t.history)-1].Mechanical
}

func (t *EnergyTracker) History() []EnergySample {
	out := make([]EnergySample, len(t.history))
	copy(out, t.history)
	return out
}

func (t *EnergyTracker) Len() int { return len(t.history) }

func (t *EnergyTracker) Clear() {
	t.history = t.history[:0]
	t.initial = nil
}

// LinearMomentum is m·v.
func LinearMomentum(b *Body) vec.Vec2 { return b.Velocity.Scale(b.Mass) }

func TotalMomentum(bodies []*Body) vec.Vec2 {
	total := vec.Zero()
	for _, b := range bodies {
		total = total.Add(LinearMomentum(b))
	}
	return total
}

func MomentumMagnitude(b *Body) float64 { return LinearMomentum(b).Magnitude() }
