package sim

import "github.com/san-kum/mechsim/internal/physics"

// Metric accumulates a value over the steps of a run.
type Metric interface {
	Name() string
	Observe(w *physics.World)
	Value() float64
	Reset()
}

// Observer is notified after every executed step.
type Observer interface {
	OnStep(w *physics.World)
}

type Config struct {
	Dt      float64 `yaml:"dt"`
	MaxTime float64 `yaml:"max_time"`
}

func DefaultConfig() Config {
	return Config{
		Dt:      1.0 / 60,
		MaxTime: 30,
	}
}

// Result summarizes a batch run.
type Result struct {
	Steps         int
	Time          float64
	InitialEnergy float64
	EnergyLoss    float64
	Metrics       map[string]float64
}
