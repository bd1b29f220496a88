package config

// Variants are named parameter sets for the scenario presets, keyed by
// preset name then variant name.
var Variants = map[string]map[string]map[string]float64{
	"projectile_motion": {
		"default": {"velocity": 15, "angle": 45},
		"steep":   {"velocity": 20, "angle": 70},
		"flat":    {"velocity": 25, "angle": 15},
	},
	"free_fall": {
		"default": {"height": 20, "mass": 1},
		"tower":   {"height": 80, "mass": 5},
	},
	"elastic_collision": {
		"default": {"mass1": 2, "mass2": 1},
		"equal":   {"mass1": 1, "mass2": 1},
		"heavy":   {"mass1": 10, "mass2": 1},
	},
	"inelastic_collision": {
		"default": {"mass1": 2, "mass2": 1},
		"equal":   {"mass1": 1, "mass2": 1},
	},
	"circular_motion": {
		"default": {"radius": 15, "angular_velocity": 1},
		"fast":    {"radius": 10, "angular_velocity": 3},
		"wide":    {"radius": 30, "angular_velocity": 0.5},
	},
	"pendulum": {
		"default": {"length": 15, "initial_angle": 30},
		"small":   {"length": 15, "initial_angle": 10},
		"large":   {"length": 20, "initial_angle": 60},
	},
	"spring_oscillation": {
		"default": {"spring_constant": 10, "displacement": 5},
		"stiff":   {"spring_constant": 40, "displacement": 3},
		"soft":    {"spring_constant": 2, "displacement": 8},
	},
	"newton_cradle": {
		"default": {"num_balls": 5},
		"three":   {"num_balls": 3},
	},
}

func GetVariant(preset, variant string) map[string]float64 {
	presetVariants, ok := Variants[preset]
	if !ok {
		return nil
	}
	params, ok := presetVariants[variant]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

func ListVariants(preset string) []string {
	presetVariants, ok := Variants[preset]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presetVariants))
	for name := range presetVariants {
		names = append(names, name)
	}
	return names
}
