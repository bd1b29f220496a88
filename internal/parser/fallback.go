package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/mechsim/internal/scenario"
)

var quantity = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*(m/s|rad/s|n/m|kg|degrees|degree|deg|°|meters|meter|m)(?:[^a-z/]|$)`)

// quantities maps a normalized unit (m/s, rad/s, n/m, kg, deg, m) to the
// numbers tagged with it, in order of appearance.
func quantities(text string) map[string][]float64 {
	out := make(map[string][]float64)
	for _, m := range quantity.FindAllStringSubmatch(strings.ToLower(text), -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := m[2]
		switch unit {
		case "degrees", "degree", "°":
			unit = "deg"
		case "meters", "meter":
			unit = "m"
		}
		out[unit] = append(out[unit], v)
	}
	return out
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Fallback classifies text by keyword and fills the matching preset from
// the numbers it mentions. Anything unrecognized becomes a projectile.
func Fallback(text string) scenario.Scenario {
	lower := strings.ToLower(text)
	q := quantities(text)
	params := make(map[string]float64)

	first := func(unit, param string) {
		if vs := q[unit]; len(vs) > 0 {
			params[param] = vs[0]
		}
	}

	var name string
	switch {
	case containsAny(lower, "circle", "circular", "orbit", "revolv", "rotat"):
		name = "circular_motion"
		first("m", "radius")
		first("rad/s", "angular_velocity")
		if v := q["m/s"]; len(v) > 0 {
			r := params["radius"]
			if r <= 0 {
				r, _ = scenarioDefault(name, "radius")
			}
			params["angular_velocity"] = v[0] / r
		}
	case containsAny(lower, "collid", "collision", "crash", "hits"):
		name = "elastic_collision"
		if containsAny(lower, "inelastic", "stick", "together") {
			name = "inelastic_collision"
		}
		if kg := q["kg"]; len(kg) > 0 {
			params["mass1"] = kg[0]
			if len(kg) > 1 {
				params["mass2"] = kg[1]
			}
		}
	case containsAny(lower, "spring"):
		name = "spring_oscillation"
		first("n/m", "spring_constant")
		first("m", "displacement")
	case containsAny(lower, "pendulum"):
		name = "pendulum"
		first("m", "length")
		first("deg", "initial_angle")
	case containsAny(lower, "drop", "fall", "released from"):
		name = "free_fall"
		first("m", "height")
		first("kg", "mass")
	default:
		name = "projectile_motion"
		first("m/s", "velocity")
		first("deg", "angle")
		switch {
		case containsAny(lower, "straight up", "upward", "vertically"):
			params["angle"] = 90
		case containsAny(lower, "horizontal"):
			params["angle"] = 0
		}
	}

	// every name above is a registered preset
	s, _ := scenario.Preset(name, params)
	s.Description = strings.TrimSpace(text)
	return s
}

func scenarioDefault(preset, param string) (float64, bool) {
	d, err := scenario.PresetDefaults(preset)
	if err != nil {
		return 0, false
	}
	v, ok := d[param]
	return v, ok
}
