package scenario

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

// ForceSpec describes one force by type name and parameters:
//
//	gravity      g
//	drag         coefficient
//	friction     mu_k, mu_s
//	spring       k, anchor_x, anchor_y, rest_length
//	constant     x, y
//	centripetal  center_x, center_y, radius, angular_velocity
//	interaction  target (entity name), strength
type ForceSpec struct {
	Type       string         `json:"type" yaml:"type"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Enabled    *bool          `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

var forceTypes = map[string]bool{
	"gravity":     true,
	"drag":        true,
	"friction":    true,
	"spring":      true,
	"constant":    true,
	"centripetal": true,
	"interaction": true,
}

func (f ForceSpec) validate() error {
	if !forceTypes[f.Type] {
		return fmt.Errorf("%w: unknown force type %q", ErrInvalidScenario, f.Type)
	}
	if f.Type == "interaction" && f.str("target") == "" {
		return fmt.Errorf("%w: interaction force needs a target", ErrInvalidScenario)
	}
	return nil
}

func (f ForceSpec) num(name string, def float64) float64 {
	v, ok := f.Parameters[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if x, err := n.Float64(); err == nil {
			return x
		}
	case string:
		if x, err := strconv.ParseFloat(n, 64); err == nil {
			return x
		}
	}
	return def
}

func (f ForceSpec) str(name string) string {
	s, _ := f.Parameters[name].(string)
	return s
}

// build turns the spec into a force. Interaction targets are resolved
// through lookup, which may return nil for an unknown name.
func (f ForceSpec) build(lookup func(name string) *physics.Body) (physics.Force, error) {
	var force physics.Force
	switch f.Type {
	case "gravity":
		force = physics.NewGravity(f.num("g", physics.StandardGravity))
	case "drag":
		force = physics.NewDrag(f.num("coefficient", 0.1))
	case "friction":
		force = physics.NewFriction(f.num("mu_k", 0.3), f.num("mu_s", 0.5))
	case "spring":
		anchor := vec.New(f.num("anchor_x", DefaultCenter.X), f.num("anchor_y", DefaultCenter.Y))
		force = physics.NewSpring(f.num("k", 10), anchor, f.num("rest_length", 10))
	case "constant":
		force = physics.NewConstant(vec.New(f.num("x", 0), f.num("y", 0)))
	case "centripetal":
		center := vec.New(f.num("center_x", DefaultCenter.X), f.num("center_y", DefaultCenter.Y))
		force = physics.NewCentripetal(center, f.num("radius", 15), f.num("angular_velocity", 1))
	case "interaction":
		target := lookup(f.str("target"))
		if target == nil {
			return nil, fmt.Errorf("%w: interaction target %q not found", ErrInvalidScenario, f.str("target"))
		}
		force = physics.NewInteraction(target, f.num("strength", 1))
	default:
		return nil, fmt.Errorf("%w: unknown force type %q", ErrInvalidScenario, f.Type)
	}
	if f.Enabled != nil {
		force.SetEnabled(*f.Enabled)
	}
	return force, nil
}
