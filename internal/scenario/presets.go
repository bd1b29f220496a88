package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/vec"
)

type presetFunc func(p params) Scenario

var presets = map[string]struct {
	defaults map[string]float64
	build    presetFunc
}{
	"projectile_motion":   {map[string]float64{"velocity": 15, "angle": 45}, projectile},
	"free_fall":           {map[string]float64{"height": 20, "mass": 1}, freeFall},
	"elastic_collision":   {map[string]float64{"mass1": 2, "mass2": 1}, elasticCollision},
	"inelastic_collision": {map[string]float64{"mass1": 2, "mass2": 1}, inelasticCollision},
	"circular_motion":     {map[string]float64{"radius": 15, "angular_velocity": 1}, circular},
	"pendulum":            {map[string]float64{"length": 15, "initial_angle": 30}, pendulum},
	"spring_oscillation":  {map[string]float64{"spring_constant": 10, "displacement": 5}, springOscillation},
	"newton_cradle":       {map[string]float64{"num_balls": 5}, newtonCradle},
}

type params map[string]float64

func (p params) get(name string) float64 { return p[name] }

// Preset returns the named canned scenario. Missing parameters take the
// preset defaults; unknown parameters are ignored.
func Preset(name string, overrides map[string]float64) (Scenario, error) {
	p, ok := presets[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	merged := make(params, len(p.defaults))
	for k, v := range p.defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		if _, known := p.defaults[k]; known {
			merged[k] = v
		}
	}
	s := p.build(merged)
	s.ScenarioType = name
	if s.Duration == 0 {
		s.Duration = DefaultDuration
	}
	return s, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetDefaults returns a copy of the preset's default parameters.
func PresetDefaults(name string) (map[string]float64, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	out := make(map[string]float64, len(p.defaults))
	for k, v := range p.defaults {
		out[k] = v
	}
	return out, nil
}

func gravity() ForceSpec {
	return ForceSpec{Type: "gravity", Parameters: map[string]any{"g": physics.StandardGravity}}
}

func env(width, height float64, gravityOn bool) Environment {
	return Environment{
		Width:           width,
		Height:          height,
		GravityEnabled:  ptr(gravityOn),
		GravityStrength: physics.StandardGravity,
	}
}

func anchor(name string, at vec.Vec2) Entity {
	return Entity{
		Name:            name,
		Type:            "anchor",
		Mass:            1,
		Radius:          0.3,
		Color:           centerMarkerColor,
		InitialPosition: ptr(at),
		Static:          true,
	}
}

func projectile(p params) Scenario {
	v := physics.DecomposeVelocity(p.get("velocity"), p.get("angle"))
	return Scenario{
		Description: fmt.Sprintf("Projectile launched at %.1f m/s, %.1f°", p.get("velocity"), p.get("angle")),
		Entities: []Entity{{
			Name:            "Projectile",
			Type:            "projectile",
			Mass:            1,
			Radius:          0.5,
			Color:           "#e74c3c",
			InitialPosition: ptr(vec.New(10, 0)),
			InitialVelocity: v,
		}},
		Forces:      []ForceSpec{gravity()},
		Environment: env(100, 60, true),
	}
}

func freeFall(p params) Scenario {
	h := p.get("height")
	return Scenario{
		Description: fmt.Sprintf("Object dropped from %.1f m", h),
		Entities: []Entity{{
			Name:            "Falling Object",
			Type:            "ball",
			Mass:            p.get("mass"),
			Radius:          0.5,
			Color:           "#3498db",
			InitialPosition: ptr(vec.New(50, h)),
		}},
		Forces:      []ForceSpec{gravity()},
		Environment: env(100, math.Max(40, h*1.5), true),
	}
}

func collisionPair(p params, ct physics.CollisionType, v2 float64) []Entity {
	e := 1.0
	return []Entity{
		{
			Name: "Object 1", Type: "ball", Mass: p.get("mass1"), Radius: 1, Color: "#e74c3c",
			InitialPosition: ptr(vec.New(20, 20)), InitialVelocity: vec.New(5, 0),
			CollisionType: string(ct), Restitution: ptr(e),
		},
		{
			Name: "Object 2", Type: "ball", Mass: p.get("mass2"), Radius: 1, Color: "#3498db",
			InitialPosition: ptr(vec.New(50, 20)), InitialVelocity: vec.New(v2, 0),
			CollisionType: string(ct), Restitution: ptr(e),
		},
	}
}

func elasticCollision(p params) Scenario {
	return Scenario{
		Description: "Elastic collision between two balls",
		Entities:    collisionPair(p, physics.Elastic, 0),
		Environment: env(100, 40, false),
	}
}

func inelasticCollision(p params) Scenario {
	return Scenario{
		Description: "Perfectly inelastic collision between two balls",
		Entities:    collisionPair(p, physics.PerfectlyInelastic, -3),
		Environment: env(100, 40, false),
	}
}

func circular(p params) Scenario {
	r, omega := p.get("radius"), p.get("angular_velocity")
	return Scenario{
		Description: fmt.Sprintf("Uniform circular motion, r=%.1f m, ω=%.2f rad/s", r, omega),
		Entities: []Entity{{
			Name:            "Orbiting Object",
			Type:            "ball",
			Mass:            1,
			Radius:          0.5,
			Color:           "#9b59b6",
			InitialPosition: ptr(vec.New(DefaultCenter.X+r, DefaultCenter.Y)),
			InitialVelocity: vec.New(0, omega*r),
			CircularMotion: &CircularSpec{
				Center:          ptr(DefaultCenter),
				Radius:          r,
				AngularVelocity: omega,
			},
		}},
		Environment: env(100, 100, false),
	}
}

func pendulum(p params) Scenario {
	length := p.get("length")
	theta := physics.Radians(p.get("initial_angle"))
	pivot := vec.New(50, 60)
	bob := vec.New(pivot.X+length*math.Sin(theta), pivot.Y-length*math.Cos(theta))

	return Scenario{
		Description: fmt.Sprintf("Pendulum of length %.1f m released at %.1f°", length, p.get("initial_angle")),
		Entities: []Entity{
			{
				Name:            "Pendulum Bob",
				Type:            "ball",
				Mass:            1,
				Radius:          0.8,
				Color:           "#e67e22",
				InitialPosition: ptr(bob),
				Forces: []ForceSpec{{
					Type: "spring",
					Parameters: map[string]any{
						"k": 50.0, "anchor_x": pivot.X, "anchor_y": pivot.Y, "rest_length": length,
					},
				}},
			},
			anchor("Anchor", pivot),
		},
		Forces:      []ForceSpec{gravity()},
		Environment: env(100, 80, true),
	}
}

func springOscillation(p params) Scenario {
	pivot := vec.New(30, 20)
	const rest = 10.0
	return Scenario{
		Description: fmt.Sprintf("Mass on a spring, k=%.1f N/m, displaced %.1f m", p.get("spring_constant"), p.get("displacement")),
		Entities: []Entity{
			{
				Name:            "Mass",
				Type:            "block",
				Mass:            1,
				Radius:          0.8,
				Color:           "#1abc9c",
				InitialPosition: ptr(vec.New(pivot.X+rest+p.get("displacement"), pivot.Y)),
				Forces: []ForceSpec{
					{
						Type: "spring",
						Parameters: map[string]any{
							"k": p.get("spring_constant"), "anchor_x": pivot.X, "anchor_y": pivot.Y, "rest_length": rest,
						},
					},
					{Type: "drag", Parameters: map[string]any{"coefficient": 0.05}},
				},
			},
			anchor("Anchor", pivot),
		},
		Environment: env(100, 40, false),
	}
}

func newtonCradle(p params) Scenario {
	n := int(p.get("num_balls"))
	if n < 1 {
		n = 1
	}
	const spacing, startX, y = 2.0, 40.0, 30.0
	e := 1.0

	entities := make([]Entity, 0, n)
	for i := 0; i < n; i++ {
		ent := Entity{
			Name:            fmt.Sprintf("Ball %d", i+1),
			Type:            "ball",
			Mass:            1,
			Radius:          0.8,
			Color:           "#95a5a6",
			InitialPosition: ptr(vec.New(startX+float64(i)*spacing, y)),
			CollisionType:   string(physics.Elastic),
			Restitution:     ptr(e),
		}
		if i == 0 {
			ent.InitialVelocity = vec.New(5, 0)
		}
		entities = append(entities, ent)
	}
	return Scenario{
		Description: fmt.Sprintf("Newton's cradle with %d balls", n),
		Entities:    entities,
		Environment: env(100, 60, false),
	}
}
