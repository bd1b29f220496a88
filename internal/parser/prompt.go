package parser

import "strings"

const promptTemplate = `Convert the physics problem below into JSON for a 2D mechanics simulator.

Coordinates: origin bottom-left, x to the right, y up, ground at y = 0, world about 100 x 100 m.
Units: meters, seconds, kilograms, m/s. Decompose angled launches into x and y velocity components.
Defaults when unspecified: mass 1.0, radius 0.5, shape "circle", gravity 9.8.
Restitution: 1.0 elastic, 0.5 inelastic, 0.0 perfectly inelastic.

Respond with one JSON object only:
{
  "description": string,
  "scenario_type": "projectile" | "freefall" | "collision" | "circular_motion" | "oscillation" | "newton_laws",
  "entities": [{
    "name": string, "type": string, "mass": number, "radius": number, "color": string,
    "initial_position": {"x": number, "y": number},
    "initial_velocity": {"x": number, "y": number},
    "collision_type": "elastic" | "inelastic" | "perfectly_inelastic",
    "restitution": number
  }],
  "forces": [{"type": "gravity" | "drag" | "friction" | "spring", "parameters": {}}],
  "environment": {"width": number, "height": number, "ground_level": number},
  "duration": number
}

For circular motion omit gravity; give each orbiting entity its speed as initial_velocity.

Problem:
{{problem}}
`

func buildPrompt(problem string) string {
	return strings.Replace(promptTemplate, "{{problem}}", problem, 1)
}
