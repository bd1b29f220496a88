package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/mechsim/internal/vec"
)

// Values arrive decoded from JSON, so numbers are float64 and vectors are
// {"x": .., "y": ..} objects.

func toFloat(v any) (float64, error) {
	f, err := rawFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", ErrInvalidParameter, v)
	}
	return f, nil
}

func rawFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return parseFloat(n.String())
	case string:
		return parseFloat(n)
	}
	return 0, fmt.Errorf("%w: expected number, got %T", ErrInvalidParameter, v)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidParameter, s)
	}
	return f, nil
}

func toBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected boolean, got %T", ErrInvalidParameter, v)
	}
	return b, nil
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidParameter, v)
	}
	return s, nil
}

func toVec(v any) (vec.Vec2, error) {
	switch t := v.(type) {
	case vec.Vec2:
		return t, nil
	case map[string]any:
		xv, okX := t["x"]
		yv, okY := t["y"]
		if !okX || !okY {
			return vec.Vec2{}, fmt.Errorf("%w: vector needs x and y", ErrInvalidParameter)
		}
		x, err := toFloat(xv)
		if err != nil {
			return vec.Vec2{}, err
		}
		y, err := toFloat(yv)
		if err != nil {
			return vec.Vec2{}, err
		}
		return vec.New(x, y), nil
	}
	return vec.Vec2{}, fmt.Errorf("%w: expected vector, got %T", ErrInvalidParameter, v)
}

// checkState rejects a body state whose energy or momentum would not be
// finite, since it could never be reported back.
func checkState(mass float64, pos, vel vec.Vec2, g float64) error {
	ke := 0.5 * mass * vel.MagnitudeSquared()
	pe := mass * g * pos.Y
	for _, f := range []float64{pos.X, pos.Y, vel.X, vel.Y, ke, pe, mass * vel.X, mass * vel.Y} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: state out of range (mass %g, position %v, velocity %v)", ErrInvalidParameter, mass, pos, vel)
		}
	}
	return nil
}
