package server

import (
	"errors"
	"net/http"

	"github.com/san-kum/mechsim/internal/parser"
	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/service"
)

// ErrBadRequest indicates a request body that could not be decoded.
var ErrBadRequest = errors.New("server: malformed request")

var badInput = []error{
	ErrBadRequest,
	service.ErrNoSimulation,
	service.ErrInvalidParameter,
	service.ErrUnknownParameter,
	scenario.ErrUnknownPreset,
	scenario.ErrInvalidScenario,
	physics.ErrNotCircular,
	physics.ErrInvalidCollisionType,
	physics.ErrInvalidShape,
	parser.ErrEmptyProblem,
}

func statusFor(err error) int {
	if errors.Is(err, physics.ErrBodyNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badInput {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
