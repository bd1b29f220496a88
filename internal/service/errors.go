package service

import "errors"

var (
	// ErrNoSimulation indicates an operation before any simulation was created.
	ErrNoSimulation = errors.New("service: no active simulation")

	// ErrInvalidParameter indicates a value of the wrong shape or range.
	ErrInvalidParameter = errors.New("service: invalid parameter value")

	// ErrUnknownParameter indicates a parameter name that cannot be updated.
	ErrUnknownParameter = errors.New("service: unknown parameter")
)
