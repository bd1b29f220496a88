package parser

import "errors"

var (
	// ErrEmptyProblem indicates blank problem text.
	ErrEmptyProblem = errors.New("parser: empty problem text")

	// ErrNoJSON indicates no JSON object could be found in a response.
	ErrNoJSON = errors.New("parser: no JSON object in response")

	// ErrRemoteDisabled indicates no API key is configured.
	ErrRemoteDisabled = errors.New("parser: remote parser disabled (no API key)")
)
