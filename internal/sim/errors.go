package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a body position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive dt or max time.
	ErrInvalidConfig = errors.New("sim: invalid config")
)

// StepError wraps an error with the step and simulated time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, body %s): %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
