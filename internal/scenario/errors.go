package scenario

import "errors"

var (
	// ErrUnknownPreset indicates a preset name with no builder.
	ErrUnknownPreset = errors.New("scenario: unknown preset")

	// ErrInvalidScenario indicates a scenario that cannot be built.
	ErrInvalidScenario = errors.New("scenario: invalid scenario")
)
