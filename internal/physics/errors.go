package physics

import "errors"

var (
	// ErrBodyNotFound indicates an operation referenced a body id not in the world.
	ErrBodyNotFound = errors.New("physics: body not found")

	// ErrDuplicateBody indicates a body with the same id is already in the world.
	ErrDuplicateBody = errors.New("physics: duplicate body id")

	// ErrNotCircular indicates the body has no enabled circular motion.
	ErrNotCircular = errors.New("physics: body is not in circular motion")

	// ErrInvalidCollisionType indicates an unknown collision type name.
	ErrInvalidCollisionType = errors.New("physics: invalid collision type")

	// ErrInvalidShape indicates an unknown shape name.
	ErrInvalidShape = errors.New("physics: invalid shape")
)
