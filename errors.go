package conwalk

import (
	"errors"
)

// Generic errors applicable to all entities.
var (
	// ErrRequiredName is returned when an entity is created without a
	// name; the console would reject the form anyway, with a less
	// helpful message.
	ErrRequiredName = errors.New("name is required")
)
