package animals

import (
	"fmt"

	"cattle-records/internal/platform/apperr"
)

var terminal = map[Status]struct{}{
	StatusSold:     {},
	StatusDeceased: {},
}

func (s Status) Terminal() bool {
	_, ok := terminal[s]
	return ok
}

// CanTransition: active => sold|deceased. Un estado terminal no cambia, tampoco a sí mismo.
func CanTransition(id string, from, to Status) error {
	if !to.Valid() {
		return apperr.Validationf("status", "unknown status %q", to)
	}
	if from.Terminal() {
		return apperr.InvalidState("animal", id, fmt.Sprintf("status %s is terminal", from))
	}
	if from == to {
		return apperr.InvalidState("animal", id, fmt.Sprintf("already %s", to))
	}
	return nil
}
