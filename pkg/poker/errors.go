package poker

import "errors"

// All of these are unrecoverable where they are raised. Callers add context
// with fmt.Errorf and %w, so match with errors.Is.
var (
	// ErrDeckExhausted means more cards were requested than remain. It points
	// at a sizing bug, never at user input.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrInvalidAction means a policy returned an action outside the offered
	// legal set.
	ErrInvalidAction = errors.New("invalid action")

	// ErrPhase means an advance was requested past showdown.
	ErrPhase = errors.New("phase error")

	// ErrChipConservation means settlement created or destroyed chips beyond
	// the tracked split remainder. The run must stop.
	ErrChipConservation = errors.New("chip conservation violation")
)
