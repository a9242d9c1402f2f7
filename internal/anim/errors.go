package anim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates source values that are non-numeric or non-finite.
	ErrInvalidInput = errors.New("sortviz: invalid input")

	// ErrUnsupportedAlgorithm indicates an unknown algorithm selector.
	ErrUnsupportedAlgorithm = errors.New("sortviz: unsupported algorithm")

	// ErrInvalidAnimationEvent indicates a log the player cannot interpret.
	// It always means the recorder and player disagree and is never recovered.
	ErrInvalidAnimationEvent = errors.New("sortviz: invalid animation event")
)

// EventError wraps an error with the position of the offending event.
type EventError struct {
	Index   int
	Event   Event
	Wrapped error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event %d (%s): %v", e.Index, e.Event, e.Wrapped)
}

func (e *EventError) Unwrap() error {
	return e.Wrapped
}
