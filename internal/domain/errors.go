package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks a payload that can never be applied: a data-integrity
// problem in the snapshot itself, not a transient fault. The processor parks
// the queue entry with the error text instead of retrying it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given operator-facing text
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MissingParticipantError builds the legacy-format error for an event that is
// missing a required participant, e.g.
// `ERROR: No goalie specified for "shot on goal" event 42.`
func MissingParticipantError(person string, ev *GameEventPayload) *ValidationError {
	return NewValidationError(fmt.Sprintf("ERROR: No %s specified for %q event %d.", person, string(ev.EventName), ev.ID))
}

// UnknownEventTypeError builds the validation error for an event name outside
// the closed event type set
func UnknownEventTypeError(ev *GameEventPayload) *ValidationError {
	return NewValidationError(fmt.Sprintf("ERROR: Event %d has an unknown event name: %q.", ev.ID, string(ev.EventName)))
}

// UnknownStatusError builds the validation error for a queue entry whose status
// is neither NEW nor DEPRECATED
func UnknownStatusError(entryID string, status int) *ValidationError {
	return NewValidationError(fmt.Sprintf("ERROR: Entry %s has an unknown status: %d.", entryID, status))
}
