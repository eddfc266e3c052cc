package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned when the standup time text does not
// parse as 24-hour HH:MM.
var ErrInvalidTimeFormat = errors.New("invalid time format. Please use HH:MM")

// TargetNotFoundError is returned when a channel name cannot be resolved
// in the workspace. Name keeps the user's original input for the
// user-facing message.
type TargetNotFoundError struct {
	Name string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("channel %q not found. Please make sure the name is correct", e.Name)
}
