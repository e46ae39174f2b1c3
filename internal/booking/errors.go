package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyBooked signals a normal negative outcome: the requested slot
	// already holds at least one event.
	ErrAlreadyBooked = errors.New("slot already booked")

	// ErrAuthorizationRequired signals that no usable credentials exist and
	// the caller must run the authorization flow.
	ErrAuthorizationRequired = errors.New("authorization required")
)

// ValidationError lists the request fields that were missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// InvalidTimeFormatError signals an unparseable requested start time.
type InvalidTimeFormatError struct {
	Input string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid datetime format: %s", e.Input)
}
