package recurrence

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the codecs and constructors.
var (
	ErrInvalidWeekdayToken = errors.New("invalid weekday token")
	ErrMalformedTimestamp  = errors.New("malformed timestamp")
	ErrInvalidRule         = errors.New("invalid rule")
	ErrUnknownFrequency    = errors.New("unknown frequency")
)

// ParseError records which property and value failed to decode.
type ParseError struct {
	Property string
	Value    string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("%q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Property, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
