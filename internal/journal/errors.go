package journal

import (
	"errors"
	"fmt"
)

var (
	ErrNotObject        = errors.New("line is not a JSON object")
	ErrMissingField     = errors.New("missing required field")
	ErrMissingTimestamp = errors.New("missing timestamp")
)

// DecodeError reports a line that could not be turned into a Record.
type DecodeError struct {
	Source string
	Line   int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s line %d: %v", e.Source, e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TimestampError reports a missing or unparseable timestamp.
type TimestampError struct {
	Source string
	Line   int
	Value  string
	Err    error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("parsing timestamp %q in %s line %d: %v", e.Value, e.Source, e.Line, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }
