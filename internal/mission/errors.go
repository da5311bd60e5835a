package mission

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateEvent   = errors.New("duplicate mission event")
	ErrUnknownEventKind = errors.New("unknown mission event kind")
)

type DuplicateEventError struct {
	Key    Key
	Source string
	Line   int
}

func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("duplicate %s for mission %d at %s (%s line %d)",
		e.Key.Kind, e.Key.MissionID, e.Key.Timestamp.Format(time.RFC3339), e.Source, e.Line)
}

func (e *DuplicateEventError) Is(target error) bool { return target == ErrDuplicateEvent }

type UnknownEventKindError struct {
	Kind string
}

func (e *UnknownEventKindError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownEventKind, e.Kind)
}

func (e *UnknownEventKindError) Is(target error) bool { return target == ErrUnknownEventKind }
