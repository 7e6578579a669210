package stego

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below, for use with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrCapacity   = errors.New("insufficient capacity")
	ErrFormat     = errors.New("not a binimg container")
)

// ValidationError reports a missing or unusable carrier or payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s not loaded", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CapacityError reports that the header and payload need more carrier bytes
// than are available.
type CapacityError struct {
	Required  uint64
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("carrier cannot contain payload: required %d carrier bytes, available %d",
		e.Required, e.Available)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// FormatError reports a structural violation found while decoding. State
// is the header field being read when decoding stopped.
type FormatError struct {
	State State
	Got   string
	Want  string
}

func (e *FormatError) Error() string {
	switch {
	case e.State == StateMagic:
		return fmt.Sprintf("not a binimg container: magic %s, expected %s", e.Got, e.Want)
	case e.Want == "":
		return fmt.Sprintf("corrupt header: invalid %s %s", e.State, e.Got)
	default:
		return fmt.Sprintf("corrupt header: %s is %s, expected %s", e.State, e.Got, e.Want)
	}
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
