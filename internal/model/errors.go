package model

import "errors"

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError is returned when a payload cannot be turned into a CV.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

const (
	msgInvalidPayload  = "Invalid CV payload"
	msgMissingRequired = "Profile name and role are required"
)
