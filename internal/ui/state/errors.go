package state

import (
	"errors"
	"fmt"
)

// Validation failures raised before any request is made.
var (
	ErrMissingField     = errors.New("is required")
	ErrInvalidTime      = errors.New("must be HH:MM")
	ErrInvalidDate      = errors.New("must be YYYY-MM-DD")
	ErrInvalidDuration  = errors.New("must be a positive number of minutes")
	ErrNoRecipients     = errors.New("needs at least one recipient")
	ErrNoSelection      = errors.New("select a draft first")
	ErrSelectionRange   = errors.New("draft index out of range")
	ErrWrongStep        = errors.New("not available at this step")
	ErrNotAuthenticated = errors.New("please log in first")
	ErrInvalidMode      = errors.New("unknown mode")
	ErrEmptyCommand     = errors.New("command is empty")
)

// FieldError ties a validation failure to the form field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
