package domain

import "errors"

var (
	// ErrValidation marks a submission rejected locally; nothing was sent upstream.
	ErrValidation = errors.New("submission failed validation")
	// ErrSubmissionPending is returned when the same form instance is already being submitted.
	ErrSubmissionPending = errors.New("submission already pending")
	// ErrUpstream covers both transport failures and non-2xx answers from the backend.
	ErrUpstream = errors.New("backend request failed")
	// ErrDetached is returned when a form is used after its view was torn down.
	ErrDetached = errors.New("form detached")
)

// ValidationError carries the field flags that caused ErrValidation.
type ValidationError struct {
	Fields ValidationErrorSet
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
