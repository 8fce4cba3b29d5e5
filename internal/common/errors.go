package common

import "errors"

var (
	// ErrValidation marks user input rejected before submission.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned by lookups that found nothing.
	ErrNotFound = errors.New("not found")
)
