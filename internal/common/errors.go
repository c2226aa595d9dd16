package common

import "errors"

var (
	// session specific errors
	ErrNoSession = errors.New("no active session")

	// form specific errors
	ErrValidation = errors.New("validation error")
)
