package service

import "errors"

// Request-fatal error classes. External publishing failures are deliberately
// not represented here; they travel as result fields, never as raised errors.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrValidation          = errors.New("validation failed")
	ErrNotFoundOrForbidden = errors.New("not found or forbidden")
	ErrPersistence         = errors.New("persistence failed")
)
