package errors

import "errors"

// Lifecycle error kinds. Operations wrap one of these with a message,
// callers classify with errors.Is.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidSignature = errors.New("invalid signature")

	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
