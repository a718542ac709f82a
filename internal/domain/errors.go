package domain

import "errors"

// Error taxonomy surfaced to callers. All are recoverable; handlers map them
// to responses, services and repos return them verbatim.
var (
	ErrDuplicateCredential = errors.New("name or email already registered")
	ErrInvalidCredentials  = errors.New("invalid name or password")
	ErrUnauthenticated     = errors.New("login required")
	ErrUnauthorized        = errors.New("task belongs to another user")
	ErrNotFound            = errors.New("task not found")
	ErrValidation          = errors.New("missing or invalid field")
)
