package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as signing up with a username that is already taken.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized means the caller has no valid session.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden means the caller is authenticated but does not own the resource.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials is returned for every failed login, whether the
// identifier or the password was wrong. It wraps ErrUnauthorized.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
