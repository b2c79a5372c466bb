package service

import "errors"

// Request-scoped error taxonomy. Handlers map these onto status codes with
// errors.Is; anything else is treated as a storage failure and returned as
// a 500.
var (
	// ErrNotFound means the resource identifier did not resolve.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized means the caller is authenticated but the policy
	// predicate denied the action.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation covers business-rule validation failures that the
	// field-level request validation cannot catch.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")
)
