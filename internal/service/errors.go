package service

import (
	"errors"
	"strings"
)

// Centralized service layer errors. Security-sensitive failures collapse
// to a single sentinel each so callers cannot distinguish sub-conditions.
var (
	// ErrValidationFailed covers malformed registration input (bad
	// email shape, empty password).
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmailAlreadyExists is returned when registering an email the
	// store already knows.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials is the single login failure: unknown email
	// and wrong password produce the identical error.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is the single refresh failure: missing input, bad
	// signature, wrong algorithm, unknown identity, token mismatch and
	// refresh expiry all collapse to it.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTooManyAttempts is returned when the login throttle budget is
	// exhausted.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// CreateError reports a store-level rejection of account creation. It
// carries the store's human-readable messages verbatim.
type CreateError struct {
	Reasons []string
}

// Error implements the error interface.
func (e *CreateError) Error() string {
	return "account creation failed: " + strings.Join(e.Reasons, "; ")
}

// AsCreateError unwraps err into a *CreateError if it is one.
func AsCreateError(err error) (*CreateError, bool) {
	var createErr *CreateError
	if errors.As(err, &createErr) {
		return createErr, true
	}
	return nil, false
}
