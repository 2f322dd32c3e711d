package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt fails.
	// It deliberately does not distinguish unknown user from wrong password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrTokenInvalid is returned when a token fails signature, expiry or
	// claims validation.
	ErrTokenInvalid = errors.New("auth: invalid token")
)
