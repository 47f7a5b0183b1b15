package errors

import "errors"

var (
	// ErrUserNotFound indicates that the specified user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a registration with an already used email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden indicates the caller lacks permission for the operation
	ErrForbidden = errors.New("operation not permitted")
)
