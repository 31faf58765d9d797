package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)
