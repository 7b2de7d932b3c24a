package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDuplicateUser      = errors.New("username or email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("operation not allowed")

	ErrResetNotFound = errors.New("no pending password reset")
	ErrResetExpired  = errors.New("password reset token expired")
	ErrResetMismatch = errors.New("password reset token mismatch")
)
