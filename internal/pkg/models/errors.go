package models

import "errors"

var (
	// ErrMissingInput is returned when phone, code or token is absent
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidCode is returned when no unused code matches the phone
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrCodeExpired is returned when the matching code is past its expiry
	ErrCodeExpired = errors.New("verification code expired")
	// ErrUserNotFound is returned when the user directory has no such user
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidProfile is returned when a profile update fails validation
	ErrInvalidProfile = errors.New("invalid profile update")
)
