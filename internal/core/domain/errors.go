package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("external id and password are required")
	ErrInvalidRole        = errors.New("invalid role")

	ErrScoreExists   = errors.New("score already exists")
	ErrScoreNotFound = errors.New("score not found")
	ErrInvalidScore  = errors.New("score value out of range")

	ErrForbidden = errors.New("access forbidden")
)
