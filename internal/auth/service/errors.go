package service

import "errors"

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)
