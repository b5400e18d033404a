package commonerrors

import "errors"

var (
	ErrMissingRequiredEnv    = errors.New("missing required environment variable")
	ErrInvalidJWTSecret      = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrTitleAlreadyExists    = errors.New("title already exists")
)
