package service

import "errors"

// Sentinel errors mapped to HTTP status codes by the API layer.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("not allowed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrReplyDepth         = errors.New("replies to replies are not allowed")
	ErrInvalidState       = errors.New("invalid or already used oauth state")
	ErrInvalidToken       = errors.New("invalid confirmation token")
)
