package storage

import "errors"

var (
	ErrNotFound      = errors.New("content not found")
	ErrUnavailable   = errors.New("content source unavailable")
	ErrNotConfigured = errors.New("data service is not configured")
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
