package domain

import "errors"

// Sentinel errors returned by the stores and auth components. The API
// layer maps these to HTTP statuses; nothing below it knows about HTTP.
var (
	ErrDuplicateAccount   = errors.New("uid or username already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")   // Signature or JWT expiry failure
	ErrSessionNotFound    = errors.New("invalid session") // No live record for the token
)
