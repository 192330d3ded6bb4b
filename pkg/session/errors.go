package session

import "errors"

var (
	// ErrSessionNotFound indicates the request carries no session token.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates the token failed verification.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the token is past its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrTokenGeneration indicates the token could not be signed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")

	// ErrInvalidConfig indicates a missing cookie name or signing key.
	ErrInvalidConfig = errors.New("session.invalid_config")
)
