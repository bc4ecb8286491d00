package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a precondition was not met (missing or
	// malformed required field). Runs failing with this error have no
	// partial effect.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidReference indicates a URL could not be parsed into a
	// document reference.
	ErrInvalidReference = errors.New("invalid document reference")

	// ErrRateLimited indicates the remote store's rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
