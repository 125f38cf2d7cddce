package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthorized indicates the platform rejected the credentials.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrRateLimited indicates the platform rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnsupportedType indicates an unknown content or feed type.
	ErrUnsupportedType = errors.New("unsupported type")
)
