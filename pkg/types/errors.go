package types

import "errors"

// Domain errors shared across components
var (
	// Provider transport errors
	ErrUnauthorized = errors.New("provider credentials rejected")
	ErrRateLimited  = errors.New("provider rate limit exceeded")

	// Request validation errors
	ErrEmptyQuery = errors.New("query cannot be empty")
)
