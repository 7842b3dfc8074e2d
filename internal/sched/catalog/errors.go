package catalog

import "errors"

// Errors returned by catalog operations.
var (
	// ErrAlreadyRegistered indicates a duplicate property key.
	ErrAlreadyRegistered = errors.New("property already registered")

	// ErrInvalidDefinition indicates a definition with a missing or
	// malformed field.
	ErrInvalidDefinition = errors.New("invalid property definition")
)
