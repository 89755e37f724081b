package schema

import "errors"

// Errors returned while parsing or validating a schema (spec.md §4.A, §7).
var (
	ErrInvalidType       = errors.New("invalid type")
	ErrInvalidChildren   = errors.New("invalid children")
	ErrConflictingStrategy = errors.New("conflicting strategy")
	ErrInvalidNullability  = errors.New("invalid nullability")
)
