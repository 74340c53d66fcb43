package repository

import "errors"

var (
	// ErrNotFound is returned by lookups that miss.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)
