package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a record violates a uniqueness rule.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrCorrupted is returned when persisted data cannot be decoded. Callers
	// must treat this as fatal; the store never silently resets state.
	ErrCorrupted = errors.New("persistence: corrupted data")
)
