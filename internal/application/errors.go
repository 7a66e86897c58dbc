package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized is returned when the acting principal lacks permission for an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when a sign-in attempt does not match a
	// stored account. Like the field validation messages, its text is the
	// user-facing copy the presentation layer displays verbatim.
	ErrInvalidCredentials = errors.New("Credenciales incorrectas.")
)

// ValidationError captures field level validation issues. Messages are the
// user-facing texts the presentation layer displays verbatim.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface by joining the distinct field messages
// in field order, so a single-issue error reads as its display message.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	seen := make(map[string]struct{}, len(fields))
	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		message := v.FieldErrors[field]
		if _, ok := seen[message]; ok {
			continue
		}
		seen[message] = struct{}{}
		messages = append(messages, message)
	}
	return strings.Join(messages, " ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
