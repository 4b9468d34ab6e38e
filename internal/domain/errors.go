package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both a nonexistent id and an id owned by another user,
// so callers cannot distinguish the two cases.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed field in a mutation payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ReferenceError reports a folderId or tags entry that points to an entity
// that does not exist or is not owned by the caller.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("The `%s` does not reference an existing item", e.Field)
}

// DuplicateNameError reports a per-owner unique index violation.
type DuplicateNameError struct {
	Entity string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("The %s already exists", e.Entity)
}
