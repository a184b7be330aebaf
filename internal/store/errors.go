package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is the generic form of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrObjectNotFound indicates that the requested blob does not exist in the
	// object store.
	ErrObjectNotFound = fmt.Errorf("%w: object", ErrNotFound)

	// ErrDeckNotFound indicates that the requested deck document does not exist.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrCategoryNotFound indicates that the requested category does not exist
	// or holds no decks.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrInvalidDocument is returned when a deck document cannot be parsed.
	// The document exists but is not usable, so this is distinct from ErrNotFound.
	ErrInvalidDocument = errors.New("invalid deck document")

	// ErrWriteFailed is returned when persisting a blob or document fails.
	ErrWriteFailed = errors.New("write failed")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
