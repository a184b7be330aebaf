package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmvaldez/flashdeck-api/internal/domain"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on the
// error type. This prevents leaking internal error types or messages to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, store.ErrObjectNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors: the resource exists, the coordinate or argument does not
	case errors.Is(err, domain.ErrCardIndexOutOfRange),
		errors.Is(err, domain.ErrDefinitionIndexOutOfRange),
		errors.Is(err, domain.ErrNoDefinitions),
		errors.Is(err, generation.ErrInvalidSynthesisArgument):
		return http.StatusBadRequest

	// Provider errors
	case errors.Is(err, generation.ErrProviderUnavailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrProviderTimeout):
		return http.StatusGatewayTimeout

	case errors.Is(err, generation.ErrEmptyResult),
		errors.Is(err, generation.ErrProviderFailure):
		return http.StatusBadGateway

	// Default: internal server error (includes store.ErrInvalidDocument)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for the
// error type, never the raw error string.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrObjectNotFound):
		return "File not found"

	case errors.Is(err, domain.ErrCardIndexOutOfRange):
		return "Card index out of range"

	case errors.Is(err, domain.ErrDefinitionIndexOutOfRange),
		errors.Is(err, domain.ErrNoDefinitions):
		return "Definition index out of range"

	case errors.Is(err, generation.ErrInvalidSynthesisArgument):
		return "Invalid voice or model name"

	case errors.Is(err, generation.ErrProviderUnavailable):
		return "Generation service is not configured"

	case errors.Is(err, generation.ErrProviderTimeout):
		return "Generation service timed out"

	case errors.Is(err, generation.ErrEmptyResult),
		errors.Is(err, generation.ErrProviderFailure):
		return "Generation service failed"

	case errors.Is(err, store.ErrInvalidDocument):
		return "Deck document is malformed"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError converts a validator error into a user-friendly
// message without echoing submitted values back.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'GenerateImageRequest.Category' Error:Field validation
		// for 'Category' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Invalid request"
}

// getValidationTagMessage maps validation tags to human-readable fragments.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "min":
		return "value is below the minimum"
	case "max":
		return "value exceeds the maximum"
	case "oneof":
		return "value is not one of the allowed options"
	default:
		return "validation failed on " + tag
	}
}
