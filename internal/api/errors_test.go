package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmvaldez/flashdeck-api/internal/domain"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deck not found", store.ErrDeckNotFound, http.StatusNotFound},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound},
		{"object not found", store.ErrObjectNotFound, http.StatusNotFound},
		{"card index", domain.ErrCardIndexOutOfRange, http.StatusBadRequest},
		{"definition index", domain.ErrDefinitionIndexOutOfRange, http.StatusBadRequest},
		{"no definitions", domain.ErrNoDefinitions, http.StatusBadRequest},
		{"invalid synthesis argument", generation.ErrInvalidSynthesisArgument, http.StatusBadRequest},
		{"provider unavailable", generation.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{"provider timeout", generation.ErrProviderTimeout, http.StatusGatewayTimeout},
		{"empty result", generation.ErrEmptyResult, http.StatusBadGateway},
		{"provider failure", generation.ErrProviderFailure, http.StatusBadGateway},
		{"invalid document", store.ErrInvalidDocument, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeUnwrapsChains(t *testing.T) {
	err := fmt.Errorf("failed to load deck phrasal_verbs/break: %w", store.ErrDeckNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(err))
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"deck not found", store.ErrDeckNotFound, "Deck not found"},
		{"category not found", store.ErrCategoryNotFound, "Category not found"},
		{"card index", domain.ErrCardIndexOutOfRange, "Card index out of range"},
		{"synthesis argument", generation.ErrInvalidSynthesisArgument, "Invalid voice or model name"},
		{"unavailable", generation.ErrProviderUnavailable, "Generation service is not configured"},
		{"unknown", errors.New("pq: secret detail"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverEchoesInternals(t *testing.T) {
	err := fmt.Errorf("gcs write to bucket my-secret-bucket: %w", errors.New("permission denied"))
	msg := GetSafeErrorMessage(err)
	assert.NotContains(t, msg, "my-secret-bucket")
	assert.NotContains(t, msg, "permission denied")
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New(
		"Key: 'GenerateImageRequest.Category' Error:Field validation for 'Category' failed on the 'required' tag",
	)
	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Category")
	assert.Contains(t, msg, "required")

	assert.Equal(t, "Invalid request", SanitizeValidationError(errors.New("unexpected EOF")))
}
