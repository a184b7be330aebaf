// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jmvaldez/flashdeck-api/internal/api/shared"
	"github.com/jmvaldez/flashdeck-api/internal/domain"
	"github.com/jmvaldez/flashdeck-api/internal/platform/logger"
)

// DeckService is the deck operations surface the handlers depend on.
type DeckService interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListDecks(ctx context.Context, category string) ([]string, error)
	GetDeck(ctx context.Context, category, deck string) ([]domain.Card, error)
	GetPhonicsData(ctx context.Context) ([]byte, error)
	UpdateCardStatus(ctx context.Context, category, deck string, index int, learned bool) error
	ResetDeck(ctx context.Context, category, deck string) error
}

// DeckHandler handles deck listing and progress endpoints.
type DeckHandler struct {
	decks  DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// GetCategories handles GET /api/categories requests.
func (h *DeckHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	categories, err := h.decks.ListCategories(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("categories listed", slog.Int("count", len(categories)))
	shared.RespondWithJSON(w, r, http.StatusOK, struct {
		Categories []string `json:"categories"`
	}{Categories: categories})
}

// GetDeckFiles handles GET /api/available-flashcards-files requests. The
// active file is the first deck of the category in listing order.
func (h *DeckHandler) GetDeckFiles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	category := r.URL.Query().Get("category")
	if category == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing category parameter")
		return
	}

	files, err := h.decks.ListDecks(r.Context(), category)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deck files listed", slog.String("category", category), slog.Int("count", len(files)))
	shared.RespondWithJSON(w, r, http.StatusOK, DeckFilesResponse{
		Success:    true,
		Files:      files,
		ActiveFile: files[0],
	})
}

// GetFlashcardsData handles GET /api/flashcards-data requests. The deck's
// card array is returned as stored, including fields this service does not
// model.
func (h *DeckHandler) GetFlashcardsData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	category := r.URL.Query().Get("category")
	deck := r.URL.Query().Get("deck")
	if category == "" || deck == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing category or deck parameter")
		return
	}

	cards, err := h.decks.GetDeck(r.Context(), category, deck)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("deck loaded",
		slog.String("category", category),
		slog.String("deck", deck),
		slog.Int("cards", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// GetPhonicsData handles GET /api/phonics-data requests. The phonics
// document is served verbatim; it is reference data with no card semantics.
func (h *DeckHandler) GetPhonicsData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	data, err := h.decks.GetPhonicsData(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("phonics data served", slog.Int("bytes", len(data)))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("failed to write phonics response", "error", err)
	}
}

// UpdateStatus handles POST /api/update-status requests.
func (h *DeckHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.decks.UpdateCardStatus(r.Context(), req.Category, req.Deck, *req.Index, *req.Learned)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Success: true})
}

// ResetAll handles POST /api/reset-all requests.
func (h *DeckHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.decks.ResetDeck(r.Context(), req.Category, req.Deck)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Success: true,
		Message: "all progress reset",
	})
}
