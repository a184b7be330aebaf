package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	"github.com/jmvaldez/flashdeck-api/internal/platform/deckjson"
	"github.com/jmvaldez/flashdeck-api/internal/service/deck"
	"github.com/jmvaldez/flashdeck-api/internal/service/media"
	"github.com/jmvaldez/flashdeck-api/internal/testutils"
)

// newTestApplication wires the router over an in-memory object store, without
// external providers.
func newTestApplication(t *testing.T) (*application, *testutils.MemoryObjectStore) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	objects := testutils.NewMemoryObjectStore()

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Storage.JSONPrefix = "json"
	cfg.Storage.ImagesPrefix = "card_images"
	cfg.Storage.AudioPrefix = "card_audio"
	cfg.Generation.CollapseConcurrent = true

	decks, err := deckjson.New(log, objects, cfg.Storage.JSONPrefix)
	require.NoError(t, err)
	deckService, err := deck.NewService(log, decks)
	require.NoError(t, err)
	mediaService, err := media.NewService(log, objects, deckService, nil, nil, cfg.Storage, cfg.Generation)
	require.NoError(t, err)

	return &application{
		config:       cfg,
		logger:       log,
		deckService:  deckService,
		mediaService: mediaService,
	}, objects
}

func TestRouterHealth(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterDeckRoutes(t *testing.T) {
	app, objects := newTestApplication(t)
	router := app.setupRouter()

	deckBody := `[{"verb": "break down", "learned": false, "definitions": [{"meaning": "stop working", "imagePath": null}]}]`
	require.NoError(t, objects.Put(context.Background(), "json/phrasal_verbs/break.json", []byte(deckBody), "application/json"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "phrasal_verbs")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/available-flashcards-files?category=phrasal_verbs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "break.json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flashcards-data?category=phrasal_verbs&deck=break", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var cards []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Contains(t, cards[0], "verb")

	// Mutations round-trip through the stored document.
	body := `{"category":"phrasal_verbs","deck":"break","index":0,"learned":true}`
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/update-status", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flashcards-data?category=phrasal_verbs&deck=break", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"learned":true`)
}

func TestRouterUnknownDeckIs404(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flashcards-data?category=phrasal_verbs&deck=missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterGenerateImageWithoutProvider(t *testing.T) {
	app, objects := newTestApplication(t)
	router := app.setupRouter()

	deckBody := `[{"learned": false, "definitions": [{"imagePath": null}]}]`
	require.NoError(t, objects.Put(context.Background(), "json/phrasal_verbs/break.json", []byte(deckBody), "application/json"))

	// Without a stored image and without force, the gate responds before the
	// provider would be needed.
	body := `{"prompt":"p","category":"phrasal_verbs","deck":"break","index":0,"def_index":0,"force_generation":false}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-image", strings.NewReader(body)))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "filename_expected")

	// Forcing without a configured provider is a 503.
	body = strings.Replace(body, `"force_generation":false`, `"force_generation":true`, 1)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-image", strings.NewReader(body)))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
