package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jmvaldez/flashdeck-api/internal/api"
	apiMiddleware "github.com/jmvaldez/flashdeck-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	mediaHandler := api.NewMediaHandler(app.mediaService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Deck endpoints
		r.Get("/categories", deckHandler.GetCategories)
		r.Get("/available-flashcards-files", deckHandler.GetDeckFiles)
		r.Get("/flashcards-data", deckHandler.GetFlashcardsData)
		r.Get("/phonics-data", deckHandler.GetPhonicsData)
		r.Post("/update-status", deckHandler.UpdateStatus)
		r.Post("/reset-all", deckHandler.ResetAll)

		// Media endpoints
		r.Post("/generate-image", mediaHandler.GenerateImage)
		r.Post("/upload-image", mediaHandler.UploadImage)
		r.Delete("/delete-image", mediaHandler.DeleteImage)
		r.Post("/synthesize-speech", mediaHandler.SynthesizeSpeech)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
