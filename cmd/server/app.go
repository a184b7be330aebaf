package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/platform/deckjson"
	"github.com/jmvaldez/flashdeck-api/internal/platform/gcs"
	"github.com/jmvaldez/flashdeck-api/internal/platform/googletts"
	"github.com/jmvaldez/flashdeck-api/internal/platform/imagen"
	"github.com/jmvaldez/flashdeck-api/internal/platform/logger"
	"github.com/jmvaldez/flashdeck-api/internal/service/deck"
	"github.com/jmvaldez/flashdeck-api/internal/service/media"
)

// application holds the wired dependencies for the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	deckService  *deck.Service
	mediaService *media.Service

	cleanupFuncs []func() error
}

// newApplication loads configuration, sets up logging, connects storage, and
// wires the services. Generation providers are optional: when one is not
// configured the server still boots and the affected endpoints report the
// provider as unavailable.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"bucket", cfg.Storage.Bucket)

	app := &application{config: cfg, logger: log}

	objects, err := gcs.New(ctx, log, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect object storage: %w", err)
	}
	app.cleanupFuncs = append(app.cleanupFuncs, objects.Close)

	decks, err := deckjson.New(log, objects, cfg.Storage.JSONPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck store: %w", err)
	}

	deckService, err := deck.NewService(log, decks)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}
	app.deckService = deckService

	var images generation.ImageGenerator
	if cfg.Image.APIKey != "" {
		generator, err := imagen.NewGenerator(ctx, log, cfg.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to create image generator: %w", err)
		}
		images = generator
	} else {
		log.Warn("image generation disabled, no API key configured")
	}

	var speech generation.SpeechSynthesizer
	synthesizer, err := googletts.NewSynthesizer(ctx, log, cfg.TTS)
	if err != nil {
		log.Warn("speech synthesis disabled", "error", err)
	} else {
		speech = synthesizer
		app.cleanupFuncs = append(app.cleanupFuncs, synthesizer.Close)
	}

	mediaService, err := media.NewService(log, objects, deckService, images, speech, cfg.Storage, cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("failed to create media service: %w", err)
	}
	app.mediaService = mediaService

	return app, nil
}

// cleanup releases external resources in reverse acquisition order.
func (app *application) cleanup() {
	for i := len(app.cleanupFuncs) - 1; i >= 0; i-- {
		if err := app.cleanupFuncs[i](); err != nil {
			app.logger.Error("cleanup failed", "error", err)
		}
	}
}
