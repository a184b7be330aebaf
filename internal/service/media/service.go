// Package media implements the content-addressable caching layer for
// generated card media. Every asset's identity is encoded in its storage key:
// images are keyed positionally by (category, deck, card index, definition
// index), audio by a phrase hash plus a human-readable tone tag. The service
// decides, per request, whether to reuse an existing asset, skip generation,
// or invoke the external provider, and cross-references new images into the
// owning deck document.
package media

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// DeckUpdater is the slice of the deck service this package needs: writing an
// image reference into one (card, definition) coordinate of a deck document.
type DeckUpdater interface {
	UpdateImagePath(ctx context.Context, category, deck string, cardIndex, defIndex int, imagePath *string) error
}

// Service is the media generation core. The image generator and speech
// synthesizer may be nil when their providers were not configured at startup;
// requests then fail with generation.ErrProviderUnavailable instead of the
// process failing to boot.
type Service struct {
	log     *slog.Logger
	objects store.ObjectStore
	decks   DeckUpdater
	images  generation.ImageGenerator
	speech  generation.SpeechSynthesizer

	imagesPrefix string
	audioPrefix  string

	// collapse folds concurrent identical generations into one provider call
	// per canonical key. Without it, two concurrent misses for the same key
	// may both generate; the double write is harmless for images (same
	// destination, last write wins) but can race with audio eviction.
	collapse bool
	flight   singleflight.Group
}

// NewService creates the media service.
func NewService(
	log *slog.Logger,
	objects store.ObjectStore,
	decks DeckUpdater,
	images generation.ImageGenerator,
	speech generation.SpeechSynthesizer,
	storageCfg config.StorageConfig,
	genCfg config.GenerationConfig,
) (*Service, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if objects == nil {
		return nil, errors.New("object store cannot be nil")
	}
	if decks == nil {
		return nil, errors.New("deck updater cannot be nil")
	}

	return &Service{
		log:          log.With(slog.String("component", "media_service")),
		objects:      objects,
		decks:        decks,
		images:       images,
		speech:       speech,
		imagesPrefix: storageCfg.ImagesPrefix,
		audioPrefix:  storageCfg.AudioPrefix,
		collapse:     genCfg.CollapseConcurrent,
	}, nil
}

// ImageResult is the outcome of an image generation, upload, or reuse.
type ImageResult struct {
	// Location is the asset's externally resolvable URL. Empty when Skipped.
	Location string
	// Filename is the asset's base file name; on a skip it names the file
	// that would be created.
	Filename string
	// Key is the full storage key; on a skip, the would-be key.
	Key string
	// Skipped reports that no asset existed and generation was intentionally
	// not attempted (force=false). Not an error.
	Skipped bool
	// Reused reports that an existing asset was returned without a provider call.
	Reused bool
}

// AudioResult is the outcome of a speech synthesis or reuse.
type AudioResult struct {
	Location string
	Filename string
	Key      string
	// Reused reports that a cached asset with the same phrase and tone was
	// returned without a provider call.
	Reused bool
}
