package media

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// GenerateImage returns a definition's image, generating it when necessary.
//
// The decision is a two-state gate: an existing asset is returned
// unconditionally (force is irrelevant on a hit); on a miss, force=false
// yields a Skipped result carrying the would-be key, and force=true invokes
// the provider. Provider failures are terminal for the request; nothing is
// retried here. On success the asset is persisted under the canonical key and
// cross-referenced into the owning deck document.
func (s *Service) GenerateImage(ctx context.Context, prompt, category, deck string, cardIndex, defIndex int, force bool) (*ImageResult, error) {
	canonical := s.ImageKey(category, deck, cardIndex, defIndex)

	if !s.collapse {
		return s.generateImage(ctx, prompt, category, deck, cardIndex, defIndex, force, canonical)
	}

	// Concurrent requests for the same key share one execution; followers
	// piggyback on the leader's context.
	v, err, _ := s.flight.Do(canonical, func() (interface{}, error) {
		return s.generateImage(ctx, prompt, category, deck, cardIndex, defIndex, force, canonical)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ImageResult), nil
}

func (s *Service) generateImage(ctx context.Context, prompt, category, deck string, cardIndex, defIndex int, force bool, canonical string) (*ImageResult, error) {
	existing, err := s.findExistingImage(ctx, category, deck, cardIndex, defIndex)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		s.log.InfoContext(ctx, "image already exists, reusing", "key", existing)
		return &ImageResult{
			Location: s.objects.PublicURL(existing),
			Filename: path.Base(existing),
			Key:      existing,
			Reused:   true,
		}, nil
	}

	if !force {
		s.log.InfoContext(ctx, "image absent and generation omitted", "key", canonical)
		return &ImageResult{
			Filename: path.Base(canonical),
			Key:      canonical,
			Skipped:  true,
		}, nil
	}

	if s.images == nil {
		return nil, fmt.Errorf("%w: image model not initialized", generation.ErrProviderUnavailable)
	}

	s.log.InfoContext(ctx, "generating image",
		"key", canonical,
		"prompt_length", len(prompt))

	data, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := s.objects.Put(ctx, canonical, data, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("failed to store generated image: %w", err)
	}

	location := s.objects.PublicURL(canonical)
	if err := s.crossReference(ctx, category, deck, cardIndex, defIndex, location); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "image generated and stored", "key", canonical)
	return &ImageResult{
		Location: location,
		Filename: path.Base(canonical),
		Key:      canonical,
	}, nil
}

// UploadImage stores caller-provided image bytes under the canonical key,
// bypassing the generation gate entirely: it always overwrites, deletes a
// leftover asset under a different extension, and always cross-references the
// deck document.
func (s *Service) UploadImage(ctx context.Context, category, deck string, cardIndex, defIndex int, data []byte, extension string) (*ImageResult, error) {
	if len(data) == 0 {
		return nil, errors.New("uploaded image is empty")
	}

	canonical := s.ImageKey(category, deck, cardIndex, defIndex)

	existing, err := s.findExistingImage(ctx, category, deck, cardIndex, defIndex)
	if err != nil {
		return nil, err
	}
	if existing != "" && existing != canonical {
		if derr := s.objects.Delete(ctx, existing); derr != nil && !errors.Is(derr, store.ErrObjectNotFound) {
			s.log.WarnContext(ctx, "failed to delete superseded image", "key", existing, "error", derr)
		}
	}

	if err := s.objects.Put(ctx, canonical, data, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("failed to store uploaded image: %w", err)
	}

	location := s.objects.PublicURL(canonical)
	if err := s.crossReference(ctx, category, deck, cardIndex, defIndex, location); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "image uploaded",
		"key", canonical,
		"bytes", len(data),
		"source_extension", extension)
	return &ImageResult{
		Location: location,
		Filename: path.Base(canonical),
		Key:      canonical,
	}, nil
}

// DeleteImage removes a definition's image. Deletion is idempotent: a missing
// asset is reported as success with an informational message.
func (s *Service) DeleteImage(ctx context.Context, category, deck string, cardIndex, defIndex int) (string, error) {
	existing, err := s.findExistingImage(ctx, category, deck, cardIndex, defIndex)
	if err != nil {
		return "", err
	}
	if existing == "" {
		return "image not found", nil
	}

	if err := s.objects.Delete(ctx, existing); err != nil {
		if errors.Is(err, store.ErrObjectNotFound) {
			return "image not found", nil
		}
		return "", fmt.Errorf("failed to delete image %q: %w", existing, err)
	}

	s.log.InfoContext(ctx, "image deleted", "key", existing)
	return "image deleted", nil
}

// crossReference writes the asset location into the owning deck document.
// The blob is already persisted at this point and is never rolled back on a
// document-write failure; an orphaned asset is an accepted, recoverable
// inconsistency since the positional key finds it again on the next lookup.
func (s *Service) crossReference(ctx context.Context, category, deck string, cardIndex, defIndex int, location string) error {
	if err := s.decks.UpdateImagePath(ctx, category, deck, cardIndex, defIndex, &location); err != nil {
		return fmt.Errorf("image stored but deck update failed: %w", err)
	}
	return nil
}
