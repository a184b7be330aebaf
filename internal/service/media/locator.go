package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// findExistingImage returns the storage key of an existing image for the
// coordinate, preferring the canonical .jpg over a legacy .jpeg with the same
// base name. Returns "" when neither exists. At most one variant is expected
// at a time; no further disambiguation happens.
func (s *Service) findExistingImage(ctx context.Context, category, deck string, cardIndex, defIndex int) (string, error) {
	base := fmt.Sprintf("%s/%s", s.imageDir(category, deck), imageFileBase(deck, cardIndex, defIndex))

	for _, ext := range []string{".jpg", ".jpeg"} {
		key := base + ext
		ok, err := s.objects.Exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check for existing image %q: %w", key, err)
		}
		if ok {
			return key, nil
		}
	}
	return "", nil
}

// findExistingAudio returns the best same-phrase candidate under the prefix,
// considering any tone. Tie-break when multiple candidates exist: newest
// Updated timestamp wins; equal or missing timestamps fall back to the
// lexicographically greatest key, so the pick stays deterministic on backends
// without modification times.
func (s *Service) findExistingAudio(ctx context.Context, prefix string) (store.ObjectInfo, bool, error) {
	infos, err := s.objects.ListByPrefix(ctx, prefix)
	if err != nil {
		return store.ObjectInfo{}, false, fmt.Errorf("failed to list audio candidates under %q: %w", prefix, err)
	}

	var best store.ObjectInfo
	found := false
	for _, info := range infos {
		if !strings.HasSuffix(info.Key, ".mp3") {
			continue
		}
		if !found {
			best = info
			found = true
			continue
		}
		if info.Updated.After(best.Updated) ||
			(info.Updated.Equal(best.Updated) && info.Key > best.Key) {
			best = info
		}
	}
	return best, found, nil
}
