// Package deckjson implements store.DeckStore as JSON documents in an object
// store. A deck is one document at {jsonPrefix}/{category}/{deck}.json; all
// mutations are whole-document rewrites performed by the service layer.
package deckjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jmvaldez/flashdeck-api/internal/domain"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// preferredCategory is pinned to the front of category listings.
const preferredCategory = "phrasal_verbs"

// phonicsKey locates the phonics reference document. It lives outside the
// deck prefix, next to the phonics audio files.
const phonicsKey = "phonics_audio/phonics.json"

// DeckStore stores deck documents as JSON blobs under a key prefix.
type DeckStore struct {
	log     *slog.Logger
	objects store.ObjectStore
	prefix  string
}

var _ store.DeckStore = (*DeckStore)(nil)

// New creates a DeckStore over the given object store. prefix is the key
// prefix holding deck documents, without a trailing slash.
func New(log *slog.Logger, objects store.ObjectStore, prefix string) (*DeckStore, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if objects == nil {
		return nil, errors.New("object store cannot be nil")
	}

	return &DeckStore{
		log:     log.With(slog.String("component", "deck_store")),
		objects: objects,
		prefix:  strings.TrimRight(prefix, "/"),
	}, nil
}

// deckKey returns the object key for a deck document, appending the .json
// extension when the caller passed a bare deck name.
func (s *DeckStore) deckKey(category, deck string) string {
	filename := deck
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}
	return fmt.Sprintf("%s/%s/%s", s.prefix, category, filename)
}

// ListCategories derives category names from the stored document keys. The
// object store has no directory semantics, so categories are the distinct
// first path segments under the JSON prefix. Results are sorted, with the
// preferred category pinned first when present.
func (s *DeckStore) ListCategories(ctx context.Context) ([]string, error) {
	infos, err := s.objects.ListByPrefix(ctx, s.prefix+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, info := range infos {
		rest := strings.TrimPrefix(info.Key, s.prefix+"/")
		segment, _, ok := strings.Cut(rest, "/")
		if !ok || segment == "" {
			continue
		}
		if _, dup := seen[segment]; dup {
			continue
		}
		seen[segment] = struct{}{}
		categories = append(categories, segment)
	}

	sort.Strings(categories)
	for i, c := range categories {
		if c == preferredCategory && i != 0 {
			categories = append(categories[:i], categories[i+1:]...)
			categories = append([]string{preferredCategory}, categories...)
			break
		}
	}

	s.log.Debug("categories listed", "count", len(categories))
	return categories, nil
}

// ListDecks returns the deck file names within a category.
func (s *DeckStore) ListDecks(ctx context.Context, category string) ([]string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.prefix, category)
	infos, err := s.objects.ListByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks in %q: %w", category, err)
	}

	var decks []string
	for _, info := range infos {
		if !strings.HasSuffix(info.Key, ".json") {
			continue
		}
		name := info.Key[strings.LastIndex(info.Key, "/")+1:]
		decks = append(decks, name)
	}

	if len(decks) == 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrCategoryNotFound, category)
	}

	sort.Strings(decks)
	return decks, nil
}

// ReadDeck loads and parses a deck document.
func (s *DeckStore) ReadDeck(ctx context.Context, category, deck string) ([]domain.Card, error) {
	key := s.deckKey(category, deck)
	data, err := s.objects.Get(ctx, key)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", store.ErrDeckNotFound, category, deck)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deck %s/%s: %w", category, deck, err)
	}

	var cards []domain.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", store.ErrInvalidDocument, category, deck, err)
	}
	return cards, nil
}

// ReadPhonics loads the phonics reference document. The content is authored
// out-of-band and returned verbatim, only checked to be valid JSON.
func (s *DeckStore) ReadPhonics(ctx context.Context) ([]byte, error) {
	data, err := s.objects.Get(ctx, phonicsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load phonics document: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidDocument, phonicsKey)
	}
	return data, nil
}

// WriteDeck replaces the deck document. The document is indented to stay
// diffable for out-of-band authoring.
func (s *DeckStore) WriteDeck(ctx context.Context, category, deck string, cards []domain.Card) error {
	data, err := json.MarshalIndent(cards, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode deck %s/%s: %w", category, deck, err)
	}

	key := s.deckKey(category, deck)
	if err := s.objects.Put(ctx, key, data, "application/json"); err != nil {
		return fmt.Errorf("failed to write deck %s/%s: %w", category, deck, err)
	}

	s.log.Debug("deck written", "category", category, "deck", deck, "cards", len(cards))
	return nil
}
