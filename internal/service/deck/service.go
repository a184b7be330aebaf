// Package deck implements deck document operations: listing categories and
// decks, reading card data, and the whole-document mutations (learned status,
// reset, image cross-references). Updates load the full deck, mutate one
// coordinate, and rewrite the document; concurrent writers to the same deck
// are not coordinated, matching the low-concurrency usage pattern this
// service targets.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmvaldez/flashdeck-api/internal/domain"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// Service provides deck operations over a DeckStore.
type Service struct {
	log   *slog.Logger
	decks store.DeckStore
}

// NewService creates a deck Service.
func NewService(log *slog.Logger, decks store.DeckStore) (*Service, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if decks == nil {
		return nil, errors.New("deck store cannot be nil")
	}

	return &Service{
		log:   log.With(slog.String("component", "deck_service")),
		decks: decks,
	}, nil
}

// ListCategories returns all category names.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.decks.ListCategories(ctx)
}

// ListDecks returns the deck file names within a category.
func (s *Service) ListDecks(ctx context.Context, category string) ([]string, error) {
	return s.decks.ListDecks(ctx, category)
}

// GetDeck returns the ordered card list of a deck.
func (s *Service) GetDeck(ctx context.Context, category, deck string) ([]domain.Card, error) {
	return s.decks.ReadDeck(ctx, category, deck)
}

// GetPhonicsData returns the phonics reference document as raw JSON.
func (s *Service) GetPhonicsData(ctx context.Context) ([]byte, error) {
	return s.decks.ReadPhonics(ctx)
}

// UpdateCardStatus sets the learned flag of one card, identified by its
// position in the deck.
func (s *Service) UpdateCardStatus(ctx context.Context, category, deck string, index int, learned bool) error {
	cards, err := s.decks.ReadDeck(ctx, category, deck)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(cards) {
		return fmt.Errorf("%w: card %d in deck of %d", domain.ErrCardIndexOutOfRange, index, len(cards))
	}
	cards[index].Learned = learned

	if err := s.decks.WriteDeck(ctx, category, deck, cards); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "card status updated",
		"category", category,
		"deck", deck,
		"index", index,
		"learned", learned)
	return nil
}

// ResetDeck marks every card as not learned and clears every definition's
// image reference, leaving card count and ordering unchanged.
func (s *Service) ResetDeck(ctx context.Context, category, deck string) error {
	cards, err := s.decks.ReadDeck(ctx, category, deck)
	if err != nil {
		return err
	}

	for i := range cards {
		cards[i].Learned = false
		for j := range cards[i].Definitions {
			cards[i].Definitions[j].ImagePath = nil
		}
	}

	if err := s.decks.WriteDeck(ctx, category, deck, cards); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "deck reset", "category", category, "deck", deck, "cards", len(cards))
	return nil
}

// UpdateImagePath writes an image reference into one (card, definition)
// coordinate. A nil path clears the reference.
func (s *Service) UpdateImagePath(ctx context.Context, category, deck string, cardIndex, defIndex int, imagePath *string) error {
	cards, err := s.decks.ReadDeck(ctx, category, deck)
	if err != nil {
		return err
	}

	if err := domain.SetImagePath(cards, cardIndex, defIndex, imagePath); err != nil {
		return err
	}

	if err := s.decks.WriteDeck(ctx, category, deck, cards); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "image path updated",
		"category", category,
		"deck", deck,
		"card_index", cardIndex,
		"def_index", defIndex,
		"cleared", imagePath == nil)
	return nil
}
