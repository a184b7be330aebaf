package store

import (
	"context"
	"time"

	"github.com/jmvaldez/flashdeck-api/internal/domain"
)

// ObjectInfo describes one stored object as returned by a prefix listing.
// Updated carries the backend's last-modification timestamp and is zero on
// backends without modification-time semantics.
type ObjectInfo struct {
	Key     string
	Updated time.Time
}

// ObjectStore is an opaque key-value blob store with prefix listing. Keys are
// slash-separated paths; the store itself has no directory semantics.
//
// Implementations must map a missing object to ErrObjectNotFound on Get and
// Delete, and must not treat it as an error on Exists.
type ObjectStore interface {
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// ListByPrefix returns every stored object whose key starts with prefix.
	// Ordering is backend-dependent; callers needing a deterministic pick must
	// apply their own tie-break over the returned ObjectInfo values.
	ListByPrefix(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Get returns the object's content.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores content under key with the given MIME type, overwriting any
	// existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the externally resolvable location of the object
	// under key. It does not check existence.
	PublicURL(key string) string
}

// DeckStore provides whole-document access to deck JSON documents, keyed by
// (category, deck name). There is no field-level patch API: updates load the
// full document, mutate it, and rewrite it. Concurrent writers to the same
// deck are not coordinated; last writer wins.
type DeckStore interface {
	// ListCategories returns all category names, ordered by the store's
	// presentation policy.
	ListCategories(ctx context.Context) ([]string, error)

	// ListDecks returns the deck file names within a category. Returns
	// ErrCategoryNotFound when the category does not exist or is empty.
	ListDecks(ctx context.Context, category string) ([]string, error)

	// ReadDeck returns the ordered card list of a deck. Returns
	// ErrDeckNotFound when the document does not exist.
	ReadDeck(ctx context.Context, category, deck string) ([]domain.Card, error)

	// WriteDeck replaces the deck document with the given card list.
	WriteDeck(ctx context.Context, category, deck string, cards []domain.Card) error

	// ReadPhonics returns the phonics reference document as raw JSON. The
	// document is authored out-of-band and served verbatim. Returns
	// ErrObjectNotFound when it is not stored.
	ReadPhonics(ctx context.Context) ([]byte, error)
}
