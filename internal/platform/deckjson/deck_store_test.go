package deckjson_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvaldez/flashdeck-api/internal/platform/deckjson"
	"github.com/jmvaldez/flashdeck-api/internal/store"
	"github.com/jmvaldez/flashdeck-api/internal/testutils"
)

func newStore(t *testing.T) (*deckjson.DeckStore, *testutils.MemoryObjectStore) {
	t.Helper()
	objects := testutils.NewMemoryObjectStore()
	decks, err := deckjson.New(slog.Default(), objects, "json")
	require.NoError(t, err)
	return decks, objects
}

func seedDeck(objects *testutils.MemoryObjectStore, key, body string) {
	objects.Seed(key, []byte(body), "application/json", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestListCategoriesPinsPreferredFirst(t *testing.T) {
	decks, objects := newStore(t)
	seedDeck(objects, "json/animals/cat.json", "[]")
	seedDeck(objects, "json/phrasal_verbs/break.json", "[]")
	seedDeck(objects, "json/adjectives/big.json", "[]")
	seedDeck(objects, "json/adjectives/small.json", "[]")

	categories, err := decks.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"phrasal_verbs", "adjectives", "animals"}, categories)
}

func TestListDecks(t *testing.T) {
	decks, objects := newStore(t)
	seedDeck(objects, "json/phrasal_verbs/break.json", "[]")
	seedDeck(objects, "json/phrasal_verbs/get.json", "[]")
	seedDeck(objects, "json/phrasal_verbs/notes.txt", "ignored")

	names, err := decks.ListDecks(context.Background(), "phrasal_verbs")
	require.NoError(t, err)
	assert.Equal(t, []string{"break.json", "get.json"}, names)

	_, err = decks.ListDecks(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestReadDeck(t *testing.T) {
	decks, objects := newStore(t)
	seedDeck(objects, "json/phrasal_verbs/break.json",
		`[{"verb":"break down","learned":false,"definitions":[{"meaning":"stop working","imagePath":null}]}]`)

	cards, err := decks.ReadDeck(context.Background(), "phrasal_verbs", "break")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.False(t, cards[0].Learned)
	require.Len(t, cards[0].Definitions, 1)
	assert.Nil(t, cards[0].Definitions[0].ImagePath)

	// The deck name with its extension resolves to the same document.
	cards, err = decks.ReadDeck(context.Background(), "phrasal_verbs", "break.json")
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = decks.ReadDeck(context.Background(), "phrasal_verbs", "missing")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestReadDeckInvalidDocument(t *testing.T) {
	decks, objects := newStore(t)
	seedDeck(objects, "json/phrasal_verbs/broken.json", `{"not":"an array"`)

	_, err := decks.ReadDeck(context.Background(), "phrasal_verbs", "broken")
	assert.ErrorIs(t, err, store.ErrInvalidDocument)
}

func TestWriteDeckRoundTrip(t *testing.T) {
	decks, objects := newStore(t)
	seedDeck(objects, "json/phrasal_verbs/break.json",
		`[{"verb":"break down","learned":false,"definitions":[{"meaning":"stop working","imagePath":null}]}]`)

	cards, err := decks.ReadDeck(context.Background(), "phrasal_verbs", "break")
	require.NoError(t, err)

	cards[0].Learned = true
	require.NoError(t, decks.WriteDeck(context.Background(), "phrasal_verbs", "break", cards))

	reread, err := decks.ReadDeck(context.Background(), "phrasal_verbs", "break")
	require.NoError(t, err)
	assert.True(t, reread[0].Learned)
	assert.Equal(t, "application/json", objects.ContentType("json/phrasal_verbs/break.json"))
}

func TestReadPhonics(t *testing.T) {
	decks, objects := newStore(t)

	document := `[{"sound": "th", "examples": ["the", "this"]}]`
	seedDeck(objects, "phonics_audio/phonics.json", document)

	data, err := decks.ReadPhonics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, document, string(data), "document is returned verbatim")
}

func TestReadPhonicsMissing(t *testing.T) {
	decks, _ := newStore(t)

	_, err := decks.ReadPhonics(context.Background())
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestReadPhonicsInvalidDocument(t *testing.T) {
	decks, objects := newStore(t)
	seedDeck(objects, "phonics_audio/phonics.json", `[{"sound":`)

	_, err := decks.ReadPhonics(context.Background())
	assert.ErrorIs(t, err, store.ErrInvalidDocument)
}
