package deck

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvaldez/flashdeck-api/internal/domain"
	"github.com/jmvaldez/flashdeck-api/internal/platform/deckjson"
	"github.com/jmvaldez/flashdeck-api/internal/store"
	"github.com/jmvaldez/flashdeck-api/internal/testutils"
)

const sampleDeck = `[
    {
        "verb": "break down",
        "learned": true,
        "definitions": [
            {
                "meaning": "to stop functioning",
                "example": "The car broke down.",
                "imagePath": "card_images/phrasal_verbs/break/break_card_0_def0.jpg"
            },
            {
                "meaning": "to lose control emotionally",
                "example": "She broke down in tears.",
                "imagePath": null
            }
        ]
    },
    {
        "verb": "break up",
        "learned": false,
        "definitions": [
            {
                "meaning": "to end a relationship",
                "example": "They broke up last year.",
                "imagePath": "card_images/phrasal_verbs/break/break_card_1_def0.jpg"
            }
        ]
    }
]`

func newTestService(t *testing.T) (*Service, *testutils.MemoryObjectStore) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	objects := testutils.NewMemoryObjectStore()

	decks, err := deckjson.New(log, objects, "json")
	require.NoError(t, err)

	svc, err := NewService(log, decks)
	require.NoError(t, err)

	return svc, objects
}

func seedDeck(t *testing.T, objects *testutils.MemoryObjectStore, key, body string) {
	t.Helper()
	require.NoError(t, objects.Put(context.Background(), key, []byte(body), "application/json"))
}

func readStored(t *testing.T, objects *testutils.MemoryObjectStore, key string) []domain.Card {
	t.Helper()
	data, err := objects.Get(context.Background(), key)
	require.NoError(t, err)

	var cards []domain.Card
	require.NoError(t, json.Unmarshal(data, &cards))
	return cards
}

func TestNewServiceValidation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	decks, err := deckjson.New(log, testutils.NewMemoryObjectStore(), "json")
	require.NoError(t, err)

	if _, err := NewService(nil, decks); err == nil {
		t.Error("expected error for nil logger")
	}
	if _, err := NewService(log, nil); err == nil {
		t.Error("expected error for nil deck store")
	}
}

func TestGetDeck(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	cards, err := svc.GetDeck(context.Background(), "phrasal_verbs", "break")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.True(t, cards[0].Learned)
	assert.Len(t, cards[0].Definitions, 2)
	require.NotNil(t, cards[0].Definitions[0].ImagePath)
	assert.Equal(t, "card_images/phrasal_verbs/break/break_card_0_def0.jpg", *cards[0].Definitions[0].ImagePath)
	assert.Nil(t, cards[0].Definitions[1].ImagePath)
}

func TestGetDeckNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetDeck(context.Background(), "phrasal_verbs", "missing")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestUpdateCardStatus(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	err := svc.UpdateCardStatus(context.Background(), "phrasal_verbs", "break", 1, true)
	require.NoError(t, err)

	cards := readStored(t, objects, "json/phrasal_verbs/break.json")
	assert.True(t, cards[0].Learned, "other cards must be untouched")
	assert.True(t, cards[1].Learned)
}

func TestUpdateCardStatusIndexOutOfRange(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	for _, index := range []int{-1, 2, 99} {
		err := svc.UpdateCardStatus(context.Background(), "phrasal_verbs", "break", index, true)
		assert.ErrorIs(t, err, domain.ErrCardIndexOutOfRange, "index %d", index)
	}

	// A failed update must not rewrite the document.
	cards := readStored(t, objects, "json/phrasal_verbs/break.json")
	assert.False(t, cards[1].Learned)
}

func TestResetDeck(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	err := svc.ResetDeck(context.Background(), "phrasal_verbs", "break")
	require.NoError(t, err)

	cards := readStored(t, objects, "json/phrasal_verbs/break.json")
	require.Len(t, cards, 2, "reset must preserve card count")
	assert.Len(t, cards[0].Definitions, 2, "reset must preserve definition count")

	for i, card := range cards {
		assert.False(t, card.Learned, "card %d must be unlearned", i)
		for j, def := range card.Definitions {
			assert.Nil(t, def.ImagePath, "card %d def %d must lose its image reference", i, j)
		}
	}
}

func TestResetDeckPreservesUnknownFields(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	require.NoError(t, svc.ResetDeck(context.Background(), "phrasal_verbs", "break"))

	data, err := objects.Get(context.Background(), "json/phrasal_verbs/break.json")
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	var verb string
	require.NoError(t, json.Unmarshal(raw[0]["verb"], &verb))
	assert.Equal(t, "break down", verb)

	var defs []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[0]["definitions"], &defs))
	var meaning string
	require.NoError(t, json.Unmarshal(defs[0]["meaning"], &meaning))
	assert.Equal(t, "to stop functioning", meaning)
}

func TestGetPhonicsData(t *testing.T) {
	svc, objects := newTestService(t)

	document := `[{"sound": "th", "examples": ["the", "this"]}]`
	seedDeck(t, objects, "phonics_audio/phonics.json", document)

	data, err := svc.GetPhonicsData(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, document, string(data))

	// An absent document reads as not found, not as an empty list.
	empty, _ := newTestService(t)
	_, err = empty.GetPhonicsData(context.Background())
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestUpdateImagePath(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	path := "card_images/phrasal_verbs/break/break_card_0_def1.jpg"
	err := svc.UpdateImagePath(context.Background(), "phrasal_verbs", "break", 0, 1, &path)
	require.NoError(t, err)

	cards := readStored(t, objects, "json/phrasal_verbs/break.json")
	require.NotNil(t, cards[0].Definitions[1].ImagePath)
	assert.Equal(t, path, *cards[0].Definitions[1].ImagePath)
	// The sibling definition keeps its reference.
	require.NotNil(t, cards[0].Definitions[0].ImagePath)
}

func TestUpdateImagePathClears(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	err := svc.UpdateImagePath(context.Background(), "phrasal_verbs", "break", 0, 0, nil)
	require.NoError(t, err)

	cards := readStored(t, objects, "json/phrasal_verbs/break.json")
	assert.Nil(t, cards[0].Definitions[0].ImagePath)
}

func TestUpdateImagePathBounds(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)

	path := "card_images/x.jpg"
	tests := []struct {
		name      string
		cardIndex int
		defIndex  int
		wantErr   error
	}{
		{"card index negative", -1, 0, domain.ErrCardIndexOutOfRange},
		{"card index past end", 5, 0, domain.ErrCardIndexOutOfRange},
		{"def index negative", 0, -1, domain.ErrDefinitionIndexOutOfRange},
		{"def index past end", 1, 1, domain.ErrDefinitionIndexOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.UpdateImagePath(context.Background(), "phrasal_verbs", "break", tc.cardIndex, tc.defIndex, &path)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestListCategoriesAndDecks(t *testing.T) {
	svc, objects := newTestService(t)
	seedDeck(t, objects, "json/animals/cat.json", `[]`)
	seedDeck(t, objects, "json/phrasal_verbs/break.json", sampleDeck)
	seedDeck(t, objects, "json/phrasal_verbs/take.json", `[]`)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"phrasal_verbs", "animals"}, categories)

	decks, err := svc.ListDecks(context.Background(), "phrasal_verbs")
	require.NoError(t, err)
	assert.Equal(t, []string{"break.json", "take.json"}, decks)

	_, err = svc.ListDecks(context.Background(), "missing")
	assert.True(t, errors.Is(err, store.ErrCategoryNotFound))
}
