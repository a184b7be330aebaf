package media

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/testutils"
)

type fakeImageGenerator struct {
	mu    sync.Mutex
	calls int
	data  []byte
	err   error
}

func (f *fakeImageGenerator) GenerateImage(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeImageGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSynthesizer struct {
	mu      sync.Mutex
	calls   int
	data    []byte
	err     error
	lastReq generation.SpeechRequest
}

func (f *fakeSynthesizer) SynthesizeSpeech(_ context.Context, req generation.SpeechRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeSynthesizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSynthesizer) lastRequest() generation.SpeechRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

type updateCall struct {
	category, deck string
	cardIndex      int
	defIndex       int
	imagePath      *string
}

type fakeDeckUpdater struct {
	mu    sync.Mutex
	calls []updateCall
	err   error
}

func (f *fakeDeckUpdater) UpdateImagePath(_ context.Context, category, deck string, cardIndex, defIndex int, imagePath *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, updateCall{category, deck, cardIndex, defIndex, imagePath})
	return f.err
}

func (f *fakeDeckUpdater) updates() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.calls...)
}

type testFixture struct {
	svc     *Service
	objects *testutils.MemoryObjectStore
	images  *fakeImageGenerator
	speech  *fakeSynthesizer
	decks   *fakeDeckUpdater
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	objects := testutils.NewMemoryObjectStore()
	images := &fakeImageGenerator{data: []byte("jpeg-bytes")}
	speech := &fakeSynthesizer{data: []byte("mp3-bytes")}
	decks := &fakeDeckUpdater{}

	svc, err := NewService(
		slog.Default(),
		objects,
		decks,
		images,
		speech,
		config.StorageConfig{
			Bucket:       "test-assets",
			JSONPrefix:   "json",
			ImagesPrefix: "card_images",
			AudioPrefix:  "card_audio",
		},
		config.GenerationConfig{CollapseConcurrent: true},
	)
	require.NoError(t, err)

	return &testFixture{svc: svc, objects: objects, images: images, speech: speech, decks: decks}
}
