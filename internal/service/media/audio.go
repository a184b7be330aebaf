package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jmvaldez/flashdeck-api/internal/generation"
	"github.com/jmvaldez/flashdeck-api/internal/store"
)

// SynthesizeSpeech returns spoken audio for a phrase, reusing a cached asset
// when one exists for the same phrase under the same tone.
//
// The filename is the only record of a cached asset's tone: the embedded tag
// is parsed back out and compared against the request. A tone match reuses
// the asset with no provider call; a mismatch evicts the stale file
// (best-effort) and regenerates under the new canonical key, which embeds the
// new tone tag. The evicted key is never reused.
func (s *Service) SynthesizeSpeech(ctx context.Context, category, deck, text, voiceName, modelName, tone, verbName string) (*AudioResult, error) {
	originalText := strings.TrimSpace(text)
	if originalText == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", generation.ErrInvalidSynthesisArgument)
	}
	toneInstruction := strings.TrimSpace(tone)

	naming := s.deriveAudioNaming(category, deck, originalText, voiceName, modelName, toneInstruction, verbName)

	if !s.collapse {
		return s.synthesize(ctx, naming, originalText, voiceName, modelName, toneInstruction)
	}

	v, err, _ := s.flight.Do(naming.key(), func() (interface{}, error) {
		return s.synthesize(ctx, naming, originalText, voiceName, modelName, toneInstruction)
	})
	if err != nil {
		return nil, err
	}
	return v.(*AudioResult), nil
}

func (s *Service) synthesize(ctx context.Context, naming audioNaming, originalText, voiceName, modelName, toneInstruction string) (*AudioResult, error) {
	candidate, found, err := s.findExistingAudio(ctx, naming.phrasePrefix())
	if err != nil {
		return nil, err
	}

	if found {
		candidateTone := parseToneTag(path.Base(candidate.Key), naming.phraseBase)

		if toneTagsEqual(candidateTone, naming.toneTag) {
			s.log.InfoContext(ctx, "audio already exists with requested tone, reusing",
				"key", candidate.Key,
				"tone", candidateTone)
			return &AudioResult{
				Location: s.objects.PublicURL(candidate.Key),
				Filename: path.Base(candidate.Key),
				Key:      candidate.Key,
				Reused:   true,
			}, nil
		}

		s.log.InfoContext(ctx, "audio exists with different tone, regenerating",
			"key", candidate.Key,
			"cached_tone", candidateTone,
			"requested_tone", naming.toneTag)
		if derr := s.objects.Delete(ctx, candidate.Key); derr != nil && !errors.Is(derr, store.ErrObjectNotFound) {
			// Eviction is best-effort; a leftover stale file loses the
			// tie-break to the fresh one on the next lookup.
			s.log.WarnContext(ctx, "failed to delete stale audio", "key", candidate.Key, "error", derr)
		}
	}

	if s.speech == nil {
		return nil, fmt.Errorf("%w: text-to-speech client not initialized", generation.ErrProviderUnavailable)
	}

	s.log.InfoContext(ctx, "synthesizing audio", "key", naming.key())

	data, err := s.speech.SynthesizeSpeech(ctx, generation.SpeechRequest{
		Text:      synthesisText(originalText, toneInstruction),
		VoiceName: voiceName,
		ModelName: modelName,
	})
	if err != nil {
		return nil, err
	}

	if err := s.objects.Put(ctx, naming.key(), data, "audio/mpeg"); err != nil {
		return nil, fmt.Errorf("failed to store synthesized audio: %w", err)
	}

	s.log.InfoContext(ctx, "audio synthesized and stored", "key", naming.key())
	return &AudioResult{
		Location: s.objects.PublicURL(naming.key()),
		Filename: naming.filename,
		Key:      naming.key(),
	}, nil
}
