// Package googletts implements generation.SpeechSynthesizer using Google
// Cloud Text-to-Speech.
package googletts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
)

const synthesisTimeout = 2 * time.Minute

// Synthesizer calls Cloud Text-to-Speech and returns MP3 audio.
type Synthesizer struct {
	log          *slog.Logger
	client       *texttospeech.Client
	languageCode string
	speakingRate float64
}

var _ generation.SpeechSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer creates a Synthesizer. Credentials come from application
// default credentials; the client lives for the whole process.
func NewSynthesizer(ctx context.Context, log *slog.Logger, cfg config.TTSConfig) (*Synthesizer, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create text-to-speech client: %v",
			generation.ErrProviderUnavailable, err)
	}

	return &Synthesizer{
		log:          log.With(slog.String("component", "tts_synthesizer")),
		client:       client,
		languageCode: cfg.LanguageCode,
		speakingRate: cfg.SpeakingRate,
	}, nil
}

// Close releases the underlying client.
func (s *Synthesizer) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// SynthesizeSpeech converts the request text to MP3 audio. gRPC status codes
// are mapped onto the generation error taxonomy: InvalidArgument becomes the
// client-fixable ErrInvalidSynthesisArgument, transport problems become
// ErrProviderTimeout, anything else ErrProviderFailure.
func (s *Synthesizer) SynthesizeSpeech(ctx context.Context, req generation.SpeechRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, synthesisTimeout)
	defer cancel()

	voice := s.buildVoice(req)

	s.log.InfoContext(ctx, "requesting speech synthesis",
		"voice", req.VoiceName,
		"model", req.ModelName,
		"text_length", len(req.Text))

	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: voice,
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  s.speakingRate,
		},
	})
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("%w: API returned no audio", generation.ErrEmptyResult)
	}

	s.log.InfoContext(ctx, "speech synthesized", "bytes", len(resp.GetAudioContent()))
	return resp.GetAudioContent(), nil
}

// buildVoice selects the voice for a request. The model name is optional and
// only set when the caller asked for a specific one; an empty ModelName lets
// the API derive the model from the voice.
func (s *Synthesizer) buildVoice(req generation.SpeechRequest) *texttospeechpb.VoiceSelectionParams {
	voice := &texttospeechpb.VoiceSelectionParams{
		LanguageCode: s.languageCode,
		Name:         req.VoiceName,
	}
	if req.ModelName != "" {
		voice.ModelName = req.ModelName
	}
	return voice
}

func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrProviderTimeout, err)
	}
	switch status.Code(err) {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %v", generation.ErrInvalidSynthesisArgument, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", generation.ErrProviderTimeout, err)
	default:
		return fmt.Errorf("%w: %v", generation.ErrProviderFailure, err)
	}
}
