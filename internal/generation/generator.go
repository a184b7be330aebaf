package generation

import "context"

// ImageGenerator produces a single image from a text prompt. Implementations
// map provider errors onto the sentinel errors in errors.go.
type ImageGenerator interface {
	// GenerateImage returns the encoded image bytes (JPEG) for the prompt.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// SpeechRequest carries the parameters of one synthesis call. Text is the
// exact string to speak; any caching or key derivation happens before this
// boundary.
type SpeechRequest struct {
	Text      string
	VoiceName string
	// ModelName selects a provider voice model. Empty means the provider default.
	ModelName string
}

// SpeechSynthesizer converts text to spoken audio. Implementations map
// provider errors onto the sentinel errors in errors.go, surfacing parameter
// rejections as ErrInvalidSynthesisArgument.
type SpeechSynthesizer interface {
	// SynthesizeSpeech returns the encoded audio bytes (MP3) for the request.
	SynthesizeSpeech(ctx context.Context, req SpeechRequest) ([]byte, error)
}
