// Package imagen implements generation.ImageGenerator using Google's Imagen
// models through the genai API.
package imagen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/genai"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	"github.com/jmvaldez/flashdeck-api/internal/generation"
)

// Generator calls the Imagen API to produce one square JPEG per prompt.
type Generator struct {
	log    *slog.Logger
	client *genai.Client
	model  string
}

var _ generation.ImageGenerator = (*Generator)(nil)

// NewGenerator creates a Generator with the provided configuration.
// The API key must be present; callers that want a degraded "provider
// unavailable" mode skip construction entirely and pass a nil generator to
// the media service.
func NewGenerator(ctx context.Context, log *slog.Logger, cfg config.ImageConfig) (*Generator, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: image API key cannot be empty", generation.ErrProviderUnavailable)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: image model cannot be empty", generation.ErrProviderUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create genai client: %v", generation.ErrProviderUnavailable, err)
	}

	return &Generator{
		log:    log.With(slog.String("component", "imagen_generator")),
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateImage requests a single 1:1 JPEG for the prompt. Provider failures
// are mapped onto the generation error taxonomy and never retried here.
func (g *Generator) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt cannot be empty", generation.ErrProviderFailure)
	}

	g.log.InfoContext(ctx, "requesting image generation",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		return nil, classifyError(err)
	}

	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, fmt.Errorf("%w: API returned no images", generation.ErrEmptyResult)
	}

	img := resp.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return nil, fmt.Errorf("%w: API returned an empty image", generation.ErrEmptyResult)
	}

	g.log.InfoContext(ctx, "image generated", "bytes", len(img.ImageBytes))
	return img.ImageBytes, nil
}

// classifyError maps transport-level failures to ErrProviderTimeout and
// everything else to ErrProviderFailure with the provider message wrapped.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrProviderTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", generation.ErrProviderTimeout, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrProviderFailure, err)
}
