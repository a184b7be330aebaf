package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvaldez/flashdeck-api/internal/config"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FLASHDECK_STORAGE_BUCKET", "test-assets")
	t.Setenv("FLASHDECK_SERVER_PORT", "9090")
	t.Setenv("FLASHDECK_SERVER_LOG_LEVEL", "debug")
	t.Setenv("FLASHDECK_IMAGE_API_KEY", "fake-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-assets", cfg.Storage.Bucket)
	assert.Equal(t, "fake-key", cfg.Image.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FLASHDECK_STORAGE_BUCKET", "test-assets")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "json", cfg.Storage.JSONPrefix)
	assert.Equal(t, "card_images", cfg.Storage.ImagesPrefix)
	assert.Equal(t, "card_audio", cfg.Storage.AudioPrefix)
	assert.Equal(t, "imagen-3.0-generate-002", cfg.Image.Model)
	assert.Equal(t, "en-US", cfg.TTS.LanguageCode)
	assert.InDelta(t, 0.9, cfg.TTS.SpeakingRate, 1e-9)
	assert.True(t, cfg.Generation.CollapseConcurrent)
}

func TestLoadMissingBucket(t *testing.T) {
	// No FLASHDECK_STORAGE_BUCKET set; validation must fail rather than
	// producing a half-usable config.
	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("FLASHDECK_STORAGE_BUCKET", "test-assets")
	t.Setenv("FLASHDECK_SERVER_LOG_LEVEL", "verbose")

	_, err := config.Load()
	require.Error(t, err)
}
