package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// FLASHDECK_ prefix with underscores for nesting (FLASHDECK_SERVER_PORT,
// FLASHDECK_STORAGE_BUCKET, ...) and take precedence over file values.
// Returns a validated Config or an error describing what is missing.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; environment variables and defaults
		// carry the configuration. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("FLASHDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not make env-only keys visible to Unmarshal, so bind
	// each known key explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"storage.bucket",
		"storage.json_prefix",
		"storage.images_prefix",
		"storage.audio_prefix",
		"storage.public_base_url",
		"image.api_key",
		"image.model",
		"tts.language_code",
		"tts.speaking_rate",
		"generation.collapse_concurrent",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.json_prefix", "json")
	v.SetDefault("storage.images_prefix", "card_images")
	v.SetDefault("storage.audio_prefix", "card_audio")
	v.SetDefault("image.model", "imagen-3.0-generate-002")
	v.SetDefault("tts.language_code", "en-US")
	v.SetDefault("tts.speaking_rate", 0.9)
	v.SetDefault("generation.collapse_concurrent", true)
}
