package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage"    validate:"required"`
	Image      ImageConfig      `mapstructure:"image"      validate:"required"`
	TTS        TTSConfig        `mapstructure:"tts"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the object store layout: one bucket holding deck
// JSON documents, card images, and card audio under separate key prefixes.
type StorageConfig struct {
	Bucket       string `mapstructure:"bucket"        validate:"required"`
	JSONPrefix   string `mapstructure:"json_prefix"   validate:"required"`
	ImagesPrefix string `mapstructure:"images_prefix" validate:"required"`
	AudioPrefix  string `mapstructure:"audio_prefix"  validate:"required"`
	// PublicBaseURL overrides the default public object URL, e.g. a CDN domain
	// or a storage emulator endpoint. Empty means the backend default.
	PublicBaseURL string `mapstructure:"public_base_url" validate:"omitempty,url"`
}

// ImageConfig contains the image generation provider settings. An empty API
// key leaves the provider uninitialized; image generation then reports
// provider-unavailable instead of failing startup.
type ImageConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model" validate:"required"`
}

// TTSConfig contains the speech synthesis settings shared by all requests.
type TTSConfig struct {
	LanguageCode string  `mapstructure:"language_code" validate:"required"`
	SpeakingRate float64 `mapstructure:"speaking_rate" validate:"gt=0"`
}

// GenerationConfig tunes the media generation core.
type GenerationConfig struct {
	// CollapseConcurrent collapses concurrent identical generation requests
	// into a single provider call per canonical key. Disabling it restores
	// independent requests, which may double-generate under concurrency.
	CollapseConcurrent bool `mapstructure:"collapse_concurrent"`
}
