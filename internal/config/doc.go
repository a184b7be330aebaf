// Package config defines the application configuration structure and loading
// logic. Configuration is read from environment variables (FLASHDECK_ prefix)
// and an optional config.yaml file, with environment variables taking
// precedence, and is validated before use.
package config
