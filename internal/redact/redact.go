// Package redact strips sensitive material from strings before they reach
// logs. Error chains in this service can carry provider API keys, signed
// storage URLs, and local file paths; none of those belong in log output.
package redact

import (
	"regexp"
	"sync"
)

// Redaction placeholders.
const (
	RedactedKeyPlaceholder  = "[REDACTED_KEY]"
	RedactedPathPlaceholder = "[REDACTED_PATH]"
)

var (
	// Provider API keys and bearer tokens.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|bearer|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Google API keys have a fixed recognizable prefix.
	googleKeyRegex = regexp.MustCompile(`AIza[0-9A-Za-z_-]{20,}`)

	// Signed storage URL query parameters (GoogleAccessId, Signature, tokens).
	signedURLRegex = regexp.MustCompile(
		`(?i)(GoogleAccessId|Signature|X-Goog-Signature|X-Goog-Credential)=[^&\s]+`,
	)

	// Local filesystem paths leaked from os errors. Anchored on the preceding
	// character so slashes inside object keys and URLs are left alone.
	unixPathRegex = regexp.MustCompile(`(^|[\s"'=])((/[\w.-]+){2,})`)

	// gRPC transport errors often embed the upstream host and port.
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`,
	)

	patterns = []*regexp.Regexp{
		apiKeyRegex, googleKeyRegex, signedURLRegex, unixPathRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		apiKeyRegex:    RedactedKeyPlaceholder,
		googleKeyRegex: RedactedKeyPlaceholder,
		signedURLRegex: RedactedKeyPlaceholder,
		unixPathRegex:  "${1}" + RedactedPathPlaceholder,
		hostPortRegex:  "[REDACTED_HOST]",
	}

	mu sync.RWMutex
)

// String applies all redaction patterns to the input.
func String(s string) string {
	mu.RLock()
	defer mu.RUnlock()

	for _, re := range patterns {
		s = re.ReplaceAllString(s, patternPlaceholders[re])
	}
	return s
}

// Error redacts an error's message. Safe on nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
