package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// defaultToneTag is the tag embedded in audio filenames when no tone (or the
// literal "default") was requested.
const defaultToneTag = "default"

// shortHashLength is the number of hex characters of the phrase hash kept in
// audio filenames.
const shortHashLength = 10

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	separators  = regexp.MustCompile(`[\s-]+`)
)

// deckBaseName strips a trailing .json extension from a deck name.
func deckBaseName(deck string) string {
	return strings.TrimSuffix(deck, ".json")
}

// safeFilename reduces a string to a filesystem/URL-safe slug: lowercase,
// alphanumerics only, whitespace and hyphen runs collapsed to single
// underscores, truncated to 50 characters, underscores trimmed at the ends.
func safeFilename(s string) string {
	safe := strings.ToLower(s)
	safe = unsafeChars.ReplaceAllString(safe, "")
	safe = separators.ReplaceAllString(safe, "_")
	if len(safe) > 50 {
		safe = safe[:50]
	}
	return strings.Trim(safe, "_")
}

// imageDir returns the storage directory holding a deck's images.
func (s *Service) imageDir(category, deck string) string {
	return fmt.Sprintf("%s/%s/%s", s.imagesPrefix, category, deckBaseName(deck))
}

// imageFileBase returns the extensionless file name of a definition's image.
// Identity is purely positional; two requests with the same coordinates always
// derive the same name.
func imageFileBase(deck string, cardIndex, defIndex int) string {
	return fmt.Sprintf("%s_card_%d_def%d", deckBaseName(deck), cardIndex, defIndex)
}

// ImageKey returns the canonical storage key for a definition's image. New
// assets are always written under this key; a legacy .jpeg sibling is honored
// on lookup but superseded on the next write.
func (s *Service) ImageKey(category, deck string, cardIndex, defIndex int) string {
	return fmt.Sprintf("%s/%s.jpg", s.imageDir(category, deck), imageFileBase(deck, cardIndex, defIndex))
}

// toneTag normalizes a requested tone into the tag embedded in the filename.
func toneTag(tone string) string {
	t := strings.TrimSpace(tone)
	if t == "" || strings.EqualFold(t, defaultToneTag) {
		return defaultToneTag
	}
	return safeFilename(t)
}

// shortHash derives the stable hash segment of an audio filename from the
// phrase, voice, and model. Tone is deliberately excluded: the same phrase
// under a different tone shares the hash and differs only in the embedded
// tone tag, which is what makes prefix-based "this phrase, any tone"
// discovery work.
func shortHash(text, voice, model string) string {
	if model == "" {
		model = "default_model"
	}
	base := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%s|%s|%s", text, voice, model)))
	sum := sha256.Sum256([]byte(base))
	return hex.EncodeToString(sum[:])[:shortHashLength]
}

// audioNaming bundles the derived identifiers of one synthesis request.
type audioNaming struct {
	// dir is the storage directory holding the deck's audio.
	dir string
	// phraseBase is "{deckBase}_{safeVerb}_{safeText}", the
	// filename prefix shared by all tones of the same phrase.
	phraseBase string
	// filename is the full canonical file name including tone tag and hash.
	filename string
	// toneTag is the normalized tag embedded in filename.
	toneTag string
}

// key returns the full canonical storage key.
func (n audioNaming) key() string {
	return n.dir + "/" + n.filename
}

// phrasePrefix returns the listing prefix matching every tone variant of the
// phrase.
func (n audioNaming) phrasePrefix() string {
	return n.dir + "/" + n.phraseBase + "_"
}

// deriveAudioNaming computes the canonical audio identifiers for a request.
// text must already be trimmed; it is the original phrase, never the
// augmented form sent to the synthesizer.
func (s *Service) deriveAudioNaming(category, deck, text, voice, model, tone, verb string) audioNaming {
	base := deckBaseName(deck)
	tag := toneTag(tone)
	phraseBase := fmt.Sprintf("%s_%s_%s", base, safeFilename(verb), safeFilename(text))
	filename := fmt.Sprintf("%s_%s_%s.mp3", phraseBase, tag, shortHash(text, voice, model))

	return audioNaming{
		dir:        fmt.Sprintf("%s/%s/%s", s.audioPrefix, category, base),
		phraseBase: phraseBase,
		filename:   filename,
		toneTag:    tag,
	}
}

// parseToneTag extracts the tone tag embedded in a cached audio filename.
// Unparseable names report the default tone: the file then loses its tone
// identity but stays usable for default-tone requests.
func parseToneTag(filename, phraseBase string) string {
	pattern := regexp.MustCompile(
		"^" + regexp.QuoteMeta(phraseBase) + `_(.+?)_[0-9a-f]+\.mp3$`,
	)
	m := pattern.FindStringSubmatch(filename)
	if m == nil {
		return defaultToneTag
	}
	return m[1]
}

// toneTagsEqual compares two tone tags ignoring case and the
// underscore-versus-space distinction introduced by slugging.
func toneTagsEqual(a, b string) bool {
	return strings.EqualFold(
		strings.ReplaceAll(a, "_", " "),
		strings.ReplaceAll(b, "_", " "),
	)
}

// isShortPhrase reports whether a phrase is short enough to need the spoken
// pronunciation aid.
func isShortPhrase(text string) bool {
	return len(strings.Fields(text)) <= 2 && utf8.RuneCountInString(text) <= 10
}

// synthesisText builds the string actually sent to the synthesizer: short
// phrases get a pronunciation aid, and a non-default tone is prepended as a
// spoken-style instruction. Neither transform feeds the cache key.
func synthesisText(original, toneInstruction string) string {
	text := original
	if isShortPhrase(original) {
		text = "The word is: " + text
	}
	if toneInstruction != "" && !strings.EqualFold(toneInstruction, defaultToneTag) {
		text = toneInstruction + ": " + text
	}
	return text
}
