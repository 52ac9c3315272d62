package speech

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// DefaultMinLength is the shortest text the statistical guesser will judge
const DefaultMinLength = 10

// WhatlangGuesser guesses languages with trigram statistics
type WhatlangGuesser struct {
	// MinLength defaults to DefaultMinLength
	MinLength int
}

// Guess returns an ISO 639-3 code, or Undetermined for short or
// unrecognisable text.
func (g WhatlangGuesser) Guess(text string) string {
	minLen := g.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minLen {
		return Undetermined
	}

	code := whatlanggo.Detect(text).Lang.Iso6393()
	if code == "" {
		return Undetermined
	}
	return code
}
