// Package speech picks a spoken-language locale for a text and drives a
// single speech channel.
package speech

import (
	"strings"
	"unicode"
)

// Locale is a BCP 47 tag understood by speech synthesizers
type Locale string

const (
	English Locale = "en-US"
	Russian Locale = "ru-RU"
	French  Locale = "fr-FR"
	German  Locale = "de-DE"
)

// Undetermined is returned by a Guesser that cannot name a language
const Undetermined = "und"

// Guesser returns the ISO 639-3 code of the most likely language of a text
type Guesser interface {
	Guess(text string) string
}

// GuesserFunc adapts a function to Guesser
type GuesserFunc func(text string) string

// Guess calls f(text)
func (f GuesserFunc) Guess(text string) string {
	return f(text)
}

// frenchLetters holds the diacritics that mark French text. ü is left to
// German, which checks it next.
const frenchLetters = "àâæçéèêëîïôœùûÿ"

const germanLetters = "äöüß"

var guessedLocales = map[string]Locale{
	"eng": English,
	"rus": Russian,
	"fra": French,
	"deu": German,
}

// Detect returns the locale to speak text in. Script and diacritic checks
// run first; the guesser is only consulted when they do not decide.
// Anything unrecognised is spoken in English.
func Detect(text string, g Guesser) Locale {
	switch {
	case hasCyrillic(text):
		return Russian
	case strings.ContainsAny(strings.ToLower(text), frenchLetters):
		return French
	case strings.ContainsAny(strings.ToLower(text), germanLetters):
		return German
	}

	if g == nil {
		return English
	}
	if locale, ok := guessedLocales[g.Guess(text)]; ok {
		return locale
	}
	return English
}

func hasCyrillic(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) && unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
