package process

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// NormalizeEmail trims and lower-cases an email address. Normalizing an
// already-normalized address returns it unchanged.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// NormalizeName lower-cases a name and capitalizes the first letter of each
// whitespace-separated word. Words are split on whitespace only, so inner
// punctuation is untouched: 'mary-jane o'neil' becomes 'Mary-jane O'neil'.
func NormalizeName(v string) string {
	words := strings.Fields(strings.ToLower(v))
	for i, word := range words {
		words[i] = capitalize(word)
	}

	return strings.Join(words, " ")
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}

	return string(unicode.ToUpper(r)) + word[size:]
}

// dateFormats are tried in order - ISO dates first, then the day-first forms
// the marketing exports arrive in.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2006/01/02",
}

// NormalizeDate reformats a date value as YYYY-MM-DD. Blank or unparsable
// values normalize to the empty string.
func NormalizeDate(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}

	for _, format := range dateFormats {
		if d, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return d.Format("2006-01-02")
		}
	}

	return ""
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
