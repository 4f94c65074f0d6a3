// Package textnorm holds the string normalization used by every matching step
// of the query pipeline. All functions are total: they never panic and always
// return a (possibly empty) value.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNonWordSpace = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	reSpaces       = regexp.MustCompile(`\s+`)
	reNonAlnum     = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// latinTable maps Croatian and common Western-European accented letters to
// their ASCII form. Letters without a decomposition (đ, ø, ß) must be listed
// here since mark stripping cannot reach them.
var latinTable = strings.NewReplacer(
	"č", "c", "ć", "c", "š", "s", "đ", "d", "ž", "z",
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a", "æ", "ae",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o", "ø", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ñ", "n", "ç", "c", "ß", "ss", "ý", "y", "ÿ", "y",
)

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases s, strips diacritics, turns punctuation into spaces and
// collapses whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = stripMarks(strings.ToLower(s))
	s = reNonWordSpace.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Latinize lowercases and trims s and transliterates accented Latin letters to
// ASCII. Punctuation is kept so word-boundary matching still works on the result.
func Latinize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	return stripMarks(latinTable.Replace(s))
}

// StripDiacritics removes combining marks and transliterates the table letters
// without touching case or punctuation.
func StripDiacritics(s string) string {
	return stripMarks(latinTable.Replace(s))
}

// Tokens returns the whitespace separated tokens of Normalize(s).
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// Words splits s on every run of non letter/digit characters.
func Words(s string) []string {
	parts := reNonAlnum.Split(s, -1)
	words := parts[:0]
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// HasLetter reports whether s contains at least one letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// RuneLen is the length of s in characters.
func RuneLen(s string) int {
	return len([]rune(s))
}
