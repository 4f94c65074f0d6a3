package textnorm

import (
	"regexp"
	"strings"
)

// These stand in for \b: Go's \b only knows ASCII word characters, which
// breaks on any letter left over after latinization.
const (
	wordBoundaryLeft  = `(?:^|[^\p{L}\p{N}])`
	wordBoundaryRight = `(?:$|[^\p{L}\p{N}])`
)

// WholeWordPattern compiles a case-insensitive pattern matching term as a whole
// word. Regex metacharacters in term are escaped. It returns nil for an empty
// term.
func WholeWordPattern(term string) *regexp.Regexp {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	re, err := regexp.Compile(`(?i)` + wordBoundaryLeft + regexp.QuoteMeta(term) + wordBoundaryRight)
	if err != nil {
		return nil
	}
	return re
}

// ContainsWord reports whether term occurs in text as a whole word. Both sides
// are compared as given; callers latinize first when they want accent folding.
func ContainsWord(text, term string) bool {
	re := WholeWordPattern(term)
	if re == nil {
		return false
	}
	return re.MatchString(text)
}
