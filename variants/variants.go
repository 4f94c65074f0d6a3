// Package variants expands a free-text search term into ranked spelling,
// morphology and synonym variants plus SQL LIKE patterns.
package variants

import (
	"math"
	"sort"
	"strings"

	"menufind/textnorm"
)

const (
	DefaultMaxVariants = 10
	MinVariants        = 3
	MaxVariants        = 30
)

// Result holds the ranked variants, best first, and the matching %variant%
// patterns in the same order.
type Result struct {
	Variants []string `json:"variants"`
	Patterns []string `json:"patterns"`
}

// Generator expands terms using a synonym dictionary and suffix rules.
type Generator struct {
	synonyms   [][]string
	stems      []string
	defaultMax int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSynonyms replaces the built-in dictionary.
func WithSynonyms(groups []SynonymGroup) Option {
	return func(g *Generator) {
		g.synonyms = latinizeGroups(groups)
	}
}

// WithStems replaces the built-in high-value stems.
func WithStems(stems []string) Option {
	return func(g *Generator) {
		g.stems = stems
	}
}

// WithDefaultMax sets the variant count used when Generate is called with
// max <= 0.
func WithDefaultMax(n int) Option {
	return func(g *Generator) {
		g.defaultMax = ClampMax(n)
	}
}

// New creates a Generator with the built-in tables.
func New(opts ...Option) *Generator {
	g := &Generator{
		synonyms:   latinizeGroups(DefaultSynonyms),
		stems:      HighValueStems,
		defaultMax: DefaultMaxVariants,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func latinizeGroups(groups []SynonymGroup) [][]string {
	out := make([][]string, 0, len(groups))
	for _, grp := range groups {
		forms := []string{textnorm.Latinize(grp.Canonical)}
		for _, s := range grp.Synonyms {
			forms = append(forms, textnorm.Latinize(s))
		}
		out = append(out, forms)
	}
	return out
}

// ClampMax maps a requested variant count into [MinVariants, MaxVariants];
// n <= 0 selects the default.
func ClampMax(n int) int {
	if n <= 0 {
		return DefaultMaxVariants
	}
	if n < MinVariants {
		return MinVariants
	}
	if n > MaxVariants {
		return MaxVariants
	}
	return n
}

// Generate expands term into at most max variants. A term that latinizes to
// the empty string yields an empty Result.
func (g *Generator) Generate(term string, max int) Result {
	if max <= 0 {
		max = g.defaultMax
	}
	max = ClampMax(max)

	base := textnorm.Latinize(term)
	if base == "" {
		return Result{Variants: []string{}, Patterns: []string{}}
	}

	set := newOrderedSet()
	set.add(base)

	for _, forms := range g.synonyms {
		if containsString(forms, base) {
			set.add(forms...)
		}
	}

	words := textnorm.Words(base)
	switch {
	case len(words) == 1:
		set.add(wordForms(words[0])...)
	case len(words) > 1:
		for _, candidate := range phraseCandidates(words) {
			set.add(joinForms(candidate)...)
		}
	}

	if textnorm.RuneLen(base) >= 4 {
		r := []rune(base)
		set.add(string(r[:len(r)-1]))
	}

	ranked := g.rank(base, set.items())
	if len(ranked) > max {
		ranked = ranked[:max]
	}

	patterns := make([]string, len(ranked))
	for i, v := range ranked {
		patterns[i] = "%" + v + "%"
	}
	return Result{Variants: ranked, Patterns: patterns}
}

// wordForms returns the Croatian and English inflections of a single word.
func wordForms(word string) []string {
	if !textnorm.HasLetter(word) || textnorm.RuneLen(word) < 3 {
		return nil
	}
	forms := croatianForms(word)
	forms = append(forms, englishForms(word)...)
	return forms
}

func croatianForms(word string) []string {
	for _, rule := range croatianRules {
		if !strings.HasSuffix(word, rule.Suffix) {
			continue
		}
		stem := strings.TrimSuffix(word, rule.Suffix)
		if textnorm.RuneLen(stem) < 2 {
			return nil
		}
		out := make([]string, 0, len(rule.Replacements))
		for _, rep := range rule.Replacements {
			out = append(out, stem+rep)
		}
		return out
	}

	last := word[len(word)-1]
	if strings.IndexByte(vowels, last) >= 0 || last < 'a' || last > 'z' {
		return nil
	}
	out := make([]string, 0, len(croatianConsonantEndings))
	for _, end := range croatianConsonantEndings {
		out = append(out, word+end)
	}
	return out
}

func englishForms(word string) []string {
	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return singularize(word)
	}
	return []string{pluralize(word)}
}

func singularize(word string) []string {
	var out []string
	if strings.HasSuffix(word, "ies") && len(word) > 3 {
		out = append(out, strings.TrimSuffix(word, "ies")+"y")
	}
	if strings.HasSuffix(word, "es") && len(word) > 3 {
		out = append(out, strings.TrimSuffix(word, "es"))
	}
	out = append(out, strings.TrimSuffix(word, "s"))
	return out
}

func pluralize(word string) string {
	if strings.HasSuffix(word, "y") && len(word) > 1 && strings.IndexByte(vowels, word[len(word)-2]) < 0 {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	for _, s := range englishSibilants {
		if strings.HasSuffix(word, s) {
			return word + "es"
		}
	}
	return word + "s"
}

// phraseCandidates returns the word lists for the full phrase and every
// bigram, each also with one word at a time swapped for its inflections.
func phraseCandidates(words []string) [][]string {
	var out [][]string
	expand := func(ws []string) {
		out = append(out, ws)
		for i, w := range ws {
			for _, form := range wordForms(w) {
				alt := append([]string(nil), ws...)
				alt[i] = form
				out = append(out, alt)
			}
		}
	}

	expand(words)
	if len(words) > 2 {
		for i := 0; i+1 < len(words); i++ {
			expand([]string{words[i], words[i+1]})
		}
	}
	return out
}

// joinForms renders a multi-word candidate space-joined, hyphenated and
// concatenated.
func joinForms(words []string) []string {
	return []string{
		strings.Join(words, " "),
		strings.Join(words, "-"),
		strings.Join(words, ""),
	}
}

func (g *Generator) rank(base string, candidates []string) []string {
	type scored struct {
		value string
		score int
	}

	baseRunes := []rune(base)
	prefixLen := int(math.Ceil(float64(len(baseRunes)) * 0.6))
	if prefixLen < 3 {
		prefixLen = 3
	}
	if prefixLen > len(baseRunes) {
		prefixLen = len(baseRunes)
	}
	prefix := string(baseRunes[:prefixLen])
	wholeWord := textnorm.WholeWordPattern(base)

	list := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if textnorm.RuneLen(c) <= 1 {
			continue
		}
		s := 0
		if c == base {
			s += 5
		}
		if strings.HasPrefix(c, prefix) {
			s += 2
		}
		if strings.Contains(c, " ") {
			s++
		}
		if wholeWord != nil && wholeWord.MatchString(c) {
			s++
		}
		if g.hasStem(c) {
			s++
		}
		list = append(list, scored{value: c, score: s})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.value
	}
	return out
}

func (g *Generator) hasStem(v string) bool {
	for _, stem := range g.stems {
		if strings.Contains(v, stem) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.order = append(s.order, v)
	}
}

func (s *orderedSet) items() []string {
	return s.order
}
