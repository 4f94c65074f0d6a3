package taxonomy

import (
	"context"
	"strings"

	"menufind/models"
	"menufind/textnorm"
)

// Extract splits prompt on commas and resolves each phrase to at most one
// taxonomy id. Categories are tried in models.MatchPriority order; within a
// category the phrase is retried with trailing tokens dropped before moving
// on. Unmatched phrases are returned as leftover terms in original order and
// casing. A catalog fetch failure fails the whole call.
func (c *Catalog) Extract(ctx context.Context, prompt string) (*models.ExtractionResult, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Extract(prompt), nil
}

// Extract runs phrase matching against the snapshot's indices.
func (s *Snapshot) Extract(prompt string) *models.ExtractionResult {
	res := &models.ExtractionResult{
		Filters:       models.NewFilters(),
		LeftoverTerms: []string{},
		MatchedTerms:  map[string]models.ID{},
		Taxonomies:    s.Taxonomies,
	}

	for _, phrase := range SplitPhrases(prompt) {
		category, id, ok := s.match(textnorm.Tokens(phrase))
		if !ok {
			res.LeftoverTerms = append(res.LeftoverTerms, phrase)
			continue
		}
		res.Filters.Add(category, id)
		res.MatchedTerms[phrase] = id
	}
	return res
}

func (s *Snapshot) match(tokens []string) (models.Category, models.ID, bool) {
	if len(tokens) == 0 {
		return 0, "", false
	}
	for _, c := range models.MatchPriority {
		idx := s.Index(c)
		if len(idx) == 0 {
			continue
		}
		for n := len(tokens); n > 0; n-- {
			if id, ok := idx.Lookup(strings.Join(tokens[:n], " ")); ok {
				return c, id, true
			}
		}
	}
	return 0, "", false
}

// SplitPhrases splits a prompt on commas, trimming each part and dropping
// empty ones.
func SplitPhrases(prompt string) []string {
	parts := strings.Split(prompt, ",")
	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}
