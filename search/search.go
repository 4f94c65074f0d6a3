// Package search runs the full query-understanding pipeline: taxonomy filter
// extraction, location analysis, free-text variant expansion and candidate
// ranking.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"menufind/location"
	"menufind/models"
	"menufind/scoring"
	"menufind/variants"
)

// Extractor resolves prompt phrases to taxonomy filters.
type Extractor interface {
	Extract(ctx context.Context, prompt string) (*models.ExtractionResult, error)
}

// Locator classifies the geographic intent of a query.
type Locator interface {
	AnalyzeContext(ctx context.Context, query string, userLocation *models.LatLng) models.LocationContext
}

// Request is one search prompt with an optional device location.
type Request struct {
	Prompt       string         `json:"prompt"`
	UserLocation *models.LatLng `json:"userLocation,omitempty"`
	MaxVariants  int            `json:"maxVariants,omitempty"`
}

// Term is a free-text term with its expansions.
type Term struct {
	Term     string   `json:"term"`
	Variants []string `json:"variants"`
	Patterns []string `json:"patterns"`
}

// Analysis is the structured intent of a prompt.
type Analysis struct {
	Prompt        string                 `json:"prompt"`
	Filters       models.Filters         `json:"filters"`
	LeftoverTerms []string               `json:"leftoverTerms"`
	MatchedTerms  map[string]models.ID   `json:"matchedTerms"`
	Terms         []Term                 `json:"terms"`
	FreeTextOnly  bool                   `json:"freeTextOnly"`
	Location      models.LocationContext `json:"location"`
	Area          models.SearchArea      `json:"area"`
}

// Analyzer runs the pipeline.
type Analyzer struct {
	extractor Extractor
	locator   Locator
	generator *variants.Generator
	logger    zerolog.Logger
}

// NewAnalyzer creates an Analyzer. A nil generator uses variants.New().
func NewAnalyzer(extractor Extractor, locator Locator, generator *variants.Generator, logger zerolog.Logger) *Analyzer {
	if generator == nil {
		generator = variants.New()
	}
	return &Analyzer{
		extractor: extractor,
		locator:   locator,
		generator: generator,
		logger:    logger,
	}
}

// Analyze never fails. When the taxonomy catalog is unavailable the whole
// prompt is treated as a single free-text term.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Analysis {
	prompt := strings.TrimSpace(req.Prompt)
	out := Analysis{
		Prompt:        prompt,
		Filters:       models.NewFilters(),
		LeftoverTerms: []string{},
		MatchedTerms:  map[string]models.ID{},
		Terms:         []Term{},
	}

	if prompt != "" {
		res, err := a.extractor.Extract(ctx, prompt)
		if err != nil {
			a.logger.Warn().Err(err).Str("prompt", prompt).Msg("filter extraction unavailable, searching free text only")
			out.FreeTextOnly = true
			out.LeftoverTerms = []string{prompt}
		} else {
			out.Filters = res.Filters
			out.LeftoverTerms = res.LeftoverTerms
			out.MatchedTerms = res.MatchedTerms
		}
	}

	for _, term := range out.LeftoverTerms {
		v := a.generator.Generate(term, req.MaxVariants)
		if len(v.Variants) == 0 {
			continue
		}
		out.Terms = append(out.Terms, Term{Term: term, Variants: v.Variants, Patterns: v.Patterns})
	}

	out.Location = a.locator.AnalyzeContext(ctx, prompt, req.UserLocation)
	out.Area = location.AreaFor(out.Location, prompt)
	return out
}

// Rank scores items against the analysis terms and orders them by score,
// then by distance from the search centre, then by input order. Items with
// coordinates outside the search radius are dropped.
func (a *Analyzer) Rank(an Analysis, items []models.Item) []models.ScoredItem {
	return Rank(an, items)
}

// Rank is Analyzer.Rank without a receiver.
func Rank(an Analysis, items []models.Item) []models.ScoredItem {
	terms := an.allVariants()
	ranked := make([]models.ScoredItem, 0, len(items))

	for _, item := range items {
		si := models.ScoredItem{Item: item}
		if len(terms) > 0 {
			si.Score = scoring.ItemScore(item, terms)
		}
		if p, ok := scoring.ItemPrice(item); ok {
			si.Price = &p
		}
		if an.Area.Center != nil && item.Location != nil {
			d := location.DistanceKm(*an.Area.Center, *item.Location)
			if an.Area.RadiusKm != nil && d > float64(*an.Area.RadiusKm) {
				continue
			}
			si.DistanceKm = &d
		}
		ranked = append(ranked, si)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		di, dj := ranked[i].DistanceKm, ranked[j].DistanceKm
		switch {
		case di != nil && dj != nil:
			return *di < *dj
		case di != nil:
			return true
		default:
			return false
		}
	})
	return ranked
}

func (an Analysis) allVariants() []string {
	var all []string
	seen := map[string]bool{}
	for _, t := range an.Terms {
		for _, v := range t.Variants {
			if !seen[v] {
				seen[v] = true
				all = append(all, v)
			}
		}
	}
	return all
}
