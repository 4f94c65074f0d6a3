// Package scoring ranks candidate restaurants and menu items against free-text
// search terms.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"menufind/models"
	"menufind/textnorm"
)

const (
	descriptionWeight = 0.7
	exactNameBoost    = 0.15
)

// TextScore adds len(term)/len(haystack) for every term contained in haystack,
// after stripping % wildcards and latinizing both sides. The result is clamped
// to [0,1].
func TextScore(haystack string, terms []string) float64 {
	h := textnorm.Latinize(haystack)
	hLen := textnorm.RuneLen(h)
	if hLen == 0 {
		return 0
	}

	score := 0.0
	for _, term := range terms {
		t := textnorm.Latinize(strings.ReplaceAll(term, "%", ""))
		if t == "" {
			continue
		}
		if strings.Contains(h, t) {
			score += float64(textnorm.RuneLen(t)) / float64(hLen)
		}
	}
	return clamp(score)
}

// ItemScore is the best of the name scores and the weighted description
// scores, plus a flat boost when a term is a whole word of either name.
func ItemScore(item models.Item, terms []string) float64 {
	score := math.Max(
		math.Max(TextScore(item.NameHr, terms), TextScore(item.NameEn, terms)),
		math.Max(
			descriptionWeight*TextScore(item.DescriptionHr, terms),
			descriptionWeight*TextScore(item.DescriptionEn, terms),
		),
	)
	for _, term := range terms {
		t := strings.ReplaceAll(term, "%", "")
		if ExactWordHit(item.NameHr, t) || ExactWordHit(item.NameEn, t) {
			score += exactNameBoost
			break
		}
	}
	return clamp(score)
}

// ExactWordHit reports whether term occurs in text as a whole word, ignoring
// case and accents.
func ExactWordHit(text, term string) bool {
	return textnorm.ContainsWord(textnorm.Latinize(text), textnorm.Latinize(term))
}

// ItemPrice returns the direct price, else the cheapest parseable size price,
// rounded to two decimals.
func ItemPrice(item models.Item) (float64, bool) {
	if item.Price != nil {
		if p, ok := parsePrice(*item.Price); ok {
			return round2(p), true
		}
	}

	best, found := 0.0, false
	for _, s := range item.Sizes {
		p, ok := parsePrice(s.Price)
		if !ok {
			continue
		}
		if !found || p < best {
			best, found = p, true
		}
	}
	if !found {
		return 0, false
	}
	return round2(best), true
}

func parsePrice(p models.Price) (float64, bool) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
