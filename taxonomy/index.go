package taxonomy

import (
	"sort"

	"menufind/models"
	"menufind/textnorm"
)

// Index maps a normalized label to the entry id it resolves to.
type Index map[string]models.ID

// BuildIndex registers the normalized English and Croatian name of every entry
// and then every synonym whose canonical key matches one of those names.
// A key registered twice keeps the last id; synonyms are applied in sorted
// canonical order so the outcome does not depend on map iteration.
func BuildIndex(entries []models.Entry, synonyms SynonymTable) Index {
	idx := make(Index, len(entries)*2)
	byName := make(map[string]models.ID, len(entries)*2)

	for _, e := range entries {
		if en := textnorm.Normalize(e.NameEn); en != "" {
			idx[en] = e.ID
			byName[en] = e.ID
		}
		if hr := textnorm.Normalize(e.NameHr); hr != "" {
			idx[hr] = e.ID
			byName[hr] = e.ID
		}
	}

	canonicals := make([]string, 0, len(synonyms))
	for canonical := range synonyms {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		id, ok := byName[textnorm.Normalize(canonical)]
		if !ok {
			continue
		}
		for _, v := range synonyms[canonical] {
			if key := textnorm.Normalize(v); key != "" {
				idx[key] = id
			}
		}
	}
	return idx
}

// Lookup resolves a normalized phrase.
func (idx Index) Lookup(normalized string) (models.ID, bool) {
	id, ok := idx[normalized]
	return id, ok
}

// Snapshot is a fetched catalog together with its per-category indices.
type Snapshot struct {
	Taxonomies *models.Taxonomies
	indices    map[models.Category]Index
}

// NewSnapshot builds every category index for t.
func NewSnapshot(t *models.Taxonomies, synonyms map[models.Category]SynonymTable) *Snapshot {
	s := &Snapshot{
		Taxonomies: t,
		indices:    make(map[models.Category]Index, len(models.Categories)),
	}
	for _, c := range models.Categories {
		s.indices[c] = BuildIndex(t.Entries(c), synonyms[c])
	}
	return s
}

// Index returns the lookup table for c.
func (s *Snapshot) Index(c models.Category) Index {
	return s.indices[c]
}
