package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category is one of the seven fixed restaurant/menu facets.
type Category int

const (
	FoodTypes Category = iota
	EstablishmentTypes
	EstablishmentPerks
	MealTypes
	DietaryTypes
	Allergens
	PriceCategories
)

// Categories lists every category in declaration order.
var Categories = []Category{
	FoodTypes, EstablishmentTypes, EstablishmentPerks, MealTypes,
	DietaryTypes, Allergens, PriceCategories,
}

// MatchPriority is the order in which an extracted phrase is tried against the
// categories. The first category that matches claims the phrase.
var MatchPriority = []Category{
	FoodTypes, EstablishmentPerks, EstablishmentTypes, MealTypes,
	DietaryTypes, Allergens, PriceCategories,
}

var categoryNames = [...]string{
	FoodTypes:          "foodTypes",
	EstablishmentTypes: "establishmentTypes",
	EstablishmentPerks: "establishmentPerks",
	MealTypes:          "mealTypes",
	DietaryTypes:       "dietaryTypes",
	Allergens:          "allergens",
	PriceCategories:    "priceCategories",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ID is an opaque taxonomy identifier. Upstream catalogs send either numbers
// or strings, both decode into the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("taxonomy id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Entry is a single taxonomy value with its English and Croatian labels.
type Entry struct {
	ID     ID     `json:"id"`
	NameEn string `json:"nameEn"`
	NameHr string `json:"nameHr"`
}

// Taxonomies is the full catalog, one slice per category.
type Taxonomies struct {
	FoodTypes          []Entry `json:"foodTypes"`
	EstablishmentTypes []Entry `json:"establishmentTypes"`
	EstablishmentPerks []Entry `json:"establishmentPerks"`
	MealTypes          []Entry `json:"mealTypes"`
	DietaryTypes       []Entry `json:"dietaryTypes"`
	Allergens          []Entry `json:"allergens"`
	PriceCategories    []Entry `json:"priceCategories"`
}

// Entries returns the slice held for c.
func (t *Taxonomies) Entries(c Category) []Entry {
	if t == nil {
		return nil
	}
	switch c {
	case FoodTypes:
		return t.FoodTypes
	case EstablishmentTypes:
		return t.EstablishmentTypes
	case EstablishmentPerks:
		return t.EstablishmentPerks
	case MealTypes:
		return t.MealTypes
	case DietaryTypes:
		return t.DietaryTypes
	case Allergens:
		return t.Allergens
	case PriceCategories:
		return t.PriceCategories
	}
	return nil
}

// Count is the total number of entries across all categories.
func (t *Taxonomies) Count() int {
	n := 0
	for _, c := range Categories {
		n += len(t.Entries(c))
	}
	return n
}

// Filters carries the matched identifiers per category. Each slice keeps
// first-seen order and holds no duplicates.
type Filters struct {
	FoodTypes          []ID `json:"foodTypes"`
	EstablishmentTypes []ID `json:"establishmentTypes"`
	EstablishmentPerks []ID `json:"establishmentPerks"`
	MealTypes          []ID `json:"mealTypes"`
	DietaryTypes       []ID `json:"dietaryTypes"`
	Allergens          []ID `json:"allergens"`
	PriceCategories    []ID `json:"priceCategories"`
}

// NewFilters returns Filters with every slice allocated, so they encode as
// empty JSON arrays rather than null.
func NewFilters() Filters {
	var f Filters
	for _, c := range Categories {
		*f.slot(c) = []ID{}
	}
	return f
}

func (f *Filters) slot(c Category) *[]ID {
	switch c {
	case FoodTypes:
		return &f.FoodTypes
	case EstablishmentTypes:
		return &f.EstablishmentTypes
	case EstablishmentPerks:
		return &f.EstablishmentPerks
	case MealTypes:
		return &f.MealTypes
	case DietaryTypes:
		return &f.DietaryTypes
	case Allergens:
		return &f.Allergens
	case PriceCategories:
		return &f.PriceCategories
	}
	return nil
}

// Add records id under c unless it is already present.
func (f *Filters) Add(c Category, id ID) {
	s := f.slot(c)
	if s == nil {
		return
	}
	for _, existing := range *s {
		if existing == id {
			return
		}
	}
	*s = append(*s, id)
}

// IDs returns the identifiers recorded under c.
func (f *Filters) IDs(c Category) []ID {
	if s := f.slot(c); s != nil {
		return *s
	}
	return nil
}

// Empty reports whether no category holds any identifier.
func (f *Filters) Empty() bool {
	for _, c := range Categories {
		if len(f.IDs(c)) > 0 {
			return false
		}
	}
	return true
}

// ExtractionResult is what taxonomy extraction produces for one prompt.
type ExtractionResult struct {
	Filters       Filters       `json:"filters"`
	LeftoverTerms []string      `json:"leftoverTerms"`
	MatchedTerms  map[string]ID `json:"matchedTerms"`
	Taxonomies    *Taxonomies   `json:"-"`
}
