package database

import (
	"context"
	"database/sql"
	"fmt"

	"menufind/models"
	"menufind/taxonomy"
)

// taxonomyTables maps each category to the table holding it. Every table has
// the columns id, name_en and name_hr.
var taxonomyTables = map[models.Category]string{
	models.FoodTypes:          "food_types",
	models.EstablishmentTypes: "establishment_types",
	models.EstablishmentPerks: "establishment_perks",
	models.MealTypes:          "meal_types",
	models.DietaryTypes:       "dietary_types",
	models.Allergens:          "allergens",
	models.PriceCategories:    "price_categories",
}

// TaxonomyStore reads the taxonomy catalog straight from the database.
type TaxonomyStore struct {
	db *sql.DB
}

var _ taxonomy.Source = (*TaxonomyStore)(nil)

func NewTaxonomyStore(db *sql.DB) *TaxonomyStore {
	return &TaxonomyStore{db: db}
}

// FetchTaxonomies loads all seven tables. Any query failure is reported as
// taxonomy.ErrUpstreamUnavailable.
func (s *TaxonomyStore) FetchTaxonomies(ctx context.Context) (*models.Taxonomies, error) {
	t := &models.Taxonomies{}
	for _, c := range models.Categories {
		entries, err := s.entries(ctx, taxonomyTables[c])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", taxonomy.ErrUpstreamUnavailable, c, err)
		}
		switch c {
		case models.FoodTypes:
			t.FoodTypes = entries
		case models.EstablishmentTypes:
			t.EstablishmentTypes = entries
		case models.EstablishmentPerks:
			t.EstablishmentPerks = entries
		case models.MealTypes:
			t.MealTypes = entries
		case models.DietaryTypes:
			t.DietaryTypes = entries
		case models.Allergens:
			t.Allergens = entries
		case models.PriceCategories:
			t.PriceCategories = entries
		}
	}
	return t, nil
}

func (s *TaxonomyStore) entries(ctx context.Context, table string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name_en, name_hr FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var (
			id             string
			nameEn, nameHr sql.NullString
		)
		if err := rows.Scan(&id, &nameEn, &nameHr); err != nil {
			return nil, err
		}
		entries = append(entries, models.Entry{ID: models.ID(id), NameEn: nameEn.String, NameHr: nameHr.String})
	}
	return entries, rows.Err()
}
