package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"menufind/models"
	"menufind/taxonomy"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, table := range taxonomyTables {
		_, err := db.Exec("CREATE TABLE " + table + " (id INTEGER PRIMARY KEY, name_en TEXT, name_hr TEXT)")
		require.NoError(t, err)
	}
	return db
}

func TestTaxonomyStore_FetchTaxonomies(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO food_types (id, name_en, name_hr) VALUES (2, 'Seafood', 'Morski plodovi'), (1, 'Pizza', 'Pizza')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO establishment_perks (id, name_en, name_hr) VALUES (20, 'Outdoor seating', NULL)`)
	require.NoError(t, err)

	got, err := NewTaxonomyStore(db).FetchTaxonomies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.Entry{
		{ID: "1", NameEn: "Pizza", NameHr: "Pizza"},
		{ID: "2", NameEn: "Seafood", NameHr: "Morski plodovi"},
	}, got.FoodTypes)
	assert.Equal(t, []models.Entry{{ID: "20", NameEn: "Outdoor seating"}}, got.EstablishmentPerks)
	assert.NotNil(t, got.Allergens)
	assert.Empty(t, got.Allergens)
	assert.Equal(t, 3, got.Count())
}

func TestTaxonomyStore_MissingTable(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec("DROP TABLE allergens")
	require.NoError(t, err)

	_, err = NewTaxonomyStore(db).FetchTaxonomies(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, taxonomy.ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "allergens")
}

func TestTaxonomyStore_BacksCatalog(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO dietary_types (id, name_en, name_hr) VALUES (40, 'Vegan', 'Veganski')`)
	require.NoError(t, err)

	cat := taxonomy.NewCatalog(NewTaxonomyStore(db), 0)
	res, err := cat.Extract(context.Background(), "veganska, nesto")
	require.NoError(t, err)

	assert.Equal(t, []models.ID{"40"}, res.Filters.DietaryTypes)
	assert.Equal(t, []string{"nesto"}, res.LeftoverTerms)
}

func TestConnect_RequiresDSN(t *testing.T) {
	_, err := Connect(context.Background(), "", zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoDSN)
}
