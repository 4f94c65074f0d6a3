// Package taxonomy turns free-text prompt phrases into canonical filter
// identifiers. The catalog is fetched from an upstream Source and kept, with
// its lookup indices, in a TTL cache.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"menufind/cache"
	"menufind/models"
)

// DefaultTTL is how long a fetched catalog is served before refetching.
const DefaultTTL = 10 * time.Minute

const snapshotKey = "taxonomies"

// Catalog serves the taxonomy catalog and its indices. Concurrent misses may
// each fetch upstream; whichever result is stored last is kept.
type Catalog struct {
	source   Source
	store    cache.Store[*Snapshot]
	synonyms map[models.Category]SynonymTable
	logger   zerolog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithStore replaces the in-memory snapshot cache.
func WithStore(store cache.Store[*Snapshot]) CatalogOption {
	return func(c *Catalog) {
		c.store = store
	}
}

// WithSynonyms replaces the built-in synonym dictionary.
func WithSynonyms(synonyms map[models.Category]SynonymTable) CatalogOption {
	return func(c *Catalog) {
		c.synonyms = synonyms
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// NewCatalog creates a Catalog reading from source. ttl <= 0 uses DefaultTTL.
func NewCatalog(source Source, ttl time.Duration, opts ...CatalogOption) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Catalog{
		source:   source,
		synonyms: DefaultSynonyms,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = cache.NewMemory[*Snapshot](ttl)
	}
	return c
}

// Taxonomies returns the cached catalog, fetching it when the cache is empty
// or expired.
func (c *Catalog) Taxonomies(ctx context.Context) (*models.Taxonomies, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Taxonomies, nil
}

// Snapshot returns the cached catalog with its indices.
func (c *Catalog) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap, err := c.store.Get(ctx, snapshotKey); err == nil && snap != nil {
		return snap, nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches the catalog upstream regardless of the cache state and
// stores the result.
func (c *Catalog) Refresh(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	t, err := c.source.FetchTaxonomies(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("taxonomy fetch failed")
		if !errors.Is(err, ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}
	if t == nil {
		c.logger.Error().Msg("taxonomy fetch returned no payload")
		return nil, fmt.Errorf("%w: empty payload", ErrUpstreamUnavailable)
	}

	snap := NewSnapshot(t, c.synonyms)
	if err := c.store.Set(ctx, snapshotKey, snap); err != nil {
		c.logger.Warn().Err(err).Msg("taxonomy cache write failed")
	}

	c.logger.Debug().
		Int("entries", t.Count()).
		Dur("took", time.Since(start)).
		Msg("taxonomies fetched")
	return snap, nil
}

// Clear drops the cached catalog.
func (c *Catalog) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}
