// Package app wires configuration into the query pipeline components.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"menufind/cache"
	"menufind/config"
	"menufind/database"
	"menufind/location"
	"menufind/models"
	"menufind/search"
	"menufind/taxonomy"
	"menufind/variants"
)

// App holds the long-lived components shared by the server and the CLI.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Catalog  *taxonomy.Catalog
	Resolver *location.Resolver
	Variants *variants.Generator
	Analyzer *search.Analyzer

	closers []func() error
}

// New builds the components described by cfg. The taxonomy source is the
// configured URL, else the database; with neither every extraction fails and
// searches fall back to free text.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	source, err := a.taxonomySource(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Catalog = taxonomy.NewCatalog(source, cfg.Taxonomy.CacheTTL,
		taxonomy.WithLogger(logger.With().Str("component", "taxonomy").Logger()))

	store, err := a.geocodeStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	opts := []location.Option{
		location.WithStore(store),
		location.WithLogger(logger.With().Str("component", "location").Logger()),
	}
	if cfg.Geocoding.APIKey != "" {
		opts = append(opts, location.WithGeocoder(a.geocoder()))
	} else {
		logger.Info().Msg("no geocoding key configured, using built-in city coordinates only")
	}
	a.Resolver = location.NewResolver(opts...)

	a.Variants = variants.New(variants.WithDefaultMax(cfg.Variants.MaxVariants))
	a.Analyzer = search.NewAnalyzer(a.Catalog, a.Resolver, a.Variants,
		logger.With().Str("component", "search").Logger())
	return a, nil
}

func (a *App) taxonomySource(ctx context.Context) (taxonomy.Source, error) {
	cfg := a.Config
	switch {
	case cfg.Taxonomy.SourceURL != "":
		return taxonomy.NewHTTPSource(cfg.Taxonomy.SourceURL, &http.Client{Timeout: cfg.Taxonomy.Timeout}), nil
	case cfg.Database.DSN != "":
		db, err := database.Connect(ctx, cfg.Database.DSN, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("connect taxonomy database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return database.NewTaxonomyStore(db), nil
	default:
		a.Logger.Warn().Msg("no taxonomy source configured, filter extraction disabled")
		return taxonomy.SourceFunc(func(context.Context) (*models.Taxonomies, error) {
			return nil, fmt.Errorf("%w: %v", taxonomy.ErrUpstreamUnavailable, config.ErrNoTaxonomySource)
		}), nil
	}
}

func (a *App) geocodeStore(ctx context.Context) (cache.Store[models.GeocodeResult], error) {
	cfg := a.Config
	ttl := geocodeTTL(cfg.Geocoding.CacheTTL)
	if cfg.Cache.Driver != "redis" {
		return cache.NewMemory[models.GeocodeResult](ttl), nil
	}

	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		PoolSize: cfg.Cache.Redis.PoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("connect geocode cache: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	a.Logger.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("geocode cache backed by redis")
	return cache.NewRedis[models.GeocodeResult](client, cfg.Cache.Redis.Prefix, ttl), nil
}

// geocodeTTL treats an unset lifetime as the resolver default; a zero TTL
// would expire every entry on the next read.
func geocodeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return location.DefaultCacheTTL
	}
	return ttl
}

func (a *App) geocoder() *location.GoogleGeocoder {
	g := a.Config.Geocoding
	opts := []location.GoogleOption{
		location.WithBias(g.Country, g.Language),
		location.WithHTTPClient(&http.Client{Timeout: g.Timeout}),
	}
	if g.BaseURL != "" {
		opts = append(opts, location.WithBaseURL(g.BaseURL))
	}
	return location.NewGoogleGeocoder(g.APIKey, opts...)
}

// ClearCaches drops the taxonomy snapshot and every geocoded city.
func (a *App) ClearCaches(ctx context.Context) error {
	return errors.Join(a.Catalog.Clear(ctx), a.Resolver.Clear(ctx))
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
