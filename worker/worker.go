package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"menufind/location"
	"menufind/models"
	"menufind/taxonomy"
)

const DefaultPoolSize = 4

// TaxonomyRefresher refetches the taxonomy catalog.
type TaxonomyRefresher interface {
	Refresh(ctx context.Context) (*taxonomy.Snapshot, error)
}

// CityResolver resolves a city through the geocode cache.
type CityResolver interface {
	CityCoordinates(ctx context.Context, city string) (*models.GeocodeResult, bool)
}

// Stats summarizes one warm-up pass.
type Stats struct {
	Taxonomies bool
	Cities     int
	Resolved   int
}

// Warmer preloads the taxonomy snapshot and the coordinates of the major
// cities so the first searches do not pay for upstream calls.
type Warmer struct {
	catalog  TaxonomyRefresher
	resolver CityResolver
	cities   []string
	pool     *ants.Pool
	logger   zerolog.Logger
}

// Option configures a Warmer.
type Option func(*Warmer)

// WithCities replaces the cities to geocode. Defaults to the built-in
// fallback table.
func WithCities(cities []string) Option {
	return func(w *Warmer) {
		w.cities = cities
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Warmer) {
		w.logger = logger
	}
}

// NewWarmer creates a Warmer geocoding with at most poolSize concurrent
// lookups. Either dependency may be nil to skip that cache.
func NewWarmer(catalog TaxonomyRefresher, resolver CityResolver, poolSize int, opts ...Option) (*Warmer, error) {
	if poolSize < 1 {
		poolSize = DefaultPoolSize
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	w := &Warmer{
		catalog:  catalog,
		resolver: resolver,
		cities:   location.FallbackCities(),
		pool:     pool,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Release stops the worker pool.
func (w *Warmer) Release() {
	w.pool.Release()
}

// WarmOnce refreshes the taxonomy catalog and resolves every configured city.
// Failures are logged and counted, never returned.
func (w *Warmer) WarmOnce(ctx context.Context) Stats {
	start := time.Now()
	stats := Stats{}

	if w.catalog != nil {
		if _, err := w.catalog.Refresh(ctx); err != nil {
			w.logger.Warn().Err(err).Msg("taxonomy warm-up failed")
		} else {
			stats.Taxonomies = true
		}
	}

	if w.resolver != nil {
		var (
			wg       sync.WaitGroup
			resolved atomic.Int32
		)
		for _, city := range w.cities {
			if ctx.Err() != nil {
				break
			}
			wg.Add(1)
			stats.Cities++
			err := w.pool.Submit(func() {
				defer wg.Done()
				if _, ok := w.resolver.CityCoordinates(ctx, city); ok {
					resolved.Add(1)
				} else {
					w.logger.Debug().Str("city", city).Msg("city not resolved during warm-up")
				}
			})
			if err != nil {
				wg.Done()
				w.logger.Error().Err(err).Str("city", city).Msg("warm-up task rejected")
			}
		}
		wg.Wait()
		stats.Resolved = int(resolved.Load())
	}

	w.logger.Info().
		Bool("taxonomies", stats.Taxonomies).
		Int("cities", stats.Cities).
		Int("resolved", stats.Resolved).
		Dur("took", time.Since(start)).
		Msg("cache warm-up finished")
	return stats
}

// StartCacheWarmer warms the caches immediately and then on every tick until
// ctx is cancelled. A non-positive interval disables it. The returned channel
// is closed once the loop has stopped.
func StartCacheWarmer(ctx context.Context, w *Warmer, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 || w == nil {
		close(done)
		return done
	}

	w.logger.Info().Dur("interval", interval).Int("pool", w.pool.Cap()).Msg("starting cache warmer")
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()

		w.WarmOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.WarmOnce(ctx)
			}
		}
	}()
	return done
}
