package worker

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menufind/location"
	"menufind/models"
	"menufind/taxonomy"
)

type fakeCatalog struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCatalog) Refresh(context.Context) (*taxonomy.Snapshot, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return taxonomy.NewSnapshot(&models.Taxonomies{}, nil), nil
}

type fakeResolver struct {
	mu      sync.Mutex
	seen    []string
	unknown map[string]bool
}

func (f *fakeResolver) CityCoordinates(_ context.Context, city string) (*models.GeocodeResult, bool) {
	f.mu.Lock()
	f.seen = append(f.seen, city)
	f.mu.Unlock()
	if f.unknown[city] {
		return nil, false
	}
	return &models.GeocodeResult{CanonicalCity: city}, true
}

func (f *fakeResolver) cities() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.seen...)
	sort.Strings(out)
	return out
}

func TestWarmOnce(t *testing.T) {
	cat := &fakeCatalog{}
	res := &fakeResolver{unknown: map[string]bool{"atlantida": true}}
	w, err := NewWarmer(cat, res, 2, WithCities([]string{"zagreb", "split", "atlantida"}))
	require.NoError(t, err)
	defer w.Release()

	stats := w.WarmOnce(context.Background())

	assert.Equal(t, Stats{Taxonomies: true, Cities: 3, Resolved: 2}, stats)
	assert.Equal(t, int32(1), cat.calls.Load())
	assert.Equal(t, []string{"atlantida", "split", "zagreb"}, res.cities())
}

func TestWarmOnce_TaxonomyFailureIsNotFatal(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("catalog down")}
	res := &fakeResolver{}
	w, err := NewWarmer(cat, res, 0, WithCities([]string{"osijek"}))
	require.NoError(t, err)
	defer w.Release()

	stats := w.WarmOnce(context.Background())

	assert.False(t, stats.Taxonomies)
	assert.Equal(t, 1, stats.Resolved)
}

func TestWarmOnce_DefaultCitiesFillResolverCache(t *testing.T) {
	resolver := location.NewResolver()
	w, err := NewWarmer(nil, resolver, 3)
	require.NoError(t, err)
	defer w.Release()

	stats := w.WarmOnce(context.Background())

	assert.Equal(t, len(location.FallbackCities()), stats.Cities)
	assert.Equal(t, stats.Cities, stats.Resolved)
}

func TestStartCacheWarmer_Disabled(t *testing.T) {
	cat := &fakeCatalog{}
	w, err := NewWarmer(cat, nil, 1)
	require.NoError(t, err)
	defer w.Release()

	done := StartCacheWarmer(context.Background(), w, 0)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled warmer did not return")
	}
	assert.Equal(t, int32(0), cat.calls.Load())
}

func TestStartCacheWarmer_TicksUntilCancelled(t *testing.T) {
	cat := &fakeCatalog{}
	w, err := NewWarmer(cat, nil, 1)
	require.NoError(t, err)
	defer w.Release()

	ctx, cancel := context.WithCancel(context.Background())
	done := StartCacheWarmer(ctx, w, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return cat.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop after cancel")
	}
}
