package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/placewise/server/internal/planner"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	planner.Catalog
	err   error
	calls int
}

func (s *failingStore) FetchCandidates(context.Context, planner.ContextFilter, int) ([]planner.Creator, error) {
	s.calls++
	return nil, s.err
}

func (s *failingStore) ResolveCostPerClick(context.Context, string) (float64, error) {
	s.calls++
	return 0, planner.ErrInsertionNotFound
}

func testBreakerConfig() BreakerConfig {
	cfg := DefaultBreakerConfig()
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Hour

	return cfg
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	backing := &failingStore{Catalog: NewMemoryStore(), err: errors.New("db down")}
	store := NewBreakerStore(backing, testBreakerConfig())
	ctx := context.Background()

	for range 2 {
		_, err := store.FetchCandidates(ctx, planner.ContextFilter{Category: "x"}, 10)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, store.State())

	_, err := store.FetchCandidates(ctx, planner.ContextFilter{Category: "x"}, 10)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, backing.calls)
}

func TestBreakerStore_NotFoundIsHealthy(t *testing.T) {
	backing := &failingStore{Catalog: NewMemoryStore()}
	store := NewBreakerStore(backing, testBreakerConfig())

	for range 5 {
		_, err := store.ResolveCostPerClick(context.Background(), "missing")
		assert.ErrorIs(t, err, planner.ErrInsertionNotFound)
	}

	assert.Equal(t, gobreaker.StateClosed, store.State())
}

func TestBreakerStore_PassesResults(t *testing.T) {
	backing := NewMemoryStore()
	backing.SetAdvertiser(planner.Advertiser{ID: "adv-1", Name: "Acme"})

	store := NewInstrumentedStore(NewBreakerStore(backing, DefaultBreakerConfig()))

	adv, err := store.FetchAdvertiser(context.Background(), "adv-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", adv.Name)

	declined, err := store.FetchDeclined(context.Background(), "adv-1")
	require.NoError(t, err)
	assert.Empty(t, declined)
}
