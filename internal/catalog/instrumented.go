package catalog

import (
	"context"
	"time"

	"codeberg.org/placewise/server/internal/metrics"
	"codeberg.org/placewise/server/internal/planner"
)

// InstrumentedStore records latency and failures of every catalog read
type InstrumentedStore struct {
	next planner.Catalog
}

func NewInstrumentedStore(next planner.Catalog) *InstrumentedStore {
	return &InstrumentedStore{next: next}
}

func observed[T any](op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()

	metrics.CatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if !isHealthy(err) {
		metrics.CatalogRequestErrors.WithLabelValues(op).Inc()
	}

	return v, err
}

func (s *InstrumentedStore) FetchCandidates(ctx context.Context, filter planner.ContextFilter, limit int) ([]planner.Creator, error) {
	return observed("fetch_candidates", func() ([]planner.Creator, error) {
		return s.next.FetchCandidates(ctx, filter, limit)
	})
}

func (s *InstrumentedStore) FetchCreatorsByAccount(ctx context.Context, accountIDs []string) ([]planner.Creator, error) {
	return observed("fetch_creators_by_account", func() ([]planner.Creator, error) {
		return s.next.FetchCreatorsByAccount(ctx, accountIDs)
	})
}

func (s *InstrumentedStore) FetchPerformance(ctx context.Context, creatorIDs []string, filter planner.ContextFilter, scope planner.Scope) (map[string]planner.PerformanceAggregate, error) {
	return observed("fetch_performance_"+scope.String(), func() (map[string]planner.PerformanceAggregate, error) {
		return s.next.FetchPerformance(ctx, creatorIDs, filter, scope)
	})
}

func (s *InstrumentedStore) FetchEmbeddings(ctx context.Context, creatorIDs []string) (map[string][]float32, error) {
	return observed("fetch_embeddings", func() (map[string][]float32, error) {
		return s.next.FetchEmbeddings(ctx, creatorIDs)
	})
}

func (s *InstrumentedStore) FetchDeclined(ctx context.Context, advertiserID string) ([]string, error) {
	return observed("fetch_declined", func() ([]string, error) {
		return s.next.FetchDeclined(ctx, advertiserID)
	})
}

func (s *InstrumentedStore) ResolveCostPerClick(ctx context.Context, insertionID string) (float64, error) {
	return observed("resolve_cost_per_click", func() (float64, error) {
		return s.next.ResolveCostPerClick(ctx, insertionID)
	})
}

func (s *InstrumentedStore) FetchAdvertiser(ctx context.Context, advertiserID string) (*planner.Advertiser, error) {
	return observed("fetch_advertiser", func() (*planner.Advertiser, error) {
		return s.next.FetchAdvertiser(ctx, advertiserID)
	})
}
