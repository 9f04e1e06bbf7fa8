package catalog

import (
	"context"
	"errors"
	"time"

	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/metrics"
	"codeberg.org/placewise/server/internal/planner"
	gobreaker "github.com/sony/gobreaker/v2"
)

// circuit breaker tuning
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // requests allowed while half-open
	Interval         time.Duration // closed-state counter reset period
	Timeout          time.Duration // open-state duration before half-open
	FailureThreshold uint32        // consecutive failures that trip the breaker
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "catalog",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerStore fails fast once the wrapped catalog keeps erroring
type BreakerStore struct {
	next planner.Catalog
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(next planner.Catalog, cfg BreakerConfig) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.CatalogBreakerState.Set(float64(to))
		},
		IsSuccessful: isHealthy,
	}

	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

// lookups that miss and callers that give up do not count against the catalog
func isHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, planner.ErrInsertionNotFound) ||
		errors.Is(err, planner.ErrAdvertiserNotFound) ||
		errors.Is(err, context.Canceled)
}

func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func guarded[T any](s *BreakerStore, fn func() (T, error)) (T, error) {
	v, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

func (s *BreakerStore) FetchCandidates(ctx context.Context, filter planner.ContextFilter, limit int) ([]planner.Creator, error) {
	return guarded(s, func() ([]planner.Creator, error) {
		return s.next.FetchCandidates(ctx, filter, limit)
	})
}

func (s *BreakerStore) FetchCreatorsByAccount(ctx context.Context, accountIDs []string) ([]planner.Creator, error) {
	return guarded(s, func() ([]planner.Creator, error) {
		return s.next.FetchCreatorsByAccount(ctx, accountIDs)
	})
}

func (s *BreakerStore) FetchPerformance(ctx context.Context, creatorIDs []string, filter planner.ContextFilter, scope planner.Scope) (map[string]planner.PerformanceAggregate, error) {
	return guarded(s, func() (map[string]planner.PerformanceAggregate, error) {
		return s.next.FetchPerformance(ctx, creatorIDs, filter, scope)
	})
}

func (s *BreakerStore) FetchEmbeddings(ctx context.Context, creatorIDs []string) (map[string][]float32, error) {
	return guarded(s, func() (map[string][]float32, error) {
		return s.next.FetchEmbeddings(ctx, creatorIDs)
	})
}

func (s *BreakerStore) FetchDeclined(ctx context.Context, advertiserID string) ([]string, error) {
	return guarded(s, func() ([]string, error) {
		return s.next.FetchDeclined(ctx, advertiserID)
	})
}

func (s *BreakerStore) ResolveCostPerClick(ctx context.Context, insertionID string) (float64, error) {
	return guarded(s, func() (float64, error) {
		return s.next.ResolveCostPerClick(ctx, insertionID)
	})
}

func (s *BreakerStore) FetchAdvertiser(ctx context.Context, advertiserID string) (*planner.Advertiser, error) {
	return guarded(s, func() (*planner.Advertiser, error) {
		return s.next.FetchAdvertiser(ctx, advertiserID)
	})
}
