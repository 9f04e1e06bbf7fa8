package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/metrics"
	"codeberg.org/placewise/server/internal/planner"
)

const (
	keyPerformance = "placewise:perf:%s:%s:%s"
	keyEmbedding   = "placewise:embedding:%s"

	DefaultCacheTTL = 10 * time.Minute
)

// Cache is a byte store with batched reads and writes
type Cache interface {
	// returns one entry per key, nil for misses
	GetMany(ctx context.Context, keys []string) ([][]byte, error)
	SetMany(ctx context.Context, entries map[string][]byte, ttl time.Duration) error
}

// CachedStore caches per-creator performance aggregates and embeddings in front of
// another catalog. Cache failures degrade to the wrapped catalog.
type CachedStore struct {
	planner.Catalog
	cache Cache
	ttl   time.Duration
}

// creates a caching decorator; ttl <= 0 uses DefaultCacheTTL
func NewCachedStore(next planner.Catalog, cache Cache, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &CachedStore{Catalog: next, cache: cache, ttl: ttl}
}

func (s *CachedStore) FetchPerformance(ctx context.Context, creatorIDs []string, filter planner.ContextFilter, scope planner.Scope) (map[string]planner.PerformanceAggregate, error) {
	contextKey := "category=" + filter.Category
	if filter.AdvertiserID != "" {
		contextKey = "advertiser=" + filter.AdvertiserID
	}

	key := func(id string) string {
		return fmt.Sprintf(keyPerformance, scope, contextKey, id)
	}

	load := func(ctx context.Context, ids []string) (map[string]planner.PerformanceAggregate, error) {
		return s.Catalog.FetchPerformance(ctx, ids, filter, scope)
	}

	return cachedBatch(ctx, s, "fetch_performance", creatorIDs, key, load, planner.PerformanceAggregate.HasHistory)
}

func (s *CachedStore) FetchEmbeddings(ctx context.Context, creatorIDs []string) (map[string][]float32, error) {
	key := func(id string) string {
		return fmt.Sprintf(keyEmbedding, id)
	}

	present := func(v []float32) bool {
		return len(v) > 0
	}

	return cachedBatch(ctx, s, "fetch_embeddings", creatorIDs, key, s.Catalog.FetchEmbeddings, present)
}

// reads ids through the cache, loads the misses in one call and writes them back.
// Misses the loader does not return are cached as zero values so they stay absent.
func cachedBatch[T any](
	ctx context.Context,
	s *CachedStore,
	op string,
	ids []string,
	key func(string) string,
	load func(context.Context, []string) (map[string]T, error),
	present func(T) bool,
) (map[string]T, error) {
	result := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}

	cached, err := s.cache.GetMany(ctx, keys)
	if err != nil || len(cached) != len(keys) {
		logger.Warn("catalog cache read failed", "operation", op, "error", err)
		cached = make([][]byte, len(keys))
	}

	var misses []string

	for i, id := range ids {
		if cached[i] == nil {
			misses = append(misses, id)
			continue
		}

		var v T
		if err := json.Unmarshal(cached[i], &v); err != nil {
			misses = append(misses, id)
			continue
		}

		if present(v) {
			result[id] = v
		}
	}

	metrics.CatalogCacheHits.WithLabelValues(op).Add(float64(len(ids) - len(misses)))
	metrics.CatalogCacheMisses.WithLabelValues(op).Add(float64(len(misses)))

	if len(misses) == 0 {
		return result, nil
	}

	loaded, err := load(ctx, misses)
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]byte, len(misses))

	for _, id := range misses {
		v := loaded[id]

		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s cache entry: %w", op, err)
		}

		entries[key(id)] = data

		if present(v) {
			result[id] = v
		}
	}

	if err := s.cache.SetMany(ctx, entries, s.ttl); err != nil {
		logger.Warn("catalog cache write failed", "operation", op, "error", err)
	}

	return result, nil
}
