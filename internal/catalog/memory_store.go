package catalog

import (
	"context"
	"slices"
	"sync"

	"codeberg.org/placewise/server/internal/planner"
)

// one historical placement of a creator with an advertiser
type PlacementRecord struct {
	CreatorID    string
	AdvertiserID string
	Clicks       int64
	Conversions  int64
}

// MemoryStore implements planner.Catalog over in-process data. Used by tests.
type MemoryStore struct {
	mu          sync.RWMutex
	creators    []planner.Creator
	records     []PlacementRecord
	embeddings  map[string][]float32
	declined    map[string][]string
	insertions  map[string]float64
	advertisers map[string]planner.Advertiser
}

// creates an empty in-memory catalog
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		embeddings:  make(map[string][]float32),
		declined:    make(map[string][]string),
		insertions:  make(map[string]float64),
		advertisers: make(map[string]planner.Advertiser),
	}
}

// adds creators; an embedding set on the creator is stored separately
func (s *MemoryStore) AddCreators(creators ...planner.Creator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range creators {
		if len(c.Embedding) > 0 {
			s.embeddings[c.ID] = c.Embedding
			c.Embedding = nil
		}

		s.creators = append(s.creators, c)
	}
}

func (s *MemoryStore) AddPlacements(records ...PlacementRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
}

func (s *MemoryStore) SetEmbedding(creatorID string, embedding []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.embeddings[creatorID] = embedding
}

func (s *MemoryStore) AddDeclined(advertiserID string, creatorIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.declined[advertiserID] = append(s.declined[advertiserID], creatorIDs...)
}

func (s *MemoryStore) SetInsertion(insertionID string, costPerClick float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertions[insertionID] = costPerClick
}

func (s *MemoryStore) SetAdvertiser(a planner.Advertiser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advertisers[a.ID] = a
}

// returns every creator in insertion order, capped at limit
func (s *MemoryStore) FetchCandidates(_ context.Context, _ planner.ContextFilter, limit int) ([]planner.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.creators)
	if limit > 0 {
		n = min(n, limit)
	}

	return slices.Clone(s.creators[:n]), nil
}

func (s *MemoryStore) FetchCreatorsByAccount(_ context.Context, accountIDs []string) ([]planner.Creator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var creators []planner.Creator

	for _, c := range s.creators {
		if slices.Contains(accountIDs, c.AccountID) {
			creators = append(creators, c)
		}
	}

	return creators, nil
}

// sums placement records per creator on one side of the context
func (s *MemoryStore) FetchPerformance(_ context.Context, creatorIDs []string, filter planner.ContextFilter, scope planner.Scope) (map[string]planner.PerformanceAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clicks := make(map[string][]int64)
	result := make(map[string]planner.PerformanceAggregate)

	for _, r := range s.records {
		if !slices.Contains(creatorIDs, r.CreatorID) {
			continue
		}

		if s.matches(r, filter) != (scope == planner.ScopeSameContext) {
			continue
		}

		agg := result[r.CreatorID]
		agg.Clicks += r.Clicks
		agg.Conversions += r.Conversions
		agg.Placements++
		result[r.CreatorID] = agg

		clicks[r.CreatorID] = append(clicks[r.CreatorID], r.Clicks)
	}

	for id, agg := range result {
		agg.MedianClicks = median(clicks[id])
		result[id] = agg
	}

	return result, nil
}

// whether a record belongs to the requested context
func (s *MemoryStore) matches(r PlacementRecord, filter planner.ContextFilter) bool {
	if filter.AdvertiserID != "" {
		return r.AdvertiserID == filter.AdvertiserID
	}

	return s.advertisers[r.AdvertiserID].Category == filter.Category
}

func (s *MemoryStore) FetchEmbeddings(_ context.Context, creatorIDs []string) (map[string][]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]float32)

	for _, id := range creatorIDs {
		if v, ok := s.embeddings[id]; ok {
			result[id] = slices.Clone(v)
		}
	}

	return result, nil
}

func (s *MemoryStore) FetchDeclined(_ context.Context, advertiserID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.declined[advertiserID]), nil
}

func (s *MemoryStore) ResolveCostPerClick(_ context.Context, insertionID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cpc, ok := s.insertions[insertionID]
	if !ok {
		return 0, planner.ErrInsertionNotFound
	}

	return cpc, nil
}

func (s *MemoryStore) FetchAdvertiser(_ context.Context, advertiserID string) (*planner.Advertiser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.advertisers[advertiserID]
	if !ok {
		return nil, planner.ErrAdvertiserNotFound
	}

	return &a, nil
}

func median(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}

	return float64(sorted[mid-1]+sorted[mid]) / 2
}
