package planner

import "context"

// Catalog is the read-only creator data source the engine plans against.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// candidate creators for a context, capped at limit
	FetchCandidates(ctx context.Context, filter ContextFilter, limit int) ([]Creator, error)

	// creators owned by the given accounts
	FetchCreatorsByAccount(ctx context.Context, accountIDs []string) ([]Creator, error)

	// per-creator aggregates on one side of the context; creators without rows are absent
	FetchPerformance(ctx context.Context, creatorIDs []string, filter ContextFilter, scope Scope) (map[string]PerformanceAggregate, error)

	// embeddings keyed by creator id; creators without one are absent
	FetchEmbeddings(ctx context.Context, creatorIDs []string) (map[string][]float32, error)

	// creators that declined the advertiser
	FetchDeclined(ctx context.Context, advertiserID string) ([]string, error)

	// cost per click of an insertion order, ErrInsertionNotFound when unknown
	ResolveCostPerClick(ctx context.Context, insertionID string) (float64, error)

	// stored advertiser defaults, ErrAdvertiserNotFound when unknown
	FetchAdvertiser(ctx context.Context, advertiserID string) (*Advertiser, error)
}
