package planner

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/similarity"
	"github.com/google/uuid"
)

// Engine builds plans against a read-only catalog. It holds no per-plan state
// and is safe for concurrent use.
type Engine struct {
	catalog   Catalog
	cfg       Config
	allocator *Allocator
}

func NewEngine(catalog Catalog, cfg Config) *Engine {
	cfg = cfg.withDefaults()

	return &Engine{
		catalog:   catalog,
		cfg:       cfg,
		allocator: NewAllocator(cfg),
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// request values after stored advertiser defaults are applied
type planTargets struct {
	profile     similarity.Demographics
	topics      []string
	baselineCVR float64
}

// Plan validates req, classifies and ranks the candidate pool and allocates the budget.
// Validation failures match ErrInvalidRequest; catalog failures match ErrCatalog.
func (e *Engine) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	filter := req.ContextFilter()

	cpc, err := e.costPerClick(ctx, req.CostPerClick, req.InsertionID)
	if err != nil {
		return nil, err
	}

	targets, err := e.targets(ctx, &req, filter)
	if err != nil {
		return nil, err
	}

	pool, diagnostics, err := buildPool(ctx, e.catalog, &req, filter, e.cfg.PoolLimit)
	if err != nil {
		return nil, err
	}

	var candidates []*CandidateScore

	if len(pool) > 0 {
		ids := creatorIDs(pool)

		same, err := e.catalog.FetchPerformance(ctx, ids, filter, ScopeSameContext)
		if err != nil {
			return nil, catalogFailure("fetch same-context performance", err)
		}

		cross, err := e.catalog.FetchPerformance(ctx, ids, filter, ScopeCrossContext)
		if err != nil {
			return nil, catalogFailure("fetch cross-context performance", err)
		}

		embeddings, err := e.catalog.FetchEmbeddings(ctx, ids)
		if err != nil {
			return nil, catalogFailure("fetch embeddings", err)
		}

		for i := range pool {
			if v, ok := embeddings[pool[i].ID]; ok {
				pool[i].Embedding = v
			}
		}

		candidates = classify(pool, same, cross, classifyParams{
			CostPerClick:  cpc,
			BaselineCVR:   targets.baselineCVR,
			DefaultClicks: e.cfg.DefaultClickEstimate,
		})

		score(candidates, scoreParams{
			Target:      targets.profile,
			Topics:      targets.topics,
			Keywords:    req.TargetKeywords,
			AnchorCount: e.cfg.FallbackAnchors,
		})
	}

	// everything past this point is in-memory
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lists, rejected := rank(candidates, req.TargetCPA)
	outcome := e.allocator.Allocate(req.Budget, lists)

	result := summarize(req.Budget, outcome.Allocations)
	result.ID = uuid.NewString()
	result.CostPerClick = cpc
	result.PoolSize = len(pool)

	fallback := result.Phases.Fallback
	result.Phases = countPhases(candidates)
	result.Phases.Fallback = fallback

	result.Diagnostics = slices.Concat(diagnostics, rejected, outcome.Diagnostics)

	logger.Info("plan built",
		"plan_id", result.ID,
		"pool_size", result.PoolSize,
		"same_context", result.Phases.SameContext,
		"cross_context", result.Phases.CrossContext,
		"no_history", result.Phases.NoHistory,
		"allocations", len(result.Allocations),
		"utilization", result.BudgetUtilization,
		"duration", time.Since(start),
	)

	return &result, nil
}

func (e *Engine) costPerClick(ctx context.Context, explicit *float64, insertionID string) (float64, error) {
	if explicit != nil {
		return *explicit, nil
	}

	cpc, err := e.catalog.ResolveCostPerClick(ctx, strings.TrimSpace(insertionID))
	if err != nil {
		return 0, catalogFailure("resolve cost per click", err)
	}

	if cpc <= 0 {
		return 0, invalid("insertion_id", "resolves to a non-positive cost per click")
	}

	return cpc, nil
}

// merges request targeting with the advertiser's stored defaults
func (e *Engine) targets(ctx context.Context, req *PlanRequest, filter ContextFilter) (planTargets, error) {
	t := planTargets{
		topics:      slices.Clone(req.TargetTopics),
		baselineCVR: e.cfg.BaselineCVR,
	}

	if req.TargetProfile != nil {
		t.profile = *req.TargetProfile
	}

	if req.BaselineCVR != nil {
		t.baselineCVR = *req.BaselineCVR
	}

	if filter.Category != "" {
		if !slices.Contains(t.topics, filter.Category) {
			t.topics = append(t.topics, filter.Category)
		}

		return t, nil
	}

	if req.TargetProfile != nil && req.BaselineCVR != nil && len(req.TargetTopics) > 0 {
		return t, nil
	}

	advertiser, err := e.catalog.FetchAdvertiser(ctx, filter.AdvertiserID)
	if errors.Is(err, ErrAdvertiserNotFound) {
		logger.Debug("advertiser has no stored defaults", "advertiser_id", filter.AdvertiserID)
		return t, nil
	}

	if err != nil {
		return t, catalogFailure("fetch advertiser", err)
	}

	if req.TargetProfile == nil {
		t.profile = advertiser.Target
	}

	if req.BaselineCVR == nil && advertiser.AverageCVR > 0 {
		t.baselineCVR = advertiser.AverageCVR
	}

	if len(t.topics) == 0 && advertiser.Category != "" {
		t.topics = []string{advertiser.Category}
	}

	return t, nil
}
