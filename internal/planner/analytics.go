package planner

import (
	"cmp"
	"context"
	"slices"
	"time"

	"codeberg.org/placewise/server/internal/logger"
)

// LeaderboardRequest ranks the creators of one context by their history in it
type LeaderboardRequest struct {
	Category     string
	AdvertiserID string

	// optional; enables historical CPA per entry
	CostPerClick *float64
}

func (r *LeaderboardRequest) Validate() error {
	if err := validateContext(r.Category, r.AdvertiserID); err != nil {
		return err
	}

	if r.CostPerClick != nil && *r.CostPerClick <= 0 {
		return invalid("cost_per_click", "must be greater than 0")
	}

	return nil
}

// one creator's same-context totals
type LeaderboardEntry struct {
	Creator     Creator
	Performance PerformanceAggregate
	CVR         float64  // conversions per click, 0 without clicks
	CPA         *float64 // nil without a cost per click or without conversions
}

// Leaderboard returns the candidate pool of a context ordered by same-context
// conversions, highest first. Ties keep pool order.
func (e *Engine) Leaderboard(ctx context.Context, req LeaderboardRequest) ([]LeaderboardEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := newContextFilter(req.Category, req.AdvertiserID)

	creators, err := e.catalog.FetchCandidates(ctx, filter, e.cfg.PoolLimit)
	if err != nil {
		return nil, catalogFailure("fetch candidates", err)
	}

	entries := make([]LeaderboardEntry, 0, len(creators))
	if len(creators) == 0 {
		return entries, nil
	}

	performance, err := e.catalog.FetchPerformance(ctx, creatorIDs(creators), filter, ScopeSameContext)
	if err != nil {
		return nil, catalogFailure("fetch same-context performance", err)
	}

	for _, c := range creators {
		agg := performance[c.ID]

		entry := LeaderboardEntry{
			Creator:     c,
			Performance: agg,
			CVR:         agg.CVR(),
		}

		if req.CostPerClick != nil && agg.Conversions > 0 {
			cpa := *req.CostPerClick * float64(agg.Clicks) / float64(agg.Conversions)
			entry.CPA = &cpa
		}

		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return cmp.Compare(b.Performance.Conversions, a.Performance.Conversions)
	})

	return entries, nil
}

// ForecastRequest projects a budget onto the historical conversion rate of a context
type ForecastRequest struct {
	Budget       float64
	CostPerClick *float64
	InsertionID  string

	Category     string
	AdvertiserID string

	// used instead of the configured baseline when the context has no clicks
	BaselineCVR *float64
}

func (r *ForecastRequest) Validate() error {
	if r.Budget <= 0 {
		return invalid("budget", "must be greater than 0")
	}

	if err := validateCostPerClick(r.CostPerClick, r.InsertionID); err != nil {
		return err
	}

	if err := validateContext(r.Category, r.AdvertiserID); err != nil {
		return err
	}

	return validateBaselineCVR(r.BaselineCVR)
}

type Forecast struct {
	Budget       float64
	CostPerClick float64

	// same-context totals over the candidate pool
	PoolSize              int
	HistoricalClicks      int64
	HistoricalConversions int64

	// CVR is historical when FromHistory, otherwise the baseline
	CVR         float64
	FromHistory bool

	Clicks      float64
	Conversions float64
	CPA         *float64 // nil when no conversions are expected
}

// Forecast estimates clicks, conversions and CPA for spending the whole budget
// at the context's pooled conversion rate.
func (e *Engine) Forecast(ctx context.Context, req ForecastRequest) (*Forecast, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	filter := newContextFilter(req.Category, req.AdvertiserID)

	cpc, err := e.costPerClick(ctx, req.CostPerClick, req.InsertionID)
	if err != nil {
		return nil, err
	}

	creators, err := e.catalog.FetchCandidates(ctx, filter, e.cfg.PoolLimit)
	if err != nil {
		return nil, catalogFailure("fetch candidates", err)
	}

	f := &Forecast{
		Budget:       req.Budget,
		CostPerClick: cpc,
		PoolSize:     len(creators),
	}

	if len(creators) > 0 {
		performance, err := e.catalog.FetchPerformance(ctx, creatorIDs(creators), filter, ScopeSameContext)
		if err != nil {
			return nil, catalogFailure("fetch same-context performance", err)
		}

		for _, agg := range performance {
			f.HistoricalClicks += agg.Clicks
			f.HistoricalConversions += agg.Conversions
		}
	}

	switch {
	case f.HistoricalClicks > 0:
		f.CVR = float64(f.HistoricalConversions) / float64(f.HistoricalClicks)
		f.FromHistory = true
	case req.BaselineCVR != nil:
		f.CVR = *req.BaselineCVR
	default:
		f.CVR = e.cfg.BaselineCVR
	}

	f.Clicks = req.Budget / cpc
	f.Conversions = f.Clicks * f.CVR

	if f.Conversions > 0 {
		cpa := req.Budget / f.Conversions
		f.CPA = &cpa
	}

	logger.Info("forecast built",
		"pool_size", f.PoolSize,
		"from_history", f.FromHistory,
		"cvr", f.CVR,
		"duration", time.Since(start),
	)

	return f, nil
}
