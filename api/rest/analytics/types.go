package analytics

import (
	"context"

	"codeberg.org/placewise/server/api/rest/pagination"
	"codeberg.org/placewise/server/internal/planner"
)

// satisfied by *planner.Engine
type Analyzer interface {
	Leaderboard(ctx context.Context, req planner.LeaderboardRequest) ([]planner.LeaderboardEntry, error)
	Forecast(ctx context.Context, req planner.ForecastRequest) (*planner.Forecast, error)
}

// query of GET /leaderboard; limit and offset are read by the pagination package
type LeaderboardQuery struct {
	Category     string   `form:"category" binding:"max=128"`
	AdvertiserID string   `form:"advertiser_id" binding:"max=128"`
	CostPerClick *float64 `form:"cost_per_click"`
}

func (q *LeaderboardQuery) toPlanner() planner.LeaderboardRequest {
	return planner.LeaderboardRequest{
		Category:     q.Category,
		AdvertiserID: q.AdvertiserID,
		CostPerClick: q.CostPerClick,
	}
}

type LeaderboardResponse struct {
	Category     string             `json:"category,omitempty"`
	AdvertiserID string             `json:"advertiser_id,omitempty"`
	Entries      []LeaderboardEntry `json:"entries"`
	Pagination   pagination.Meta    `json:"pagination"`
}

type LeaderboardEntry struct {
	Rank        int      `json:"rank"`
	CreatorID   string   `json:"creator_id"`
	Name        string   `json:"name"`
	AccountID   string   `json:"acct_id"`
	Topic       string   `json:"topic,omitempty"`
	Clicks      int64    `json:"total_clicks"`
	Conversions int64    `json:"total_conversions"`
	Placements  int      `json:"placements"`
	CVR         float64  `json:"cvr"`
	CPA         *float64 `json:"cpa"`
}

func newLeaderboardEntry(rank int, e planner.LeaderboardEntry) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:        rank,
		CreatorID:   e.Creator.ID,
		Name:        e.Creator.Name,
		AccountID:   e.Creator.AccountID,
		Topic:       e.Creator.Topic,
		Clicks:      e.Performance.Clicks,
		Conversions: e.Performance.Conversions,
		Placements:  e.Performance.Placements,
		CVR:         e.CVR,
		CPA:         e.CPA,
	}
}

// query of GET /forecast
type ForecastQuery struct {
	Budget       float64  `form:"budget"`
	CostPerClick *float64 `form:"cost_per_click"`
	InsertionID  string   `form:"insertion_id" binding:"max=128"`
	Category     string   `form:"category" binding:"max=128"`
	AdvertiserID string   `form:"advertiser_id" binding:"max=128"`
	BaselineCVR  *float64 `form:"baseline_cvr"`
}

func (q *ForecastQuery) toPlanner() planner.ForecastRequest {
	return planner.ForecastRequest{
		Budget:       q.Budget,
		CostPerClick: q.CostPerClick,
		InsertionID:  q.InsertionID,
		Category:     q.Category,
		AdvertiserID: q.AdvertiserID,
		BaselineCVR:  q.BaselineCVR,
	}
}

const (
	cvrSourceHistory  = "history"
	cvrSourceBaseline = "baseline"
)

type ForecastResponse struct {
	Budget                float64  `json:"budget"`
	CostPerClick          float64  `json:"cost_per_click"`
	PoolSize              int      `json:"pool_size"`
	HistoricalClicks      int64    `json:"historical_clicks"`
	HistoricalConversions int64    `json:"historical_conversions"`
	CVR                   float64  `json:"cvr"`
	CVRSource             string   `json:"cvr_source"`
	ForecastClicks        float64  `json:"forecast_clicks"`
	ForecastConversions   float64  `json:"forecast_conversions"`
	ForecastCPA           *float64 `json:"forecast_cpa"`
}

func NewForecastResponse(f *planner.Forecast) ForecastResponse {
	source := cvrSourceBaseline
	if f.FromHistory {
		source = cvrSourceHistory
	}

	return ForecastResponse{
		Budget:                f.Budget,
		CostPerClick:          f.CostPerClick,
		PoolSize:              f.PoolSize,
		HistoricalClicks:      f.HistoricalClicks,
		HistoricalConversions: f.HistoricalConversions,
		CVR:                   f.CVR,
		CVRSource:             source,
		ForecastClicks:        f.Clicks,
		ForecastConversions:   f.Conversions,
		ForecastCPA:           f.CPA,
	}
}
