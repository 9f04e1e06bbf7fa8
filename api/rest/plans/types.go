package plans

import (
	"codeberg.org/placewise/server/internal/planner"
	"codeberg.org/placewise/server/internal/similarity"
)

// CreatePlanRequest is the body of POST /plans and POST /plans/export.
// Domain rules (positive budget, cpc xor insertion, ...) are enforced by the engine.
type CreatePlanRequest struct {
	Budget         float64                  `json:"budget"`
	CostPerClick   *float64                 `json:"cost_per_click,omitempty"`
	InsertionID    string                   `json:"insertion_id,omitempty" binding:"max=128"`
	TargetCPA      *float64                 `json:"target_cpa,omitempty"`
	HorizonDays    int                      `json:"horizon_days"`
	Category       string                   `json:"category,omitempty" binding:"max=128"`
	AdvertiserID   string                   `json:"advertiser_id,omitempty" binding:"max=128"`
	BaselineCVR    *float64                 `json:"baseline_cvr,omitempty"`
	TargetProfile  *similarity.Demographics `json:"target_profile,omitempty"`
	TargetTopics   []string                 `json:"target_topics,omitempty" binding:"max=16,dive,max=64"`
	TargetKeywords []string                 `json:"target_keywords,omitempty" binding:"max=32,dive,max=64"`
	IncludeAcctIDs string                   `json:"include_acct_ids,omitempty" binding:"max=16384"`
	ExcludeAcctIDs string                   `json:"exclude_acct_ids,omitempty" binding:"max=16384"`
}

func (r *CreatePlanRequest) toPlanner() planner.PlanRequest {
	return planner.PlanRequest{
		Budget:            r.Budget,
		CostPerClick:      r.CostPerClick,
		InsertionID:       r.InsertionID,
		TargetCPA:         r.TargetCPA,
		HorizonDays:       r.HorizonDays,
		Category:          r.Category,
		AdvertiserID:      r.AdvertiserID,
		BaselineCVR:       r.BaselineCVR,
		TargetProfile:     r.TargetProfile,
		TargetTopics:      r.TargetTopics,
		TargetKeywords:    r.TargetKeywords,
		IncludeAccountIDs: r.IncludeAcctIDs,
		ExcludeAccountIDs: r.ExcludeAcctIDs,
	}
}

type PlanResponse struct {
	PlanID       string               `json:"plan_id"`
	Budget       float64              `json:"budget"`
	CostPerClick float64              `json:"cost_per_click"`
	Allocations  []AllocationResponse `json:"allocations"`
	Summary      SummaryResponse      `json:"summary"`
	Diagnostics  []DiagnosticResponse `json:"diagnostics"`
}

type SummaryResponse struct {
	TotalClicks       float64             `json:"total_clicks"`
	TotalSpend        float64             `json:"total_spend"`
	TotalConversions  float64             `json:"total_conversions"`
	BlendedCPA        *float64            `json:"blended_cpa"`
	BudgetUtilization float64             `json:"budget_utilization"`
	PoolSize          int                 `json:"pool_size"`
	Phases            PhaseCountsResponse `json:"phases"`
}

type PhaseCountsResponse struct {
	SameContext  int `json:"same_context"`
	CrossContext int `json:"cross_context"`
	NoHistory    int `json:"no_history"`
	Fallback     int `json:"fallback"`
}

type AllocationResponse struct {
	CreatorID           string              `json:"creator_id"`
	Name                string              `json:"name"`
	AcctID              string              `json:"acct_id"`
	Topic               string              `json:"topic,omitempty"`
	Phase               int                 `json:"phase"`
	PhaseName           string              `json:"phase_name"`
	Rationale           string              `json:"rationale"`
	PlacementCount      int                 `json:"placement_count"`
	Placements          []PlacementResponse `json:"placements"`
	ExpectedCVR         float64             `json:"expected_cvr"`
	ExpectedClicks      float64             `json:"expected_clicks"`
	ExpectedSpend       float64             `json:"expected_spend"`
	ExpectedConversions float64             `json:"expected_conversions"`
	ExpectedCPA         *float64            `json:"expected_cpa"`
	DemographicScore    float64             `json:"demographic_score"`
	TopicScore          float64             `json:"topic_score"`
	VectorScore         float64             `json:"vector_score"`
	CombinedScore       float64             `json:"combined_score"`
	KeywordScore        float64             `json:"keyword_score"`
	AnchorSimilarity    float64             `json:"anchor_similarity,omitempty"`
}

type PlacementResponse struct {
	Fraction    float64 `json:"fraction"`
	Clicks      float64 `json:"clicks"`
	Spend       float64 `json:"spend"`
	Conversions float64 `json:"conversions"`
	Prorated    bool    `json:"prorated,omitempty"`
	Synthetic   bool    `json:"synthetic,omitempty"`
}

type DiagnosticResponse struct {
	CreatorID string `json:"creator_id,omitempty"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
}

// converts an engine result into its JSON shape
func NewPlanResponse(result *planner.PlanResult) PlanResponse {
	resp := PlanResponse{
		PlanID:       result.ID,
		Budget:       result.Budget,
		CostPerClick: result.CostPerClick,
		Allocations:  make([]AllocationResponse, 0, len(result.Allocations)),
		Diagnostics:  make([]DiagnosticResponse, 0, len(result.Diagnostics)),
		Summary: SummaryResponse{
			TotalClicks:       result.TotalClicks,
			TotalSpend:        result.TotalSpend,
			TotalConversions:  result.TotalConversions,
			BudgetUtilization: result.BudgetUtilization,
			PoolSize:          result.PoolSize,
			Phases: PhaseCountsResponse{
				SameContext:  result.Phases.SameContext,
				CrossContext: result.Phases.CrossContext,
				NoHistory:    result.Phases.NoHistory,
				Fallback:     result.Phases.Fallback,
			},
		},
	}

	if result.TotalConversions > 0 {
		blended := result.BlendedCPA
		resp.Summary.BlendedCPA = &blended
	}

	for i := range result.Allocations {
		resp.Allocations = append(resp.Allocations, newAllocationResponse(&result.Allocations[i]))
	}

	for _, d := range result.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, DiagnosticResponse{
			CreatorID: d.CreatorID,
			Reason:    string(d.Reason),
			Detail:    d.Detail,
		})
	}

	return resp
}

func newAllocationResponse(a *planner.Allocation) AllocationResponse {
	out := AllocationResponse{
		CreatorID:           a.Creator.ID,
		Name:                a.Creator.Name,
		AcctID:              a.Creator.AccountID,
		Topic:               a.Creator.Topic,
		Phase:               int(a.Phase),
		PhaseName:           a.Phase.String(),
		Rationale:           string(a.Rationale),
		PlacementCount:      a.PlacementCount(),
		Placements:          make([]PlacementResponse, 0, len(a.Placements)),
		ExpectedCVR:         a.ExpectedCVR,
		ExpectedClicks:      a.ExpectedClicks,
		ExpectedSpend:       a.ExpectedSpend,
		ExpectedConversions: a.ExpectedConversions,
		DemographicScore:    a.DemographicScore,
		TopicScore:          a.TopicScore,
		VectorScore:         a.VectorScore,
		CombinedScore:       a.CombinedScore,
		KeywordScore:        a.KeywordScore,
		AnchorSimilarity:    a.AnchorSimilarity,
	}

	if cpa, ok := a.CPA(); ok {
		out.ExpectedCPA = &cpa
	}

	for _, p := range a.Placements {
		out.Placements = append(out.Placements, PlacementResponse{
			Fraction:    p.Fraction,
			Clicks:      p.Clicks,
			Spend:       p.Spend,
			Conversions: p.Conversions,
			Prorated:    p.Prorated,
			Synthetic:   p.Synthetic,
		})
	}

	return out
}
