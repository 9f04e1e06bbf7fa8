package planner

import "math"

// inputs shared by every candidate of one plan
type classifyParams struct {
	CostPerClick  float64
	BaselineCVR   float64
	DefaultClicks float64
}

// assigns each creator a phase from its two aggregates and derives per-placement estimates
func classify(creators []Creator, same, cross map[string]PerformanceAggregate, p classifyParams) []*CandidateScore {
	candidates := make([]*CandidateScore, 0, len(creators))

	for _, c := range creators {
		fallback := c.ClickEstimate
		if fallback <= 0 {
			fallback = p.DefaultClicks
		}

		var (
			evidence Evidence
			cvr      float64
			clicks   float64
		)

		if agg, ok := same[c.ID]; ok && agg.HasHistory() {
			evidence = SameContextEvidence{Aggregate: agg}
			cvr, clicks = agg.CVR(), historicalClicks(agg, fallback)
		} else if agg, ok := cross[c.ID]; ok && agg.HasHistory() {
			evidence = CrossContextEvidence{Aggregate: agg}
			cvr, clicks = agg.CVR(), historicalClicks(agg, fallback)
		} else {
			evidence = NoHistoryEvidence{FallbackClicks: fallback}
			cvr, clicks = p.BaselineCVR, fallback
		}

		candidates = append(candidates, &CandidateScore{
			Creator:             c,
			Evidence:            evidence,
			ExpectedCVR:         cvr,
			ExpectedCPA:         expectedCPA(p.CostPerClick, cvr),
			ExpectedClicks:      clicks,
			ExpectedSpend:       p.CostPerClick * clicks,
			ExpectedConversions: clicks * cvr,
		})
	}

	return candidates
}

func historicalClicks(agg PerformanceAggregate, fallback float64) float64 {
	if clicks := agg.ClicksPerPlacement(); clicks > 0 {
		return clicks
	}

	return fallback
}

// +Inf when cvr is not positive
func expectedCPA(cpc, cvr float64) float64 {
	if cvr <= 0 {
		return math.Inf(1)
	}

	return cpc / cvr
}
