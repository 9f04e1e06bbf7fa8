package planner

// sums allocation metrics into plan totals
func summarize(budget float64, allocations []Allocation) PlanResult {
	result := PlanResult{
		Budget:      budget,
		Allocations: allocations,
	}

	for _, a := range allocations {
		result.TotalClicks += a.ExpectedClicks
		result.TotalSpend += a.ExpectedSpend
		result.TotalConversions += a.ExpectedConversions

		if a.Rationale == RationaleSimilarityMatch {
			result.Phases.Fallback++
		}
	}

	if result.TotalConversions > 0 {
		result.BlendedCPA = result.TotalSpend / result.TotalConversions
	}

	if budget > 0 {
		result.BudgetUtilization = result.TotalSpend / budget
	}

	return result
}

func countPhases(candidates []*CandidateScore) PhaseCounts {
	var counts PhaseCounts

	for _, c := range candidates {
		switch c.Phase() {
		case PhaseSameContext:
			counts.SameContext++
		case PhaseCrossContext:
			counts.CrossContext++
		default:
			counts.NoHistory++
		}
	}

	return counts
}
