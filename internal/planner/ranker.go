package planner

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// per-phase candidate lists in allocation order
type rankedLists struct {
	SameContext  []*CandidateScore
	CrossContext []*CandidateScore
	NoHistory    []*CandidateScore

	// candidates dropped by the CPA filter, never eligible for fallback
	rejected map[string]struct{}
}

// applies the target CPA filter to phases 1 and 2 and orders every phase
func rank(candidates []*CandidateScore, targetCPA *float64) (rankedLists, []Diagnostic) {
	lists := rankedLists{rejected: make(map[string]struct{})}

	var diagnostics []Diagnostic

	admit := func(c *CandidateScore) bool {
		if _, failed := lists.rejected[c.Creator.ID]; failed {
			return false
		}

		if targetCPA != nil && c.ExpectedCPA > *targetCPA {
			lists.rejected[c.Creator.ID] = struct{}{}
			diagnostics = append(diagnostics, Diagnostic{
				CreatorID: c.Creator.ID,
				Reason:    SkipCPAAboveTarget,
				Detail:    fmt.Sprintf("%s cpa %s exceeds target %.4f", c.Phase(), formatCPA(c.ExpectedCPA), *targetCPA),
			})

			return false
		}

		return true
	}

	for _, c := range candidates {
		if c.Phase() == PhaseSameContext && admit(c) {
			lists.SameContext = append(lists.SameContext, c)
		}
	}

	for _, c := range candidates {
		if c.Phase() == PhaseCrossContext && admit(c) {
			lists.CrossContext = append(lists.CrossContext, c)
		}
	}

	for _, c := range candidates {
		if c.Phase() == PhaseNoHistory {
			lists.NoHistory = append(lists.NoHistory, c)
		}
	}

	byCPA := func(a, b *CandidateScore) int {
		return cmp.Compare(a.ExpectedCPA, b.ExpectedCPA)
	}

	slices.SortStableFunc(lists.SameContext, byCPA)
	slices.SortStableFunc(lists.CrossContext, byCPA)
	slices.SortStableFunc(lists.NoHistory, func(a, b *CandidateScore) int {
		return cmp.Or(
			cmp.Compare(b.CombinedScore, a.CombinedScore),
			cmp.Compare(b.KeywordScore, a.KeywordScore),
		)
	})

	return lists, diagnostics
}

// every ranked candidate in allocation order: phase 3 first, then phases 1 and 2
func (l rankedLists) fallbackOrder() []*CandidateScore {
	return slices.Concat(l.NoHistory, l.SameContext, l.CrossContext)
}

func formatCPA(cpa float64) string {
	if math.IsInf(cpa, 1) {
		return "undefined"
	}

	return fmt.Sprintf("%.4f", cpa)
}
