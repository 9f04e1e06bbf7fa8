package planner

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cpc is 1, so clicks equal spend
func candidate(id string, phase Phase, spend, conversions float64) *CandidateScore {
	var evidence Evidence

	switch phase {
	case PhaseSameContext:
		evidence = SameContextEvidence{}
	case PhaseCrossContext:
		evidence = CrossContextEvidence{}
	default:
		evidence = NoHistoryEvidence{FallbackClicks: spend}
	}

	cvr := 0.0
	if spend > 0 {
		cvr = conversions / spend
	}

	return &CandidateScore{
		Creator:             Creator{ID: id, AccountID: "acct-" + id},
		Evidence:            evidence,
		ExpectedCVR:         cvr,
		ExpectedCPA:         expectedCPA(1, cvr),
		ExpectedClicks:      spend,
		ExpectedSpend:       spend,
		ExpectedConversions: conversions,
	}
}

func withEmbedding(c *CandidateScore, v ...float32) *CandidateScore {
	c.Creator.Embedding = v
	return c
}

func TestAllocate_ProratesFinalPlacement(t *testing.T) {
	lists, _ := rank([]*CandidateScore{candidate("a", PhaseSameContext, 100, 5)}, nil)

	out := NewAllocator(DefaultConfig()).Allocate(150, lists)

	require.Len(t, out.Allocations, 1)
	alloc := out.Allocations[0]
	require.Len(t, alloc.Placements, 2)

	assert.False(t, alloc.Placements[0].Prorated)
	assert.True(t, alloc.Placements[1].Prorated)
	assert.InDelta(t, 0.5, alloc.Placements[1].Fraction, 1e-9)
	assert.InDelta(t, 50, alloc.Placements[1].Spend, 1e-9)
	assert.InDelta(t, 150, alloc.ExpectedSpend, 1e-9)
	assert.InDelta(t, 7.5, alloc.ExpectedConversions, 1e-9)

	result := summarize(150, out.Allocations)
	assert.InDelta(t, 1.0, result.BudgetUtilization, 1e-9)
	assert.InDelta(t, 20, result.BlendedCPA, 1e-9)
}

func TestAllocate_SkipsProrateBelowMinimumRatio(t *testing.T) {
	lists, _ := rank([]*CandidateScore{candidate("a", PhaseSameContext, 100, 5)}, nil)

	out := NewAllocator(DefaultConfig()).Allocate(105, lists)

	require.Len(t, out.Allocations, 1)
	assert.Equal(t, 1, out.Allocations[0].PlacementCount())
	assert.InDelta(t, 5, out.Remaining, 1e-9)
}

func TestAllocate_RespectsPlacementCap(t *testing.T) {
	lists, _ := rank([]*CandidateScore{candidate("a", PhaseSameContext, 100, 5)}, nil)

	out := NewAllocator(DefaultConfig()).Allocate(10_000, lists)

	require.Len(t, out.Allocations, 1)
	assert.Equal(t, DefaultPlacementCap, out.Allocations[0].PlacementCount())
	assert.InDelta(t, 300, out.Allocations[0].ExpectedSpend, 1e-9)
	assert.InDelta(t, 9_700, out.Remaining, 1e-9)
}

func TestAllocate_PrimaryBeforeSecondary(t *testing.T) {
	lists, _ := rank([]*CandidateScore{
		candidate("cross", PhaseCrossContext, 100, 50),
		candidate("same", PhaseSameContext, 100, 1),
	}, nil)

	out := NewAllocator(Config{PlacementCap: 1}).Allocate(100, lists)

	require.Len(t, out.Allocations, 1)
	assert.Equal(t, "same", out.Allocations[0].Creator.ID)
	assert.Equal(t, RationaleSameContext, out.Allocations[0].Rationale)
}

func TestAllocate_MaximizationTopsUpFirstEligible(t *testing.T) {
	lists, _ := rank([]*CandidateScore{
		candidate("cheap", PhaseSameContext, 10, 5),
		candidate("dear", PhaseSameContext, 100, 5),
	}, nil)

	out := NewAllocator(DefaultConfig()).Allocate(130, lists)

	require.Len(t, out.Allocations, 2)
	assert.Equal(t, "cheap", out.Allocations[0].Creator.ID)
	assert.Equal(t, 3, out.Allocations[0].PlacementCount())
	assert.Equal(t, "dear", out.Allocations[1].Creator.ID)
	assert.Equal(t, 1, out.Allocations[1].PlacementCount())
	assert.InDelta(t, 0, out.Remaining, 1e-9)
}

func TestAllocate_ZeroSpendCandidateIsDiagnosed(t *testing.T) {
	lists, _ := rank([]*CandidateScore{candidate("free", PhaseSameContext, 0, 0)}, nil)

	out := NewAllocator(DefaultConfig()).Allocate(100, lists)

	assert.Empty(t, out.Allocations)
	assert.Contains(t, out.Diagnostics, Diagnostic{CreatorID: "free", Reason: SkipZeroSpend})
}

func TestAllocate_SimilarityFallback(t *testing.T) {
	lists, _ := rank([]*CandidateScore{
		withEmbedding(candidate("anchor", PhaseSameContext, 100, 10), 1, 0),
		withEmbedding(candidate("near", PhaseNoHistory, 100, 2.5), 0.9, 0.1),
		withEmbedding(candidate("far", PhaseNoHistory, 100, 2.5), 0, 1),
		candidate("blind", PhaseNoHistory, 100, 2.5),
	}, nil)

	out := NewAllocator(Config{PlacementCap: 1}).Allocate(250, lists)

	require.Len(t, out.Allocations, 2)
	assert.Equal(t, "anchor", out.Allocations[0].Creator.ID)

	fallback := out.Allocations[1]
	assert.Equal(t, "near", fallback.Creator.ID)
	assert.Equal(t, RationaleSimilarityMatch, fallback.Rationale)
	assert.Equal(t, PhaseNoHistory, fallback.Phase)
	assert.Greater(t, fallback.AnchorSimilarity, 0.7)
	assert.Zero(t, fallback.ExpectedConversions)
	require.Len(t, fallback.Placements, 1)
	assert.True(t, fallback.Placements[0].Synthetic)

	_, defined := fallback.CPA()
	assert.False(t, defined)

	reasons := map[string]SkipReason{}
	for _, d := range out.Diagnostics {
		reasons[d.CreatorID] = d.Reason
	}

	assert.Equal(t, SkipBelowSimilarity, reasons["far"])
	assert.Equal(t, SkipMissingEmbedding, reasons["blind"])
	assert.InDelta(t, 50, out.Remaining, 1e-9)
}

func TestAllocate_FallbackRejectsNaNEmbedding(t *testing.T) {
	nan := float32(math.NaN())

	lists, _ := rank([]*CandidateScore{
		withEmbedding(candidate("anchor", PhaseSameContext, 100, 10), 1, 0),
		withEmbedding(candidate("corrupt", PhaseNoHistory, 100, 2.5), nan, 1),
	}, nil)

	out := NewAllocator(Config{PlacementCap: 1}).Allocate(250, lists)

	require.Len(t, out.Allocations, 1)
	assert.Equal(t, "anchor", out.Allocations[0].Creator.ID)
	assert.Contains(t, out.Diagnostics, Diagnostic{
		CreatorID: "corrupt",
		Reason:    SkipBelowSimilarity,
		Detail:    "similarity 0.0000 below 0.70",
	})
}

func TestAllocate_FallbackNeedsAnchors(t *testing.T) {
	lists, _ := rank([]*CandidateScore{
		candidate("anchor", PhaseSameContext, 100, 10),
		withEmbedding(candidate("near", PhaseNoHistory, 100, 2.5), 1, 0),
	}, nil)

	out := NewAllocator(Config{PlacementCap: 1}).Allocate(500, lists)

	require.Len(t, out.Allocations, 1)
	assert.Contains(t, out.Diagnostics, Diagnostic{Reason: SkipNoFallbackAnchors, Detail: "no allocated creator has an embedding"})
}

func TestAllocate_FallbackSkipsCPARejected(t *testing.T) {
	target := 20.0
	lists, rejected := rank([]*CandidateScore{
		withEmbedding(candidate("good", PhaseSameContext, 100, 10), 1, 0),
		withEmbedding(candidate("pricey", PhaseSameContext, 100, 1), 1, 0),
	}, &target)

	require.Len(t, rejected, 1)

	out := NewAllocator(Config{PlacementCap: 1}).Allocate(500, lists)

	require.Len(t, out.Allocations, 1)
	assert.Equal(t, "good", out.Allocations[0].Creator.ID)
}

func randomCandidates(seed uint64, n int) []*CandidateScore {
	r := rand.New(rand.NewPCG(seed, seed))
	phases := []Phase{PhaseSameContext, PhaseCrossContext, PhaseNoHistory}

	candidates := make([]*CandidateScore, 0, n)

	for i := range n {
		spend := 10 + r.Float64()*200
		c := candidate(fmt.Sprintf("c%03d", i), phases[r.IntN(len(phases))], spend, r.Float64()*spend*0.1)
		c.CombinedScore = r.Float64()

		if r.IntN(2) == 0 {
			c.Creator.Embedding = []float32{r.Float32(), r.Float32(), r.Float32()}
		}

		candidates = append(candidates, c)
	}

	return candidates
}

func TestAllocate_Invariants(t *testing.T) {
	for seed := range uint64(20) {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			target := 40.0
			budget := 500 + float64(seed)*397

			lists, _ := rank(randomCandidates(seed, 60), &target)
			out := NewAllocator(DefaultConfig()).Allocate(budget, lists)
			result := summarize(budget, out.Allocations)

			assert.LessOrEqual(t, result.TotalSpend, budget+1e-6)
			assert.GreaterOrEqual(t, result.BudgetUtilization, 0.0)
			assert.LessOrEqual(t, result.BudgetUtilization, 1.0+1e-9)

			for _, a := range out.Allocations {
				assert.LessOrEqual(t, a.PlacementCount(), DefaultPlacementCap)

				if a.Rationale == RationaleSimilarityMatch {
					continue
				}

				unitCPA := a.Placements[0].Spend / a.Placements[0].Conversions
				assert.LessOrEqual(t, unitCPA, target+1e-6)
			}
		})
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	budget := 2_500.0

	first, _ := rank(randomCandidates(7, 80), nil)
	second, _ := rank(randomCandidates(7, 80), nil)

	a := NewAllocator(DefaultConfig()).Allocate(budget, first)
	b := NewAllocator(DefaultConfig()).Allocate(budget, second)

	assert.Equal(t, a, b)
	assert.False(t, math.IsNaN(a.Remaining))
}
