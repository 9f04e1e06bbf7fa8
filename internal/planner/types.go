package planner

import (
	"math"

	"codeberg.org/placewise/server/internal/similarity"
)

// selects the historical context a plan is built for: exactly one field is set
type ContextFilter struct {
	Category     string
	AdvertiserID string
}

// Scope picks which side of the context a performance aggregate covers
type Scope int

const (
	ScopeSameContext Scope = iota
	ScopeCrossContext
)

func (s Scope) String() string {
	if s == ScopeCrossContext {
		return "cross_context"
	}

	return "same_context"
}

// a content creator that can receive placements
type Creator struct {
	ID            string
	Name          string
	AccountID     string
	Demographics  similarity.Demographics
	Topic         string
	Keywords      []string
	Embedding     []float32
	ClickEstimate float64 // conservative clicks per placement when no history exists
}

// clicks and conversions summed over a creator's history in one scope
type PerformanceAggregate struct {
	Clicks       int64
	Conversions  int64
	Placements   int
	MedianClicks float64
}

func (a PerformanceAggregate) HasHistory() bool {
	return a.Clicks > 0 || a.Conversions > 0
}

// conversion rate, 0 when there are no clicks
func (a PerformanceAggregate) CVR() float64 {
	if a.Clicks <= 0 {
		return 0
	}

	return float64(a.Conversions) / float64(a.Clicks)
}

// representative click volume of one historical placement, 0 if unknown
func (a PerformanceAggregate) ClicksPerPlacement() float64 {
	if a.MedianClicks > 0 {
		return a.MedianClicks
	}

	if a.Placements > 0 && a.Clicks > 0 {
		return float64(a.Clicks) / float64(a.Placements)
	}

	return 0
}

// stored advertiser defaults used when a request leaves them out
type Advertiser struct {
	ID         string
	Name       string
	Category   string
	Target     similarity.Demographics
	AverageCVR float64
}

// Phase classifies a candidate by the kind of performance evidence available
type Phase int

const (
	PhaseSameContext  Phase = 1
	PhaseCrossContext Phase = 2
	PhaseNoHistory    Phase = 3
)

func (p Phase) String() string {
	switch p {
	case PhaseSameContext:
		return "same_context"
	case PhaseCrossContext:
		return "cross_context"
	default:
		return "no_history"
	}
}

// Evidence is the performance signal behind a candidate's estimates.
// The variants are closed: SameContextEvidence, CrossContextEvidence, NoHistoryEvidence.
type Evidence interface {
	Phase() Phase
	evidence()
}

// history with the requested category or advertiser
type SameContextEvidence struct {
	Aggregate PerformanceAggregate
}

func (SameContextEvidence) Phase() Phase { return PhaseSameContext }
func (SameContextEvidence) evidence()    {}

// history only with other categories or advertisers
type CrossContextEvidence struct {
	Aggregate PerformanceAggregate
}

func (CrossContextEvidence) Phase() Phase { return PhaseCrossContext }
func (CrossContextEvidence) evidence()    {}

// no history anywhere; estimates come from the creator's fallback click estimate
type NoHistoryEvidence struct {
	FallbackClicks float64
}

func (NoHistoryEvidence) Phase() Phase { return PhaseNoHistory }
func (NoHistoryEvidence) evidence()    {}

// CandidateScore holds the per-placement estimates and similarity signals of one creator
type CandidateScore struct {
	Creator  Creator
	Evidence Evidence

	ExpectedCVR         float64
	ExpectedCPA         float64 // +Inf when ExpectedCVR is 0
	ExpectedClicks      float64
	ExpectedSpend       float64
	ExpectedConversions float64

	DemographicScore float64
	TopicScore       float64
	VectorScore      float64
	CombinedScore    float64

	// keyword overlap with the request; breaks ties between equal combined scores
	KeywordScore float64

	// similarity to the fallback anchors, set only for fallback candidates
	AnchorSimilarity float64
}

func (c *CandidateScore) Phase() Phase {
	return c.Evidence.Phase()
}

// returns the expected CPA and whether it is defined
func (c *CandidateScore) CPA() (float64, bool) {
	if math.IsInf(c.ExpectedCPA, 1) {
		return 0, false
	}

	return c.ExpectedCPA, true
}

// Rationale tags why a creator received budget
type Rationale string

const (
	RationaleSameContext     Rationale = "same_context_history"
	RationaleCrossContext    Rationale = "cross_context_history"
	RationaleSimilarityMatch Rationale = "similarity_match_no_history"
)

func rationaleFor(p Phase) Rationale {
	if p == PhaseSameContext {
		return RationaleSameContext
	}

	return RationaleCrossContext
}

// one discrete budget slot; Fraction is below 1 only for a pro-rated placement
type Placement struct {
	Fraction    float64
	Clicks      float64
	Spend       float64
	Conversions float64
	Prorated    bool
	Synthetic   bool // produced by similarity fallback, no historical signal
}

// Allocation is the budget assigned to one creator within a plan
type Allocation struct {
	Creator             Creator
	Phase               Phase
	Rationale           Rationale
	Placements          []Placement
	ExpectedCVR         float64
	ExpectedClicks      float64
	ExpectedSpend       float64
	ExpectedConversions float64
	DemographicScore    float64
	TopicScore          float64
	VectorScore         float64
	CombinedScore       float64
	KeywordScore        float64
	AnchorSimilarity    float64
}

func (a *Allocation) PlacementCount() int {
	return len(a.Placements)
}

// returns spend per conversion; undefined for fallback allocations and zero conversions
func (a *Allocation) CPA() (float64, bool) {
	if a.Rationale == RationaleSimilarityMatch || a.ExpectedConversions <= 0 {
		return 0, false
	}

	return a.ExpectedSpend / a.ExpectedConversions, true
}

// SkipReason explains why a creator did not make it into the plan
type SkipReason string

const (
	SkipExcluded          SkipReason = "excluded"
	SkipDeclined          SkipReason = "declined"
	SkipIncludeNotFound   SkipReason = "include_not_found"
	SkipPoolLimit         SkipReason = "pool_limit"
	SkipCPAAboveTarget    SkipReason = "cpa_above_target"
	SkipZeroSpend         SkipReason = "zero_expected_spend"
	SkipNotFunded         SkipReason = "not_funded"
	SkipMissingEmbedding  SkipReason = "missing_embedding"
	SkipBelowSimilarity   SkipReason = "below_similarity_threshold"
	SkipNoFallbackAnchors SkipReason = "no_fallback_anchors"
)

// one skipped candidate; CreatorID is empty for plan-wide notes
type Diagnostic struct {
	CreatorID string
	Reason    SkipReason
	Detail    string
}

// candidate counts per classification phase plus fallback allocations
type PhaseCounts struct {
	SameContext  int
	CrossContext int
	NoHistory    int
	Fallback     int
}

// PlanResult is the outcome of one planning call
type PlanResult struct {
	ID                string
	Budget            float64
	CostPerClick      float64
	Allocations       []Allocation
	TotalClicks       float64
	TotalSpend        float64
	TotalConversions  float64
	BlendedCPA        float64
	BudgetUtilization float64
	PoolSize          int
	Phases            PhaseCounts
	Diagnostics       []Diagnostic
}
