package planner

import (
	"cmp"
	"fmt"
	"slices"

	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/similarity"
)

// Allocator turns ranked candidate lists into budget-bounded allocations.
// It is pure: identical inputs yield identical allocations and diagnostics.
type Allocator struct {
	cfg Config
}

func NewAllocator(cfg Config) *Allocator {
	return &Allocator{cfg: cfg.withDefaults()}
}

// result of one allocator run
type allocation struct {
	Allocations []Allocation
	Remaining   float64
	Diagnostics []Diagnostic
}

// tracks spend and placements while passes run
type ledger struct {
	remaining   float64
	cap         int
	counts      map[string]int
	allocations []*Allocation
	byCreator   map[string]*Allocation
}

func newLedger(budget float64, placementCap int) *ledger {
	return &ledger{
		remaining: budget,
		cap:       placementCap,
		counts:    make(map[string]int),
		byCreator: make(map[string]*Allocation),
	}
}

func (l *ledger) exhausted() bool {
	return l.remaining <= epsilon
}

func (l *ledger) underCap(c *CandidateScore) bool {
	return l.counts[c.Creator.ID] < l.cap
}

func (l *ledger) fits(c *CandidateScore) bool {
	return c.ExpectedSpend <= l.remaining+epsilon
}

func (l *ledger) allocated(id string) bool {
	_, ok := l.byCreator[id]
	return ok
}

// a single candidate list run through the fill routine
type pass struct {
	name       string
	candidates []*CandidateScore
	eligible   func(*CandidateScore) bool
	synthetic  bool
}

// records one placement of fraction for c; a pro-rated placement consumes exactly the remaining budget
func (l *ledger) place(c *CandidateScore, fraction float64, synthetic bool) {
	spend := c.ExpectedSpend * fraction
	prorated := fraction < 1

	if prorated {
		spend = l.remaining
		fraction = spend / c.ExpectedSpend
	}

	p := Placement{
		Fraction:    fraction,
		Clicks:      c.ExpectedClicks * fraction,
		Spend:       spend,
		Conversions: c.ExpectedConversions * fraction,
		Prorated:    prorated,
		Synthetic:   synthetic,
	}

	if synthetic {
		p.Conversions = 0
	}

	a, ok := l.byCreator[c.Creator.ID]
	if !ok {
		a = &Allocation{
			Creator:          c.Creator,
			Phase:            c.Phase(),
			Rationale:        rationaleFor(c.Phase()),
			ExpectedCVR:      c.ExpectedCVR,
			DemographicScore: c.DemographicScore,
			TopicScore:       c.TopicScore,
			VectorScore:      c.VectorScore,
			CombinedScore:    c.CombinedScore,
			KeywordScore:     c.KeywordScore,
			AnchorSimilarity: c.AnchorSimilarity,
		}

		if synthetic {
			a.Rationale = RationaleSimilarityMatch
			a.ExpectedCVR = 0
		}

		l.byCreator[c.Creator.ID] = a
		l.allocations = append(l.allocations, a)
	}

	a.Placements = append(a.Placements, p)
	a.ExpectedClicks += p.Clicks
	a.ExpectedSpend += p.Spend
	a.ExpectedConversions += p.Conversions

	l.counts[c.Creator.ID]++
	l.remaining -= spend

	if l.remaining < 0 {
		l.remaining = 0
	}
}

// sweep places at most one full placement per candidate, in list order
func (l *ledger) sweep(p pass) int {
	added := 0

	for _, c := range p.candidates {
		if l.exhausted() {
			break
		}

		if p.eligible(c) && l.underCap(c) && l.fits(c) {
			l.place(c, 1, p.synthetic)
			added++
		}
	}

	return added
}

// maximize keeps adding full placements to the first candidate that still fits,
// bounded by len(candidates) × cap iterations
func (l *ledger) maximize(p pass) int {
	added := 0
	bound := len(p.candidates) * l.cap

	for range bound {
		if l.exhausted() {
			break
		}

		next := -1

		for i, c := range p.candidates {
			if p.eligible(c) && l.underCap(c) && l.fits(c) {
				next = i
				break
			}
		}

		if next < 0 {
			break
		}

		l.place(p.candidates[next], 1, p.synthetic)
		added++
	}

	return added
}

// prorate funds one fractional placement with whatever budget is left
func (l *ledger) prorate(p pass, minRatio float64) bool {
	if l.exhausted() {
		return false
	}

	for _, c := range p.candidates {
		if !p.eligible(c) || !l.underCap(c) {
			continue
		}

		ratio := l.remaining / c.ExpectedSpend
		if ratio < minRatio {
			continue
		}

		l.place(c, min(ratio, 1), p.synthetic)

		return true
	}

	return false
}

// fill runs the ordered single passes, then maximization and pro-rating over their union
func (a *Allocator) fill(l *ledger, passes ...pass) {
	union := pass{name: "union", synthetic: passes[0].synthetic}
	eligible := make(map[*CandidateScore]bool)

	for _, p := range passes {
		for _, c := range p.candidates {
			eligible[c] = p.eligible(c)
		}

		added := l.sweep(p)
		logger.Debug("allocation pass", "pass", p.name, "candidates", len(p.candidates), "placements", added, "remaining", l.remaining)

		union.candidates = append(union.candidates, p.candidates...)
	}

	union.eligible = func(c *CandidateScore) bool {
		return eligible[c]
	}

	added := l.maximize(union)
	prorated := l.prorate(union, a.cfg.ProrateMinRatio)

	logger.Debug("allocation fill", "maximized", added, "prorated", prorated, "remaining", l.remaining)
}

// Allocate distributes budget over the ranked lists: phase 1 and 2 through the
// primary fill, then similarity fallback for whatever budget is left.
func (a *Allocator) Allocate(budget float64, lists rankedLists) allocation {
	l := newLedger(budget, a.cfg.PlacementCap)

	var diagnostics []Diagnostic

	funded := func(c *CandidateScore) bool {
		return c.ExpectedSpend > 0
	}

	for _, c := range lists.fallbackOrder() {
		if c.ExpectedSpend <= 0 {
			diagnostics = append(diagnostics, Diagnostic{CreatorID: c.Creator.ID, Reason: SkipZeroSpend})
		}
	}

	a.fill(l,
		pass{name: "same_context", candidates: lists.SameContext, eligible: funded},
		pass{name: "cross_context", candidates: lists.CrossContext, eligible: funded},
	)

	if !l.exhausted() {
		diagnostics = append(diagnostics, a.fallback(l, lists)...)
	}

	for _, c := range lists.fallbackOrder() {
		if l.allocated(c.Creator.ID) || c.ExpectedSpend <= 0 {
			continue
		}

		if slices.ContainsFunc(diagnostics, func(d Diagnostic) bool { return d.CreatorID == c.Creator.ID }) {
			continue
		}

		diagnostics = append(diagnostics, Diagnostic{
			CreatorID: c.Creator.ID,
			Reason:    SkipNotFunded,
			Detail:    fmt.Sprintf("%s spend %.2f, remaining %.2f", c.Phase(), c.ExpectedSpend, l.remaining),
		})
	}

	allocations := make([]Allocation, 0, len(l.allocations))
	for _, alloc := range l.allocations {
		allocations = append(allocations, *alloc)
	}

	return allocation{Allocations: allocations, Remaining: l.remaining, Diagnostics: diagnostics}
}

// fallback funds un-allocated creators whose embeddings resemble the best allocated ones
func (a *Allocator) fallback(l *ledger, lists rankedLists) []Diagnostic {
	anchors := a.fallbackAnchors(l)
	if len(anchors) == 0 {
		return []Diagnostic{{Reason: SkipNoFallbackAnchors, Detail: "no allocated creator has an embedding"}}
	}

	var (
		candidates  []*CandidateScore
		diagnostics []Diagnostic
	)

	for _, c := range lists.fallbackOrder() {
		if l.allocated(c.Creator.ID) || c.ExpectedSpend <= 0 {
			continue
		}

		if len(c.Creator.Embedding) == 0 {
			diagnostics = append(diagnostics, Diagnostic{CreatorID: c.Creator.ID, Reason: SkipMissingEmbedding})
			continue
		}

		sim := similarity.Vector(c.Creator.Embedding, anchors)
		if sim < a.cfg.FallbackMinSimilarity {
			diagnostics = append(diagnostics, Diagnostic{
				CreatorID: c.Creator.ID,
				Reason:    SkipBelowSimilarity,
				Detail:    fmt.Sprintf("similarity %.4f below %.2f", sim, a.cfg.FallbackMinSimilarity),
			})

			continue
		}

		match := *c
		match.AnchorSimilarity = sim
		candidates = append(candidates, &match)
	}

	slices.SortStableFunc(candidates, func(x, y *CandidateScore) int {
		return cmp.Compare(y.AnchorSimilarity, x.AnchorSimilarity)
	})

	if len(candidates) == 0 {
		return diagnostics
	}

	a.fill(l, pass{
		name:       "similarity_fallback",
		candidates: candidates,
		eligible:   func(*CandidateScore) bool { return true },
		synthetic:  true,
	})

	return diagnostics
}

// embeddings of the top allocated creators by combined score
func (a *Allocator) fallbackAnchors(l *ledger) [][]float32 {
	ranked := slices.Clone(l.allocations)
	slices.SortStableFunc(ranked, func(x, y *Allocation) int {
		return cmp.Compare(y.CombinedScore, x.CombinedScore)
	})

	var anchors [][]float32

	for _, alloc := range ranked {
		if len(anchors) == a.cfg.FallbackAnchors {
			break
		}

		if len(alloc.Creator.Embedding) > 0 {
			anchors = append(anchors, alloc.Creator.Embedding)
		}
	}

	return anchors
}
