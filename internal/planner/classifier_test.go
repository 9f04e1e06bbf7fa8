package planner

import (
	"math"
	"testing"

	"codeberg.org/placewise/server/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Phases(t *testing.T) {
	creators := []Creator{
		{ID: "same"},
		{ID: "cross"},
		{ID: "both"},
		{ID: "none", ClickEstimate: 40},
		{ID: "empty"},
	}

	same := map[string]PerformanceAggregate{
		"same":  {Clicks: 200, Conversions: 10, Placements: 2, MedianClicks: 100},
		"both":  {Clicks: 0, Conversions: 3},
		"empty": {},
	}
	cross := map[string]PerformanceAggregate{
		"cross": {Clicks: 300, Conversions: 3, Placements: 3},
		"both":  {Clicks: 500, Conversions: 50, Placements: 5},
	}

	got := classify(creators, same, cross, classifyParams{CostPerClick: 2, BaselineCVR: 0.025, DefaultClicks: 100})
	require.Len(t, got, 5)

	byID := map[string]*CandidateScore{}
	for _, c := range got {
		byID[c.Creator.ID] = c
	}

	t.Run("same context uses median clicks", func(t *testing.T) {
		c := byID["same"]
		assert.Equal(t, PhaseSameContext, c.Phase())
		assert.InDelta(t, 0.05, c.ExpectedCVR, 1e-12)
		assert.InDelta(t, 100, c.ExpectedClicks, 1e-12)
		assert.InDelta(t, 200, c.ExpectedSpend, 1e-12)
		assert.InDelta(t, 5, c.ExpectedConversions, 1e-12)
		assert.InDelta(t, 40, c.ExpectedCPA, 1e-12)
	})

	t.Run("cross context falls back to mean clicks", func(t *testing.T) {
		c := byID["cross"]
		assert.Equal(t, PhaseCrossContext, c.Phase())
		assert.InDelta(t, 100, c.ExpectedClicks, 1e-12)
		assert.InDelta(t, 0.01, c.ExpectedCVR, 1e-12)
	})

	t.Run("conversions without clicks still count as same context", func(t *testing.T) {
		c := byID["both"]
		assert.Equal(t, PhaseSameContext, c.Phase())
		assert.Zero(t, c.ExpectedCVR)
		assert.True(t, math.IsInf(c.ExpectedCPA, 1))
		assert.InDelta(t, 100, c.ExpectedClicks, 1e-12)

		_, defined := c.CPA()
		assert.False(t, defined)
	})

	t.Run("no history uses baseline and creator estimate", func(t *testing.T) {
		c := byID["none"]
		assert.Equal(t, PhaseNoHistory, c.Phase())
		assert.Equal(t, NoHistoryEvidence{FallbackClicks: 40}, c.Evidence)
		assert.InDelta(t, 0.025, c.ExpectedCVR, 1e-12)
		assert.InDelta(t, 80, c.ExpectedSpend, 1e-12)
		assert.InDelta(t, 80, c.ExpectedCPA, 1e-12)
	})

	t.Run("zero aggregate is no history", func(t *testing.T) {
		c := byID["empty"]
		assert.Equal(t, PhaseNoHistory, c.Phase())
		assert.InDelta(t, 100, c.ExpectedClicks, 1e-12)
	})
}

func TestScore_CombinedAndAnchors(t *testing.T) {
	target := similarity.Demographics{AgeRange: "18-24", Location: "US"}

	best := candidate("best", PhaseSameContext, 100, 10)
	best.Creator.Embedding = []float32{1, 0}
	best.Creator.Demographics = similarity.Demographics{AgeRange: "18-24", Location: "US"}
	best.Creator.Topic = "Gaming"

	fresh := candidate("fresh", PhaseNoHistory, 100, 2.5)
	fresh.Creator.Embedding = []float32{1, 0}
	fresh.Creator.Demographics = similarity.Demographics{Location: "us"}
	fresh.Creator.Topic = "Gaming"

	score([]*CandidateScore{best, fresh}, scoreParams{Target: target, Topics: []string{"Gaming"}, AnchorCount: 3})

	// an anchor is never compared with itself
	assert.Zero(t, best.VectorScore)
	assert.InDelta(t, 1, best.DemographicScore, 1e-9)
	assert.InDelta(t, 0.5+0.2+0.2, best.CombinedScore, 1e-9)

	assert.InDelta(t, 1, fresh.VectorScore, 1e-6)
	assert.InDelta(t, 1, fresh.TopicScore, 1e-9)
	assert.InDelta(t, 0.2+0.2+0.1, fresh.CombinedScore, 1e-6)
}

func TestScore_KeywordOverlap(t *testing.T) {
	fresh := candidate("fresh", PhaseNoHistory, 100, 2.5)
	fresh.Creator.Keywords = []string{"fps,esports", "streaming"}
	bare := candidate("bare", PhaseNoHistory, 100, 2.5)

	score([]*CandidateScore{fresh, bare}, scoreParams{Keywords: []string{"FPS", "speedrun"}})

	assert.InDelta(t, 1.0/4.0, fresh.KeywordScore, 1e-9)
	assert.Zero(t, bare.KeywordScore)

	// keywords stay out of the combined score
	assert.InDelta(t, bare.CombinedScore, fresh.CombinedScore, 1e-9)
}
