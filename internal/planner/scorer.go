package planner

import (
	"cmp"
	"slices"

	"codeberg.org/placewise/server/internal/similarity"
)

type scoreParams struct {
	Target      similarity.Demographics
	Topics      []string
	Keywords    []string
	AnchorCount int
}

// fills the similarity signals and combined score of every candidate. Vector
// similarity is measured against the best-converting same-context creators.
func score(candidates []*CandidateScore, p scoreParams) {
	anchors := performanceAnchors(candidates, p.AnchorCount)

	for _, c := range candidates {
		c.DemographicScore = similarity.Demographic(c.Creator.Demographics, p.Target)
		c.TopicScore = similarity.Topic(c.Creator.Topic, p.Topics)
		c.VectorScore = similarity.Vector(c.Creator.Embedding, anchorsExcept(anchors, c.Creator.ID))
		c.CombinedScore = similarity.Combined(c.Phase() != PhaseNoHistory, c.DemographicScore, c.TopicScore, c.VectorScore)
		c.KeywordScore = similarity.Keywords(c.Creator.Keywords, p.Keywords)
	}
}

type anchor struct {
	creatorID string
	embedding []float32
}

// phase 1 candidates with embeddings, highest expected CVR first
func performanceAnchors(candidates []*CandidateScore, n int) []anchor {
	var pool []*CandidateScore

	for _, c := range candidates {
		if c.Phase() == PhaseSameContext && len(c.Creator.Embedding) > 0 {
			pool = append(pool, c)
		}
	}

	slices.SortStableFunc(pool, func(a, b *CandidateScore) int {
		return cmp.Compare(b.ExpectedCVR, a.ExpectedCVR)
	})

	anchors := make([]anchor, 0, min(n, len(pool)))
	for _, c := range pool[:min(n, len(pool))] {
		anchors = append(anchors, anchor{creatorID: c.Creator.ID, embedding: c.Creator.Embedding})
	}

	return anchors
}

func anchorsExcept(anchors []anchor, creatorID string) [][]float32 {
	vectors := make([][]float32, 0, len(anchors))
	for _, a := range anchors {
		if a.creatorID != creatorID {
			vectors = append(vectors, a.embedding)
		}
	}

	return vectors
}
