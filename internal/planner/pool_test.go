package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimPool_KeepsIncludedCreators(t *testing.T) {
	pool := []Creator{
		{ID: "1", AccountID: "a"},
		{ID: "2", AccountID: "b"},
		{ID: "3", AccountID: "c"},
		{ID: "4", AccountID: "keep"},
	}

	kept, diagnostics := trimPool(pool, toSet([]string{"keep"}), 2)

	assert.Equal(t, []Creator{{ID: "1", AccountID: "a"}, {ID: "4", AccountID: "keep"}}, kept)
	assert.Equal(t, []Diagnostic{
		{CreatorID: "2", Reason: SkipPoolLimit},
		{CreatorID: "3", Reason: SkipPoolLimit},
	}, diagnostics)
}

func TestTrimPool_UnderLimit(t *testing.T) {
	pool := []Creator{{ID: "1"}, {ID: "2"}}

	kept, diagnostics := trimPool(pool, nil, 5)

	assert.Equal(t, pool, kept)
	assert.Nil(t, diagnostics)
}

func TestTrimPool_OnlyIncludedOverLimit(t *testing.T) {
	pool := []Creator{{ID: "1", AccountID: "x"}, {ID: "2", AccountID: "y"}}

	kept, diagnostics := trimPool(pool, toSet([]string{"x", "y"}), 1)

	assert.Len(t, kept, 2)
	assert.Empty(t, diagnostics)
}
