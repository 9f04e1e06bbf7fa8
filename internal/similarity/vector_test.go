package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	n := float32(1 / math.Sqrt(2))
	unit := []float32{n, n, 0}

	assert.InDelta(t, 1.0, Cosine(unit, unit), 1e-6)
	assert.Equal(t, 0.0, Cosine(unit, []float32{0, 0, 0}))
	assert.Equal(t, 0.0, Cosine([]float32{0, 0, 0}, []float32{0, 0, 0}))
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{-1, 0}), "negative similarity clamps to zero")
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{1, 0, 0}))
}

func TestVector_TakesBestAnchor(t *testing.T) {
	v := []float32{1, 0}
	anchors := [][]float32{{0, 1}, {1, 1}, {1, 0}}

	assert.InDelta(t, 1.0, Vector(v, anchors), 1e-9)
	assert.Equal(t, 0.0, Vector(v, nil))
}

func TestCosine_NonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	assert.Equal(t, 0.0, Cosine([]float32{nan, 1}, []float32{1, 0}))
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{nan, nan}))
	assert.Equal(t, 0.0, Cosine([]float32{inf, 0}, []float32{1, 0}))
	assert.Equal(t, 0.0, Vector([]float32{nan, 1}, [][]float32{{1, 0}}))
	assert.InDelta(t, 1.0, Vector([]float32{1, 0}, [][]float32{{nan, 1}, {1, 0}}), 1e-9)
}

func TestCombined(t *testing.T) {
	assert.InDelta(t, 0.5, Combined(true, 0, 0, 0), 1e-9)
	assert.InDelta(t, 1.0, Combined(true, 1, 1, 1), 1e-9)
	assert.InDelta(t, 0.2*0.5+0.2*0.8+0.1*0.9, Combined(false, 0.5, 0.8, 0.9), 1e-9)
}
