package pagination

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) Params {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?"+query, nil)

	return FromQuery(c, 50, 200)
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Limit: 50, Offset: 0}},
		{"limit=10&offset=20", Params{Limit: 10, Offset: 20}},
		{"limit=1000", Params{Limit: 200, Offset: 0}},
		{"limit=-1&offset=-5", Params{Limit: 50, Offset: 0}},
		{"limit=abc", Params{Limit: 50, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, paramsFor(tt.query))
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, Params{Limit: 2}))
	assert.Equal(t, []int{5}, Slice(items, Params{Limit: 2, Offset: 4}))
	assert.Empty(t, Slice(items, Params{Limit: 2, Offset: 9}))
	assert.Empty(t, Slice(items, Params{Limit: 2, Offset: math.MaxInt}))
	assert.Equal(t, []int{4, 5}, Slice(items, Params{Limit: math.MaxInt, Offset: 3}))
}

func TestNewMeta(t *testing.T) {
	assert.True(t, NewMeta(Params{Limit: 2, Offset: 0}, 5).HasMore)
	assert.False(t, NewMeta(Params{Limit: 2, Offset: 4}, 5).HasMore)
	assert.False(t, NewMeta(Params{Limit: 2, Offset: 3}, 5).HasMore)
	assert.True(t, NewMeta(Params{Limit: 2, Offset: 2}, 5).HasMore)
}

func TestNewMeta_HugeOffset(t *testing.T) {
	meta := NewMeta(Params{Limit: 200, Offset: math.MaxInt}, 5)

	assert.False(t, meta.HasMore)
	assert.Equal(t, math.MaxInt, meta.Offset)

	params := paramsFor("limit=200&offset=9223372036854775807")
	assert.False(t, NewMeta(params, 5).HasMore)
}
