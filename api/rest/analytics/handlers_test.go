package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/placewise/server/internal/auth"
	"codeberg.org/placewise/server/internal/catalog"
	apierrors "codeberg.org/placewise/server/internal/errors"
	"codeberg.org/placewise/server/internal/planner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// three Gaming creators ranked c (12), a (10), b (2); n has no history
func testEngine() *planner.Engine {
	store := catalog.NewMemoryStore()
	store.SetAdvertiser(planner.Advertiser{ID: "adv-game", Category: "Gaming"})
	store.SetInsertion("ins-1", 2)

	store.AddCreators(
		planner.Creator{ID: "a", Name: "Alpha", AccountID: "acct-a", Topic: "Gaming"},
		planner.Creator{ID: "b", Name: "Bravo", AccountID: "acct-b"},
		planner.Creator{ID: "c", Name: "Charlie", AccountID: "acct-c"},
		planner.Creator{ID: "n", Name: "November", AccountID: "acct-n"},
	)

	store.AddPlacements(
		catalog.PlacementRecord{CreatorID: "a", AdvertiserID: "adv-game", Clicks: 100, Conversions: 10},
		catalog.PlacementRecord{CreatorID: "b", AdvertiserID: "adv-game", Clicks: 100, Conversions: 2},
		catalog.PlacementRecord{CreatorID: "c", AdvertiserID: "adv-game", Clicks: 200, Conversions: 12},
	)

	return planner.NewEngine(store, planner.DefaultConfig())
}

func setup(t *testing.T, engine Analyzer) (*gin.Engine, string) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), engine)

	token, err := auth.GenerateJWT("user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	return router, token
}

func get(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))

	return v
}

func TestLeaderboardHandler(t *testing.T) {
	router, token := setup(t, testEngine())

	w := get(router, "/api/v1/leaderboard?category=Gaming&cost_per_click=2", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[LeaderboardResponse](t, w)
	assert.Equal(t, "Gaming", resp.Category)
	require.Len(t, resp.Entries, 4)

	first := resp.Entries[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "c", first.CreatorID)
	assert.Equal(t, int64(12), first.Conversions)
	assert.InDelta(t, 0.06, first.CVR, 1e-9)
	require.NotNil(t, first.CPA)
	assert.InDelta(t, 2.0*200/12, *first.CPA, 1e-9)

	assert.Equal(t, "a", resp.Entries[1].CreatorID)
	assert.Equal(t, "Gaming", resp.Entries[1].Topic)

	last := resp.Entries[3]
	assert.Equal(t, "n", last.CreatorID)
	assert.Nil(t, last.CPA)

	assert.Equal(t, 4, resp.Pagination.Total)
	assert.False(t, resp.Pagination.HasMore)
}

func TestLeaderboardHandler_Paginates(t *testing.T) {
	router, token := setup(t, testEngine())

	w := get(router, "/api/v1/leaderboard?advertiser_id=adv-game&limit=2&offset=1", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[LeaderboardResponse](t, w)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "a", resp.Entries[0].CreatorID)
	assert.Equal(t, 2, resp.Entries[0].Rank)
	assert.Equal(t, "b", resp.Entries[1].CreatorID)
	assert.Nil(t, resp.Entries[0].CPA)
	assert.True(t, resp.Pagination.HasMore)

	w = get(router, "/api/v1/leaderboard?advertiser_id=adv-game&offset=9223372036854775807", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp = decode[LeaderboardResponse](t, w)
	assert.Empty(t, resp.Entries)
	assert.False(t, resp.Pagination.HasMore)
}

func TestLeaderboardHandler_Errors(t *testing.T) {
	router, token := setup(t, testEngine())

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"missing context", "", "category"},
		{"both contexts", "category=Gaming&advertiser_id=adv-game", "category"},
		{"non-positive cpc", "category=Gaming&cost_per_click=0", "cost_per_click"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/api/v1/leaderboard?"+tt.query, token)
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[apierrors.ErrorResponse](t, w)
			assert.Equal(t, tt.field, resp.Field)
		})
	}

	w := get(router, "/api/v1/leaderboard?category=Gaming&cost_per_click=abc", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForecastHandler(t *testing.T) {
	router, token := setup(t, testEngine())

	w := get(router, "/api/v1/forecast?budget=1000&cost_per_click=1&category=Gaming", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 24 conversions over 400 clicks
	resp := decode[ForecastResponse](t, w)
	assert.Equal(t, cvrSourceHistory, resp.CVRSource)
	assert.Equal(t, 4, resp.PoolSize)
	assert.Equal(t, int64(400), resp.HistoricalClicks)
	assert.InDelta(t, 0.06, resp.CVR, 1e-9)
	assert.InDelta(t, 1000, resp.ForecastClicks, 1e-9)
	assert.InDelta(t, 60, resp.ForecastConversions, 1e-9)
	require.NotNil(t, resp.ForecastCPA)
	assert.InDelta(t, 1000.0/60, *resp.ForecastCPA, 1e-9)
}

func TestForecastHandler_BaselineWithInsertion(t *testing.T) {
	router, token := setup(t, testEngine())

	w := get(router, "/api/v1/forecast?budget=1000&insertion_id=ins-1&category=Finance", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ForecastResponse](t, w)
	assert.Equal(t, cvrSourceBaseline, resp.CVRSource)
	assert.InDelta(t, 2, resp.CostPerClick, 1e-9)
	assert.InDelta(t, planner.DefaultBaselineCVR, resp.CVR, 1e-9)
	assert.InDelta(t, 12.5, resp.ForecastConversions, 1e-9)
}

func TestForecastHandler_Errors(t *testing.T) {
	router, token := setup(t, testEngine())

	w := get(router, "/api/v1/forecast?cost_per_click=1&category=Gaming", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "budget", decode[apierrors.ErrorResponse](t, w).Field)

	w = get(router, "/api/v1/forecast?budget=100&insertion_id=ins-missing&category=Gaming", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(router, "/api/v1/forecast?budget=100&cost_per_click=1&category=Gaming", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type failingAnalyzer struct{}

func (failingAnalyzer) Leaderboard(context.Context, planner.LeaderboardRequest) ([]planner.LeaderboardEntry, error) {
	return nil, &planner.CatalogError{Op: "fetch candidates", Err: errors.New("connection refused")}
}

func (failingAnalyzer) Forecast(context.Context, planner.ForecastRequest) (*planner.Forecast, error) {
	return nil, &planner.CatalogError{Op: "fetch candidates", Err: errors.New("connection refused")}
}

func TestAnalytics_CatalogUnavailable(t *testing.T) {
	router, token := setup(t, failingAnalyzer{})

	w := get(router, "/api/v1/leaderboard?category=Gaming", token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(router, "/api/v1/forecast?budget=100&cost_per_click=1&category=Gaming", token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
