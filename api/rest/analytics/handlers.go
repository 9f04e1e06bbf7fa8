package analytics

import (
	"net/http"
	"strings"

	"codeberg.org/placewise/server/api/rest/pagination"
	apierrors "codeberg.org/placewise/server/internal/errors"
	"github.com/gin-gonic/gin"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 200
)

// LeaderboardHandler godoc
// @Summary Creator leaderboard
// @Description Ranks the creators of a category or advertiser by conversions in that context
// @Tags analytics
// @Produce json
// @Param category query string false "Category (exclusive with advertiser_id)"
// @Param advertiser_id query string false "Advertiser ID (exclusive with category)"
// @Param cost_per_click query number false "Cost per click used for CPA"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} apierrors.ErrorResponse
// @Failure 503 {object} apierrors.ErrorResponse
// @Router /api/v1/leaderboard [get]
// @Security BearerAuth
func LeaderboardHandler(engine Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query LeaderboardQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			apierrors.BadRequest(c, "invalid query parameters", err)
			return
		}

		entries, err := engine.Leaderboard(c.Request.Context(), query.toPlanner())
		if err != nil {
			apierrors.PlanError(c, err)
			return
		}

		params := pagination.FromQuery(c, defaultLeaderboardLimit, maxLeaderboardLimit)
		page := pagination.Slice(entries, params)

		resp := LeaderboardResponse{
			Category:     strings.TrimSpace(query.Category),
			AdvertiserID: strings.TrimSpace(query.AdvertiserID),
			Entries:      make([]LeaderboardEntry, 0, len(page)),
			Pagination:   pagination.NewMeta(params, len(entries)),
		}

		for i, e := range page {
			resp.Entries = append(resp.Entries, newLeaderboardEntry(params.Offset+i+1, e))
		}

		c.JSON(http.StatusOK, resp)
	}
}

// ForecastHandler godoc
// @Summary Campaign forecast
// @Description Projects a budget onto the historical conversion rate of a category or advertiser
// @Tags analytics
// @Produce json
// @Param budget query number true "Budget"
// @Param cost_per_click query number false "Cost per click (exclusive with insertion_id)"
// @Param insertion_id query string false "Insertion order (exclusive with cost_per_click)"
// @Param category query string false "Category (exclusive with advertiser_id)"
// @Param advertiser_id query string false "Advertiser ID (exclusive with category)"
// @Param baseline_cvr query number false "CVR used when the context has no history"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} apierrors.ErrorResponse
// @Failure 404 {object} apierrors.ErrorResponse
// @Failure 503 {object} apierrors.ErrorResponse
// @Router /api/v1/forecast [get]
// @Security BearerAuth
func ForecastHandler(engine Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query ForecastQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			apierrors.BadRequest(c, "invalid query parameters", err)
			return
		}

		forecast, err := engine.Forecast(c.Request.Context(), query.toPlanner())
		if err != nil {
			apierrors.PlanError(c, err)
			return
		}

		c.JSON(http.StatusOK, NewForecastResponse(forecast))
	}
}
