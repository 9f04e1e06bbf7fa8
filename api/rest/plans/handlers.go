package plans

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apierrors "codeberg.org/placewise/server/internal/errors"
	"codeberg.org/placewise/server/internal/export"
	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/metrics"
	"codeberg.org/placewise/server/internal/planner"
	"github.com/gin-gonic/gin"
)

// builds plans; satisfied by *planner.Engine
type Planner interface {
	Plan(ctx context.Context, req planner.PlanRequest) (*planner.PlanResult, error)
}

// CreatePlanHandler godoc
// @Summary Build a placement plan
// @Description Ranks the creator pool and allocates the budget across it
// @Tags plans
// @Accept json
// @Produce json
// @Param request body CreatePlanRequest true "Plan parameters"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} apierrors.ErrorResponse
// @Failure 404 {object} apierrors.ErrorResponse
// @Failure 429 {object} apierrors.ErrorResponse
// @Failure 503 {object} apierrors.ErrorResponse
// @Router /api/v1/plans [post]
// @Security BearerAuth
func CreatePlanHandler(engine Planner) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := buildPlan(c, engine)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, NewPlanResponse(result))
	}
}

// ExportPlanHandler godoc
// @Summary Export a placement plan as CSV
// @Tags plans
// @Accept json
// @Produce text/csv
// @Param request body CreatePlanRequest true "Plan parameters"
// @Success 200 {file} file
// @Failure 400 {object} apierrors.ErrorResponse
// @Router /api/v1/plans/export [post]
// @Security BearerAuth
func ExportPlanHandler(engine Planner) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := buildPlan(c, engine)
		if !ok {
			return
		}

		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="plan-%s.csv"`, result.ID))
		c.Status(http.StatusOK)

		if err := export.WriteCSV(c.Writer, result); err != nil {
			// headers are already sent
			logger.FromContext(c.Request.Context()).Error("failed to write plan csv",
				"plan_id", result.ID,
				"error", err,
			)
		}
	}
}

// binds the request, runs the engine and records metrics; writes the error response on failure
func buildPlan(c *gin.Context, engine Planner) (*planner.PlanResult, bool) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid request body", err)
		return nil, false
	}

	start := time.Now()
	result, err := engine.Plan(c.Request.Context(), req.toPlanner())
	if err != nil {
		metrics.ObservePlan(outcome(err), time.Since(start), 0, 0)
		apierrors.PlanError(c, err)
		return nil, false
	}

	metrics.ObservePlan("ok", time.Since(start), result.BudgetUtilization, len(result.Allocations))

	return result, true
}

func outcome(err error) string {
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, planner.ErrInsertionNotFound), errors.Is(err, planner.ErrAdvertiserNotFound):
		return "not_found"
	case errors.Is(err, planner.ErrCatalog):
		return "catalog_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
