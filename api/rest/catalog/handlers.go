package catalog

import (
	"net/http"
	"strings"

	"codeberg.org/placewise/server/api/rest/pagination"
	apierrors "codeberg.org/placewise/server/internal/errors"
	"codeberg.org/placewise/server/internal/similarity"
	"github.com/gin-gonic/gin"
)

const (
	defaultDeclinedLimit = 50
	maxDeclinedLimit     = 200
)

// ListTopicsHandler godoc
// @Summary List topic labels
// @Description Returns the labels understood by the topic similarity table
// @Tags catalog
// @Produce json
// @Success 200 {object} TopicsResponse
// @Router /api/v1/topics [get]
// @Security BearerAuth
func ListTopicsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, TopicsResponse{Topics: similarity.Topics()})
}

// ListDeclinedHandler godoc
// @Summary List declined creators
// @Description Returns creators that declined to work with an advertiser
// @Tags catalog
// @Produce json
// @Param id path string true "Advertiser ID"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} DeclinedResponse
// @Failure 404 {object} apierrors.ErrorResponse
// @Router /api/v1/advertisers/{id}/declined [get]
// @Security BearerAuth
func ListDeclinedHandler(lister DeclinedLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		advertiserID := strings.TrimSpace(c.Param("id"))
		if advertiserID == "" {
			apierrors.BadRequest(c, "advertiser id is required", nil)
			return
		}

		declined, err := lister.ListDeclined(c.Request.Context(), advertiserID)
		if err != nil {
			apierrors.PlanError(c, err)
			return
		}

		params := pagination.FromQuery(c, defaultDeclinedLimit, maxDeclinedLimit)

		c.JSON(http.StatusOK, DeclinedResponse{
			AdvertiserID: advertiserID,
			Creators:     pagination.Slice(declined, params),
			Pagination:   pagination.NewMeta(params, len(declined)),
		})
	}
}
