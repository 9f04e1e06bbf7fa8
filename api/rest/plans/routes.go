package plans

import (
	"codeberg.org/placewise/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, engine Planner, limiter *Limiter) {
	plans := router.Group("/plans")
	plans.Use(auth.AuthMiddleware())
	plans.Use(limiter.Middleware("plans"))
	{
		plans.POST("", CreatePlanHandler(engine))
		plans.POST("/export", ExportPlanHandler(engine))
	}
}
