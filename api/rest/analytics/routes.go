package analytics

import (
	"codeberg.org/placewise/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, engine Analyzer) {
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/leaderboard", LeaderboardHandler(engine))
		protected.GET("/forecast", ForecastHandler(engine))
	}
}
