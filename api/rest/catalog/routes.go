package catalog

import (
	"codeberg.org/placewise/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, lister DeclinedLister) {
	protected := router.Group("")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/topics", ListTopicsHandler)
		protected.GET("/advertisers/:id/declined", ListDeclinedHandler(lister))
	}
}
