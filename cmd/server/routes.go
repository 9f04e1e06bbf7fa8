package main

import (
	"codeberg.org/placewise/server/api/rest/analytics"
	"codeberg.org/placewise/server/api/rest/catalog"
	"codeberg.org/placewise/server/api/rest/health"
	"codeberg.org/placewise/server/api/rest/plans"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.CORSOrigins, server.config.IsProduction()))

	deps := map[string]health.Pinger{"database": server.db}
	if server.cache != nil {
		deps["cache"] = server.cache
	}

	router.GET("/health", health.Handler(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		plans.RegisterRoutes(v1, server.engine, server.limiter)
		catalog.RegisterRoutes(v1, server.creatorRepo)
		analytics.RegisterRoutes(v1, server.engine)
	}
}
