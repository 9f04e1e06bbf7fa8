package main

import (
	"time"

	"codeberg.org/placewise/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultDevOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// builds the CORS middleware from the configured origins
func CORSMiddleware(origins []string, production bool) gin.HandlerFunc {
	if len(origins) == 0 {
		if production {
			logger.Warn("CORS_ORIGINS is empty, cross-origin requests will be rejected")
		} else {
			origins = defaultDevOrigins
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
