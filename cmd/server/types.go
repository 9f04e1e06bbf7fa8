package main

import (
	"codeberg.org/placewise/server/api/rest/plans"
	"codeberg.org/placewise/server/internal/catalog"
	"codeberg.org/placewise/server/internal/config"
	"codeberg.org/placewise/server/internal/planner"
	"codeberg.org/placewise/server/placewise/creators"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	creatorRepo *creators.Repository
	cache       *catalog.RedisCache // nil when REDIS_URL is unset
	engine      *planner.Engine
	limiter     *plans.Limiter
	router      *gin.Engine
}
