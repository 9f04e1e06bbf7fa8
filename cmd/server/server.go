package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/placewise/server/api/rest/plans"
	"codeberg.org/placewise/server/internal/catalog"
	"codeberg.org/placewise/server/internal/config"
	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/planner"
	"codeberg.org/placewise/server/placewise/creators"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// each plan issues a handful of batched queries
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgbouncer in transaction mode does not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	creatorRepo := creators.NewRepository(db)

	// repository -> metrics -> circuit breaker -> redis cache
	breaker := catalog.NewBreakerStore(catalog.NewInstrumentedStore(creatorRepo), catalog.DefaultBreakerConfig())

	var store planner.Catalog = breaker
	var cache *catalog.RedisCache

	if cfg.RedisURL != "" {
		cache, err = catalog.NewRedisCacheFromURL(cfg.RedisURL)
		if err != nil {
			// caching is optional
			logger.ErrorErr(err, "failed to connect to redis, continuing without catalog cache")
		} else {
			store = catalog.NewCachedStore(breaker, cache, cfg.CatalogCacheTTL)
			logger.Info("catalog cache enabled", "ttl", cfg.CatalogCacheTTL)
		}
	}

	engine := planner.NewEngine(store, cfg.Planner)

	logger.Info("planner configured",
		"pool_limit", cfg.Planner.PoolLimit,
		"placement_cap", cfg.Planner.PlacementCap,
		"baseline_cvr", cfg.Planner.BaselineCVR,
		"fallback_min_similarity", cfg.Planner.FallbackMinSimilarity,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())

	server := &Server{
		db:          db,
		config:      cfg,
		creatorRepo: creatorRepo,
		cache:       cache,
		engine:      engine,
		limiter:     plans.NewLimiter(plans.DefaultRatePerSecond, plans.DefaultBurst),
		router:      router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// releases external connections
func (s *Server) Close() {
	if s.cache != nil {
		s.cache.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	s.db.Close()
}
