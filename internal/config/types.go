package config

import (
	"time"

	"codeberg.org/placewise/server/internal/planner"
)

type Config struct {
	DatabaseURL     string
	RedisURL        string // optional; catalog caching is disabled when empty
	JWTSecret       string
	Environment     string
	Port            string
	CORSOrigins     []string
	CatalogCacheTTL time.Duration
	Planner         planner.Config
}
