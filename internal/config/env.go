package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/placewise/server/internal/planner"
	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultCatalogCacheTTL = 10 * time.Minute
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	environment := os.Getenv("ENVIRONMENT")
	port := os.Getenv("PORT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if port == "" {
		port = defaultPort
	}

	cacheTTL := defaultCatalogCacheTTL
	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("CATALOG_CACHE_TTL must be a positive duration, got %q", raw)
		}

		cacheTTL = ttl
	}

	return &Config{
		DatabaseURL:     databaseURL,
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       jwtSecret,
		Environment:     environment,
		Port:            port,
		CORSOrigins:     splitOrigins(os.Getenv("CORS_ORIGINS")),
		CatalogCacheTTL: cacheTTL,
		Planner:         planner.LoadConfig(),
	}, nil
}

// parses a comma separated origin list
func splitOrigins(raw string) []string {
	var origins []string

	for origin := range strings.SplitSeq(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
