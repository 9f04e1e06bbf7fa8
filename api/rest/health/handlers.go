package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	serviceName  = "placewise"
	version      = "1.0.0"
	checkTimeout = 2 * time.Second
)

// returns the server health status, degraded when a dependency cannot be pinged
func Handler(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()

		status := http.StatusOK
		response := Response{
			Status:  "healthy",
			Service: serviceName,
			Version: version,
		}

		if len(deps) > 0 {
			response.Checks = make(map[string]string, len(deps))
		}

		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				response.Checks[name] = "unreachable"
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}

			response.Checks[name] = "ok"
		}

		c.JSON(status, response)
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
