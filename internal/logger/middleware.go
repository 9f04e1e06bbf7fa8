package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// attaches a request-scoped logger to the request context and logs completion
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)

		reqLogger := defaultLogger.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)

		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if userID := c.GetString("user_id"); userID != "" {
			args = append(args, "user_id", userID)
		}

		switch {
		case status >= 500:
			reqLogger.Error("request failed", args...)
		case status >= 400:
			reqLogger.Warn("request rejected", args...)
		default:
			reqLogger.Info("request completed", args...)
		}
	}
}
