package errors

import (
	"errors"
	"net/http"

	"codeberg.org/placewise/server/internal/logger"
	"codeberg.org/placewise/server/internal/planner"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use errors.PlanError() for anything returned by the planner engine
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "permission denied"
	}

	c.JSON(http.StatusForbidden, ErrorResponse{
		Error:   CodeForbidden,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	response := ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
	}

	var verr *planner.ValidationError
	if errors.As(err, &verr) {
		// field and rule are safe to expose in every environment
		response.Field = verr.Field
		response.Details = verr.Field + " " + verr.Constraint
	} else if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 503 when a dependency cannot be reached
func ServiceUnavailable(c *gin.Context, message string, err error) {
	if message == "" {
		message = "service temporarily unavailable"
	}

	logger.Warn(message,
		"path", c.Request.URL.Path,
		"error", err,
	)

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeServiceUnavailable,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// maps an error from the planner engine or catalog to an HTTP response
func PlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		ValidationError(c, err)

	case errors.Is(err, planner.ErrInsertionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   CodeInsertionNotFound,
			Message: "insertion not found",
		})

	case errors.Is(err, planner.ErrAdvertiserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   CodeAdvertiserNotFound,
			Message: "advertiser not found",
		})

	case errors.Is(err, planner.ErrCatalog) || classifyError(err).category == CategoryUnavailable:
		ServiceUnavailable(c, "creator catalog unavailable", err)

	default:
		InternalError(c, "failed to build plan", err)
	}
}
