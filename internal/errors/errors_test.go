package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/placewise/server/internal/planner"
	"github.com/gin-gonic/gin"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/plans", nil)

	PlanError(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, body
}

func TestPlanError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &planner.ValidationError{Field: "budget", Constraint: "must be greater than 0"}, http.StatusBadRequest, CodeValidationError},
		{"insertion", planner.ErrInsertionNotFound, http.StatusNotFound, CodeInsertionNotFound},
		{"advertiser", fmt.Errorf("lookup: %w", planner.ErrAdvertiserNotFound), http.StatusNotFound, CodeAdvertiserNotFound},
		{"catalog", &planner.CatalogError{Op: "fetch embeddings", Err: errors.New("dial tcp")}, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"breaker open", gobreaker.ErrOpenState, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := respond(t, tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestValidationErrorExposesField(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, body := respond(t, &planner.ValidationError{Field: "target_cpa", Constraint: "must be greater than 0"})

	assert.Equal(t, "target_cpa", body.Field)
	assert.Equal(t, "target_cpa must be greater than 0", body.Details)
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	assert.Equal(t, CategoryUnavailable, classifyError(gobreaker.ErrOpenState).category)
	assert.Equal(t, "request timed out", classifyError(errors.New("i/o timeout")).sanitized)
	assert.Equal(t, "an error occurred", sanitizeError(errors.New("boom")))
	assert.Equal(t, "", sanitizeError(nil))
}
