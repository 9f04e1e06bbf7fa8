package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, deps map[string]Pinger) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", Handler(deps))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return w, resp
}

func TestHandler_Healthy(t *testing.T) {
	w, resp := serve(t, map[string]Pinger{
		"database": pingFunc(func(context.Context) error { return nil }),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "placewise", resp.Service)
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestHandler_Degraded(t *testing.T) {
	w, resp := serve(t, map[string]Pinger{
		"database": pingFunc(func(context.Context) error { return nil }),
		"cache":    pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unreachable", resp.Checks["cache"])
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestHandler_NoDependencies(t *testing.T) {
	w, resp := serve(t, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Checks)
}

func TestPingHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ping", PingHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
