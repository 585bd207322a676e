package http

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

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewHealthHandler("test-service", "1.0.0", map[string]Pinger{
		"mongo": PingFunc(func(context.Context) error { return nil }),
	})
	handler.RegisterRoutes(router)

	for _, path := range []string{"/health", "/healthz"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, path)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test-service", response.Service)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, map[string]string{"mongo": "up"}, response.Checks)
	}
}

func TestHealthCheckDegraded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("svc", "1", map[string]Pinger{
		"mongo": PingFunc(func(context.Context) error { return nil }),
		"redis": PingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
	}).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "degraded", response.Status)
	assert.Equal(t, "down", response.Checks["redis"])
	assert.Equal(t, "up", response.Checks["mongo"])
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	NewHealthHandler("test-service", "1.0.0", nil).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
