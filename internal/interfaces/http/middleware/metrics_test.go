package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mindsacademy/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestHTTPMetricsWithMeter_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.HTTPMetricsWithMeter(noop.NewMeterProvider().Meter("test"), false))
	r.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetricsWithMeter_Enabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.HTTPMetricsWithMeter(noop.NewMeterProvider().Meter("test"), true))

	handlerCalled := false
	r.GET("/api/v1/courses/:id", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/courses/42", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerCalled)
}

func TestHTTPMetricsStatusGroup(t *testing.T) {
	assert.Equal(t, "2xx", middleware.HTTPMetricsStatusGroup(200))
	assert.Equal(t, "3xx", middleware.HTTPMetricsStatusGroup(301))
	assert.Equal(t, "4xx", middleware.HTTPMetricsStatusGroup(404))
	assert.Equal(t, "5xx", middleware.HTTPMetricsStatusGroup(503))
	assert.Equal(t, "other", middleware.HTTPMetricsStatusGroup(100))
}
