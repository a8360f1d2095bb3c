package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := NewMonitoringService()

	r := gin.New()
	r.Use(service.LoggingMiddleware())
	r.GET("/api/v1/datasets/current/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": []string{}})
	})
	r.GET("/api/v1/monitoring/logs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	req, _ := http.NewRequest("GET", "/api/v1/datasets/current/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Rotas de monitoramento não entram no registro
	req, _ = http.NewRequest("GET", "/api/v1/monitoring/logs", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	logs := service.RecentLogs(10)
	assert.Len(t, logs, 1)
	assert.Equal(t, "/api/v1/datasets/current/products", logs[0].Path)
	assert.Equal(t, http.StatusOK, logs[0].StatusCode)
}

func TestGetDashboardData(t *testing.T) {
	service := NewMonitoringService()

	now := time.Now()
	service.LogRequest(LogEntry{Timestamp: now, Path: "/api/v1/forecasts", Method: "POST", StatusCode: 200, ResponseTime: 20 * time.Millisecond})
	service.LogRequest(LogEntry{Timestamp: now, Path: "/api/v1/forecasts", Method: "POST", StatusCode: 500, ResponseTime: 10 * time.Millisecond})
	service.LogRequest(LogEntry{Timestamp: now.Add(-48 * time.Hour), Path: "/api/v1/datasets", Method: "POST", StatusCode: 200, ResponseTime: 5 * time.Millisecond})

	data := service.GetDashboardData(24)

	// Apenas as requisições dentro do período
	assert.Equal(t, 2, data.TotalRequests)
	assert.Equal(t, 2, data.Endpoints["/api/v1/forecasts"])
	assert.Equal(t, 1, data.StatusCodes["2xx Success"])
	assert.Equal(t, 1, data.StatusCodes["5xx Server Error"])
	assert.Len(t, data.RecentErrors, 1)
}
