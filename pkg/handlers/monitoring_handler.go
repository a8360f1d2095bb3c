package handlers

import (
	"net/http"

	"bistro-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// MonitoringHandler operações de monitoramento da API
type MonitoringHandler struct {
	Service *services.MonitoringService
}

// NewMonitoringHandler cria um novo MonitoringHandler
func NewMonitoringHandler(service *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{
		Service: service,
	}
}

// GetLogs devolve os dados agregados do painel de monitoramento.
func (h *MonitoringHandler) GetLogs(c *gin.Context) {
	periodStr := c.DefaultQuery("period", "24h")
	var hours int

	switch periodStr {
	case "1h":
		hours = 1
	case "24h":
		hours = 24
	case "7d":
		hours = 24 * 7
	default:
		hours = 24
	}

	data := h.Service.GetDashboardData(hours)
	c.JSON(http.StatusOK, data)
}

// GetRecentRequests devolve as últimas requisições registradas.
func (h *MonitoringHandler) GetRecentRequests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requests": h.Service.RecentLogs(50),
	})
}
