package handlers

import (
	"net/http"
	"sync/atomic"

	config "bistro-forecast-api/configs"
	"bistro-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// isMaintenanceMode indica se o servidor está em modo de manutenção.
// atomic.Bool garante leitura e escrita seguras entre requisições.
var isMaintenanceMode atomic.Bool

// AdminHandler operações administrativas do servidor
type AdminHandler struct {
	AdminUsername   string
	AdminPassword   string
	datasetService  *services.DatasetService
	forecastService *services.ForecastService
}

// NewAdminHandler cria um novo AdminHandler
func NewAdminHandler(cfg *config.Config, datasetService *services.DatasetService, forecastService *services.ForecastService) *AdminHandler {
	return &AdminHandler{
		AdminUsername:   cfg.AdminUsername,
		AdminPassword:   cfg.AdminPassword,
		datasetService:  datasetService,
		forecastService: forecastService,
	}
}

// AdminCredentials corpo de autenticação das operações administrativas
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StartMaintenance ativa o modo de manutenção
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if input.Username != h.AdminUsername || input.Password != h.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	isMaintenanceMode.Store(true)
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode started"})
}

// StopMaintenance desativa o modo de manutenção
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if input.Username != h.AdminUsername || input.Password != h.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	isMaintenanceMode.Store(false)
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance mode stopped"})
}

// GetHealthStatus estado atual do servidor: modo de manutenção, motor
// de previsão configurado e carga da sessão.
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	datasetLoaded := false
	rowCount := 0
	if dataset, err := h.datasetService.Current(); err == nil {
		datasetLoaded = true
		rowCount = len(dataset.Records)
	}

	c.JSON(http.StatusOK, gin.H{
		"isMaintenanceMode": isMaintenanceMode.Load(),
		"datasetLoaded":     datasetLoaded,
		"datasetRows":       rowCount,
		"forecastEngine":    h.forecastService.EngineName(),
	})
}

// HealthCheck responde aos verificadores externos de disponibilidade.
func HealthCheck(c *gin.Context) {
	if isMaintenanceMode.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
