package main

import (
	"log"
	"net/http"

	config "bistro-forecast-api/configs"
	"bistro-forecast-api/pkg/engine"
	"bistro-forecast-api/pkg/handlers"
	"bistro-forecast-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Carrega o arquivo .env, se existir
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Configuração
	cfg := config.LoadConfig()

	// Motor de previsão configurado (trend ou sarima)
	forecaster, err := engine.New(cfg.ForecastEngine, cfg.ForecastConfidence)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	log.Printf("Motor de previsão: %s (confiança %.2f)", forecaster.Name(), cfg.ForecastConfidence)

	// Roteador gin
	r := gin.Default()

	// Serviços
	monitoringService := services.NewMonitoringService()
	datasetService := services.NewDatasetService()
	seriesService := services.NewSeriesService()
	forecastService := services.NewForecastService(seriesService, forecaster)
	resultService := services.NewResultService()

	// Handlers
	datasetHandler := handlers.NewDatasetHandler(datasetService, seriesService, cfg.MaxUploadMB)
	forecastHandler := handlers.NewForecastHandler(datasetHandler.GetDatasetService(), forecastService, resultService)
	adminHandler := handlers.NewAdminHandler(cfg, datasetHandler.GetDatasetService(), forecastService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	// Middlewares globais
	r.Use(monitoringService.LoggingMiddleware())
	r.Use(cors.Default())

	// Middleware de autenticação por chave de API
	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	// Verificação de disponibilidade
	r.GET("/health", handlers.HealthCheck)

	// Grupo da versão 1 da API
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		// Conjunto de dados da sessão
		datasets := v1.Group("/datasets")
		{
			datasets.POST("", datasetHandler.Upload)
			datasets.GET("/current/preview", datasetHandler.GetPreview)
			datasets.GET("/current/products", datasetHandler.GetProducts)
			datasets.GET("/current/series/:productID", datasetHandler.GetSeries)
		}

		// Previsão de vendas
		forecasts := v1.Group("/forecasts")
		{
			forecasts.POST("", forecastHandler.Generate)
			forecasts.POST("/export", forecastHandler.Export)
		}

		// Operações administrativas
		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		// Monitoramento
		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
			monitoring.GET("/requests", monitoringHandler.GetRecentRequests)
		}
	}

	log.Printf("Bistro Forecast API iniciando na porta %s (ambiente: %s)", cfg.Port, cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("FATAL: falha ao iniciar o servidor: %v", err)
	}
}
