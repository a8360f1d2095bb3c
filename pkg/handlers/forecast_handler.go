package handlers

import (
	"fmt"
	"net/http"

	"bistro-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// ForecastHandler executa o pipeline de previsão sob demanda
type ForecastHandler struct {
	datasetService  *services.DatasetService
	forecastService *services.ForecastService
	resultService   *services.ResultService
}

// NewForecastHandler cria um novo ForecastHandler
func NewForecastHandler(datasetService *services.DatasetService, forecastService *services.ForecastService, resultService *services.ResultService) *ForecastHandler {
	return &ForecastHandler{
		datasetService:  datasetService,
		forecastService: forecastService,
		resultService:   resultService,
	}
}

// ForecastRequest corpo da requisição de previsão
type ForecastRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Horizon   int    `json:"horizon" binding:"required"`
}

// Generate executa uma previsão e devolve as tabelas, o gráfico e os
// metadados de exportação.
func (h *ForecastHandler) Generate(c *gin.Context) {
	var request ForecastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "falha na análise da requisição: " + err.Error(),
		})
		return
	}

	dataset, err := h.datasetService.Current()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.forecastService.Forecast(dataset, request.ProductID, request.Horizon)
	if err != nil {
		respondError(c, err)
		return
	}

	export := h.resultService.ExportTable(result)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"product_id":     result.ProductID,
		"horizon":        result.Horizon,
		"engine":         h.forecastService.EngineName(),
		"detailed_table": h.resultService.DetailedTable(result),
		"summary_table":  h.resultService.SummaryTable(result),
		"chart":          h.resultService.Chart(result),
		"export": gin.H{
			"file_name": export.FileName,
			"header":    export.Header,
			"rows":      export.Rows,
		},
	})
}

// Export executa a previsão e devolve a tabela exportável como anexo
// CSV em UTF-8.
func (h *ForecastHandler) Export(c *gin.Context) {
	var request ForecastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "falha na análise da requisição: " + err.Error(),
		})
		return
	}

	dataset, err := h.datasetService.Current()
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.forecastService.Forecast(dataset, request.ProductID, request.Horizon)
	if err != nil {
		respondError(c, err)
		return
	}

	data, fileName, err := h.resultService.ExportCSV(result)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
