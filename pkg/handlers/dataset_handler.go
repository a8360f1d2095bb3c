package handlers

import (
	"net/http"

	"bistro-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// DatasetHandler operações sobre o arquivo de vendas da sessão
type DatasetHandler struct {
	datasetService *services.DatasetService
	seriesService  *services.SeriesService
	maxUploadBytes int64
}

// NewDatasetHandler cria um novo DatasetHandler
func NewDatasetHandler(datasetService *services.DatasetService, seriesService *services.SeriesService, maxUploadMB int64) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		seriesService:  seriesService,
		maxUploadBytes: maxUploadMB << 20,
	}
}

// GetDatasetService referência ao serviço de dados do handler
func (h *DatasetHandler) GetDatasetService() *services.DatasetService {
	return h.datasetService
}

// Upload recebe o arquivo de vendas consolidado (campo "file") e
// substitui o conjunto de dados da sessão.
func (h *DatasetHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "falha na leitura do formulário de envio: " + err.Error(),
		})
		return
	}

	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "envie o arquivo de vendas no campo \"file\"",
		})
		return
	}
	defer file.Close()

	preview, err := h.datasetService.LoadFromUpload(fileHeader.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"preview": preview,
	})
}

// GetPreview pré-visualização do conjunto de dados carregado
func (h *DatasetHandler) GetPreview(c *gin.Context) {
	preview, err := h.datasetService.Preview()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"preview": preview,
	})
}

// GetProducts catálogo de produtos em ordem alfabética
func (h *DatasetHandler) GetProducts(c *gin.Context) {
	products, err := h.datasetService.Products()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// GetSeries série temporal mensal observada de um produto
func (h *DatasetHandler) GetSeries(c *gin.Context) {
	dataset, err := h.datasetService.Current()
	if err != nil {
		respondError(c, err)
		return
	}

	productID := c.Param("productID")
	series := h.seriesService.MonthlySeries(dataset, productID)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"product_id": productID,
		"series":     h.seriesService.SeriesTable(series),
	})
}
