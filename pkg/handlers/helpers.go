package handlers

import (
	"errors"
	"net/http"

	"bistro-forecast-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// respondError mapeia o tipo de erro do pipeline para o status HTTP e
// o envelope JSON da resposta. Erros de histórico são advertências
// (advisory), não falhas: o operador apenas ainda não tem dados
// suficientes para aquele produto.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNoDataset):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrMalformedInput), errors.Is(err, models.ErrInvalidHorizon):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrEmptySeries), errors.Is(err, models.ErrInsufficientHistory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":  false,
			"advisory": true,
			"error":    err.Error(),
		})
	case errors.Is(err, models.ErrBoundInversion):
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	}
}
