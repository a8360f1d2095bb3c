package services

import (
	"testing"
	"time"

	"bistro-forecast-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func day(year int, m time.Month, d int) time.Time {
	return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		FileName: "vendas.csv",
		Records: []models.SalesRecord{
			{Date: day(2024, 1, 15), ProductID: "Croissant", Quantity: 10},
			{Date: day(2024, 1, 20), ProductID: "Croissant", Quantity: 5},
			{Date: day(2024, 3, 5), ProductID: "Croissant", Quantity: 9},
			{Date: day(2024, 2, 10), ProductID: "Croissant", Quantity: 12},
			{Date: day(2024, 1, 12), ProductID: "Brigadeiro", Quantity: 30},
		},
	}
}

func TestMonthlySeriesAggregation(t *testing.T) {
	service := NewSeriesService()

	series := service.MonthlySeries(testDataset(), "Croissant")

	// Um ponto por mês com venda, em ordem crescente
	assert.Len(t, series, 3)
	assert.Equal(t, day(2024, 1, 1), series[0].Period)
	assert.Equal(t, day(2024, 2, 1), series[1].Period)
	assert.Equal(t, day(2024, 3, 1), series[2].Period)

	// Soma dentro de cada mês
	assert.Equal(t, 15.0, series[0].Quantity)
	assert.Equal(t, 12.0, series[1].Quantity)
	assert.Equal(t, 9.0, series[2].Quantity)
}

func TestMonthlySeriesGapsStayAbsent(t *testing.T) {
	service := NewSeriesService()
	dataset := &models.Dataset{
		Records: []models.SalesRecord{
			{Date: day(2024, 1, 10), ProductID: "P1", Quantity: 4},
			{Date: day(2024, 4, 10), ProductID: "P1", Quantity: 6},
		},
	}

	series := service.MonthlySeries(dataset, "P1")

	// Fevereiro e março não viram zeros: simplesmente não existem
	assert.Len(t, series, 2)
	assert.Equal(t, day(2024, 1, 1), series[0].Period)
	assert.Equal(t, day(2024, 4, 1), series[1].Period)
}

func TestMonthlySeriesExactProductMatch(t *testing.T) {
	service := NewSeriesService()
	dataset := &models.Dataset{
		Records: []models.SalesRecord{
			{Date: day(2024, 1, 10), ProductID: "croissant", Quantity: 4},
		},
	}

	// Comparação sensível a maiúsculas: produto fora do catálogo gera
	// série vazia, nunca erro
	series := service.MonthlySeries(dataset, "Croissant")
	assert.Empty(t, series)
}

func TestMonthlySeriesIdempotent(t *testing.T) {
	service := NewSeriesService()
	dataset := testDataset()

	first := service.MonthlySeries(dataset, "Croissant")
	second := service.MonthlySeries(dataset, "Croissant")

	assert.Equal(t, first, second)

	// Os registros brutos não são alterados
	assert.Equal(t, testDataset().Records, dataset.Records)
}

func TestSeriesTableFormatting(t *testing.T) {
	service := NewSeriesService()

	rows := service.SeriesTable([]models.SeriesPoint{
		{Period: day(2024, 7, 1), Quantity: 42},
	})

	assert.Len(t, rows, 1)
	assert.Equal(t, "2024-07", rows[0].Periodo)
	assert.Equal(t, 42.0, rows[0].Quantidade)
}
