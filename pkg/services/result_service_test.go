package services

import (
	"strings"
	"testing"

	"bistro-forecast-api/pkg/models"

	"github.com/stretchr/testify/assert"
)

func sampleResult() *models.ForecastResult {
	return &models.ForecastResult{
		ProductID: "Croissant",
		Horizon:   2,
		Observed: []models.SeriesPoint{
			{Period: day(2024, 5, 1), Quantity: 10},
			{Period: day(2024, 6, 1), Quantity: 12},
		},
		InSample: []models.ForecastEntry{
			{Period: day(2024, 5, 1), Point: 10, Lower: 8, Upper: 12},
			{Period: day(2024, 6, 1), Point: 11, Lower: 9, Upper: 13},
		},
		Future: []models.ForecastEntry{
			{Period: day(2024, 7, 1), Point: 13, Lower: 11, Upper: 15},
			{Period: day(2024, 8, 1), Point: 14, Lower: 12, Upper: 16},
		},
	}
}

func TestDetailedTable(t *testing.T) {
	service := NewResultService()

	rows := service.DetailedTable(sampleResult())

	assert.Len(t, rows, 2)
	// Data completa AAAA-MM-DD na visão detalhada
	assert.Equal(t, "2024-07-01", rows[0].Data)
	assert.Equal(t, 13, rows[0].Previsao)
	assert.Equal(t, 11, rows[0].LimiteInferior)
	assert.Equal(t, 15, rows[0].LimiteSuperior)
}

func TestSummaryTable(t *testing.T) {
	service := NewResultService()

	rows := service.SummaryTable(sampleResult())

	assert.Len(t, rows, 2)
	// Formato MM/AAAA na visão resumida, apenas o valor central
	assert.Equal(t, "07/2024", rows[0].Data)
	assert.Equal(t, 13, rows[0].Previsao)
	assert.Equal(t, "08/2024", rows[1].Data)
}

func TestExportTable(t *testing.T) {
	service := NewResultService()

	table := service.ExportTable(sampleResult())

	assert.Equal(t, "previsao_Croissant.csv", table.FileName)
	assert.Equal(t, []string{"Data", "Previsão (unidades)", "Limite inferior", "Limite superior"}, table.Header)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-07-01", "13", "11", "15"}, table.Rows[0])
}

func TestExportCSV(t *testing.T) {
	service := NewResultService()

	data, fileName, err := service.ExportCSV(sampleResult())
	assert.NoError(t, err)
	assert.Equal(t, "previsao_Croissant.csv", fileName)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Data,Previsão (unidades),Limite inferior,Limite superior", lines[0])
	assert.Equal(t, "2024-07-01,13,11,15", lines[1])
	assert.Equal(t, "2024-08-01,14,12,16", lines[2])
}

func TestChart(t *testing.T) {
	service := NewResultService()

	chart := service.Chart(sampleResult())

	// Séries paralelas alinhadas pelo mesmo domínio de datas
	assert.Equal(t, []string{"2024-05-01", "2024-06-01"}, chart.ObservedDates)
	assert.Equal(t, []float64{10, 12}, chart.ObservedQty)
	assert.Equal(t, []string{"2024-05-01", "2024-06-01"}, chart.FittedDates)
	assert.Equal(t, []int{10, 11}, chart.Fitted)
	assert.Equal(t, []int{8, 9}, chart.FittedLower)
	assert.Equal(t, []int{12, 13}, chart.FittedUpper)
	assert.Equal(t, []string{"2024-07-01", "2024-08-01"}, chart.FutureDates)
	assert.Equal(t, []int{13, 14}, chart.Future)
}
