package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"bistro-forecast-api/pkg/models"
)

// exportHeader cabeçalho fixo do CSV exportado, no formato consumido
// pelas planilhas do operador
var exportHeader = []string{"Data", "Previsão (unidades)", "Limite inferior", "Limite superior"}

// ResultService transforma um ForecastResult nas visões de
// apresentação e exportação. Transformação pura e determinística; o
// motor de previsão nunca é reinvocado aqui.
type ResultService struct{}

// NewResultService cria um novo ResultService
func NewResultService() *ResultService {
	return &ResultService{}
}

// DetailedTable tabela detalhada: uma linha por período futuro, data
// AAAA-MM-DD, previsão e limites inteiros.
func (s *ResultService) DetailedTable(result *models.ForecastResult) []models.ForecastTableRow {
	rows := make([]models.ForecastTableRow, len(result.Future))
	for i, entry := range result.Future {
		rows[i] = models.ForecastTableRow{
			Data:           entry.Period.Format("2006-01-02"),
			Previsao:       entry.Point,
			LimiteInferior: entry.Lower,
			LimiteSuperior: entry.Upper,
		}
	}
	return rows
}

// SummaryTable tabela resumida para leitura simples: data MM/AAAA e
// apenas o valor central.
func (s *ResultService) SummaryTable(result *models.ForecastResult) []models.SummaryTableRow {
	rows := make([]models.SummaryTableRow, len(result.Future))
	for i, entry := range result.Future {
		rows[i] = models.SummaryTableRow{
			Data:     entry.Period.Format("01/2006"),
			Previsao: entry.Point,
		}
	}
	return rows
}

// ExportTable aplaina o resultado na tabela exportável, com o cabeçalho
// estável e o nome de arquivo derivado do produto.
func (s *ResultService) ExportTable(result *models.ForecastResult) *models.ExportTable {
	rows := make([][]string, len(result.Future))
	for i, entry := range result.Future {
		rows[i] = []string{
			entry.Period.Format("2006-01-02"),
			fmt.Sprintf("%d", entry.Point),
			fmt.Sprintf("%d", entry.Lower),
			fmt.Sprintf("%d", entry.Upper),
		}
	}
	return &models.ExportTable{
		FileName: fmt.Sprintf("previsao_%s.csv", result.ProductID),
		Header:   exportHeader,
		Rows:     rows,
	}
}

// ExportCSV serializa a tabela exportável em CSV UTF-8.
func (s *ResultService) ExportCSV(result *models.ForecastResult) ([]byte, string, error) {
	table := s.ExportTable(result)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Header); err != nil {
		return nil, "", fmt.Errorf("escrita do cabeçalho CSV: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("escrita de linha CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("serialização CSV: %w", err)
	}

	return buf.Bytes(), table.FileName, nil
}

// Chart monta as séries alinhadas do gráfico: histórico observado,
// curva ajustada in-sample com banda e curva futura.
func (s *ResultService) Chart(result *models.ForecastResult) *models.ChartData {
	chart := &models.ChartData{
		ObservedDates: make([]string, len(result.Observed)),
		ObservedQty:   make([]float64, len(result.Observed)),
		FittedDates:   make([]string, len(result.InSample)),
		Fitted:        make([]int, len(result.InSample)),
		FittedLower:   make([]int, len(result.InSample)),
		FittedUpper:   make([]int, len(result.InSample)),
		FutureDates:   make([]string, len(result.Future)),
		Future:        make([]int, len(result.Future)),
	}

	for i, point := range result.Observed {
		chart.ObservedDates[i] = point.Period.Format("2006-01-02")
		chart.ObservedQty[i] = point.Quantity
	}
	for i, entry := range result.InSample {
		chart.FittedDates[i] = entry.Period.Format("2006-01-02")
		chart.Fitted[i] = entry.Point
		chart.FittedLower[i] = entry.Lower
		chart.FittedUpper[i] = entry.Upper
	}
	for i, entry := range result.Future {
		chart.FutureDates[i] = entry.Period.Format("2006-01-02")
		chart.Future[i] = entry.Point
	}

	return chart
}
