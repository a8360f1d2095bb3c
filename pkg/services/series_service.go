package services

import (
	"sort"
	"time"

	"bistro-forecast-api/pkg/engine"
	"bistro-forecast-api/pkg/models"
)

// SeriesService monta a série temporal mensal de um produto a partir
// dos registros brutos. Transformação pura: não altera o conjunto de
// dados nem guarda estado.
type SeriesService struct{}

// NewSeriesService cria um novo SeriesService
func NewSeriesService() *SeriesService {
	return &SeriesService{}
}

// MonthlySeries filtra os registros pelo produto (comparação exata) e
// agrega as quantidades por mês-calendário, em ordem crescente. Meses
// sem venda do produto ficam ausentes da série, nunca com valor zero:
// essa semântica de agregação é deliberada e o motor de previsão deve
// enxergar exatamente a distribuição observada.
func (s *SeriesService) MonthlySeries(dataset *models.Dataset, productID string) []models.SeriesPoint {
	totals := make(map[time.Time]float64)
	for _, r := range dataset.Records {
		if r.ProductID != productID {
			continue
		}
		period := engine.MonthStart(r.Date)
		totals[period] += r.Quantity
	}

	periods := make([]time.Time, 0, len(totals))
	for period := range totals {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	series := make([]models.SeriesPoint, len(periods))
	for i, period := range periods {
		series[i] = models.SeriesPoint{Period: period, Quantity: totals[period]}
	}
	return series
}

// SeriesTable formata a série observada para exibição, com o período
// como AAAA-MM.
func (s *SeriesService) SeriesTable(series []models.SeriesPoint) []models.SeriesTableRow {
	rows := make([]models.SeriesTableRow, len(series))
	for i, point := range series {
		rows[i] = models.SeriesTableRow{
			Periodo:    point.Period.Format("2006-01"),
			Quantidade: point.Quantity,
		}
	}
	return rows
}
