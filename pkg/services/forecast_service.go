package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"bistro-forecast-api/pkg/engine"
	"bistro-forecast-api/pkg/models"
)

const (
	// MinHistoryPeriods mínimo de períodos observados para tentar uma
	// previsão; abaixo disso a previsão é recusada sem invocar o motor.
	MinHistoryPeriods = 3

	// MinHorizon e MaxHorizon limites do horizonte de previsão em meses
	MinHorizon = 1
	MaxHorizon = 12
)

// ForecastService orquestra uma execução de previsão: monta a série
// mensal, invoca o motor estatístico e normaliza a saída bruta em um
// ForecastResult arredondado e particionado.
type ForecastService struct {
	seriesService *SeriesService
	forecaster    engine.Forecaster
}

// NewForecastService cria um novo ForecastService
func NewForecastService(seriesService *SeriesService, forecaster engine.Forecaster) *ForecastService {
	return &ForecastService{
		seriesService: seriesService,
		forecaster:    forecaster,
	}
}

// EngineName nome do backend de previsão em uso
func (s *ForecastService) EngineName() string {
	return s.forecaster.Name()
}

// Forecast executa o pipeline completo para um produto e horizonte.
// Erros de histórico (série vazia ou curta) são advertências e não
// invocam o motor; falhas do motor são fatais apenas para esta
// requisição.
func (s *ForecastService) Forecast(dataset *models.Dataset, productID string, horizon int) (*models.ForecastResult, error) {
	if horizon < MinHorizon || horizon > MaxHorizon {
		return nil, fmt.Errorf("%w: recebido %d", models.ErrInvalidHorizon, horizon)
	}

	// 1. Série mensal do produto
	series := s.seriesService.MonthlySeries(dataset, productID)
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %q", models.ErrEmptySeries, productID)
	}
	if len(series) < MinHistoryPeriods {
		return nil, fmt.Errorf("%w: %d períodos observados, mínimo %d", models.ErrInsufficientHistory, len(series), MinHistoryPeriods)
	}

	// 2. Entrada do motor: primeiro dia do mês como timestamp canônico
	observations := make([]engine.Observation, len(series))
	historical := make([]time.Time, len(series))
	for i, point := range series {
		observations[i] = engine.Observation{Timestamp: point.Period, Value: point.Quantity}
		historical[i] = point.Period
	}

	// 3. Ajuste síncrono, sem retentativa
	model, err := s.forecaster.Fit(observations)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEngineFailure, err)
	}

	// 4. Predição sobre o histórico mais o horizonte futuro
	index := engine.FutureIndex(historical, horizon)
	predictions, err := model.Predict(index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEngineFailure, err)
	}

	// 5. O recorte futuro é posicional (últimas H linhas); isso só é
	// correto se o motor devolveu exatamente o índice solicitado, em
	// ordem estritamente crescente. O invariante é verificado, não
	// presumido.
	if err := validatePredictedIndex(index, predictions); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEngineFailure, err)
	}

	// 6. Arredondamento inteiro campo a campo (unidades físicas): cada
	// limite arredonda de forma independente, nunca derivado do valor
	// central arredondado.
	entries := make([]models.ForecastEntry, len(predictions))
	for i, p := range predictions {
		entries[i] = models.ForecastEntry{
			Period: p.Timestamp,
			Point:  roundHalfAwayFromZero(p.Point),
			Lower:  roundHalfAwayFromZero(p.Lower),
			Upper:  roundHalfAwayFromZero(p.Upper),
		}
		if entries[i].Lower > entries[i].Upper || entries[i].Point < entries[i].Lower || entries[i].Point > entries[i].Upper {
			return nil, fmt.Errorf("%w: período %s (inferior=%d, central=%d, superior=%d)",
				models.ErrBoundInversion, p.Timestamp.Format("2006-01-02"),
				entries[i].Lower, entries[i].Point, entries[i].Upper)
		}
	}

	// 7. Partição: in-sample para o gráfico, últimas H linhas para as
	// tabelas e a exportação
	cut := len(entries) - horizon
	result := &models.ForecastResult{
		ProductID: productID,
		Horizon:   horizon,
		Observed:  series,
		InSample:  entries[:cut],
		Future:    entries[cut:],
	}

	log.Printf("[previsão] produto=%s horizonte=%d motor=%s períodos=%d", productID, horizon, s.forecaster.Name(), len(series))

	return result, nil
}

// validatePredictedIndex confere que o motor devolveu exatamente o
// índice solicitado e que os períodos são estritamente crescentes.
func validatePredictedIndex(index []time.Time, predictions []engine.Prediction) error {
	if len(predictions) != len(index) {
		return fmt.Errorf("motor devolveu %d predições para %d timestamps solicitados", len(predictions), len(index))
	}
	for i, p := range predictions {
		if !p.Timestamp.Equal(index[i]) {
			return fmt.Errorf("predição na posição %d com timestamp %s, esperado %s",
				i, p.Timestamp.Format("2006-01-02"), index[i].Format("2006-01-02"))
		}
		if i > 0 && !predictions[i-1].Timestamp.Before(p.Timestamp) {
			return fmt.Errorf("índice predito fora de ordem na posição %d", i)
		}
	}
	return nil
}

// roundHalfAwayFromZero arredondamento half-away-from-zero para
// inteiro (math.Round)
func roundHalfAwayFromZero(v float64) int {
	return int(math.Round(v))
}
