package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/sarima"
	"github.com/sartorproj/goarima/timeseries"
)

// SarimaForecaster backend alternativo baseado na biblioteca goarima,
// com um modelo ARIMA(1,1,1) sem componente sazonal. Exige histórico
// longo (na prática, 20+ meses); séries curtas falham no ajuste e a
// falha propaga como erro de motor da requisição.
type SarimaForecaster struct {
	confidence float64
}

// NewSarimaForecaster cria o backend ARIMA com o nível de confiança
// informado.
func NewSarimaForecaster(confidence float64) *SarimaForecaster {
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}
	return &SarimaForecaster{confidence: confidence}
}

// Name identifica o backend
func (f *SarimaForecaster) Name() string {
	return "sarima"
}

// Fit ajusta o modelo ARIMA(1,1,1) à série observada.
func (f *SarimaForecaster) Fit(observations []Observation) (Model, error) {
	timestamps := make([]time.Time, len(observations))
	values := make([]float64, len(observations))
	for i, obs := range observations {
		timestamps[i] = MonthStart(obs.Timestamp)
		values[i] = obs.Value
	}

	series, err := timeseries.NewWithTimestamps(timestamps, values)
	if err != nil {
		return nil, fmt.Errorf("montagem da série para o ajuste: %w", err)
	}

	model := sarima.New(1, 1, 1, 0, 0, 0, 0)
	if err := model.Fit(series); err != nil {
		return nil, fmt.Errorf("ajuste do modelo ARIMA: %w", err)
	}

	return &sarimaModel{
		inner:      model,
		timestamps: timestamps,
		values:     values,
		confidence: f.confidence,
		se:         math.Sqrt(model.Summary().Variance),
	}, nil
}

// sarimaModel modelo ARIMA ajustado com a série original retida para
// reconstruir os valores ajustados in-sample na escala original.
type sarimaModel struct {
	inner      *sarima.Model
	timestamps []time.Time
	values     []float64
	confidence float64
	se         float64
}

// Predict cobre os timestamps históricos com os valores ajustados do
// modelo e os futuros com PredictWithInterval.
func (m *sarimaModel) Predict(requested []time.Time) ([]Prediction, error) {
	n := len(m.timestamps)
	if len(requested) < n {
		return nil, fmt.Errorf("índice solicitado (%d) menor que o histórico do ajuste (%d)", len(requested), n)
	}
	for i := 0; i < n; i++ {
		if !MonthStart(requested[i]).Equal(m.timestamps[i]) {
			return nil, fmt.Errorf("índice solicitado diverge do histórico do ajuste na posição %d", i)
		}
	}

	steps := len(requested) - n
	predictions := make([]Prediction, 0, len(requested))

	// Margem in-sample derivada da variância residual do modelo
	margin := zScore(m.confidence) * m.se

	fitted := m.fittedOriginalScale()
	for i := 0; i < n; i++ {
		predictions = append(predictions, Prediction{
			Timestamp: requested[i],
			Point:     fitted[i],
			Lower:     fitted[i] - margin,
			Upper:     fitted[i] + margin,
		})
	}

	if steps > 0 {
		points, lower, upper, err := m.inner.PredictWithInterval(steps, m.confidence)
		if err != nil {
			return nil, fmt.Errorf("predição ARIMA: %w", err)
		}
		for h := 0; h < steps; h++ {
			predictions = append(predictions, Prediction{
				Timestamp: requested[n+h],
				Point:     points[h],
				Lower:     lower[h],
				Upper:     upper[h],
			})
		}
	}

	return predictions, nil
}

// fittedOriginalScale reconstrói os valores ajustados na escala
// original. Com d=1, o valor ajustado da biblioteca está na escala
// diferenciada: ajustado[t] = y[t-1] + ajusteDiff[t-1]. O primeiro
// período não possui ajuste e recebe o próprio valor observado.
func (m *sarimaModel) fittedOriginalScale() []float64 {
	n := len(m.values)
	fitted := make([]float64, n)
	diffFitted := m.inner.FittedValues()

	fitted[0] = m.values[0]
	for t := 1; t < n; t++ {
		if t-1 < len(diffFitted) {
			fitted[t] = m.values[t-1] + diffFitted[t-1]
		} else {
			fitted[t] = m.values[t]
		}
	}
	return fitted
}
