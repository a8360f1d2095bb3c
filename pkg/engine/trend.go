package engine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// TrendForecaster backend padrão de previsão: regressão linear da
// quantidade sobre o índice de meses, com intervalo de incerteza
// derivado do desvio padrão dos resíduos. Funciona com históricos
// curtos (a partir de 2 observações), ao contrário de modelos ARIMA.
type TrendForecaster struct {
	confidence float64
}

// NewTrendForecaster cria o backend de regressão com o nível de
// confiança informado (0.90, 0.95 ou 0.99).
func NewTrendForecaster(confidence float64) *TrendForecaster {
	if confidence <= 0 || confidence >= 1 {
		confidence = 0.95
	}
	return &TrendForecaster{confidence: confidence}
}

// Name identifica o backend
func (f *TrendForecaster) Name() string {
	return "trend"
}

// Fit ajusta a regressão linear sobre o índice de meses da série.
func (f *TrendForecaster) Fit(observations []Observation) (Model, error) {
	if len(observations) < 2 {
		return nil, fmt.Errorf("são necessárias pelo menos 2 observações para ajustar a regressão, recebidas %d", len(observations))
	}
	if !sort.SliceIsSorted(observations, func(i, j int) bool {
		return observations[i].Timestamp.Before(observations[j].Timestamp)
	}) {
		return nil, fmt.Errorf("a série de entrada deve estar em ordem cronológica")
	}

	origin := MonthStart(observations[0].Timestamp)

	// 1. Regressão linear: x = meses desde a primeira observação
	x := make([]float64, len(observations))
	y := make([]float64, len(observations))
	for i, obs := range observations {
		x[i] = float64(monthsBetween(origin, MonthStart(obs.Timestamp)))
		y[i] = obs.Value
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		// Todos os timestamps no mesmo mês
		return nil, fmt.Errorf("série degenerada: todas as observações no mesmo período")
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// 2. Desvio padrão dos resíduos (incerteza da previsão)
	residuals := make([]float64, len(x))
	for i := range x {
		predicted := slope*x[i] + intercept
		residuals[i] = y[i] - predicted
	}
	residualStdDev := standardDeviation(residuals)

	return &trendModel{
		origin:    origin,
		slope:     slope,
		intercept: intercept,
		margin:    zScore(f.confidence) * residualStdDev,
	}, nil
}

// trendModel regressão ajustada, pronta para prever qualquer índice
// temporal mensal.
type trendModel struct {
	origin    time.Time
	slope     float64
	intercept float64
	margin    float64
}

// Predict avalia a reta de regressão em cada timestamp solicitado.
func (m *trendModel) Predict(timestamps []time.Time) ([]Prediction, error) {
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("nenhum timestamp solicitado para predição")
	}

	predictions := make([]Prediction, len(timestamps))
	for i, ts := range timestamps {
		xi := float64(monthsBetween(m.origin, MonthStart(ts)))
		point := m.slope*xi + m.intercept
		predictions[i] = Prediction{
			Timestamp: ts,
			Point:     point,
			Lower:     point - m.margin,
			Upper:     point + m.margin,
		}
	}
	return predictions, nil
}

// standardDeviation desvio padrão populacional
func standardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)))
}
