// Package engine define o contrato do motor estatístico de previsão.
// O pipeline enxerga o motor apenas por esta interface de capacidade
// (ajustar, prever, estender o índice temporal), de modo que qualquer
// backend compatível pode ser substituído sem tocar no restante do
// sistema.
package engine

import (
	"fmt"
	"time"
)

// Observation um ponto observado da série temporal de entrada
type Observation struct {
	Timestamp time.Time
	Value     float64
}

// Prediction estimativa do motor para um período: valor central e
// intervalo de incerteza. O motor deve garantir Lower <= Point <= Upper.
type Prediction struct {
	Timestamp time.Time
	Point     float64
	Lower     float64
	Upper     float64
}

// Forecaster ajusta um modelo a uma série observada. O ajuste é
// síncrono e sem retentativas; uma falha propaga ao chamador.
type Forecaster interface {
	// Name identifica o backend (para logs e diagnóstico)
	Name() string

	// Fit ajusta o modelo à série. A série deve estar em ordem
	// cronológica estrita.
	Fit(observations []Observation) (Model, error)
}

// Model modelo já ajustado, capaz de prever sobre um índice temporal.
type Model interface {
	// Predict retorna uma predição para cada timestamp solicitado, na
	// mesma ordem. O índice deve conter os timestamps históricos do
	// ajuste seguidos dos futuros.
	Predict(timestamps []time.Time) ([]Prediction, error)
}

// MonthStart trunca uma data para o primeiro dia do mês, em UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FutureIndex estende o índice temporal histórico com `periods` meses
// adicionais, ancorados no início de cada mês, começando no mês seguinte
// ao último timestamp histórico. Equivale ao make_future_dataframe com
// frequência mensal.
func FutureIndex(history []time.Time, periods int) []time.Time {
	index := make([]time.Time, 0, len(history)+periods)
	index = append(index, history...)

	if len(history) == 0 {
		return index
	}

	last := MonthStart(history[len(history)-1])
	for k := 1; k <= periods; k++ {
		index = append(index, last.AddDate(0, k, 0))
	}
	return index
}

// monthsBetween retorna o número de meses entre dois inícios de mês.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// zScore retorna o quantil normal para os níveis de confiança
// suportados. Níveis fora da tabela caem em 95%.
func zScore(confidence float64) float64 {
	switch confidence {
	case 0.90:
		return 1.645
	case 0.95:
		return 1.96
	case 0.99:
		return 2.576
	default:
		return 1.96
	}
}

// New seleciona o backend de previsão pelo nome configurado.
func New(name string, confidence float64) (Forecaster, error) {
	switch name {
	case "", "trend":
		return NewTrendForecaster(confidence), nil
	case "sarima":
		return NewSarimaForecaster(confidence), nil
	default:
		return nil, fmt.Errorf("motor de previsão desconhecido: %q", name)
	}
}
