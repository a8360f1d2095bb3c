package models

import (
	"errors"
	"time"
)

// Tipos de erro do pipeline de previsão. Os handlers mapeiam cada tipo
// para um status HTTP via errors.Is.
var (
	// ErrMalformedInput arquivo enviado sem as colunas obrigatórias ou com
	// linhas que não podem ser interpretadas; a carga inteira é rejeitada.
	ErrMalformedInput = errors.New("arquivo de dados inválido")

	// ErrNoDataset nenhum arquivo foi carregado na sessão atual.
	ErrNoDataset = errors.New("nenhum arquivo de dados carregado")

	// ErrEmptySeries o produto selecionado não possui observações agregadas.
	ErrEmptySeries = errors.New("não há observações para o produto selecionado")

	// ErrInsufficientHistory menos de 3 períodos observados; a previsão é
	// recusada antes de invocar o motor.
	ErrInsufficientHistory = errors.New("histórico insuficiente para gerar previsão")

	// ErrInvalidHorizon horizonte fora do intervalo 1-12.
	ErrInvalidHorizon = errors.New("horizonte de previsão deve estar entre 1 e 12 meses")

	// ErrEngineFailure falha no ajuste ou na predição do motor de previsão;
	// fatal apenas para a requisição atual.
	ErrEngineFailure = errors.New("falha no motor de previsão")

	// ErrBoundInversion limite inferior maior que o superior após o
	// arredondamento; detectado e reportado, nunca corrigido em silêncio.
	ErrBoundInversion = errors.New("intervalo de previsão invertido")
)

// SalesRecord uma linha do arquivo de vendas consolidado
type SalesRecord struct {
	Date      time.Time `json:"date"`
	ProductID string    `json:"product_id"`
	Quantity  float64   `json:"quantity"`
}

// Dataset conjunto de registros carregado na sessão atual
type Dataset struct {
	FileName string        `json:"file_name"`
	Records  []SalesRecord `json:"records"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// SeriesPoint observação mensal agregada de um produto. Period é sempre o
// primeiro dia do mês.
type SeriesPoint struct {
	Period   time.Time `json:"period"`
	Quantity float64   `json:"quantity"`
}

// ForecastEntry previsão arredondada de um período
type ForecastEntry struct {
	Period time.Time `json:"period"`
	Point  int       `json:"point_estimate"`
	Lower  int       `json:"lower_bound"`
	Upper  int       `json:"upper_bound"`
}

// ForecastResult resultado completo de uma execução do pipeline
type ForecastResult struct {
	ProductID string          `json:"product_id"`
	Horizon   int             `json:"horizon"`
	Observed  []SeriesPoint   `json:"observed"`
	InSample  []ForecastEntry `json:"in_sample"`
	Future    []ForecastEntry `json:"future"`
}

// ForecastTableRow linha da tabela detalhada de previsão (datas AAAA-MM-DD)
type ForecastTableRow struct {
	Data           string `json:"data"`
	Previsao       int    `json:"previsao_unidades"`
	LimiteInferior int    `json:"limite_inferior"`
	LimiteSuperior int    `json:"limite_superior"`
}

// SummaryTableRow linha da tabela resumida (datas MM/AAAA, apenas previsão)
type SummaryTableRow struct {
	Data     string `json:"data"`
	Previsao int    `json:"previsao_unidades"`
}

// SeriesTableRow linha da tabela da série observada (período AAAA-MM)
type SeriesTableRow struct {
	Periodo    string  `json:"periodo"`
	Quantidade float64 `json:"quantidade_vendida"`
}

// ChartData séries alinhadas para o gráfico: histórico observado, curva
// ajustada com banda de confiança e curva futura, todas sobre o mesmo
// domínio de datas AAAA-MM-DD.
type ChartData struct {
	ObservedDates []string  `json:"observed_dates"`
	ObservedQty   []float64 `json:"observed_quantities"`
	FittedDates   []string  `json:"fitted_dates"`
	Fitted        []int     `json:"fitted"`
	FittedLower   []int     `json:"fitted_lower"`
	FittedUpper   []int     `json:"fitted_upper"`
	FutureDates   []string  `json:"future_dates"`
	Future        []int     `json:"future"`
}

// ExportTable tabela plana pronta para serialização em CSV
type ExportTable struct {
	FileName string     `json:"file_name"`
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
}

// DatasetPreview resumo do arquivo carregado para exibição
type DatasetPreview struct {
	FileName  string       `json:"file_name"`
	RowCount  int          `json:"row_count"`
	Products  []string     `json:"products"`
	FirstDate string       `json:"first_date"`
	LastDate  string       `json:"last_date"`
	Rows      []PreviewRow `json:"rows"`
}

// PreviewRow linha da pré-visualização (período AAAA-MM, como no original)
type PreviewRow struct {
	Periodo    string  `json:"periodo"`
	ProdutoID  string  `json:"produto_id"`
	Quantidade float64 `json:"quantidade"`
}
