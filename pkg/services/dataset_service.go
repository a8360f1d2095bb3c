package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"bistro-forecast-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// Layouts de data aceitos no arquivo de vendas
var dateLayouts = []string{"2006-01-02", "2006/1/2"}

// previewRowLimit número máximo de linhas na pré-visualização
const previewRowLimit = 50

// DatasetService mantém o conjunto de dados da sessão atual e faz a
// normalização do arquivo enviado em registros tipados. Um envio bem
// sucedido substitui o conjunto anterior por inteiro; um envio inválido
// é rejeitado sem ingestão parcial e o conjunto anterior permanece.
type DatasetService struct {
	mu      sync.RWMutex
	current *models.Dataset
}

// NewDatasetService cria um novo DatasetService
func NewDatasetService() *DatasetService {
	return &DatasetService{}
}

// LoadFromUpload interpreta o arquivo enviado (.csv ou .xlsx) e, se toda
// a carga for válida, substitui o conjunto de dados da sessão.
func (s *DatasetService) LoadFromUpload(fileName string, file io.Reader) (*models.DatasetPreview, error) {
	var rows [][]string
	var err error

	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		f, openErr := excelize.OpenReader(file)
		if openErr != nil {
			return nil, fmt.Errorf("%w: falha na leitura do arquivo Excel: %v", models.ErrMalformedInput, openErr)
		}
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("%w: falha na leitura da planilha: %v", models.ErrMalformedInput, err)
		}
	case strings.HasSuffix(lower, ".csv"):
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		rows, err = r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: falha na análise do CSV: %v", models.ErrMalformedInput, err)
		}
	default:
		return nil, fmt.Errorf("%w: formato não suportado, envie .csv ou .xlsx", models.ErrMalformedInput)
	}

	records, err := normalizeRows(rows)
	if err != nil {
		return nil, err
	}

	dataset := &models.Dataset{
		FileName: fileName,
		Records:  records,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.current = dataset
	s.mu.Unlock()

	log.Printf("[dados] arquivo %s carregado: %d registros, %d produtos", fileName, len(records), len(distinctProducts(records)))

	return s.buildPreview(dataset), nil
}

// normalizeRows transforma as linhas brutas em registros tipados.
// Qualquer linha inválida aborta a carga inteira: o sistema não possui
// recuperação por linha.
func normalizeRows(rows [][]string) ([]models.SalesRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: o arquivo precisa de um cabeçalho e ao menos uma linha de dados", models.ErrMalformedInput)
	}

	header := rows[0]
	dateCol := findIndex(header, "data_ref", "data", "date")
	productCol := findIndex(header, "produto", "product", "product_id")
	quantityCol := findIndex(header, "quantidade", "quantity", "sales")

	var missing []string
	if dateCol == -1 {
		missing = append(missing, "data_ref")
	}
	if productCol == -1 {
		missing = append(missing, "produto")
	}
	if quantityCol == -1 {
		missing = append(missing, "quantidade")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: colunas obrigatórias ausentes: %s", models.ErrMalformedInput, strings.Join(missing, ", "))
	}

	records := make([]models.SalesRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		// Linha 1 é o cabeçalho; i começa na linha 2 do arquivo
		lineNo := i + 2

		if len(row) <= dateCol || len(row) <= productCol || len(row) <= quantityCol {
			return nil, fmt.Errorf("%w: linha %d incompleta", models.ErrMalformedInput, lineNo)
		}

		date, err := parseDate(strings.TrimSpace(row[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: linha %d: data %q não reconhecida", models.ErrMalformedInput, lineNo, row[dateCol])
		}

		productID := strings.TrimSpace(row[productCol])
		if productID == "" {
			return nil, fmt.Errorf("%w: linha %d: produto vazio", models.ErrMalformedInput, lineNo)
		}

		quantity, err := strconv.ParseFloat(strings.TrimSpace(row[quantityCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: linha %d: quantidade %q não reconhecida", models.ErrMalformedInput, lineNo, row[quantityCol])
		}
		// ParseFloat aceita "NaN" e "Inf"; valores não finitos
		// envenenariam toda a aritmética do motor
		if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
			return nil, fmt.Errorf("%w: linha %d: quantidade %q não é um número finito", models.ErrMalformedInput, lineNo, row[quantityCol])
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: linha %d: quantidade negativa", models.ErrMalformedInput, lineNo)
		}

		records = append(records, models.SalesRecord{
			Date:      date,
			ProductID: productID,
			Quantity:  quantity,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: o arquivo não contém linhas de dados", models.ErrMalformedInput)
	}

	return records, nil
}

// Current retorna o conjunto de dados da sessão, ou ErrNoDataset.
func (s *DatasetService) Current() (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, models.ErrNoDataset
	}
	return s.current, nil
}

// Products retorna o catálogo de produtos em ordem alfabética.
func (s *DatasetService) Products() ([]string, error) {
	dataset, err := s.Current()
	if err != nil {
		return nil, err
	}
	return distinctProducts(dataset.Records), nil
}

// Preview retorna o resumo do conjunto de dados carregado.
func (s *DatasetService) Preview() (*models.DatasetPreview, error) {
	dataset, err := s.Current()
	if err != nil {
		return nil, err
	}
	return s.buildPreview(dataset), nil
}

func (s *DatasetService) buildPreview(dataset *models.Dataset) *models.DatasetPreview {
	first := dataset.Records[0].Date
	last := dataset.Records[0].Date
	for _, r := range dataset.Records {
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}

	limit := len(dataset.Records)
	if limit > previewRowLimit {
		limit = previewRowLimit
	}
	previewRows := make([]models.PreviewRow, limit)
	for i := 0; i < limit; i++ {
		r := dataset.Records[i]
		previewRows[i] = models.PreviewRow{
			Periodo:    r.Date.Format("2006-01"),
			ProdutoID:  r.ProductID,
			Quantidade: r.Quantity,
		}
	}

	return &models.DatasetPreview{
		FileName:  dataset.FileName,
		RowCount:  len(dataset.Records),
		Products:  distinctProducts(dataset.Records),
		FirstDate: first.Format("2006-01-02"),
		LastDate:  last.Format("2006-01-02"),
		Rows:      previewRows,
	}
}

// distinctProducts catálogo de produtos distintos, ordenado
func distinctProducts(records []models.SalesRecord) []string {
	seen := make(map[string]bool)
	var products []string
	for _, r := range records {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			products = append(products, r.ProductID)
		}
	}
	sort.Strings(products)
	return products
}

// findIndex finds the index of the first candidate in a slice
func findIndex(slice []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, item := range slice {
			if strings.EqualFold(strings.TrimSpace(item), candidate) {
				return i
			}
		}
	}
	return -1
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data %q fora dos formatos aceitos", value)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
