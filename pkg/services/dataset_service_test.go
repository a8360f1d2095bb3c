package services

import (
	"strings"
	"testing"

	"bistro-forecast-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `data_ref,produto,quantidade
2024-01-15,Croissant,10
2024-01-20,Croissant,5
2024-02-10,Croissant,12
2024-03-05,Croissant,9
2024-01-12,Brigadeiro,30
`

func TestLoadFromUploadCSV(t *testing.T) {
	service := NewDatasetService()

	preview, err := service.LoadFromUpload("vendas.csv", strings.NewReader(sampleCSV))
	assert.NoError(t, err)
	assert.NotNil(t, preview)

	// Uma linha de dados produz exatamente um registro
	assert.Equal(t, 5, preview.RowCount)

	// Catálogo em ordem alfabética
	assert.Equal(t, []string{"Brigadeiro", "Croissant"}, preview.Products)

	assert.Equal(t, "2024-01-12", preview.FirstDate)
	assert.Equal(t, "2024-03-05", preview.LastDate)

	// Pré-visualização com período AAAA-MM
	assert.Equal(t, "2024-01", preview.Rows[0].Periodo)

	dataset, err := service.Current()
	assert.NoError(t, err)
	assert.Len(t, dataset.Records, 5)
}

func TestLoadFromUploadAlternateHeaders(t *testing.T) {
	service := NewDatasetService()

	csvData := "date,product_id,quantity\n2024/1/2,P001,4\n"
	preview, err := service.LoadFromUpload("sales.csv", strings.NewReader(csvData))
	assert.NoError(t, err)
	assert.Equal(t, 1, preview.RowCount)
	assert.Equal(t, []string{"P001"}, preview.Products)
}

func TestLoadFromUploadMissingColumns(t *testing.T) {
	service := NewDatasetService()

	csvData := "data_ref,quantidade\n2024-01-15,10\n"
	_, err := service.LoadFromUpload("vendas.csv", strings.NewReader(csvData))
	assert.ErrorIs(t, err, models.ErrMalformedInput)
	assert.Contains(t, err.Error(), "produto")
}

func TestLoadFromUploadBadDateAbortsWholeLoad(t *testing.T) {
	service := NewDatasetService()

	// Carga inicial válida
	_, err := service.LoadFromUpload("vendas.csv", strings.NewReader(sampleCSV))
	assert.NoError(t, err)

	// Nova carga com uma única data inválida: rejeitada por inteiro
	csvData := "data_ref,produto,quantidade\n2024-01-15,Croissant,10\nontem,Croissant,5\n"
	_, err = service.LoadFromUpload("vendas2.csv", strings.NewReader(csvData))
	assert.ErrorIs(t, err, models.ErrMalformedInput)
	assert.Contains(t, err.Error(), "linha 3")

	// O conjunto anterior permanece utilizável
	dataset, err := service.Current()
	assert.NoError(t, err)
	assert.Equal(t, "vendas.csv", dataset.FileName)
	assert.Len(t, dataset.Records, 5)
}

func TestLoadFromUploadBadQuantity(t *testing.T) {
	service := NewDatasetService()

	csvData := "data_ref,produto,quantidade\n2024-01-15,Croissant,muitos\n"
	_, err := service.LoadFromUpload("vendas.csv", strings.NewReader(csvData))
	assert.ErrorIs(t, err, models.ErrMalformedInput)
}

func TestLoadFromUploadNegativeQuantity(t *testing.T) {
	service := NewDatasetService()

	csvData := "data_ref,produto,quantidade\n2024-01-15,Croissant,-3\n"
	_, err := service.LoadFromUpload("vendas.csv", strings.NewReader(csvData))
	assert.ErrorIs(t, err, models.ErrMalformedInput)
}

func TestLoadFromUploadNonFiniteQuantity(t *testing.T) {
	service := NewDatasetService()

	// ParseFloat aceita estes literais; a carga precisa recusá-los
	// antes que cheguem ao motor
	for _, value := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		csvData := "data_ref,produto,quantidade\n2024-01-15,Croissant,10\n2024-02-15,Croissant," + value + "\n"
		_, err := service.LoadFromUpload("vendas.csv", strings.NewReader(csvData))
		assert.ErrorIs(t, err, models.ErrMalformedInput, "quantidade %q deveria ser rejeitada", value)
		assert.Contains(t, err.Error(), "linha 3")
	}

	// Nada foi ingerido
	_, err := service.Current()
	assert.ErrorIs(t, err, models.ErrNoDataset)
}

func TestLoadFromUploadUnsupportedFormat(t *testing.T) {
	service := NewDatasetService()

	_, err := service.LoadFromUpload("vendas.pdf", strings.NewReader("dados"))
	assert.ErrorIs(t, err, models.ErrMalformedInput)
}

func TestLoadFromUploadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"data_ref", "produto", "quantidade"},
		{"2024-01-15", "Croissant", "10"},
		{"2024-02-10", "Croissant", "12"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)

	service := NewDatasetService()
	preview, err := service.LoadFromUpload("vendas.xlsx", buf)
	assert.NoError(t, err)
	assert.Equal(t, 2, preview.RowCount)
	assert.Equal(t, []string{"Croissant"}, preview.Products)
}

func TestCurrentWithoutDataset(t *testing.T) {
	service := NewDatasetService()

	_, err := service.Current()
	assert.ErrorIs(t, err, models.ErrNoDataset)

	_, err = service.Products()
	assert.ErrorIs(t, err, models.ErrNoDataset)

	_, err = service.Preview()
	assert.ErrorIs(t, err, models.ErrNoDataset)
}
