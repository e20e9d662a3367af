package services

import (
	"bytes"
	"expedientes_app_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportCasesToExcel(t *testing.T) {
	cases := []models.LawCase{
		{
			CodigoInterno: "ENT-0001-2024-JLCA",
			Caratula:      "Pérez c/ Gómez s/ daños",
			NroExpediente: "12345/2024",
			Juzgado:       "Juzgado Civil 5",
			Fuero:         "Civil",
			Estado:        models.CaseStatusOpen,
			ClienteNombre: "Pérez",
			ClienteDNI:    "30123456",
			FechaInicio:   "2024-03-01",
		},
		{
			CodigoInterno: "ENT-0002-2024-JLCA",
			Caratula:      "Rodríguez s/ sucesión",
			Estado:        models.CaseStatusClosed,
		},
	}

	buf, err := ExportCasesToExcel(cases)
	assert.NoError(t, err)
	assert.NotNil(t, buf)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Expedientes")
	assert.NoError(t, err)
	// Header plus one row per case
	assert.Len(t, rows, 3)
	assert.Equal(t, "Código interno", rows[0][0])
	assert.Equal(t, "ENT-0001-2024-JLCA", rows[1][0])
	assert.Equal(t, "Pérez c/ Gómez s/ daños", rows[1][1])
	assert.Equal(t, "ENT-0002-2024-JLCA", rows[2][0])
}

func TestExportCasesToExcelEmpty(t *testing.T) {
	buf, err := ExportCasesToExcel(nil)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Expedientes")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
