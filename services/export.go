package services

import (
	"bytes"
	"expedientes_app_go/models"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportCasesToExcel builds an .xlsx workbook with one row per case.
// Column order mirrors the list projection of the cases endpoint.
func ExportCasesToExcel(cases []models.LawCase) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expedientes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Código interno", "Carátula", "Nro. expediente", "Juzgado", "Fuero",
		"Estado", "Abogado responsable", "Cliente", "DNI cliente", "Contraparte",
		"Fecha de inicio",
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, lc := range cases {
		values := []interface{}{
			lc.CodigoInterno, lc.Caratula, lc.NroExpediente, lc.Juzgado, lc.Fuero,
			lc.Estado, lc.AbogadoResponsable, lc.ClienteNombre, lc.ClienteDNI,
			lc.Contraparte, lc.FechaInicio,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Make the caratula and client columns readable
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "G", "H", 24)

	return f.WriteToBuffer()
}
