package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// ExcelRenderer writes the report rows into a single-sheet XLSX workbook.
type ExcelRenderer struct{}

func (ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (ExcelRenderer) FileExtension() string { return "xlsx" }

func (ExcelRenderer) Render(doc Document) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("could not create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("could not delete default sheet: %w", err)
	}

	for i, row := range tableRows(doc) {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("could not compute cell name: %w", err)
		}
		values := make([]any, len(row))
		for j, field := range row {
			values[j] = field
		}
		if err := file.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("could not write row %d: %w", i+1, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
