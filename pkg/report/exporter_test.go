package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func financialDocument() Document {
	return Document{
		Type:        TypeFinancial,
		DateRange:   Last30Days,
		GeneratedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Data: Data{
			RevenueBreakdown: []RevenueBucket{
				{Period: "Jan", Amount: 1000, ProjectCount: 2},
			},
			ProjectProfitability: []Profitability{
				{ProjectName: "Website Relaunch", Revenue: 1000, Cost: 800, Profit: 200, Margin: 20},
			},
		},
	}
}

type failingRenderer struct{}

func (failingRenderer) ContentType() string   { return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" }
func (failingRenderer) FileExtension() string { return "xlsx" }
func (failingRenderer) Render(Document) ([]byte, error) {
	return nil, errors.New("workbook write failed")
}

func TestExporter_Export(t *testing.T) {
	t.Run("should render the requested format", func(t *testing.T) {
		export, err := NewExporter().Export(financialDocument(), "csv")

		require.NoError(t, err)
		assert.Equal(t, "text/csv", export.ContentType)
		assert.Equal(t, "report-financial-2025-06-15.csv", export.FileName)
	})

	t.Run("should fall back to plain text for an unknown format", func(t *testing.T) {
		export, err := NewExporter().Export(financialDocument(), "docx")

		require.NoError(t, err)
		assert.Equal(t, "text/plain", export.ContentType)
		assert.Equal(t, "report-financial-2025-06-15.txt", export.FileName)
	})

	t.Run("should degrade a failed spreadsheet render to CSV", func(t *testing.T) {
		exporter := NewExporter().withRenderer("excel", failingRenderer{})

		export, err := exporter.Export(financialDocument(), "excel")

		require.NoError(t, err)
		assert.Equal(t, "text/csv", export.ContentType)
		assert.Equal(t, "report-financial-2025-06-15.csv", export.FileName)
		assert.Contains(t, string(export.Content), "PROJECT PROFITABILITY")
	})

	t.Run("should not degrade other failed renders", func(t *testing.T) {
		exporter := NewExporter().withRenderer("pdf", failingRenderer{})

		_, err := exporter.Export(financialDocument(), "pdf")

		assert.EqualError(t, err, "workbook write failed")
	})
}

func TestTextRenderer_Render(t *testing.T) {
	content, err := TextRenderer{}.Render(financialDocument())

	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "Project Estimation Report")
	assert.Contains(t, text, "Report Type: financial")
	assert.Contains(t, text, "REVENUE BREAKDOWN")
	assert.Contains(t, text, "Jan: $1000 (2 projects)")
	assert.Contains(t, text, "Margin: 20%")
}

func TestCSVRenderer_Render(t *testing.T) {
	content, err := CSVRenderer{}.Render(financialDocument())

	require.NoError(t, err)
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Report Type", "financial"}, records[0])
	assert.Contains(t, records, []string{"Website Relaunch", "$1000", "$800", "$200", "20%"})
}

func TestExcelRenderer_Render(t *testing.T) {
	content, err := ExcelRenderer{}.Render(financialDocument())

	require.NoError(t, err)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}

func TestPDFRenderer_Render(t *testing.T) {
	content, err := PDFRenderer{}.Render(financialDocument())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}
