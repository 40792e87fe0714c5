package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVRenderer writes the report rows as RFC 4180 CSV. Fields containing
// commas or quotes are quoted by the writer.
type CSVRenderer struct{}

func (CSVRenderer) ContentType() string   { return "text/csv" }
func (CSVRenderer) FileExtension() string { return "csv" }

func (CSVRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range tableRows(doc) {
		if len(row) == 0 {
			// csv.Writer refuses empty records; an empty field keeps the
			// blank separator line.
			row = []string{""}
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("could not write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("could not flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
