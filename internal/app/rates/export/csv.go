package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
)

// CSVExporter writes records as RFC 4180 CSV with a header row.
type CSVExporter struct{}

// Export writes the records to w.
func (e *CSVExporter) Export(w io.Writer, records []*audit.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columnHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(recordRow(rec)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
