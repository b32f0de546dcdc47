package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
)

// column widths in mm for an A4 landscape page
var pdfColumnWidths = []float64{36, 34, 60, 26, 36, 85}

// PDFExporter writes records as a landscape A4 table, one row per record,
// repeating the header on each page.
type PDFExporter struct{}

// Export writes the records to w.
func (e *PDFExporter) Export(w io.Writer, records []*audit.Record) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Rate Audit Trail", "", 1, "L", false, 0, "")
		e.headerRow(pdf)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range records {
		e.recordRow(pdf, rec)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (e *PDFExporter) headerRow(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range columnHeaders {
		pdf.CellFormat(pdfColumnWidths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
}

func (e *PDFExporter) recordRow(pdf *fpdf.Fpdf, rec *audit.Record) {
	for i, value := range recordRow(rec) {
		pdf.CellFormat(pdfColumnWidths[i], 6, truncate(value, 70), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

// truncate keeps table cells on one line; the CSV and XLSX exports carry the
// full text.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
