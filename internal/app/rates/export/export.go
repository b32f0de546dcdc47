// Package export renders audit trail pages as downloadable files. Exports
// operate on already-queried records, so filtering and paging stay in the
// query layer.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned for formats outside the supported set.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a request parameter to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// FileName returns a timestamped download name for the format.
func (f Format) FileName(now time.Time) string {
	return fmt.Sprintf("rate-audit-%s.%s", now.Format("20060102-150405"), f)
}

// Exporter writes audit records in one format.
type Exporter interface {
	Export(w io.Writer, records []*audit.Record) error
}

// New returns the exporter for the format.
func New(format Format) (Exporter, error) {
	switch format {
	case FormatCSV:
		return &CSVExporter{}, nil
	case FormatXLSX:
		return &XLSXExporter{}, nil
	case FormatPDF:
		return &PDFExporter{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// columnHeaders is the shared column set across all formats.
var columnHeaders = []string{
	"Occurred At", "Entity Type", "Entity ID", "Action", "Actor", "Changes",
}

// recordRow flattens one record into the shared column set.
func recordRow(rec *audit.Record) []string {
	return []string{
		rec.OccurredAt.UTC().Format(time.RFC3339),
		string(rec.EntityType),
		rec.EntityID,
		string(rec.Action),
		actorLabel(rec.Actor),
		changesSummary(rec.ChangedFields),
	}
}

func actorLabel(actor audit.Actor) string {
	if actor.DisplayName != "" {
		return actor.DisplayName
	}
	return actor.ID
}

// changesSummary renders field changes as "Label: old -> new" lines.
func changesSummary(changes []audit.FieldChange) string {
	parts := make([]string, 0, len(changes))
	for _, change := range changes {
		switch change.Kind {
		case audit.ChangeAdded:
			parts = append(parts, fmt.Sprintf("%s: %v (added)", change.Label, change.New))
		case audit.ChangeRemoved:
			parts = append(parts, fmt.Sprintf("%s: %v (removed)", change.Label, change.Previous))
		default:
			parts = append(parts, fmt.Sprintf("%s: %v -> %v", change.Label, change.Previous, change.New))
		}
	}
	return strings.Join(parts, "; ")
}
