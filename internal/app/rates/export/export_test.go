package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
)

var exportedAt = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func sampleRecord() *audit.Record {
	return &audit.Record{
		AuditID:    "audit-1",
		EntityType: audit.EntityRoomRate,
		EntityID:   "bar|std|2026-06-15",
		Action:     audit.ActionUpdate,
		Actor:      audit.Actor{ID: "user-7", DisplayName: "Revenue Manager"},
		ChangedFields: []audit.FieldChange{
			{Field: "rateAmount", Label: "Rate Amount", Kind: audit.ChangeModified, Previous: "100.00", New: "130.00"},
			{Field: "stopSell", Label: "Stop Sell", Kind: audit.ChangeAdded, New: true},
			{Field: "reason", Label: "Reason", Kind: audit.ChangeRemoved, Previous: "event pricing"},
		},
		OccurredAt: exportedAt,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{"Pdf", FormatPDF, false},
		{"doc", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FormatXLSX.ContentType())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestFormat_FileName(t *testing.T) {
	assert.Equal(t, "rate-audit-20260302-093000.csv", FormatCSV.FileName(exportedAt))
	assert.Equal(t, "rate-audit-20260302-093000.xlsx", FormatXLSX.FileName(exportedAt))
}

func TestNew(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatXLSX, FormatPDF} {
		exporter, err := New(format)
		require.NoError(t, err)
		assert.NotNil(t, exporter)
	}

	_, err := New(Format("doc"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCSVExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, []*audit.Record{sampleRecord()}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Occurred At,Entity Type,Entity ID,Action,Actor,Changes", lines[0])
	assert.Equal(t,
		"2026-03-02T09:30:00Z,ROOM_RATE,bar|std|2026-06-15,UPDATE,Revenue Manager,"+
			"Rate Amount: 100.00 -> 130.00; Stop Sell: true (added); Reason: event pricing (removed)",
		lines[1])
}

func TestCSVExporter_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CSVExporter{}).Export(&buf, nil))
	assert.Equal(t, "Occurred At,Entity Type,Entity ID,Action,Actor,Changes\n", buf.String())
}

func TestXLSXExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&XLSXExporter{}).Export(&buf, []*audit.Record{sampleRecord()}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Audit Trail"}, f.GetSheetList())

	rows, err := f.GetRows("Audit Trail")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, columnHeaders, rows[0])
	assert.Equal(t, "bar|std|2026-06-15", rows[1][2])
	assert.Equal(t, "UPDATE", rows[1][3])
}

func TestPDFExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PDFExporter{}).Export(&buf, []*audit.Record{sampleRecord()}))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))
}

func TestRecordRow_ActorFallsBackToID(t *testing.T) {
	rec := sampleRecord()
	rec.Actor = audit.Actor{ID: "user-7"}

	row := recordRow(rec)
	assert.Equal(t, "user-7", row[4])
}

func TestRecordRow_NormalizesToUTC(t *testing.T) {
	rec := sampleRecord()
	rec.OccurredAt = exportedAt.In(time.FixedZone("CET", 3600))

	row := recordRow(rec)
	assert.Equal(t, "2026-03-02T09:30:00Z", row[0])
}
