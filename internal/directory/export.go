package directory

import (
	"strings"

	"github.com/spec-kit/staff-directory/internal/domain"
)

const (
	// ExportFileName is the download name of the CSV artifact.
	ExportFileName = "staff-directory.csv"
	// ExportContentType is the MIME type of the CSV artifact.
	ExportContentType = "text/csv"
	// ExportHeader is the fixed first line of every export.
	ExportHeader = "Name,Position,School,Email,Phone"
)

// Artifact is a downloadable file produced by the engine.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// ExportFilter selects export rows. Unlike Filter, search text is matched
// against name and position only.
func ExportFilter(records []domain.StaffRecord, q domain.QueryState) []domain.StaffRecord {
	return filterBy(records, q, exportSearchFields)
}

// ToDelimitedText serializes the export-filtered records in roster order.
// Fields are wrapped in double quotes; quotes inside a field are written as is.
func ToDelimitedText(records []domain.StaffRecord, q domain.QueryState) string {
	var b strings.Builder
	b.WriteString(ExportHeader)
	b.WriteByte('\n')
	for _, rec := range ExportFilter(records, q) {
		writeQuoted(&b, rec.Name, rec.Position, rec.School, rec.Email, rec.Phone)
	}
	return b.String()
}

func writeQuoted(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
