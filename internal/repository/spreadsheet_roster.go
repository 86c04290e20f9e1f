package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/staff-directory/internal/domain"
)

const maxSpreadsheetRows = 100000

// Errors returned when a workbook cannot be read as a roster.
var (
	// ErrNoWorksheet means the workbook has no sheets.
	ErrNoWorksheet = errors.New("no worksheet found")
	// ErrEmptyWorksheet means the first sheet has no header row.
	ErrEmptyWorksheet = errors.New("worksheet is empty")
	// ErrMissingName means no header cell maps to the name field.
	ErrMissingName = errors.New("header row has no name column")
)

// SpreadsheetRoster reads staff records from the first sheet of an .xlsx or
// .xls workbook. The first row names the record fields.
type SpreadsheetRoster struct {
	path string
}

// NewSpreadsheetRoster returns a source backed by the workbook at path.
func NewSpreadsheetRoster(path string) *SpreadsheetRoster {
	return &SpreadsheetRoster{path: path}
}

// List reads the first worksheet and maps each data row to a record.
func (r *SpreadsheetRoster) List(_ context.Context) ([]domain.StaffRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", r.path, err)
	}
	rows, err := readSheetRows(data, r.path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", r.path, err)
	}
	return RecordsFromRows(rows)
}

func readSheetRows(data []byte, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, ErrNoWorksheet
		}
		rows := workbook.ReadAllCells(maxSpreadsheetRows)
		if len(rows) == 0 {
			return nil, ErrEmptyWorksheet
		}
		return rows, nil
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheet := file.GetSheetName(0)
		if sheet == "" {
			return nil, ErrNoWorksheet
		}
		rows, err := file.GetRows(sheet)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, ErrEmptyWorksheet
		}
		return rows, nil
	}
}

// RecordsFromRows maps a header row plus data rows onto staff records.
// Unknown header cells are ignored and blank rows are skipped.
func RecordsFromRows(rows [][]string) ([]domain.StaffRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}

	index := map[domain.Column]int{}
	for i, cell := range rows[0] {
		if col, ok := domain.ParseColumn(cell); ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	if _, ok := index[domain.ColumnName]; !ok {
		return nil, ErrMissingName
	}

	records := make([]domain.StaffRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		get := func(col domain.Column) string {
			idx, ok := index[col]
			if !ok {
				return ""
			}
			return cellValue(row, idx)
		}
		records = append(records, domain.StaffRecord{
			Name:       get(domain.ColumnName),
			Position:   get(domain.ColumnPosition),
			School:     get(domain.ColumnSchool),
			Department: get(domain.ColumnDepartment),
			Email:      get(domain.ColumnEmail),
			Phone:      get(domain.ColumnPhone),
			Office:     get(domain.ColumnOffice),
			Photo:      get(domain.ColumnPhoto),
		})
	}
	return records, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
