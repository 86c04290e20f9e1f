package directory

import (
	"strings"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// searchFields are the columns the search box matches against.
var searchFields = []domain.Column{domain.ColumnName, domain.ColumnPosition, domain.ColumnEmail}

// exportSearchFields omits email: the exporter matches name and position only.
var exportSearchFields = []domain.Column{domain.ColumnName, domain.ColumnPosition}

// Filter returns the records matching q, in input order. The input is not modified.
func Filter(records []domain.StaffRecord, q domain.QueryState) []domain.StaffRecord {
	return filterBy(records, q, searchFields)
}

func filterBy(records []domain.StaffRecord, q domain.QueryState, fields []domain.Column) []domain.StaffRecord {
	q = q.Normalize()
	term := strings.ToLower(q.SearchText)

	out := make([]domain.StaffRecord, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(rec, term, fields) {
			continue
		}
		if !matchesCategory(rec.School, q.SchoolFilter) {
			continue
		}
		if !matchesCategory(rec.Department, q.DepartmentFilter) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesSearch expects term already lower-cased.
func matchesSearch(rec domain.StaffRecord, term string, fields []domain.Column) bool {
	if term == "" {
		return true
	}
	for _, col := range fields {
		if strings.Contains(strings.ToLower(rec.Field(col)), term) {
			return true
		}
	}
	return false
}

func matchesCategory(value, filter string) bool {
	return filter == domain.FilterAll || value == filter
}
