package directory

import (
	"slices"
	"strings"

	"github.com/spec-kit/staff-directory/internal/domain"
)

type sortEntry struct {
	key    string
	record domain.StaffRecord
}

// Sort returns a stably ordered copy of records by s. Values compare
// case-insensitively; equal keys keep their input order in both directions.
func Sort(records []domain.StaffRecord, s domain.SortState) []domain.StaffRecord {
	entries := make([]sortEntry, len(records))
	for i, rec := range records {
		entries[i] = sortEntry{key: strings.ToLower(rec.Field(s.Column)), record: rec}
	}

	desc := s.Direction == domain.SortDescending
	slices.SortStableFunc(entries, func(a, b sortEntry) int {
		if desc {
			return strings.Compare(b.key, a.key)
		}
		return strings.Compare(a.key, b.key)
	})

	out := make([]domain.StaffRecord, len(entries))
	for i, e := range entries {
		out[i] = e.record
	}
	return out
}
