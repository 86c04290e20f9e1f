// Package directory implements the staff directory engine: the roster store,
// the query evaluator, the sort stage, the grid/table renderers and the CSV
// exporter, plus the debounced trigger wiring that ties them to a UI.
package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// ErrEmptyPayload is returned when no roster payload was supplied.
var ErrEmptyPayload = errors.New("roster payload is empty")

// Roster is the immutable staff list for a session.
type Roster struct {
	records []domain.StaffRecord
}

// NewRoster copies records into a new roster.
func NewRoster(records []domain.StaffRecord) *Roster {
	return &Roster{records: slices.Clone(records)}
}

// EmptyRoster returns a roster with no records.
func EmptyRoster() *Roster {
	return &Roster{}
}

// DecodeRoster parses a JSON array of staff records.
func DecodeRoster(payload []byte) ([]domain.StaffRecord, error) {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil, ErrEmptyPayload
	}
	var records []domain.StaffRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return records, nil
}

// LoadRoster decodes payload; a malformed or missing payload is logged and
// yields an empty roster.
func LoadRoster(payload []byte, logger *zap.Logger) *Roster {
	records, err := DecodeRoster(payload)
	if err != nil {
		if logger != nil {
			logger.Error("error loading staff data", zap.Error(err))
		}
		return EmptyRoster()
	}
	return NewRoster(records)
}

// Len returns the number of records.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// Records returns a copy of the records in roster order.
func (r *Roster) Records() []domain.StaffRecord {
	if r == nil {
		return nil
	}
	return slices.Clone(r.records)
}

// Schools lists the distinct school values, sorted.
func (r *Roster) Schools() []string {
	return r.distinct(domain.ColumnSchool)
}

// Departments lists the distinct department values, sorted.
func (r *Roster) Departments() []string {
	return r.distinct(domain.ColumnDepartment)
}

func (r *Roster) distinct(column domain.Column) []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(r.records))
	values := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		v := rec.Field(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
