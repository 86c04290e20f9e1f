package domain

// FilterAll is the categorical filter value that matches every record.
const FilterAll = "all"

// QueryState captures the search box and the two categorical filters.
type QueryState struct {
	SearchText       string
	SchoolFilter     string
	DepartmentFilter string
}

// Normalize treats absent filter selections as FilterAll.
func (q QueryState) Normalize() QueryState {
	if q.SchoolFilter == "" {
		q.SchoolFilter = FilterAll
	}
	if q.DepartmentFilter == "" {
		q.DepartmentFilter = FilterAll
	}
	return q
}

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ParseSortDirection defaults anything but "desc" to ascending.
func ParseSortDirection(value string) SortDirection {
	if SortDirection(value) == SortDescending {
		return SortDescending
	}
	return SortAscending
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// SortState is the active sort column and direction.
type SortState struct {
	Column    Column        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortState is name ascending.
func DefaultSortState() SortState {
	return SortState{Column: ColumnName, Direction: SortAscending}
}

// Toggle applies a header click: the active column flips direction, any other
// column becomes active in ascending order.
func (s SortState) Toggle(column Column) SortState {
	if s.Column == column {
		return SortState{Column: column, Direction: s.Direction.Flip()}
	}
	return SortState{Column: column, Direction: SortAscending}
}
