package domain

import "strings"

// StaffRecord models one entry of the published staff roster.
type StaffRecord struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	School     string `json:"school"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Office     string `json:"office,omitempty"`
	Photo      string `json:"photo"`
}

// Column names a StaffRecord field.
type Column string

const (
	ColumnName       Column = "name"
	ColumnPosition   Column = "position"
	ColumnSchool     Column = "school"
	ColumnDepartment Column = "department"
	ColumnEmail      Column = "email"
	ColumnPhone      Column = "phone"
	ColumnOffice     Column = "office"
	ColumnPhoto      Column = "photo"
)

// Columns lists every known record field in declaration order.
var Columns = []Column{
	ColumnName,
	ColumnPosition,
	ColumnSchool,
	ColumnDepartment,
	ColumnEmail,
	ColumnPhone,
	ColumnOffice,
	ColumnPhoto,
}

// ParseColumn maps a field name to its Column, ignoring case and surrounding space.
func ParseColumn(value string) (Column, bool) {
	candidate := Column(strings.ToLower(strings.TrimSpace(value)))
	for _, col := range Columns {
		if col == candidate {
			return col, true
		}
	}
	return candidate, false
}

// Field returns the value stored under column. Unknown columns read as "".
func (r StaffRecord) Field(column Column) string {
	switch column {
	case ColumnName:
		return r.Name
	case ColumnPosition:
		return r.Position
	case ColumnSchool:
		return r.School
	case ColumnDepartment:
		return r.Department
	case ColumnEmail:
		return r.Email
	case ColumnPhone:
		return r.Phone
	case ColumnOffice:
		return r.Office
	case ColumnPhoto:
		return r.Photo
	default:
		return ""
	}
}

// HasOffice reports whether the optional office field is populated.
func (r StaffRecord) HasOffice() bool {
	return strings.TrimSpace(r.Office) != ""
}
