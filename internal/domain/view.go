package domain

import "strings"

// ViewMode selects the presentation of the visible records.
type ViewMode string

const (
	ViewGrid  ViewMode = "grid"
	ViewTable ViewMode = "table"
)

// ParseViewMode falls back to the grid view for unknown values.
func ParseViewMode(value string) ViewMode {
	if ViewMode(strings.ToLower(strings.TrimSpace(value))) == ViewTable {
		return ViewTable
	}
	return ViewGrid
}
