package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/staff-directory/internal/domain"
)

func TestToDelimitedTextHeaderOnlyWhenEmpty(t *testing.T) {
	got := ToDelimitedText(annAndBob(), domain.QueryState{SearchText: "nobody"})
	assert.Equal(t, "Name,Position,School,Email,Phone\n", got)

	got = ToDelimitedText(nil, domain.QueryState{})
	assert.Equal(t, "Name,Position,School,Email,Phone\n", got)
}

func TestToDelimitedTextRows(t *testing.T) {
	got := ToDelimitedText(annAndBob(), domain.QueryState{})
	want := "Name,Position,School,Email,Phone\n" +
		`"Bob","Teacher","A","b@x.com","5551234567"` + "\n" +
		`"Ann","Nurse","B","a@x.com","123"` + "\n"
	assert.Equal(t, want, got)
}

func TestExportSearchIgnoresEmail(t *testing.T) {
	q := domain.QueryState{SearchText: "b@x"}
	assert.Equal(t, []string{"Bob"}, names(Filter(annAndBob(), q)))
	assert.Empty(t, ExportFilter(annAndBob(), q))

	q = domain.QueryState{SearchText: "nurse"}
	assert.Equal(t, []string{"Ann"}, names(ExportFilter(annAndBob(), q)))
}

func TestExportAppliesCategoryFilters(t *testing.T) {
	q := domain.QueryState{SchoolFilter: "Mayton Junior High", DepartmentFilter: "Mathematics"}
	assert.Equal(t, []string{"Daniel Kim"}, names(ExportFilter(district(), q)))
}

func TestToDelimitedTextLeavesQuotesUnescaped(t *testing.T) {
	records := []domain.StaffRecord{{Name: `Jo "JJ" Smith`, Position: "Coach, Varsity"}}
	got := ToDelimitedText(records, domain.QueryState{})
	assert.Equal(t, "Name,Position,School,Email,Phone\n"+`"Jo "JJ" Smith","Coach, Varsity","","",""`+"\n", got)
}
