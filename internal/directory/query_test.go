package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-directory/internal/domain"
)

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(annAndBob(), domain.QueryState{SearchText: "an"})
	assert.Equal(t, []string{"Ann"}, names(got))

	got = Filter(annAndBob(), domain.QueryState{SearchText: "AN"})
	assert.Equal(t, []string{"Ann"}, names(got))
}

func TestFilterSearchFields(t *testing.T) {
	cases := []struct {
		name   string
		search string
		want   []string
	}{
		{"empty matches all", "", []string{"Maria Lopez", "David Chen", "sarah Patel", "Tom Reyes", "Angela Brooks", "Daniel Kim"}},
		{"by name", "chen", []string{"David Chen"}},
		{"by position", "math teacher", []string{"David Chen", "Daniel Kim"}},
		{"by email", "spatel@", []string{"sarah Patel"}},
		{"school is not searched", "elementary", []string{}},
		{"no match", "zzz", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(district(), domain.QueryState{SearchText: tc.search})
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestFilterCategoricalPredicates(t *testing.T) {
	q := domain.QueryState{SchoolFilter: "Mayton Junior High", DepartmentFilter: "Mathematics"}
	assert.Equal(t, []string{"Daniel Kim"}, names(Filter(district(), q)))

	q = domain.QueryState{SchoolFilter: "mayton junior high", DepartmentFilter: domain.FilterAll}
	assert.Empty(t, Filter(district(), q), "school match is case-sensitive")

	q = domain.QueryState{SchoolFilter: "", DepartmentFilter: ""}
	assert.Len(t, Filter(district(), q), len(district()), "absent filters match all")

	q = domain.QueryState{DepartmentFilter: "Athletics"}
	assert.Empty(t, Filter(district(), q), "unknown filter value matches nothing")
}

func TestFilterIsOrderPreservingSubsequence(t *testing.T) {
	roster := district()
	queries := []domain.QueryState{
		{SearchText: "a"},
		{SearchText: "teacher", SchoolFilter: "Mayton Junior High"},
		{DepartmentFilter: "Mathematics"},
		{SearchText: "mayton.k12"},
	}
	for _, q := range queries {
		got := Filter(roster, q)
		j := 0
		for _, rec := range got {
			for j < len(roster) && roster[j] != rec {
				j++
			}
			require.Less(t, j, len(roster), "record %q out of roster order", rec.Name)
			j++
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	roster := district()
	before := append([]domain.StaffRecord(nil), roster...)
	_ = Filter(roster, domain.QueryState{SearchText: "teacher"})
	assert.Equal(t, before, roster)
}
