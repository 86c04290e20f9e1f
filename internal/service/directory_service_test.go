package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/events"
	"github.com/spec-kit/staff-directory/internal/session"
)

func roster() *directory.Roster {
	return directory.NewRoster([]domain.StaffRecord{
		{Name: "Bob", Position: "Nurse", School: "B", Department: "Health Services", Email: "bob@x.org"},
		{Name: "Ann", Position: "Teacher", School: "A", Department: "Science", Email: "ann@x.org"},
	})
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) (directory.State, bool, error) {
	return directory.State{}, false, errors.New("store down")
}

func (brokenStore) Save(context.Context, string, directory.State) error {
	return errors.New("store down")
}

func newService(store session.Store) *DirectoryService {
	return NewDirectoryService(StaticRoster(roster()), store, nil, nil)
}

func names(records []domain.StaffRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestRenderUsesDefaults(t *testing.T) {
	svc := newService(session.NewMemoryStore(4, 0))
	res := svc.Render(context.Background(), "s1", Controls{})

	assert.Equal(t, directory.TriggerInit, res.Evaluation.Trigger)
	assert.Equal(t, []string{"Bob", "Ann"}, names(res.Evaluation.Records))
	assert.Equal(t, directory.DefaultState(), res.State)
}

func TestSearchDebounceOption(t *testing.T) {
	assert.Equal(t, directory.DefaultQuietPeriod, newService(session.NewMemoryStore(4, 0)).SearchDebounce())

	svc := NewDirectoryService(StaticRoster(roster()), session.NewMemoryStore(4, 0), nil, nil, WithSearchDebounce(450*time.Millisecond))
	assert.Equal(t, 450*time.Millisecond, svc.SearchDebounce())

	svc = NewDirectoryService(StaticRoster(roster()), session.NewMemoryStore(4, 0), nil, nil, WithSearchDebounce(0))
	assert.Equal(t, directory.DefaultQuietPeriod, svc.SearchDebounce())
}

type swappingRoster struct {
	rosters []*directory.Roster
	calls   int
}

func (s *swappingRoster) Current() *directory.Roster {
	r := s.rosters[s.calls%len(s.rosters)]
	s.calls++
	return r
}

func TestResultCarriesEvaluatedRoster(t *testing.T) {
	first := roster()
	second := directory.NewRoster([]domain.StaffRecord{{Name: "Dee", School: "C", Department: "Arts"}})
	svc := NewDirectoryService(&swappingRoster{rosters: []*directory.Roster{first, second}}, session.NewMemoryStore(4, 0), nil, nil)

	res := svc.Render(context.Background(), "s1", Controls{})
	assert.Same(t, first, res.Roster)
	assert.Equal(t, first.Len(), res.Evaluation.Total)

	res, err := svc.Apply(context.Background(), "s1", Controls{}, events.New(events.EventSchoolFilterChanged, nil))
	require.NoError(t, err)
	assert.Same(t, second, res.Roster)
	assert.Equal(t, []string{"Dee"}, names(res.Evaluation.Records))
}

func TestApplySearchFlushesDebounce(t *testing.T) {
	svc := newService(session.NewMemoryStore(4, 0))
	res, err := svc.Apply(context.Background(), "s1", Controls{Search: "ann"}, events.New(events.EventSearchChanged, nil))
	require.NoError(t, err)

	assert.Equal(t, string(events.EventSearchChanged), res.Evaluation.Trigger)
	assert.Equal(t, []string{"Ann"}, names(res.Evaluation.Records))
	assert.Equal(t, "Showing 1 of 2 staff members", res.Evaluation.Message)
}

func TestApplyStatePersistsPerSession(t *testing.T) {
	svc := newService(session.NewMemoryStore(4, 0))
	ctx := context.Background()
	sortName := events.New(events.EventSortRequested, events.SortRequestedPayload{Column: domain.ColumnName})

	res, err := svc.Apply(ctx, "s1", Controls{}, sortName)
	require.NoError(t, err)
	assert.Equal(t, domain.SortDescending, res.State.Sort.Direction)

	res, err = svc.Apply(ctx, "s1", Controls{}, sortName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, names(res.Evaluation.Records))

	other := svc.Render(ctx, "s2", Controls{})
	assert.False(t, other.State.SortApplied, "sessions are independent")
}

func TestApplyBadPayload(t *testing.T) {
	svc := newService(session.NewMemoryStore(4, 0))
	_, err := svc.Apply(context.Background(), "s1", Controls{}, events.New(events.EventSortRequested, "name"))
	assert.ErrorIs(t, err, directory.ErrBadPayload)
}

func TestBrokenStoreDegradesToDefaults(t *testing.T) {
	svc := newService(brokenStore{})
	res, err := svc.Apply(context.Background(), "s1", Controls{}, events.New(events.EventViewToggled, events.ViewToggledPayload{View: domain.ViewTable}))
	require.NoError(t, err)
	assert.Equal(t, domain.ViewTable, res.Evaluation.View)
}

func TestExport(t *testing.T) {
	svc := newService(session.NewMemoryStore(4, 0))
	artifact, err := svc.Export(context.Background(), "s1", Controls{School: "A"})
	require.NoError(t, err)

	assert.Equal(t, directory.ExportFileName, artifact.Name)
	lines := strings.Split(strings.TrimRight(string(artifact.Body), "\n"), "\n")
	assert.Equal(t, []string{directory.ExportHeader, `"Ann","Teacher","A","ann@x.org",""`}, lines)
}
