package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/staff-directory/internal/config"
	"github.com/spec-kit/staff-directory/internal/domain"
)

type failingSource struct{}

func (failingSource) List(context.Context) ([]domain.StaffRecord, error) {
	return nil, errors.New("connection refused")
}

func TestJSONRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Ann","position":"Teacher","school":"A","department":"Science","email":"ann@x.org","phone":"5551234567","photo":"ann.jpg"},
		{"name":"Bob","position":"Nurse","school":"B","department":"Health Services","email":"bob@x.org","phone":"555-0000","photo":"bob.jpg","office":"Room 2"}
	]`), 0o600))

	records, err := NewJSONRoster(path).List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ann", records[0].Name)
	assert.Equal(t, "Room 2", records[1].Office)
}

func TestJSONRosterMissingFile(t *testing.T) {
	_, err := NewJSONRoster(filepath.Join(t.TempDir(), "nope.json")).List(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "staff.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSpreadsheetRoster(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{" Name ", "POSITION", "School", "Department", "Email", "Phone", "Notes", "Photo"},
		{"Ann", "Teacher", "A", "Science", "ann@x.org", "5551234567", "ignored", "ann.jpg"},
		{"", "", "", "", "", "", "", ""},
		{"Bob", "Nurse", "B", "Health Services", "bob@x.org", "555-0000", "", "bob.jpg"},
	})

	records, err := NewSpreadsheetRoster(path).List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.StaffRecord{
		Name: "Ann", Position: "Teacher", School: "A", Department: "Science",
		Email: "ann@x.org", Phone: "5551234567", Photo: "ann.jpg",
	}, records[0])
	assert.Equal(t, "Bob", records[1].Name)
	assert.Empty(t, records[1].Office)
}

func TestRecordsFromRows(t *testing.T) {
	t.Run("requires name column", func(t *testing.T) {
		_, err := RecordsFromRows([][]string{{"position", "school"}, {"Teacher", "A"}})
		assert.ErrorIs(t, err, ErrMissingName)
	})
	t.Run("empty sheet", func(t *testing.T) {
		_, err := RecordsFromRows(nil)
		assert.ErrorIs(t, err, ErrEmptyWorksheet)
	})
	t.Run("short rows read as empty", func(t *testing.T) {
		records, err := RecordsFromRows([][]string{{"name", "office"}, {"Cy"}})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Cy", records[0].Name)
		assert.False(t, records[0].HasOffice())
	})
	t.Run("header only", func(t *testing.T) {
		records, err := RecordsFromRows([][]string{{"name"}})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestNewRosterSource(t *testing.T) {
	src, err := NewRosterSource(config.RosterConfig{Source: config.RosterSourceJSON, Path: "x.json"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONRoster{}, src)

	src, err = NewRosterSource(config.RosterConfig{Source: config.RosterSourceSpreadsheet, Path: "x.xlsx"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SpreadsheetRoster{}, src)

	_, err = NewRosterSource(config.RosterConfig{Source: config.RosterSourcePostgres}, nil)
	assert.Error(t, err)

	_, err = NewRosterSource(config.RosterConfig{Source: "ldap"}, nil)
	assert.Error(t, err)
}

func TestLoadRosterFallsBackToEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	roster := LoadRoster(context.Background(), failingSource{}, zap.New(core))

	assert.Equal(t, 0, roster.Len())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "error loading staff data", logs.All()[0].Message)
}
