package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/domain"
)

// JSONRoster reads a JSON array of staff records from disk.
type JSONRoster struct {
	path string
}

// NewJSONRoster returns a source backed by the file at path.
func NewJSONRoster(path string) *JSONRoster {
	return &JSONRoster{path: path}
}

// List decodes the roster file on every call.
func (r *JSONRoster) List(_ context.Context) ([]domain.StaffRecord, error) {
	payload, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", r.path, err)
	}
	return directory.DecodeRoster(payload)
}
