// Package session keeps per-visitor directory state (sort and view) between
// requests, keyed by the session cookie.
package session

import (
	"context"

	"github.com/spec-kit/staff-directory/internal/directory"
)

// Store loads and saves engine state by session id.
type Store interface {
	Load(ctx context.Context, id string) (directory.State, bool, error)
	Save(ctx context.Context, id string, state directory.State) error
}
