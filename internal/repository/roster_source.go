package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/config"
	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/domain"
)

// RosterSource yields the staff roster in publication order.
type RosterSource interface {
	List(ctx context.Context) ([]domain.StaffRecord, error)
}

// NewRosterSource picks the source named by cfg.Source. The pool is only
// consulted for the postgres source.
func NewRosterSource(cfg config.RosterConfig, pool *pgxpool.Pool) (RosterSource, error) {
	switch cfg.Source {
	case config.RosterSourceJSON, "":
		return NewJSONRoster(cfg.Path), nil
	case config.RosterSourceSpreadsheet:
		return NewSpreadsheetRoster(cfg.Path), nil
	case config.RosterSourcePostgres:
		if pool == nil {
			return nil, fmt.Errorf("roster source %q requires POSTGRES_DSN", cfg.Source)
		}
		return NewStaffRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown roster source %q", cfg.Source)
	}
}

// LoadRoster reads src into a roster. A failing source is logged and yields
// an empty roster so the directory still renders its no-results state.
func LoadRoster(ctx context.Context, src RosterSource, logger *zap.Logger) *directory.Roster {
	records, err := src.List(ctx)
	if err != nil {
		logger.Error("error loading staff data", zap.Error(err))
		return directory.EmptyRoster()
	}
	logger.Info("staff roster loaded", zap.Int("records", len(records)))
	return directory.NewRoster(records)
}
