package worker

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/repository"
)

// RosterRefresher keeps the current roster and reloads it from its source on
// an interval. Requests pick up whichever roster is current when they start.
type RosterRefresher struct {
	source   repository.RosterSource
	logger   *zap.Logger
	interval time.Duration
	current  atomic.Pointer[directory.Roster]
}

// NewRosterRefresher creates a refresher serving an empty roster until the
// first Load.
func NewRosterRefresher(source repository.RosterSource, logger *zap.Logger, interval time.Duration) *RosterRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &RosterRefresher{source: source, logger: logger, interval: interval}
	r.current.Store(directory.EmptyRoster())
	return r
}

// Current returns the roster in effect.
func (r *RosterRefresher) Current() *directory.Roster {
	return r.current.Load()
}

// Load performs the startup read; a failing source leaves an empty roster.
func (r *RosterRefresher) Load(ctx context.Context) *directory.Roster {
	roster := repository.LoadRoster(ctx, r.source, r.logger)
	r.current.Store(roster)
	return roster
}

// Refresh rereads the source. On failure the previous roster stays in effect.
func (r *RosterRefresher) Refresh(ctx context.Context) error {
	records, err := r.source.List(ctx)
	if err != nil {
		r.logger.Warn("roster refresh failed; keeping previous roster", zap.Error(err))
		return err
	}
	r.current.Store(directory.NewRoster(records))
	r.logger.Debug("roster refreshed", zap.Int("records", len(records)))
	return nil
}

// Start runs Refresh every interval until ctx is done. A non-positive
// interval disables refreshing. The returned channel closes when the loop exits.
func (r *RosterRefresher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if r.interval <= 0 {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = r.Refresh(ctx)
			}
		}
	}()
	return done
}
