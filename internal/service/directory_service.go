package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/directory"
	"github.com/spec-kit/staff-directory/internal/events"
	"github.com/spec-kit/staff-directory/internal/session"
	"github.com/spec-kit/staff-directory/pkg/util/errorutil"
)

// RosterProvider hands out the roster current at the time of the call.
type RosterProvider interface {
	Current() *directory.Roster
}

type staticRoster struct{ roster *directory.Roster }

func (s staticRoster) Current() *directory.Roster { return s.roster }

// StaticRoster serves the same roster forever.
func StaticRoster(r *directory.Roster) RosterProvider {
	return staticRoster{roster: r}
}

// Controls are the values of the search box and the two filter dropdowns.
type Controls struct {
	Search     string
	School     string
	Department string
}

// Result is the outcome of one directory request. Roster is the roster the
// evaluation ran against.
type Result struct {
	Evaluation directory.Evaluation
	State      directory.State
	Roster     *directory.Roster
}

// DirectoryService runs directory requests for a session. Every call builds a
// short-lived engine over the current roster and the session's saved state,
// then saves the state the engine leaves behind.
type DirectoryService struct {
	rosters     RosterProvider
	store       session.Store
	logger      *zap.Logger
	observer    directory.Observer
	quietPeriod time.Duration
}

// Option configures a DirectoryService.
type Option func(*DirectoryService)

// WithSearchDebounce sets the quiet period search input must observe before
// it is evaluated. Non-positive values keep directory.DefaultQuietPeriod.
func WithSearchDebounce(d time.Duration) Option {
	return func(s *DirectoryService) {
		if d > 0 {
			s.quietPeriod = d
		}
	}
}

// NewDirectoryService wires the service.
func NewDirectoryService(rosters RosterProvider, store session.Store, logger *zap.Logger, observer directory.Observer, opts ...Option) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DirectoryService{
		rosters:     rosters,
		store:       store,
		logger:      logger,
		observer:    observer,
		quietPeriod: directory.DefaultQuietPeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchDebounce returns the search quiet period handed to every engine.
func (s *DirectoryService) SearchDebounce() time.Duration {
	return s.quietPeriod
}

// Render performs the initial evaluation for a page load.
func (s *DirectoryService) Render(ctx context.Context, sessionID string, controls Controls) Result {
	engine, _ := s.engine(ctx, sessionID, controls)
	defer engine.Close()

	ev := engine.Init()
	state := engine.State()
	s.save(ctx, sessionID, state)
	return Result{Evaluation: ev, State: state, Roster: engine.Roster()}
}

// Apply raises ev against the session's engine and returns the resulting
// evaluation. A debounced search completes before Apply returns.
func (s *DirectoryService) Apply(ctx context.Context, sessionID string, controls Controls, ev events.Event) (Result, error) {
	engine, _ := s.engine(ctx, sessionID, controls)
	defer engine.Close()

	if err := s.publish(ctx, engine, ev); err != nil {
		return Result{}, err
	}
	state := engine.State()
	s.save(ctx, sessionID, state)
	return Result{Evaluation: engine.Last(), State: state, Roster: engine.Roster()}, nil
}

// Export produces the CSV artifact for the given controls.
func (s *DirectoryService) Export(ctx context.Context, sessionID string, controls Controls) (directory.Artifact, error) {
	engine, ui := s.engine(ctx, sessionID, controls)
	defer engine.Close()

	if err := s.publish(ctx, engine, events.New(events.EventExportRequested, nil)); err != nil {
		return directory.Artifact{}, err
	}
	if ui.downloaded == nil {
		return directory.Artifact{}, errorutil.NewInternalError(nil)
	}
	return *ui.downloaded, nil
}

func (s *DirectoryService) publish(ctx context.Context, engine *directory.Engine, ev events.Event) error {
	dispatcher := events.NewInMemoryDispatcher()
	engine.RegisterTriggers(dispatcher)
	if err := dispatcher.Publish(ctx, ev); err != nil {
		return errorutil.NewInternalError(err)
	}
	// the end of the request is the end of the quiet period
	engine.Flush()
	return nil
}

func (s *DirectoryService) engine(ctx context.Context, sessionID string, controls Controls) (*directory.Engine, *captureUI) {
	ui := &captureUI{controls: controls}
	engine := directory.NewEngine(s.rosters.Current(), ui,
		directory.WithLogger(s.logger),
		directory.WithObserver(s.observer),
		directory.WithScheduler(boundaryScheduler{}),
		directory.WithQuietPeriod(s.quietPeriod),
		directory.WithState(s.load(ctx, sessionID)),
	)
	return engine, ui
}

// load returns the saved state; a missing session or an unreachable store
// starts from the defaults.
func (s *DirectoryService) load(ctx context.Context, sessionID string) directory.State {
	state, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("load directory session", zap.String("session", sessionID), zap.Error(err))
		return directory.DefaultState()
	}
	if !ok {
		return directory.DefaultState()
	}
	return state
}

func (s *DirectoryService) save(ctx context.Context, sessionID string, state directory.State) {
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		s.logger.Warn("save directory session", zap.String("session", sessionID), zap.Error(err))
	}
}

// captureUI reads controls from a request and keeps what the engine renders.
type captureUI struct {
	controls   Controls
	downloaded *directory.Artifact
}

func (u *captureUI) SearchText() string       { return u.controls.Search }
func (u *captureUI) SchoolFilter() string     { return u.controls.School }
func (u *captureUI) DepartmentFilter() string { return u.controls.Department }
func (u *captureUI) RenderGrid(string)        {}
func (u *captureUI) RenderTable(string)       {}
func (u *captureUI) RenderCount(string)       {}

func (u *captureUI) Download(a directory.Artifact) {
	u.downloaded = &a
}

// boundaryScheduler never fires on its own; pending search evaluations run
// when the service flushes them.
type boundaryScheduler struct{}

func (boundaryScheduler) AfterFunc(time.Duration, func()) directory.Task {
	return heldTask{}
}

type heldTask struct{}

func (heldTask) Stop() bool { return true }
