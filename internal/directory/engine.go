package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/staff-directory/internal/domain"
	"github.com/spec-kit/staff-directory/internal/events"
)

// Evaluation triggers that are not a single event type.
const (
	TriggerInit          = "init"
	TriggerFilterChanged = "filter_changed"
)

// ErrBadPayload is returned when a trigger event carries the wrong payload.
var ErrBadPayload = errors.New("unexpected event payload")

// UI is the host page as seen by the engine. Empty getter values mean the
// control is absent and its predicate matches everything. Render callbacks
// run while the engine is locked and must not call back into it.
type UI interface {
	SearchText() string
	SchoolFilter() string
	DepartmentFilter() string
	RenderGrid(fragment string)
	RenderTable(fragment string)
	RenderCount(message string)
}

// Downloader is implemented by UIs that can hand an artifact to the user.
type Downloader interface {
	Download(artifact Artifact)
}

// Observer receives a notification for each evaluation and export.
type Observer interface {
	ObserveEvaluation(trigger string, shown, total int)
	ObserveExport(rows int)
}

// State is the part of an engine that outlives a single evaluation.
type State struct {
	Sort        domain.SortState `json:"sort"`
	SortApplied bool             `json:"sort_applied"`
	View        domain.ViewMode  `json:"view"`
}

// DefaultState is grid view, name ascending, no sort applied yet.
func DefaultState() State {
	return State{Sort: domain.DefaultSortState(), View: domain.ViewGrid}
}

// Evaluation is the outcome of one pass through filter, sort and render.
type Evaluation struct {
	Trigger  string
	Query    domain.QueryState
	View     domain.ViewMode
	Records  []domain.StaffRecord
	Fragment string
	Message  string
	Shown    int
	Total    int
}

// Engine holds one directory session: the roster, the UI it drives and the
// sort/view state.
type Engine struct {
	mu       sync.Mutex
	roster   *Roster
	ui       UI
	state    State
	last     Evaluation
	search   *Debouncer
	logger   *zap.Logger
	observer Observer

	scheduler   Scheduler
	quietPeriod time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithScheduler replaces the timer source used to debounce search input.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithQuietPeriod overrides DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.quietPeriod = d
		}
	}
}

// WithObserver attaches an evaluation observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithState restores previously saved sort and view state.
func WithState(s State) Option {
	return func(e *Engine) { e.state = normalizeState(s) }
}

// NewEngine builds an engine over roster driving ui. A nil roster is empty
// and a nil ui renders nowhere.
func NewEngine(roster *Roster, ui UI, opts ...Option) *Engine {
	if roster == nil {
		roster = EmptyRoster()
	}
	if ui == nil {
		ui = nopUI{}
	}
	e := &Engine{
		roster:      roster,
		ui:          ui,
		state:       DefaultState(),
		logger:      zap.NewNop(),
		quietPeriod: DefaultQuietPeriod,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.search = NewDebouncer(e.quietPeriod, e.scheduler)
	return e
}

// Init renders the initial view.
func (e *Engine) Init() Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evaluateLocked(TriggerInit)
}

// SearchChanged schedules an evaluation once search input goes quiet. Only
// the search text present when the evaluation fires is used.
func (e *Engine) SearchChanged() {
	e.search.Trigger(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.evaluateLocked(string(events.EventSearchChanged))
	})
}

// Flush runs a pending search evaluation immediately.
func (e *Engine) Flush() bool {
	return e.search.Flush()
}

// FilterChanged evaluates immediately after a dropdown change.
func (e *Engine) FilterChanged() Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evaluateLocked(TriggerFilterChanged)
}

// ToggleView switches the presentation and re-runs the full pipeline.
func (e *Engine) ToggleView(view domain.ViewMode) Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.View = domain.ParseViewMode(string(view))
	return e.evaluateLocked(string(events.EventViewToggled))
}

// RequestSort applies a header click on column and re-evaluates.
func (e *Engine) RequestSort(column domain.Column) Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Sort = e.state.Sort.Toggle(column)
	e.state.SortApplied = true
	return e.evaluateLocked(string(events.EventSortRequested))
}

// Export serializes the records matching the current controls. The export
// ignores the active sort and matches search text on name and position only.
func (e *Engine) Export() Artifact {
	e.mu.Lock()
	q := e.query()
	records := ExportFilter(e.roster.records, q)
	e.mu.Unlock()

	body := ToDelimitedText(records, domain.QueryState{})
	if e.observer != nil {
		e.observer.ObserveExport(len(records))
	}
	e.logger.Debug("directory export", zap.Int("rows", len(records)))

	artifact := Artifact{Name: ExportFileName, ContentType: ExportContentType, Body: []byte(body)}
	if d, ok := e.ui.(Downloader); ok {
		d.Download(artifact)
	}
	return artifact
}

// State returns a snapshot of the sort and view state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Last returns the most recent evaluation.
func (e *Engine) Last() Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Roster returns the roster the engine was built with.
func (e *Engine) Roster() *Roster {
	return e.roster
}

// Close drops any pending search evaluation.
func (e *Engine) Close() {
	e.search.Cancel()
}

// RegisterTriggers subscribes one engine operation per directory event.
func (e *Engine) RegisterTriggers(d events.Dispatcher) {
	d.Subscribe(events.EventSearchChanged, func(context.Context, events.Event) error {
		e.SearchChanged()
		return nil
	})
	filterChanged := func(context.Context, events.Event) error {
		e.FilterChanged()
		return nil
	}
	d.Subscribe(events.EventSchoolFilterChanged, filterChanged)
	d.Subscribe(events.EventDepartmentFilterChanged, filterChanged)
	d.Subscribe(events.EventViewToggled, func(_ context.Context, ev events.Event) error {
		p, ok := ev.Payload.(events.ViewToggledPayload)
		if !ok {
			return fmt.Errorf("%s: %w", ev.Type, ErrBadPayload)
		}
		e.ToggleView(p.View)
		return nil
	})
	d.Subscribe(events.EventSortRequested, func(_ context.Context, ev events.Event) error {
		p, ok := ev.Payload.(events.SortRequestedPayload)
		if !ok {
			return fmt.Errorf("%s: %w", ev.Type, ErrBadPayload)
		}
		e.RequestSort(p.Column)
		return nil
	})
	d.Subscribe(events.EventExportRequested, func(context.Context, events.Event) error {
		e.Export()
		return nil
	})
}

func (e *Engine) query() domain.QueryState {
	return domain.QueryState{
		SearchText:       e.ui.SearchText(),
		SchoolFilter:     e.ui.SchoolFilter(),
		DepartmentFilter: e.ui.DepartmentFilter(),
	}.Normalize()
}

func (e *Engine) evaluateLocked(trigger string) Evaluation {
	q := e.query()
	records := Filter(e.roster.records, q)
	if e.state.SortApplied {
		records = Sort(records, e.state.Sort)
	}

	view := e.state.View
	fragment, err := RenderView(view, records)
	if err != nil {
		e.logger.Error("render directory view", zap.String("view", string(view)), zap.Error(err))
	}
	if view == domain.ViewTable {
		e.ui.RenderTable(fragment)
	} else {
		e.ui.RenderGrid(fragment)
	}

	total := e.roster.Len()
	message := ResultsMessage(len(records), total)
	e.ui.RenderCount(message)

	if e.observer != nil {
		e.observer.ObserveEvaluation(trigger, len(records), total)
	}
	e.logger.Debug("directory evaluated",
		zap.String("trigger", trigger),
		zap.String("view", string(view)),
		zap.Int("shown", len(records)),
		zap.Int("total", total))

	e.last = Evaluation{
		Trigger:  trigger,
		Query:    q,
		View:     view,
		Records:  records,
		Fragment: fragment,
		Message:  message,
		Shown:    len(records),
		Total:    total,
	}
	return e.last
}

func normalizeState(s State) State {
	s.View = domain.ParseViewMode(string(s.View))
	if s.Sort.Column == "" {
		s.Sort.Column = domain.ColumnName
	}
	s.Sort.Direction = domain.ParseSortDirection(string(s.Sort.Direction))
	return s
}

type nopUI struct{}

func (nopUI) SearchText() string       { return "" }
func (nopUI) SchoolFilter() string     { return "" }
func (nopUI) DepartmentFilter() string { return "" }
func (nopUI) RenderGrid(string)        {}
func (nopUI) RenderTable(string)       {}
func (nopUI) RenderCount(string)       {}
