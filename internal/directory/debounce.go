package directory

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long search input must settle before evaluating.
const DefaultQuietPeriod = 300 * time.Millisecond

// Task is a handle to a scheduled callback.
type Task interface {
	// Stop cancels the callback, reporting whether it was still pending.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules on the runtime timer heap.
var SystemScheduler Scheduler = timerScheduler{}

// Debouncer coalesces bursts of triggers into a single call that runs once
// the quiet period has elapsed since the last trigger.
type Debouncer struct {
	mu        sync.Mutex
	scheduler Scheduler
	wait      time.Duration
	pending   *pendingRun
}

type pendingRun struct {
	task Task
	fn   func()
}

// NewDebouncer returns a debouncer; a nil scheduler means SystemScheduler.
func NewDebouncer(wait time.Duration, scheduler Scheduler) *Debouncer {
	if scheduler == nil {
		scheduler = SystemScheduler
	}
	return &Debouncer{scheduler: scheduler, wait: wait}
}

// Trigger cancels any pending run and schedules fn after the quiet period.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.task.Stop()
	}
	run := &pendingRun{fn: fn}
	run.task = d.scheduler.AfterFunc(d.wait, func() { d.fire(run) })
	d.pending = run
}

func (d *Debouncer) fire(run *pendingRun) {
	d.mu.Lock()
	if d.pending != run {
		// superseded after the timer already fired
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	run.fn()
}

// Flush runs the pending call now, if any, and reports whether one ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	run := d.pending
	d.pending = nil
	d.mu.Unlock()

	if run == nil {
		return false
	}
	run.task.Stop()
	run.fn()
	return true
}

// Cancel drops the pending call without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.task.Stop()
		d.pending = nil
	}
}

// Pending reports whether a call is waiting for the quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
