package directory

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerFiresOnceAfterQuietPeriod(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(DefaultQuietPeriod, sched)
	calls := 0

	d.Trigger(func() { calls++ })
	sched.Advance(200 * time.Millisecond)
	d.Trigger(func() { calls++ })
	sched.Advance(200 * time.Millisecond)
	assert.Equal(t, 0, calls, "second trigger restarted the quiet period")
	assert.True(t, d.Pending())

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())

	sched.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestDebouncerUsesLatestCallback(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(DefaultQuietPeriod, sched)
	var got []string

	for _, v := range []string{"a", "an", "ann"} {
		v := v
		d.Trigger(func() { got = append(got, v) })
		sched.Advance(50 * time.Millisecond)
	}
	sched.Advance(DefaultQuietPeriod)
	assert.Equal(t, []string{"ann"}, got)
}

func TestDebouncerFlushAndCancel(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(DefaultQuietPeriod, sched)
	calls := 0

	assert.False(t, d.Flush(), "nothing pending")

	d.Trigger(func() { calls++ })
	assert.True(t, d.Flush())
	assert.Equal(t, 1, calls)
	sched.Advance(time.Second)
	assert.Equal(t, 1, calls, "flushed run is not repeated by the timer")

	d.Trigger(func() { calls++ })
	d.Cancel()
	sched.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())
}

func TestDebouncerWithSystemScheduler(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, nil)
	var calls atomic.Int32
	done := make(chan struct{})

	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			if calls.Add(1) == 1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never fired")
	}
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}
