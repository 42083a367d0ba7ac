package frame

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualRunsQueuedCallbacksOnStep(t *testing.T) {
	manual := NewManual()
	var seen []time.Duration
	manual.RequestFrame(func(now time.Duration) { seen = append(seen, now) })
	manual.RequestFrame(func(now time.Duration) { seen = append(seen, now+1) })

	manual.Step(16 * time.Millisecond)

	assert.Equal(t, []time.Duration{16 * time.Millisecond, 16*time.Millisecond + 1}, seen)
	assert.Zero(t, manual.Pending())
}

func TestManualDefersFramesRequestedDuringStep(t *testing.T) {
	manual := NewManual()
	calls := 0
	var loop Callback
	loop = func(time.Duration) {
		calls++
		manual.RequestFrame(loop)
	}
	manual.RequestFrame(loop)

	manual.Step(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, manual.Pending())

	manual.Step(time.Millisecond)
	assert.Equal(t, 2, calls)
}

func TestManualCancel(t *testing.T) {
	manual := NewManual()
	called := false
	id := manual.RequestFrame(func(time.Duration) { called = true })
	manual.CancelFrame(id)
	manual.CancelFrame(id + 10)

	manual.Step(time.Second)
	assert.False(t, called)
}

func TestClockSchedulerFiresAfterInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	scheduler := NewClockScheduler(clock, 0, nil)
	var got atomic.Int64
	got.Store(-1)

	scheduler.RequestFrame(func(now time.Duration) { got.Store(int64(now)) })
	require.Equal(t, 1, scheduler.Pending())

	clock.Advance(DefaultInterval)

	require.Eventually(t, func() bool {
		return got.Load() == int64(DefaultInterval)
	}, time.Second, time.Millisecond)
	assert.Zero(t, scheduler.Pending())
}

func TestClockSchedulerCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	scheduler := NewClockScheduler(clock, 10*time.Millisecond, nil)
	var calls atomic.Int32

	id := scheduler.RequestFrame(func(time.Duration) { calls.Add(1) })
	scheduler.CancelFrame(id)
	clock.Advance(time.Second)

	assert.Zero(t, scheduler.Pending())
	assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestClockSchedulerUsesDispatcher(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var dispatched atomic.Int32
	scheduler := NewClockScheduler(clock, time.Millisecond, func(fn func()) {
		dispatched.Add(1)
		fn()
	})
	var calls atomic.Int32

	scheduler.RequestFrame(func(time.Duration) { calls.Add(1) })
	clock.Advance(time.Millisecond)

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), dispatched.Load())
}
