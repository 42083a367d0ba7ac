// Package frame provides animation-frame scheduling for the dial and the
// timer engine.
package frame

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is roughly one display refresh at 60Hz.
const DefaultInterval = 16 * time.Millisecond

// ID identifies a requested frame so it can be cancelled.
type ID uint64

// Callback receives the time elapsed since the scheduler was created.
type Callback func(now time.Duration)

// Scheduler requests one-shot frame callbacks.
type Scheduler interface {
	RequestFrame(callback Callback) ID
	CancelFrame(id ID)
}

// Dispatcher runs fn on the thread that owns the state being animated.
type Dispatcher func(fn func())

// Direct runs fn on the calling goroutine.
func Direct(fn func()) {
	fn()
}

// ClockScheduler fires frames on a fixed interval using a clock.
type ClockScheduler struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	interval time.Duration
	dispatch Dispatcher
	origin   time.Time
	nextID   ID
	pending  map[ID]clockwork.Timer
}

// NewClockScheduler creates a scheduler. Zero values select the real clock,
// DefaultInterval and Direct dispatch.
func NewClockScheduler(clock clockwork.Clock, interval time.Duration, dispatch Dispatcher) *ClockScheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if dispatch == nil {
		dispatch = Direct
	}
	return &ClockScheduler{
		clock:    clock,
		interval: interval,
		dispatch: dispatch,
		origin:   clock.Now(),
		pending:  make(map[ID]clockwork.Timer),
	}
}

// RequestFrame schedules callback for the next frame.
func (scheduler *ClockScheduler) RequestFrame(callback Callback) ID {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.nextID++
	id := scheduler.nextID
	scheduler.pending[id] = scheduler.clock.AfterFunc(scheduler.interval, func() {
		scheduler.dispatch(func() {
			if !scheduler.take(id) {
				return
			}
			callback(scheduler.clock.Since(scheduler.origin))
		})
	})
	return id
}

// CancelFrame drops a pending frame. Unknown ids are ignored.
func (scheduler *ClockScheduler) CancelFrame(id ID) {
	scheduler.mu.Lock()
	timer, ok := scheduler.pending[id]
	delete(scheduler.pending, id)
	scheduler.mu.Unlock()

	if ok {
		timer.Stop()
	}
}

// Pending reports how many frames are waiting to fire.
func (scheduler *ClockScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}

func (scheduler *ClockScheduler) take(id ID) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if _, ok := scheduler.pending[id]; !ok {
		return false
	}
	delete(scheduler.pending, id)
	return true
}

type manualEntry struct {
	id       ID
	callback Callback
}

// Manual is a scheduler driven by explicit Step calls.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  ID
	pending []manualEntry
}

// NewManual returns a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// RequestFrame queues callback for the next Step.
func (manual *Manual) RequestFrame(callback Callback) ID {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.nextID++
	manual.pending = append(manual.pending, manualEntry{id: manual.nextID, callback: callback})
	return manual.nextID
}

// CancelFrame removes a queued callback.
func (manual *Manual) CancelFrame(id ID) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	for index, entry := range manual.pending {
		if entry.id == id {
			manual.pending = append(manual.pending[:index], manual.pending[index+1:]...)
			return
		}
	}
}

// Step advances time by delta and runs every callback queued before the
// call. Callbacks requested while stepping run on the next Step.
func (manual *Manual) Step(delta time.Duration) {
	manual.mu.Lock()
	manual.now += delta
	now := manual.now
	due := manual.pending
	manual.pending = nil
	manual.mu.Unlock()

	for _, entry := range due {
		entry.callback(now)
	}
}

// Pending reports how many callbacks are queued.
func (manual *Manual) Pending() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.pending)
}
