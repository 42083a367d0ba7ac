package timekeeper

import (
	"context"
	"math"
	"sync"
	"time"

	"realpomo/internal/core/frame"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultCheckInterval is the cadence of the background completion check.
const DefaultCheckInterval = 500 * time.Millisecond

// Config contains runtime options for TimeKeeper.
type Config struct {
	InitialSeconds int
	OnTick         func(seconds int)
	OnDone         func()

	// Scheduler drives frames in delta mode. Leaving it nil selects the
	// wall-clock mode with an internal frame scheduler.
	Scheduler frame.Scheduler

	Clock         clockwork.Clock
	Dispatch      frame.Dispatcher
	FrameInterval time.Duration
	CheckInterval time.Duration
}

// TimeKeeper is a countdown state machine.
type TimeKeeper struct {
	mu      sync.Mutex
	options Config
	mode    Mode
	clock   clockwork.Clock
	frames  frame.Scheduler

	remaining time.Duration
	running   bool
	endTime   time.Time

	lastFrame    time.Duration
	hasLastFrame bool

	frameID     frame.ID
	framePosted bool
	generation  uint64
	stopCheck   context.CancelFunc

	lastEmitted int
	hasEmitted  bool

	events  []chan Event
	pending []func()
}

// New creates a TimeKeeper holding InitialSeconds.
func New(options Config) *TimeKeeper {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Dispatch == nil {
		options.Dispatch = frame.Direct
	}
	if options.CheckInterval <= 0 {
		options.CheckInterval = DefaultCheckInterval
	}

	keeper := &TimeKeeper{
		options:   options,
		clock:     options.Clock,
		remaining: secondsToDuration(options.InitialSeconds),
	}
	if options.Scheduler != nil {
		keeper.mode = ModeDelta
		keeper.frames = options.Scheduler
	} else {
		keeper.mode = ModeWallClock
		keeper.frames = frame.NewClockScheduler(options.Clock, options.FrameInterval, options.Dispatch)
	}
	return keeper
}

// Mode reports the timing strategy in use.
func (keeper *TimeKeeper) Mode() Mode {
	return keeper.mode
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start begins counting down. It does nothing while running or when no time
// remains; an already empty timer never fires OnDone and emits no events.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	keeper.startLocked()
	keeper.unlockAndFlush()
}

// Pause freezes the countdown.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	keeper.pauseLocked()
	keeper.unlockAndFlush()
}

// Reset pauses and loads seconds. Observers always receive a tick.
func (keeper *TimeKeeper) Reset(seconds int) {
	keeper.mu.Lock()
	keeper.pauseLocked()
	keeper.remaining = secondsToDuration(seconds)
	keeper.hasEmitted = false
	keeper.emitTickLocked(true)
	keeper.unlockAndFlush()
}

// SetRemainingSeconds loads seconds and keeps a running countdown running
// against a fresh deadline.
func (keeper *TimeKeeper) SetRemainingSeconds(seconds int) {
	keeper.mu.Lock()
	wasRunning := keeper.running
	keeper.pauseLocked()
	keeper.remaining = secondsToDuration(seconds)
	keeper.emitTickLocked(true)
	if wasRunning {
		keeper.startLocked()
	}
	keeper.unlockAndFlush()
}

// RemainingSeconds returns the whole seconds left, rounded to nearest.
func (keeper *TimeKeeper) RemainingSeconds() int {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running && keeper.mode == ModeWallClock {
		keeper.syncWallClockLocked()
	}
	return keeper.currentSecondsLocked()
}

// IsRunning reports whether the countdown is active.
func (keeper *TimeKeeper) IsRunning() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.running
}

// Stop pauses, releases scheduling resources and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	keeper.pauseLocked()
	events := keeper.events
	keeper.events = nil
	keeper.unlockAndFlush()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.running || keeper.remaining <= 0 {
		return
	}
	keeper.running = true
	keeper.generation++

	switch keeper.mode {
	case ModeWallClock:
		keeper.endTime = keeper.clock.Now().Add(keeper.remaining)
		ctx, cancel := context.WithCancel(context.Background())
		keeper.stopCheck = cancel
		ticker := keeper.clock.NewTicker(keeper.options.CheckInterval)
		go keeper.runCompletionCheck(ctx, ticker, keeper.generation)
	default:
		keeper.hasLastFrame = false
	}

	keeper.requestFrameLocked()
	keeper.emitLocked(Event{Type: EventStateChange, RemainingSeconds: keeper.currentSecondsLocked(), Running: true})
	log.Debug().Str("mode", string(keeper.mode)).Dur("remaining", keeper.remaining).Msg("timer started")
}

func (keeper *TimeKeeper) pauseLocked() {
	if !keeper.running {
		return
	}
	if keeper.mode == ModeWallClock {
		keeper.syncWallClockLocked()
	}
	keeper.running = false
	keeper.cancelLocked()
	keeper.emitLocked(Event{Type: EventStateChange, RemainingSeconds: keeper.currentSecondsLocked()})
	log.Debug().Dur("remaining", keeper.remaining).Msg("timer paused")
}

func (keeper *TimeKeeper) cancelLocked() {
	if keeper.framePosted {
		keeper.frames.CancelFrame(keeper.frameID)
		keeper.framePosted = false
	}
	if keeper.stopCheck != nil {
		keeper.stopCheck()
		keeper.stopCheck = nil
	}
}

func (keeper *TimeKeeper) requestFrameLocked() {
	generation := keeper.generation
	keeper.frameID = keeper.frames.RequestFrame(func(now time.Duration) {
		keeper.onFrame(generation, now)
	})
	keeper.framePosted = true
}

func (keeper *TimeKeeper) onFrame(generation uint64, now time.Duration) {
	keeper.mu.Lock()
	if !keeper.running || generation != keeper.generation {
		keeper.unlockAndFlush()
		return
	}
	keeper.framePosted = false

	switch keeper.mode {
	case ModeWallClock:
		keeper.syncWallClockLocked()
	default:
		if !keeper.hasLastFrame {
			keeper.lastFrame = now
			keeper.hasLastFrame = true
		}
		keeper.remaining -= now - keeper.lastFrame
		keeper.lastFrame = now
		if keeper.remaining < 0 {
			keeper.remaining = 0
		}
	}

	if keeper.remaining <= 0 {
		keeper.completeLocked()
	} else {
		keeper.emitTickLocked(false)
		keeper.requestFrameLocked()
	}
	keeper.unlockAndFlush()
}

func (keeper *TimeKeeper) runCompletionCheck(ctx context.Context, ticker clockwork.Ticker, generation uint64) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			keeper.options.Dispatch(func() {
				keeper.checkCompletion(generation)
			})
		}
	}
}

func (keeper *TimeKeeper) checkCompletion(generation uint64) {
	keeper.mu.Lock()
	if keeper.running && generation == keeper.generation {
		keeper.syncWallClockLocked()
		if keeper.remaining <= 0 {
			keeper.completeLocked()
		}
	}
	keeper.unlockAndFlush()
}

// completeLocked runs at most once per start because it clears running.
func (keeper *TimeKeeper) completeLocked() {
	keeper.remaining = 0
	keeper.running = false
	keeper.cancelLocked()
	keeper.emitTickLocked(true)
	keeper.emitLocked(Event{Type: EventDone})
	if onDone := keeper.options.OnDone; onDone != nil {
		keeper.pending = append(keeper.pending, onDone)
	}
	log.Info().Msg("timer complete")
}

func (keeper *TimeKeeper) syncWallClockLocked() {
	remaining := keeper.endTime.Sub(keeper.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	if remaining < keeper.remaining {
		keeper.remaining = remaining
	}
}

func (keeper *TimeKeeper) currentSecondsLocked() int {
	seconds := int(math.Round(keeper.remaining.Seconds()))
	if seconds < 0 {
		return 0
	}
	return seconds
}

func (keeper *TimeKeeper) emitTickLocked(force bool) {
	seconds := keeper.currentSecondsLocked()
	if !force && keeper.hasEmitted && seconds == keeper.lastEmitted {
		return
	}
	keeper.lastEmitted = seconds
	keeper.hasEmitted = true
	keeper.emitLocked(Event{Type: EventTick, RemainingSeconds: seconds, Running: keeper.running})
	if onTick := keeper.options.OnTick; onTick != nil {
		keeper.pending = append(keeper.pending, func() { onTick(seconds) })
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	event.At = keeper.clock.Now()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// unlockAndFlush releases the lock before running callbacks so they may call
// back into the keeper.
func (keeper *TimeKeeper) unlockAndFlush() {
	pending := keeper.pending
	keeper.pending = nil
	keeper.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func secondsToDuration(seconds int) time.Duration {
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds) * time.Second
}
