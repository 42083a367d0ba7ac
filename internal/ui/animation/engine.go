// Package animation runs short time-based effects on a background goroutine.
package animation

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Config contains flash timing values.
type Config struct {
	FlashDuration time.Duration
	PulseOn       time.Duration
	PulseOff      time.Duration
}

// Engine blinks a highlight on and off. update receives every state change
// on the engine goroutine; callers hop onto the UI thread themselves.
type Engine struct {
	mu         sync.Mutex
	config     Config
	clock      clockwork.Clock
	update     func(lit bool)
	cancel     context.CancelFunc
	generation uint64
	active     bool
}

// New creates a new animation engine. A nil clock uses the real clock.
func New(config Config, clock clockwork.Clock, update func(lit bool)) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if update == nil {
		update = func(bool) {}
	}
	return &Engine{config: config, clock: clock, update: update}
}

// Flash starts a flash, replacing any flash in progress.
func (engine *Engine) Flash(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		deadline := engine.clock.Now().Add(engine.config.FlashDuration)
		lit := false
		defer func() {
			if lit && runCtx.Err() == nil {
				engine.update(false)
			}
		}()

		for engine.clock.Now().Before(deadline) {
			lit = true
			engine.update(true)
			if !engine.sleepWithContext(runCtx, engine.config.PulseOn) {
				return
			}
			lit = false
			engine.update(false)
			if !engine.sleepWithContext(runCtx, engine.config.PulseOff) {
				return
			}
		}
	})
}

// Stop terminates any active flash and clears the highlight.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	wasActive := engine.active
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.generation++
	engine.active = false
	engine.mu.Unlock()

	if wasActive {
		engine.update(false)
	}
}

// Active reports whether a flash is running.
func (engine *Engine) Active() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.active
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.generation++
	generation := engine.generation
	engine.active = true
	engine.mu.Unlock()

	go func() {
		run(runCtx)
		engine.finish(generation)
	}()
}

func (engine *Engine) finish(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.generation != generation {
		return
	}
	engine.active = false
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := engine.clock.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
