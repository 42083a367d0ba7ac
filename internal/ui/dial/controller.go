// Package dial wires pointer input, the detent state machine and the timer
// engine into a drawable kitchen-timer dial.
package dial

import (
	"time"

	"realpomo/internal/core/angle"
	"realpomo/internal/core/detent"
	"realpomo/internal/core/frame"
	"realpomo/internal/core/model"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// MinToneInterval is the shortest gap between two detent ticks.
const MinToneInterval = 60 * time.Millisecond

// Timer is the countdown the dial edits.
type Timer interface {
	Start()
	Pause()
	SetRemainingSeconds(seconds int)
	RemainingSeconds() int
	IsRunning() bool
}

// Surface draws dial views.
type Surface interface {
	Render(view View)
}

// TonePlayer plays the detent tick. Calls must not block.
type TonePlayer interface {
	PlayTick()
}

// View is everything a surface needs to draw one frame.
type View struct {
	Seconds     int
	MaxSeconds  int
	Sector      Sector
	HandVisible bool
	Phase       detent.Phase
	Running     bool
	Hover       Hover
}

// Config contains controller dependencies.
type Config struct {
	MaxSeconds int
	Timer      Timer
	Surface    Surface
	Player     TonePlayer
	Frames     frame.Scheduler
	Clock      clockwork.Clock
}

// Controller owns the clockwork state of one dial. All methods must be
// called from the UI thread.
type Controller struct {
	config Config
	clock  clockwork.Clock
	state  *detent.State
	bounds Bounds

	seconds int
	hover   Hover

	generation   uint64
	settleID     frame.ID
	settlePosted bool
	lastTone     time.Time
}

// NewController creates a controller. A nil Frames scheduler uses a clock
// scheduler with direct dispatch.
func NewController(config Config) *Controller {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	if config.Frames == nil {
		config.Frames = frame.NewClockScheduler(config.Clock, frame.DefaultInterval, frame.Direct)
	}
	config.MaxSeconds = model.DialConfig{MaxSeconds: config.MaxSeconds}.Normalized().MaxSeconds

	return &Controller{
		config: config,
		clock:  config.Clock,
		state:  detent.New(config.Clock),
	}
}

// MaxSeconds returns the full-dial duration.
func (controller *Controller) MaxSeconds() int {
	return controller.config.MaxSeconds
}

// SetMaxSeconds changes the full-dial duration and redraws.
func (controller *Controller) SetMaxSeconds(maxSeconds int) {
	controller.config.MaxSeconds = model.DialConfig{MaxSeconds: maxSeconds}.Normalized().MaxSeconds
	seconds := controller.config.Timer.RemainingSeconds()
	if seconds > controller.config.MaxSeconds {
		controller.config.Timer.SetRemainingSeconds(controller.config.MaxSeconds)
		seconds = controller.config.MaxSeconds
	}
	controller.Update(seconds)
}

// Phase reports the interaction phase of the dial.
func (controller *Controller) Phase() detent.Phase {
	return controller.state.Phase()
}

// Resize records the widget size used to locate the centre.
func (controller *Controller) Resize(width, height float64) {
	controller.bounds = Bounds{Width: width, Height: height}
}

// PointerDown handles a press at a widget-local position. A press on the
// centre knob resets the timer; elsewhere it starts a drag.
func (controller *Controller) PointerDown(pointer angle.Point) {
	if knobHit(controller.bounds, pointer) {
		controller.resetToZero()
		return
	}

	maxSeconds := controller.config.MaxSeconds
	current := dragSeedAngle(controller.config.Timer.RemainingSeconds(), maxSeconds)
	if !controller.state.StartDrag(pointer, controller.bounds.Center(), current, maxSeconds) {
		return
	}
	controller.cancelSettle()
	controller.config.Timer.Pause()
	controller.applyPointer(pointer)
}

// PointerMove follows an active drag.
func (controller *Controller) PointerMove(pointer angle.Point) {
	if !controller.state.IsDragging {
		return
	}
	controller.applyPointer(pointer)
}

// PointerUp commits the drag to a detent and starts the settle animation.
func (controller *Controller) PointerUp() {
	if !controller.state.IsDragging {
		return
	}
	release := controller.state.SnapOnRelease(controller.config.MaxSeconds)
	if release.ShouldPlaySound {
		controller.playTick()
	}
	controller.cancelSettle()
	controller.requestSettleFrame()
}

// PointerCancel behaves like a release so the dial never stays mid-drag.
func (controller *Controller) PointerCancel() {
	controller.PointerUp()
}

// HoverAt updates hover feedback and returns the hovered target.
func (controller *Controller) HoverAt(pointer angle.Point) Hover {
	hover := HoverNone
	switch {
	case knobHit(controller.bounds, pointer):
		hover = HoverKnob
	case controller.seconds <= 0 && handHit(controller.bounds, pointer):
		hover = HoverHand
	}
	if hover != controller.hover {
		controller.hover = hover
		controller.Update(controller.seconds)
	}
	return hover
}

// HoverEnd clears hover feedback.
func (controller *Controller) HoverEnd() {
	if controller.hover == HoverNone {
		return
	}
	controller.hover = HoverNone
	controller.Update(controller.seconds)
}

// Update redraws the dial for the given remaining seconds.
func (controller *Controller) Update(seconds int) {
	controller.seconds = seconds
	maxSeconds := controller.config.MaxSeconds
	controller.state.Sync(angle.SecondsToAngle(seconds, maxSeconds))

	running := controller.config.Timer.IsRunning()
	view := View{
		Seconds:     seconds,
		MaxSeconds:  maxSeconds,
		Sector:      controller.sectorFor(seconds, running),
		HandVisible: seconds <= 0,
		Phase:       controller.state.Phase(),
		Running:     running,
		Hover:       controller.hover,
	}
	if controller.config.Surface != nil {
		controller.config.Surface.Render(view)
	}
}

// ApplyPreset abandons any interaction, sets the countdown to seconds and
// starts it. Zero leaves the timer paused.
func (controller *Controller) ApplyPreset(seconds int) {
	seconds = model.DialConfig{MaxSeconds: controller.config.MaxSeconds, InitialSeconds: seconds}.Normalized().InitialSeconds
	controller.cancelSettle()
	controller.config.Timer.Pause()
	controller.config.Timer.SetRemainingSeconds(seconds)
	controller.state.Reset()
	controller.Update(seconds)
	if seconds > 0 {
		controller.config.Timer.Start()
		controller.Update(controller.config.Timer.RemainingSeconds())
	}
	log.Debug().Int("seconds", seconds).Msg("preset applied")
}

// Close drops any in-flight animation and pauses the timer.
func (controller *Controller) Close() {
	controller.cancelSettle()
	controller.state.EndDrag()
	controller.state.InSettleAnimation = false
	controller.config.Timer.Pause()
}

func (controller *Controller) sectorFor(seconds int, running bool) Sector {
	maxSeconds := controller.config.MaxSeconds
	switch {
	case seconds >= maxSeconds:
		return Sector{Angle: angle.FullTurn}
	case controller.state.IsDragging || controller.state.InSettleAnimation:
		return Sector{Angle: controller.state.AngleDisplay}
	case seconds <= 0:
		return Sector{}
	case running:
		return Sector{Angle: angle.SnapToDetentForCountdown(angle.SecondsToAngle(seconds, maxSeconds))}
	default:
		return Sector{Angle: angle.SnapToDetent(angle.SecondsToAngle(seconds, maxSeconds))}
	}
}

// dragSeedAngle keeps a full dial at 2π so a drag starting there counts
// from the last minute rather than from zero.
func dragSeedAngle(seconds, maxSeconds int) float64 {
	if maxSeconds > 0 && seconds >= maxSeconds {
		return angle.FullTurn
	}
	return angle.SecondsToAngle(seconds, maxSeconds)
}

func (controller *Controller) applyPointer(pointer angle.Point) {
	if controller.state.UpdateDrag(pointer, controller.bounds.Center(), controller.config.MaxSeconds) {
		controller.playTick()
	}
	seconds := controller.displaySeconds()
	controller.config.Timer.SetRemainingSeconds(seconds)
	controller.Update(seconds)
}

// displaySeconds converts the display angle, treating overshoot past either
// end of the dial as that end.
func (controller *Controller) displaySeconds() int {
	display := controller.state.AngleDisplay
	maxSeconds := controller.config.MaxSeconds
	switch {
	case display <= 0:
		return 0
	case display >= angle.FullTurn-fullTurnEpsilon:
		return maxSeconds
	default:
		return angle.AngleToSeconds(display, maxSeconds)
	}
}

func (controller *Controller) resetToZero() {
	controller.cancelSettle()
	controller.config.Timer.Pause()
	controller.config.Timer.SetRemainingSeconds(0)
	controller.state.Reset()
	controller.Update(0)
	log.Debug().Msg("dial reset from knob")
}

func (controller *Controller) requestSettleFrame() {
	generation := controller.generation
	controller.settleID = controller.config.Frames.RequestFrame(func(time.Duration) {
		controller.onSettleFrame(generation)
	})
	controller.settlePosted = true
}

func (controller *Controller) onSettleFrame(generation uint64) {
	if generation != controller.generation || !controller.state.InSettleAnimation {
		return
	}
	controller.settlePosted = false

	animating := controller.state.UpdateSettle()
	seconds := controller.displaySeconds()
	controller.config.Timer.SetRemainingSeconds(seconds)
	if animating {
		controller.Update(seconds)
		controller.requestSettleFrame()
		return
	}

	if seconds > 0 {
		controller.config.Timer.Start()
	} else {
		controller.config.Timer.Pause()
	}
	controller.Update(controller.config.Timer.RemainingSeconds())
	log.Debug().Int("seconds", seconds).Msg("dial settled")
}

// cancelSettle invalidates any queued settle frame.
func (controller *Controller) cancelSettle() {
	controller.generation++
	if controller.settlePosted {
		controller.config.Frames.CancelFrame(controller.settleID)
		controller.settlePosted = false
	}
}

func (controller *Controller) playTick() {
	if controller.config.Player == nil {
		return
	}
	now := controller.clock.Now()
	if !controller.lastTone.IsZero() && now.Sub(controller.lastTone) < MinToneInterval {
		return
	}
	controller.lastTone = now
	controller.config.Player.PlayTick()
}
