// Package detent implements the clockwork dial feel: magnetic detents while
// dragging, a full commit to the nearest detent on release, and a short
// eased settle animation with a slight overshoot.
package detent

import (
	"math"
	"time"

	"realpomo/internal/core/angle"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Tunables. Changing them changes how the dial feels.
const (
	DetentZoneFrac    = 0.20
	MaxMagnetStrength = 0.55
	FastVelocity      = 8.0 // rad/s
	SettleDuration    = 180 * time.Millisecond
	OvershootRad      = 0.003
	DragDeadzone      = 2.0

	velocitySmoothing = 0.35
	minFrameSeconds   = 0.001
	noMinute          = -1

	// A press just clockwise of 12 o'clock on a nearly full dial starts at
	// the full end of the seam.
	topSeamBand       = 10 * math.Pi / 180
	topSeamFullMargin = 5 * 60
)

// Phase is the exclusive interaction phase of a dial.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSettling
)

func (phase Phase) String() string {
	switch phase {
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Release is the outcome of letting go of the dial.
type Release struct {
	Angle           float64
	ShouldPlaySound bool
}

// State is the mutable clockwork state of a single dial widget.
type State struct {
	AngleRaw     float64
	AngleDisplay float64
	AngleTarget  float64

	DetentIndexCommitted int
	DetentIndexNearest   int

	VelocityRadS float64

	IsDragging        bool
	InSettleAnimation bool

	LastPointerAngle float64
	LastTime         time.Time

	SettleStart time.Time
	SettleFrom  float64
	SettleTo    float64

	DragStartDistance float64
	LastMinuteCrossed int

	clock clockwork.Clock
}

// New returns an idle state at angle 0. A nil clock uses the real clock.
func New(clock clockwork.Clock) *State {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &State{
		LastMinuteCrossed: noMinute,
		clock:             clock,
	}
}

// Phase reports which of idle, dragging or settling holds.
func (state *State) Phase() Phase {
	switch {
	case state.IsDragging:
		return PhaseDragging
	case state.InSettleAnimation:
		return PhaseSettling
	default:
		return PhaseIdle
	}
}

// StartDrag begins a drag unless the pointer is inside the deadzone around
// the centre, in which case it returns false and leaves the state untouched.
func (state *State) StartDrag(pointer, center angle.Point, currentAngle float64, maxSeconds int) bool {
	distance := pointer.Distance(center)
	if distance < DragDeadzone {
		return false
	}

	pointerAngle := angle.PointerToAngle(pointer, center)
	startAngle := pointerAngle
	nearlyFull := maxSeconds > 0 && angle.DragAngleToSeconds(currentAngle, maxSeconds) >= maxSeconds-topSeamFullMargin
	if nearlyFull && pointerAngle <= topSeamBand {
		startAngle = angle.FullTurn
	}
	state.IsDragging = true
	state.InSettleAnimation = false
	state.DragStartDistance = distance
	state.AngleRaw = startAngle
	state.AngleDisplay = startAngle
	state.LastPointerAngle = pointerAngle
	state.LastTime = state.clock.Now()
	state.VelocityRadS = 0
	state.DetentIndexCommitted = angle.CommittedDetentIndex(currentAngle)
	state.LastMinuteCrossed = angle.MinuteOf(angle.DragAngleToSeconds(currentAngle, maxSeconds))

	log.Debug().
		Float64("angle", startAngle).
		Int("committed", state.DetentIndexCommitted).
		Msg("dial drag started")
	return true
}

// UpdateDrag follows the pointer and reports whether a minute boundary was
// crossed since the last report. The raw angle accumulates unwrapped deltas
// and is pinned to [0, 2π], so dragging past 12 o'clock holds the dial at
// full or empty instead of lapping.
func (state *State) UpdateDrag(pointer, center angle.Point, maxSeconds int) bool {
	if !state.IsDragging {
		return false
	}

	now := state.clock.Now()
	pointerAngle := angle.PointerToAngle(pointer, center)
	delta := angle.UnwrapDelta(pointerAngle, state.LastPointerAngle)
	state.AngleRaw = angle.ClampTurn(state.AngleRaw + delta)

	dt := math.Max(minFrameSeconds, now.Sub(state.LastTime).Seconds())
	state.VelocityRadS += (delta/dt - state.VelocityRadS) * velocitySmoothing

	state.DetentIndexNearest = angle.NearestDetentIndex(state.AngleRaw)
	state.AngleDisplay = applyMagnet(state.AngleRaw, state.VelocityRadS)

	minute := angle.MinuteOf(angle.DragAngleToSeconds(state.AngleRaw, maxSeconds))
	crossed := false
	switch {
	case state.LastMinuteCrossed == noMinute:
		state.LastMinuteCrossed = minute
	case minute != state.LastMinuteCrossed:
		state.LastMinuteCrossed = minute
		crossed = true
	}

	state.LastPointerAngle = pointerAngle
	state.LastTime = now
	return crossed
}

// SnapOnRelease commits to the detent nearest the raw angle and prepares the
// settle animation. Sound is requested only for forward progress that was not
// already ticked during the drag.
func (state *State) SnapOnRelease(maxSeconds int) Release {
	snapped := angle.SnapToDetent(state.AngleRaw)
	index := angle.NearestDetentIndex(state.AngleRaw)
	minute := angle.MinuteOf(angle.DragAngleToSeconds(snapped, maxSeconds))
	shouldPlay := minute > state.LastMinuteCrossed

	state.AngleTarget = snapped
	state.DetentIndexCommitted = index
	state.DetentIndexNearest = index
	state.LastMinuteCrossed = minute

	sign := 1.0
	if direction := angle.SignedDistance(snapped, state.AngleRaw); direction < 0 {
		sign = -1
	}
	state.IsDragging = false
	state.InSettleAnimation = true
	state.SettleStart = state.clock.Now()
	state.SettleFrom = snapped + sign*OvershootRad
	state.SettleTo = snapped

	log.Debug().
		Int("detent", index).
		Int("minute", minute).
		Bool("sound", shouldPlay).
		Msg("dial released")
	return Release{Angle: snapped, ShouldPlaySound: shouldPlay}
}

// UpdateSettle advances the settle animation and reports whether it is still
// running. Once finished the display rests on the target and the raw angle on
// its normalized value, so a full-turn target keeps displaying a full dial.
func (state *State) UpdateSettle() bool {
	if !state.InSettleAnimation {
		return false
	}

	elapsed := state.clock.Since(state.SettleStart)
	progress := float64(elapsed) / float64(SettleDuration)
	if progress >= 1 {
		state.AngleDisplay = state.SettleTo
		state.AngleRaw = angle.Normalize(state.SettleTo)
		state.InSettleAnimation = false
		return false
	}

	state.AngleDisplay = state.SettleFrom + (state.SettleTo-state.SettleFrom)*angle.EaseOutQuart(progress)
	return true
}

// EndDrag clears the dragging flag and leaves any settle animation running.
func (state *State) EndDrag() {
	state.IsDragging = false
}

// Reset puts the dial idle at angle 0, dropping any drag or settle.
func (state *State) Reset() {
	state.AngleRaw = 0
	state.AngleDisplay = 0
	state.AngleTarget = 0
	state.DetentIndexCommitted = 0
	state.DetentIndexNearest = 0
	state.VelocityRadS = 0
	state.IsDragging = false
	state.InSettleAnimation = false
	state.LastMinuteCrossed = noMinute
}

// Sync aligns an idle dial with the timer's current angle.
func (state *State) Sync(current float64) {
	if state.IsDragging || state.InSettleAnimation {
		return
	}
	state.AngleRaw = current
	state.AngleDisplay = angle.SnapToDetent(current)
	state.DetentIndexCommitted = angle.CommittedDetentIndex(current)
	state.DetentIndexNearest = angle.NearestDetentIndex(current)
}

func applyMagnet(raw, velocity float64) float64 {
	detent := angle.SnapToDetent(raw)
	delta := angle.SignedDistance(raw, detent)
	distance := math.Abs(delta)
	zone := DetentZoneFrac * angle.StepRad
	if distance >= zone {
		return raw
	}

	strength := MaxMagnetStrength * (1 - angle.Clamp01(math.Abs(velocity)/FastVelocity))
	pull := angle.Smoothstep(1-distance/zone) * strength
	return raw - delta*pull
}
