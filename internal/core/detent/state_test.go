package detent

import (
	"math"
	"testing"
	"time"

	"realpomo/internal/core/angle"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hour = 60 * 60

var center = angle.Point{X: 100, Y: 100}

func pointerAtStep(steps float64) angle.Point {
	value := steps * angle.StepRad
	return angle.Point{
		X: center.X + 80*math.Sin(value),
		Y: center.Y - 80*math.Cos(value),
	}
}

func newState(t *testing.T) (*State, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	return New(clock), clock
}

// dragTo moves the pointer in 0.1 detent increments and counts crossings.
func dragTo(state *State, clock *clockwork.FakeClock, from, to float64, frame time.Duration) int {
	crossings := 0
	direction := 1.0
	if to < from {
		direction = -1
	}
	for position := from + direction*0.1; direction*(to-position) > 1e-9; position += direction * 0.1 {
		clock.Advance(frame)
		if state.UpdateDrag(pointerAtStep(position), center, hour) {
			crossings++
		}
	}
	clock.Advance(frame)
	if state.UpdateDrag(pointerAtStep(to), center, hour) {
		crossings++
	}
	return crossings
}

func TestStartDragInsideDeadzoneIsIgnored(t *testing.T) {
	state, _ := newState(t)
	before := *state

	ok := state.StartDrag(angle.Point{X: center.X + 1, Y: center.Y - 1}, center, 0, hour)

	assert.False(t, ok)
	assert.False(t, state.IsDragging)
	assert.Equal(t, before, *state)
	assert.Equal(t, PhaseIdle, state.Phase())
}

func TestStartDragSeedsFromCurrentTimerValue(t *testing.T) {
	state, _ := newState(t)

	ok := state.StartDrag(pointerAtStep(15), center, angle.SecondsToAngle(600, hour), hour)

	require.True(t, ok)
	assert.Equal(t, PhaseDragging, state.Phase())
	assert.Equal(t, 10, state.DetentIndexCommitted)
	assert.Equal(t, 10, state.LastMinuteCrossed)
	assert.InDelta(t, 15*angle.StepRad, state.AngleRaw, 1e-9)
	assert.Equal(t, state.AngleRaw, state.AngleDisplay)
	assert.Zero(t, state.VelocityRadS)
}

func TestUpdateDragWithoutDragIsNoop(t *testing.T) {
	state, _ := newState(t)
	assert.False(t, state.UpdateDrag(pointerAtStep(5), center, hour))
	assert.Zero(t, state.AngleRaw)
}

func TestFirstUpdateOnlyInitialisesMinute(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(3), center, 0, hour))
	state.LastMinuteCrossed = noMinute

	clock.Advance(20 * time.Millisecond)
	assert.False(t, state.UpdateDrag(pointerAtStep(3.2), center, hour))
	assert.Equal(t, 3, state.LastMinuteCrossed)
}

func TestSlowDragSnapsToTwentyFiveMinutes(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))

	crossings := dragTo(state, clock, 0, 25.05, 50*time.Millisecond)

	detentAngle := 25 * angle.StepRad
	assert.Equal(t, 25, crossings)
	assert.Equal(t, 25, state.DetentIndexNearest)
	assert.Less(t, math.Abs(state.AngleDisplay-detentAngle), math.Abs(state.AngleRaw-detentAngle))

	release := state.SnapOnRelease(hour)
	assert.InDelta(t, detentAngle, release.Angle, 1e-12)
	assert.Equal(t, 1500, angle.AngleToSeconds(release.Angle, hour))
	assert.False(t, release.ShouldPlaySound, "minute 25 was already ticked during the drag")
}

func TestFastDragSuppressesMagnet(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))

	dragTo(state, clock, 0, 10.05, time.Millisecond)

	assert.Greater(t, state.VelocityRadS, FastVelocity)
	assert.InDelta(t, state.AngleRaw, state.AngleDisplay, 1e-12)
}

func TestReleaseTicksForUncrossedForwardMinute(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 9.6, 50*time.Millisecond)
	require.Equal(t, 9, state.LastMinuteCrossed)

	release := state.SnapOnRelease(hour)

	assert.True(t, release.ShouldPlaySound)
	assert.Equal(t, 10, state.LastMinuteCrossed)
	assert.Equal(t, 10, state.DetentIndexCommitted)
}

func TestBackwardReleaseDoesNotTick(t *testing.T) {
	state, clock := newState(t)
	current := angle.SecondsToAngle(600, hour)
	require.True(t, state.StartDrag(pointerAtStep(10), center, current, hour))

	crossings := dragTo(state, clock, 10, 9.4, 50*time.Millisecond)
	assert.Equal(t, 1, crossings)

	release := state.SnapOnRelease(hour)
	assert.False(t, release.ShouldPlaySound)
	assert.Equal(t, 540, angle.AngleToSeconds(release.Angle, hour))
}

func TestReleaseBackIntoPreviouslyCrossedMinuteTicksAgain(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 12.2, 50*time.Millisecond)
	dragTo(state, clock, 12.2, 11.7, 50*time.Millisecond)
	require.Equal(t, 11, state.LastMinuteCrossed)

	release := state.SnapOnRelease(hour)

	assert.True(t, release.ShouldPlaySound)
	assert.Equal(t, 720, angle.AngleToSeconds(release.Angle, hour))
}

func TestDragPastTopPinsAtFullTurn(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(59.5), center, angle.SecondsToAngle(3570, hour), hour))

	crossings := dragTo(state, clock, 59.5, 61, 50*time.Millisecond)

	assert.Equal(t, 1, crossings)
	assert.Equal(t, 60, state.LastMinuteCrossed)
	assert.InDelta(t, angle.FullTurn, state.AngleRaw, 1e-12)
	assert.InDelta(t, angle.FullTurn, state.AngleDisplay, 1e-12)

	release := state.SnapOnRelease(hour)
	assert.InDelta(t, angle.FullTurn, release.Angle, 1e-12)
	assert.False(t, release.ShouldPlaySound)
}

func TestDragBackPastZeroPinsAtZero(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(2), center, angle.SecondsToAngle(120, hour), hour))

	crossings := dragTo(state, clock, 2, -1.5, 50*time.Millisecond)

	assert.Equal(t, 2, crossings)
	assert.Equal(t, 0, state.LastMinuteCrossed)
	assert.Zero(t, state.AngleRaw)
	assert.Zero(t, state.AngleDisplay)

	release := state.SnapOnRelease(hour)
	assert.Zero(t, release.Angle)
	assert.False(t, release.ShouldPlaySound)
}

func TestDragBackFromPinnedTopLeavesFullTurnImmediately(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(59), center, angle.SecondsToAngle(3540, hour), hour))
	dragTo(state, clock, 59, 62, 50*time.Millisecond)
	require.InDelta(t, angle.FullTurn, state.AngleRaw, 1e-12)

	dragTo(state, clock, 62, 61.5, 50*time.Millisecond)

	assert.InDelta(t, angle.FullTurn-0.5*angle.StepRad, state.AngleRaw, 1e-9)
	assert.Equal(t, 59, state.LastMinuteCrossed)
}

func TestPressJustPastTopOnNearlyFullDialStartsAtFullTurn(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0.5), center, angle.FullTurn, hour))
	assert.Equal(t, angle.FullTurn, state.AngleRaw)
	assert.Equal(t, 60, state.LastMinuteCrossed)

	crossings := dragTo(state, clock, 0.5, -0.5, 50*time.Millisecond)

	assert.Equal(t, 1, crossings)
	assert.InDelta(t, 59*angle.StepRad, state.AngleRaw, 1e-9)
}

func TestPressJustPastTopOnShortTimerStartsAtPointer(t *testing.T) {
	state, _ := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0.5), center, angle.SecondsToAngle(600, hour), hour))
	assert.InDelta(t, 0.5*angle.StepRad, state.AngleRaw, 1e-9)
}

func TestSettleOvershootsInDirectionOfTravel(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 4.7, 50*time.Millisecond)

	release := state.SnapOnRelease(hour)
	assert.Equal(t, PhaseSettling, state.Phase())
	assert.InDelta(t, release.Angle+OvershootRad, state.SettleFrom, 1e-12)
	assert.Equal(t, release.Angle, state.SettleTo)

	clock.Advance(SettleDuration / 2)
	require.True(t, state.UpdateSettle())
	assert.Greater(t, state.AngleDisplay, release.Angle)
	assert.LessOrEqual(t, state.AngleDisplay, release.Angle+OvershootRad)

	clock.Advance(SettleDuration)
	assert.False(t, state.UpdateSettle())
	assert.Equal(t, PhaseIdle, state.Phase())
	assert.InDelta(t, release.Angle, state.AngleDisplay, 1e-12)
	assert.Equal(t, state.AngleDisplay, state.AngleRaw)
}

func TestSettleOvershootsBackwardWhenRawPassedDetent(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 5.3, 50*time.Millisecond)

	release := state.SnapOnRelease(hour)
	assert.InDelta(t, release.Angle-OvershootRad, state.SettleFrom, 1e-12)
}

func TestNewDragSupersedesSettle(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 3, 50*time.Millisecond)
	state.SnapOnRelease(hour)

	require.True(t, state.StartDrag(pointerAtStep(7), center, 3*angle.StepRad, hour))
	clock.Advance(10 * time.Millisecond)

	assert.False(t, state.UpdateSettle())
	assert.Equal(t, PhaseDragging, state.Phase())
}

func TestEndDragLeavesSettleRunning(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 2, 50*time.Millisecond)
	state.SnapOnRelease(hour)

	state.EndDrag()

	assert.True(t, state.InSettleAnimation)
	assert.False(t, state.IsDragging)
}

func TestResetReturnsToIdleAtZero(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(0), center, 0, hour))
	dragTo(state, clock, 0, 8, 50*time.Millisecond)

	state.Reset()

	assert.Equal(t, PhaseIdle, state.Phase())
	assert.Zero(t, state.AngleRaw)
	assert.Zero(t, state.AngleDisplay)
	assert.Equal(t, noMinute, state.LastMinuteCrossed)
}

func TestSyncOnlyWhenIdle(t *testing.T) {
	state, _ := newState(t)
	state.Sync(angle.SecondsToAngle(571, hour))
	assert.InDelta(t, 10*angle.StepRad, state.AngleDisplay, 1e-12)
	assert.Equal(t, 10, state.DetentIndexCommitted)

	require.True(t, state.StartDrag(pointerAtStep(20), center, state.AngleRaw, hour))
	state.Sync(0)
	assert.InDelta(t, 20*angle.StepRad, state.AngleRaw, 1e-9)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "dragging", PhaseDragging.String())
	assert.Equal(t, "settling", PhaseSettling.String())
}

func TestReleaseNearTopSettlesOnFullTurn(t *testing.T) {
	state, clock := newState(t)
	require.True(t, state.StartDrag(pointerAtStep(59), center, 0, hour))
	dragTo(state, clock, 59, 59.8, 50*time.Millisecond)

	release := state.SnapOnRelease(hour)
	assert.InDelta(t, angle.FullTurn, release.Angle, 1e-12)

	clock.Advance(SettleDuration)
	assert.False(t, state.UpdateSettle())
	assert.InDelta(t, angle.FullTurn, state.AngleDisplay, 1e-12)
	assert.Zero(t, state.AngleRaw)
}
