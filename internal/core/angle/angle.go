// Package angle converts between pointer positions, dial angles, detent
// indices and timer seconds.
//
// Angles are measured in radians clockwise from 12 o'clock. All functions are
// total: non-finite inputs fold to zero instead of propagating NaN.
package angle

import "math"

const (
	// Steps is the number of detents per revolution.
	Steps = 60
	// StepRad is the angular spacing between detents.
	StepRad = FullTurn / Steps
	// FullTurn is one revolution in radians.
	FullTurn = 2 * math.Pi

	exactDetentEpsilon = 1e-9
)

// Point is a position in pointer coordinates. Y grows downward.
type Point struct {
	X float64
	Y float64
}

// Distance returns the euclidean distance between two points.
func (point Point) Distance(other Point) float64 {
	return math.Hypot(point.X-other.X, point.Y-other.Y)
}

// PointerToAngle returns the angle of the pointer around the centre.
// A pointer exactly at the centre yields 0.
func PointerToAngle(pointer, center Point) float64 {
	dx := pointer.X - center.X
	dy := pointer.Y - center.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return Normalize(math.Atan2(dx, -dy))
}

// Normalize reduces an angle to [0, 2π).
func Normalize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	value = math.Mod(value, FullTurn)
	if value < 0 {
		value += FullTurn
	}
	if value >= FullTurn {
		value -= FullTurn
	}
	return value
}

// UnwrapDelta returns the shortest signed distance from last to current,
// in (-π, π].
func UnwrapDelta(current, last float64) float64 {
	return wrapSigned(current - last)
}

func wrapSigned(delta float64) float64 {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0
	}
	delta = math.Mod(delta, FullTurn)
	if delta > math.Pi {
		delta -= FullTurn
	}
	if delta <= -math.Pi {
		delta += FullTurn
	}
	return delta
}

// NearestDetentIndex returns the detent closest to the angle.
func NearestDetentIndex(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(math.Round(value / StepRad))
}

// CommittedDetentIndex applies the midpoint rule used when seeding the
// committed detent from the timer's current value.
func CommittedDetentIndex(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(math.Floor(value/StepRad + 0.5))
}

// AngleToSeconds maps an angle onto [0, maxSeconds].
func AngleToSeconds(value float64, maxSeconds int) int {
	if maxSeconds <= 0 {
		return 0
	}
	fraction := Normalize(value) / FullTurn
	seconds := int(math.Round(fraction * float64(maxSeconds)))
	return clampInt(seconds, 0, maxSeconds)
}

// DragAngleToSeconds maps an unwrapped drag angle onto [0, maxSeconds].
// The angle is pinned to [0, 2π] first, so a full turn reads as maxSeconds
// instead of folding back to zero.
func DragAngleToSeconds(value float64, maxSeconds int) int {
	if maxSeconds <= 0 || math.IsNaN(value) {
		return 0
	}
	fraction := ClampTurn(value) / FullTurn
	return clampInt(int(math.Round(fraction*float64(maxSeconds))), 0, maxSeconds)
}

// ClampTurn pins an angle to [0, 2π] without wrapping.
func ClampTurn(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return math.Max(0, math.Min(FullTurn, value))
}

// SecondsToAngle maps seconds back onto the dial. A zero maxSeconds yields 0.
func SecondsToAngle(seconds, maxSeconds int) float64 {
	if maxSeconds == 0 {
		return 0
	}
	fraction := float64(seconds) / float64(maxSeconds)
	return Normalize(fraction * FullTurn)
}

// SnapToDetent rounds to the nearest detent. Used while setting a time.
func SnapToDetent(value float64) float64 {
	return float64(NearestDetentIndex(value)) * StepRad
}

// SnapToDetentForCountdown rounds up to the next detent unless the angle
// already sits on one. The result is in [0, 2π]; zero stays zero.
func SnapToDetentForCountdown(value float64) float64 {
	normalized := Normalize(value)
	if normalized == 0 {
		return 0
	}
	steps := normalized / StepRad
	nearest := math.Round(steps)
	if math.Abs(steps-nearest) < exactDetentEpsilon {
		return nearest * StepRad
	}
	return math.Ceil(steps) * StepRad
}

// MinuteOf returns the whole minute containing the given seconds.
func MinuteOf(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return seconds / 60
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

// Smoothstep is t²(3-2t) on a clamped t.
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// EaseOutQuart is 1-(1-p)⁴ on a clamped p.
func EaseOutQuart(p float64) float64 {
	p = Clamp01(p)
	inverse := 1 - p
	return 1 - inverse*inverse*inverse*inverse
}

// SignedDistance returns from-to wrapped into (-π, π].
func SignedDistance(from, to float64) float64 {
	return wrapSigned(from - to)
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
