package timekeeper

import "time"

// Mode is the timing strategy chosen at construction.
type Mode string

const (
	// ModeDelta subtracts the time between scheduled frames.
	ModeDelta Mode = "delta"
	// ModeWallClock derives the remaining time from an absolute deadline.
	ModeWallClock Mode = "wall_clock"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventStateChange EventType = "state_change"
	EventDone        EventType = "done"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type             EventType
	RemainingSeconds int
	Running          bool
	At               time.Time
}
