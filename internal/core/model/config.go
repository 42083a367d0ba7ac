package model

import "fmt"

const (
	// MinDialSeconds is the shortest full-dial duration.
	MinDialSeconds = 60
	// MaxDialSeconds is the longest full-dial duration.
	MaxDialSeconds = 24 * 60 * 60
	// DefaultDialSeconds gives the classic 60-minute face.
	DefaultDialSeconds = 60 * 60
)

// DialConfig contains the values the dial core consumes.
type DialConfig struct {
	MaxSeconds     int
	InitialSeconds int
}

// DefaultDialConfig returns a 60-minute dial starting at zero.
func DefaultDialConfig() DialConfig {
	return DialConfig{MaxSeconds: DefaultDialSeconds}
}

// DialConfigFromMinutes builds a config from a full-dial length in minutes.
func DialConfigFromMinutes(maxMinutes, initialSeconds int) DialConfig {
	return DialConfig{
		MaxSeconds:     maxMinutes * 60,
		InitialSeconds: initialSeconds,
	}.Normalized()
}

// Normalized clamps MaxSeconds to [MinDialSeconds, MaxDialSeconds] and
// InitialSeconds to [0, MaxSeconds].
func (config DialConfig) Normalized() DialConfig {
	config.MaxSeconds = clamp(config.MaxSeconds, MinDialSeconds, MaxDialSeconds)
	config.InitialSeconds = clamp(config.InitialSeconds, 0, config.MaxSeconds)
	return config
}

// Preset is a one-click countdown length.
type Preset struct {
	Label   string
	Minutes int
}

// Presets lists the quick-start lengths offered in the window and tray.
var Presets = []Preset{
	{Label: "5m", Minutes: 5},
	{Label: "15m", Minutes: 15},
	{Label: "25m", Minutes: 25},
	{Label: "45m", Minutes: 45},
	{Label: "60m", Minutes: 60},
}

// Seconds returns the preset length limited to the dial.
func (preset Preset) Seconds(maxSeconds int) int {
	return clamp(preset.Minutes*60, 0, maxSeconds)
}

// FormatTimer renders seconds as MM:SS. Minutes are not wrapped into hours.
func FormatTimer(seconds int) string {
	seconds = clamp(seconds, 0, MaxDialSeconds)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
