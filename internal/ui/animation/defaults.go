package animation

import "time"

// DefaultConfig flashes for 1.6 seconds in four even pulses.
func DefaultConfig() Config {
	return Config{
		FlashDuration: 1600 * time.Millisecond,
		PulseOn:       200 * time.Millisecond,
		PulseOff:      200 * time.Millisecond,
	}
}
