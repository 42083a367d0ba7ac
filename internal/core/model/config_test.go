package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedClampsDialRange(t *testing.T) {
	cases := []struct {
		name string
		in   DialConfig
		want DialConfig
	}{
		{"default", DefaultDialConfig(), DialConfig{MaxSeconds: 3600}},
		{"too short", DialConfig{MaxSeconds: 10, InitialSeconds: 30}, DialConfig{MaxSeconds: 60, InitialSeconds: 30}},
		{"too long", DialConfig{MaxSeconds: 100000}, DialConfig{MaxSeconds: 86400}},
		{"initial above max", DialConfig{MaxSeconds: 600, InitialSeconds: 900}, DialConfig{MaxSeconds: 600, InitialSeconds: 600}},
		{"negative initial", DialConfig{MaxSeconds: 600, InitialSeconds: -1}, DialConfig{MaxSeconds: 600}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalized())
		})
	}
}

func TestDialConfigFromMinutes(t *testing.T) {
	assert.Equal(t, DialConfig{MaxSeconds: 5400, InitialSeconds: 120}, DialConfigFromMinutes(90, 120))
	assert.Equal(t, DialConfig{MaxSeconds: 60}, DialConfigFromMinutes(0, 0))
}

func TestPresetSecondsLimitedByDial(t *testing.T) {
	assert.Equal(t, 1500, Presets[2].Seconds(3600))
	assert.Equal(t, 1800, Presets[4].Seconds(1800))
}

func TestFormatTimer(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimer(0))
	assert.Equal(t, "00:00", FormatTimer(-5))
	assert.Equal(t, "09:31", FormatTimer(571))
	assert.Equal(t, "60:00", FormatTimer(3600))
	assert.Equal(t, "1440:00", FormatTimer(90000))
}
