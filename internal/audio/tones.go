package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the output rate of every synthesized buffer.
const SampleRate = 44100

const (
	tickDuration  = 28 * time.Millisecond
	tickFrequency = 1900.0
	tickGain      = 0.35

	beepDuration = 420 * time.Millisecond
	beepGap      = time.Second
	beepCount    = 3
	chimeGain    = 0.22
)

// TickPCM returns a short mechanical click.
func TickPCM() []byte {
	samples := make([]float64, sampleCount(tickDuration))
	for index := range samples {
		t := float64(index) / SampleRate
		decay := math.Exp(-t * 180)
		samples[index] = tickGain * decay * math.Sin(2*math.Pi*tickFrequency*t)
	}
	return encodeStereo16(samples)
}

// ChimePCM returns three soft beeps one second apart. Each beep glides a
// sine from 660 to 880 Hz over a triangle from 440 to 660 Hz.
func ChimePCM() []byte {
	total := sampleCount(beepGap*(beepCount-1) + beepDuration)
	samples := make([]float64, total)
	beepSamples := sampleCount(beepDuration)
	for beep := 0; beep < beepCount; beep++ {
		offset := sampleCount(beepGap * time.Duration(beep))
		sinePhase, trianglePhase := 0.0, 0.0
		for index := 0; index < beepSamples && offset+index < total; index++ {
			progress := float64(index) / float64(beepSamples)
			sinePhase += 2 * math.Pi * glide(660, 880, progress) / SampleRate
			trianglePhase += glide(440, 660, progress) / SampleRate
			value := 0.7*math.Sin(sinePhase) + 0.3*triangle(trianglePhase)
			samples[offset+index] = chimeGain * envelope(progress) * value
		}
	}
	return encodeStereo16(samples)
}

func sampleCount(duration time.Duration) int {
	return int(duration.Seconds() * SampleRate)
}

// glide interpolates exponentially between two frequencies.
func glide(from, to, progress float64) float64 {
	return from * math.Pow(to/from, math.Min(1, progress*4))
}

func triangle(phase float64) float64 {
	_, fraction := math.Modf(phase)
	return 4*math.Abs(fraction-0.5) - 1
}

// envelope is a fast attack followed by an exponential release.
func envelope(progress float64) float64 {
	const attack = 0.03
	if progress < attack {
		return progress / attack
	}
	return math.Exp(-(progress - attack) * 5)
}

// encodeStereo16 writes mono samples in [-1, 1] as 16-bit little-endian
// stereo frames.
func encodeStereo16(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for index, sample := range samples {
		sample = math.Max(-1, math.Min(1, sample))
		value := uint16(int16(math.Round(sample * math.MaxInt16)))
		binary.LittleEndian.PutUint16(out[index*4:], value)
		binary.LittleEndian.PutUint16(out[index*4+2:], value)
	}
	return out
}
