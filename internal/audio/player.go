// Package audio plays the dial's detent tick and the completion chime through
// a process-wide audio context created on first use.
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog/log"
)

// Sound identifies a synthesized clip.
type Sound int

const (
	SoundTick Sound = iota
	SoundDone
)

func (sound Sound) String() string {
	switch sound {
	case SoundTick:
		return "tick"
	case SoundDone:
		return "done"
	default:
		return fmt.Sprintf("sound(%d)", int(sound))
	}
}

const queueSize = 8

var (
	contextOnce   sync.Once
	sharedContext *ebitenaudio.Context
	contextErr    error
)

// sharedAudioContext creates the audio context exactly once per process.
func sharedAudioContext() (*ebitenaudio.Context, error) {
	contextOnce.Do(func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				contextErr = fmt.Errorf("create audio context: %v", recovered)
			}
		}()
		sharedContext = ebitenaudio.NewContext(SampleRate)
	})
	return sharedContext, contextErr
}

// Player queues sounds for a background goroutine so callers never block.
type Player struct {
	enabled  atomic.Bool
	requests chan Sound
	done     chan struct{}
	closed   sync.Once

	clips  map[Sound][]byte
	output func(sound Sound, pcm []byte) error
	active []*ebitenaudio.Player
	warned bool
}

// NewPlayer starts a player. Sounds are dropped while disabled.
func NewPlayer(enabled bool) *Player {
	player := newPlayer(enabled, nil)
	go player.loop()
	return player
}

func newPlayer(enabled bool, output func(Sound, []byte) error) *Player {
	player := &Player{
		requests: make(chan Sound, queueSize),
		done:     make(chan struct{}),
		clips: map[Sound][]byte{
			SoundTick: TickPCM(),
			SoundDone: ChimePCM(),
		},
	}
	player.output = output
	if output == nil {
		player.output = player.playPCM
	}
	player.enabled.Store(enabled)
	return player
}

// SetEnabled toggles playback.
func (player *Player) SetEnabled(enabled bool) {
	player.enabled.Store(enabled)
}

// Enabled reports whether sounds are played.
func (player *Player) Enabled() bool {
	return player.enabled.Load()
}

// PlayTick queues the detent tick.
func (player *Player) PlayTick() {
	player.queue(SoundTick)
}

// PlayDone queues the completion chime.
func (player *Player) PlayDone() {
	player.queue(SoundDone)
}

// Close stops the playback goroutine. Queued sounds are discarded.
func (player *Player) Close() {
	player.closed.Do(func() {
		close(player.done)
	})
}

func (player *Player) queue(sound Sound) {
	if !player.enabled.Load() {
		return
	}
	select {
	case <-player.done:
	case player.requests <- sound:
	default:
		log.Debug().Stringer("sound", sound).Msg("audio queue full, dropping sound")
	}
}

func (player *Player) loop() {
	for {
		select {
		case <-player.done:
			return
		case sound := <-player.requests:
			if err := player.output(sound, player.clips[sound]); err != nil && !player.warned {
				player.warned = true
				log.Warn().Err(err).Msg("sound playback unavailable")
			}
		}
	}
}

func (player *Player) playPCM(_ Sound, pcm []byte) error {
	ctx, err := sharedAudioContext()
	if err != nil {
		return err
	}

	playing := player.active[:0]
	for _, active := range player.active {
		if active.IsPlaying() {
			playing = append(playing, active)
		}
	}
	player.active = playing

	clip := ctx.NewPlayerFromBytes(pcm)
	clip.Play()
	player.active = append(player.active, clip)
	return nil
}
