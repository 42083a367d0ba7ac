package animation

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	FlashDuration: 400 * time.Millisecond,
	PulseOn:       100 * time.Millisecond,
	PulseOff:      100 * time.Millisecond,
}

func next(t *testing.T, states <-chan bool) bool {
	t.Helper()
	select {
	case lit := <-states:
		return lit
	case <-time.After(2 * time.Second):
		t.Fatal("no flash update")
		return false
	}
}

func advance(t *testing.T, clock *clockwork.FakeClock, step time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(step)
}

func TestFlashPulsesUntilDeadline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	states := make(chan bool, 16)
	engine := New(testConfig, clock, func(lit bool) { states <- lit })

	engine.Flash(context.Background())
	assert.True(t, engine.Active())

	var seen []bool
	seen = append(seen, next(t, states))
	for i := 0; i < 3; i++ {
		advance(t, clock, 100*time.Millisecond)
		seen = append(seen, next(t, states))
	}
	advance(t, clock, 100*time.Millisecond)

	assert.Equal(t, []bool{true, false, true, false}, seen)
	require.Eventually(t, func() bool { return !engine.Active() }, time.Second, time.Millisecond)
}

func TestStopClearsHighlight(t *testing.T) {
	clock := clockwork.NewFakeClock()
	states := make(chan bool, 16)
	engine := New(testConfig, clock, func(lit bool) { states <- lit })

	engine.Flash(context.Background())
	require.True(t, next(t, states))

	engine.Stop()
	assert.False(t, next(t, states))
	assert.False(t, engine.Active())

	engine.Stop()
	select {
	case lit := <-states:
		t.Fatalf("unexpected update %v after second stop", lit)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestCancelledContextEndsFlash(t *testing.T) {
	clock := clockwork.NewFakeClock()
	engine := New(testConfig, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	engine.Flash(ctx)
	cancel()

	require.Eventually(t, func() bool { return !engine.Active() }, time.Second, time.Millisecond)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 1600*time.Millisecond, config.FlashDuration)
	assert.Equal(t, config.FlashDuration, 4*(config.PulseOn+config.PulseOff))
}
