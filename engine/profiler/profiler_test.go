package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickLogsEachInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithLogger(zap.New(core)), WithClock(clock.now), WithUpdateInterval(time.Second))

	for i := 0; i < 24; i++ {
		clock.t = clock.t.Add(40 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock.t = clock.t.Add(40 * time.Millisecond)
	require.True(t, p.Tick())

	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.InDelta(t, 25.0, entries[0].ContextMap()["fps"], 0.01)
	assert.InDelta(t, 25.0, p.FPS(), 0.01)

	clock.t = clock.t.Add(time.Second / 2)
	assert.False(t, p.Tick())
}

func TestNewProfilerDefaults(t *testing.T) {
	p := NewProfiler(WithLogger(nil), WithUpdateInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
	assert.Zero(t, p.FPS())
}
