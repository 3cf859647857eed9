package orion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameTimesTick(t *testing.T) {
	var times FrameTimes

	start := time.Unix(1000, 0)

	require.False(t, times.tickAt(start))
	assert.Equal(t, time.Duration(0), times.Delta)
	assert.Equal(t, float64(0), times.FPS())

	now := start
	for idx := 1; idx < 60; idx++ {
		now = now.Add(20 * time.Millisecond)

		// every 60th frame reports true
		assert.Equal(t, idx == 59, times.tickAt(now))
	}

	assert.Equal(t, uint64(60), times.FrameCount)
	assert.Equal(t, 20*time.Millisecond, times.Delta)
	assert.Equal(t, 59*20*time.Millisecond, times.Elapsed)
	assert.InDelta(t, 50, times.FPS(), 0.01)
}

func TestFrameTimesMaxDuration(t *testing.T) {
	var times FrameTimes

	now := time.Unix(0, 0)
	times.tickAt(now)

	for _, d := range []time.Duration{10, 40, 20} {
		now = now.Add(d * time.Millisecond)
		times.tickAt(now)
	}

	assert.Equal(t, 40*time.Millisecond, times.MaxDuration)
	assert.Equal(t, 20*time.Millisecond, times.Delta)
}

func TestFrameProfileAverage(t *testing.T) {
	var profile frameProfile

	assert.Equal(t, float64(0), profile.fps())

	now := time.Unix(0, 0)
	profile.startFrameAt(now)

	for range 4 {
		now = now.Add(25 * time.Millisecond)
		profile.startFrameAt(now)
	}

	assert.Equal(t, 4, profile.frameCount)
	assert.Equal(t, 25*time.Millisecond, profile.average().Total)
	assert.InDelta(t, 40, profile.fps(), 0.01)
}
