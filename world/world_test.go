package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// pump updates the world until the condition holds.
func pump(t *testing.T, w *World, x, z float64, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		require.NoError(t, w.Update(x, z))

		if condition() {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatal("condition not reached in time")
}

func TestSortedOffsets(t *testing.T) {
	offsets := sortedOffsets(2)
	require.Len(t, offsets, 25)

	assert.Equal(t, ChunkPos{}, offsets[0])

	prev := 0
	for _, o := range offsets {
		dist := o.X*o.X + o.Z*o.Z
		assert.GreaterOrEqual(t, dist, prev)
		prev = dist
	}
}

func TestWorldStreaming(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(Options{Seed: 1234, RenderDistance: 1, MaxInFlight: 4})
	require.NoError(t, err)

	require.NoError(t, w.Update(8, 8))
	assert.LessOrEqual(t, w.Stats().Loading, 4)

	pump(t, w, 8, 8, func() bool {
		stats := w.Stats()
		return stats.Loaded == 9 && stats.Loading == 0
	})

	for _, chunk := range w.Chunks() {
		assert.LessOrEqual(t, chunk.Pos.Chebyshev(ChunkPos{}), 1)
	}

	center := w.Chunk(0, 0)
	require.NotNil(t, center)

	// the neighbours trigger rebuilds of the center, wait for the final mesh
	var mesh *Mesh
	pump(t, w, 8, 8, func() bool {
		if m := center.TakeMesh(); m != nil {
			mesh = m
		}

		return mesh != nil
	})

	assert.Equal(t, ChunkPos{}, mesh.Pos)
	assert.False(t, mesh.Empty())

	// move far away, the old chunks get dropped
	pump(t, w, 16*100, 0, func() bool {
		return w.Chunk(0, 0) == nil && w.Stats().Loaded == 9
	})

	assert.True(t, center.Unloaded())
	assert.NotNil(t, w.Chunk(100, 0))

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Update(0, 0), ErrClosed)
}

func TestWorldBiomeAt(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(Options{Seed: 77, RenderDistance: 2})
	require.NoError(t, err)
	defer w.Close()

	for _, p := range [][2]int{{0, 0}, {-123, 456}, {5000, 5000}} {
		expected := w.Generator().BiomeAt(p[0], p[1])
		assert.Equal(t, expected, w.BiomeAt(p[0], p[1]))

		// second lookup hits the cache
		assert.Equal(t, expected, w.BiomeAt(p[0], p[1]))
	}

	assert.Equal(t, int64(77), w.Seed())
	assert.Equal(t, 2, w.RenderDistance())
}

func TestGenerateWorkerDropsStaleJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := newWorld(Options{Seed: 99, RenderDistance: 1, MaxInFlight: 4})
	require.NoError(t, err)

	// queue the chunks around the origin while no worker is running
	require.NoError(t, w.enqueue(ChunkPos{}))
	require.Equal(t, 4, w.Stats().Loading)
	require.Len(t, w.genJobs, 4)

	var stale []int64
	for key := range w.loading {
		stale = append(stale, key)
	}

	// the player moves away before the workers pick up the jobs
	w.playerX.Store(1000)
	w.start()

	require.Eventually(t, func() bool {
		return w.Stats().Loading == 0
	}, 10*time.Second, 5*time.Millisecond)

	require.NoError(t, w.Close())

	w.mu.RLock()
	for _, key := range stale {
		assert.NotContains(t, w.loading, key)
		assert.NotContains(t, w.chunks, key)
	}
	w.mu.RUnlock()

	assert.Empty(t, w.genJobs)
	assert.Empty(t, w.finished)
}
