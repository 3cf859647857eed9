package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkPos(t *testing.T) {
	assert.Equal(t, ChunkPos{0, 0}, ChunkPosOf(0, 15))
	assert.Equal(t, ChunkPos{-1, 1}, ChunkPosOf(-1, 16))
	assert.Equal(t, ChunkPos{-2, -1}, ChunkPosOf(-17, -16))

	assert.Equal(t, 3, ChunkPos{1, -2}.Chebyshev(ChunkPos{-1, 1}))

	x, z := ChunkPos{-2, 3}.Origin()
	assert.Equal(t, -32, x)
	assert.Equal(t, 48, z)
}

func TestChunkKeyIsUnique(t *testing.T) {
	seen := map[int64]ChunkPos{}

	for x := -3; x <= 3; x++ {
		for z := -3; z <= 3; z++ {
			pos := ChunkPos{x, z}
			key := pos.Key()

			prev, ok := seen[key]
			assert.False(t, ok, "key of %v collides with %v", pos, prev)
			seen[key] = pos
		}
	}

	assert.Equal(t, int64(1)<<32|0xffffffff, ChunkPos{1, -1}.Key())
}

func TestChunkGetSet(t *testing.T) {
	c := NewChunk(ChunkPos{})

	c.Set(3, 10, 4, Stone)
	assert.Equal(t, Stone, c.Get(3, 10, 4))
	assert.Equal(t, Air, c.Get(4, 10, 3))

	c.Set(0, MinY, 0, Deepslate)
	c.Set(15, MaxY-1, 15, Snow)
	assert.Equal(t, Deepslate, c.Get(0, MinY, 0))
	assert.Equal(t, Snow, c.Get(15, MaxY-1, 15))

	// out of range reads are air, writes are dropped
	assert.Equal(t, Air, c.Get(0, MinY-1, 0))
	assert.Equal(t, Air, c.Get(0, MaxY, 0))

	c.Set(16, 0, 0, Stone)
	c.Set(-1, 0, 0, Stone)
	c.Set(0, MaxY, 0, Stone)
	assert.Equal(t, 1, c.Count(Stone))
}

func TestPlaceModelClipsAtBorder(t *testing.T) {
	c := NewChunk(ChunkPos{})

	c.PlaceModel(0, 100, 0, BuiltinModels().BushShort)

	assert.Equal(t, Log, c.Get(0, 100, 0))
	assert.Equal(t, Leaves, c.Get(1, 100, 0))
	assert.Equal(t, Leaves, c.Get(0, 101, 0))

	// the parts at -1 are dropped
	assert.Equal(t, 3, c.Count(Leaves))
}

func TestHighestIgnoresWater(t *testing.T) {
	c := NewChunk(ChunkPos{})
	assert.Equal(t, MinY, c.Highest(0, 0))

	c.Set(0, 60, 0, Sand)
	c.Set(0, 61, 0, Water)
	c.Set(0, 62, 0, Water)
	assert.Equal(t, 60, c.Highest(0, 0))
}

func TestTakeMeshKeepsNewest(t *testing.T) {
	c := NewChunk(ChunkPos{})
	assert.Nil(t, c.TakeMesh())

	newer := &Mesh{}
	older := &Mesh{}

	c.offerMesh(2, newer)
	c.offerMesh(1, older)

	assert.True(t, c.HasPendingMesh())
	assert.Same(t, newer, c.TakeMesh())
	assert.False(t, c.HasPendingMesh())
	assert.Nil(t, c.TakeMesh())
}
