package commands

import (
	"testing"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkBuffersBounds(t *testing.T) {
	buffers := chunkBuffers{pos: world.ChunkPos{X: -1, Z: 2}}

	lo, hi := buffers.bounds()
	assert.Equal(t, glm.Vec3f{-16, world.MinY, 32}, lo)
	assert.Equal(t, glm.Vec3f{0, world.MaxY, 48}, hi)
}

func TestDistanceSqr(t *testing.T) {
	// y is ignored
	assert.Equal(t, float32(0), distanceSqr(world.ChunkPos{}, glm.Vec3f{8, 500, 8}))
	assert.Equal(t, float32(16*16), distanceSqr(world.ChunkPos{X: 1}, glm.Vec3f{8, 0, 8}))
}

func TestMeshBuckets(t *testing.T) {
	mesh := &world.Mesh{
		Solid:     make([]world.Vertex, 6),
		Water:     make([]world.Vertex, 12),
		TallGrass: make([]world.Vertex, 24),
	}

	buckets := meshBuckets(mesh)
	assert.Len(t, buckets[passSolid], 6)
	assert.Len(t, buckets[passFoliage], 0)
	assert.Len(t, buckets[passTallGrass], 24)
	assert.Len(t, buckets[passWater], 12)
}

func TestCullAndSort(t *testing.T) {
	// camera at the origin, looking along -z
	proj := glm.Perspective[float32](glm.DegToRad(90.0), 1, 0.1, 1000)
	frustum := glm.FrustumOf(proj)

	chunks := map[int64]*chunkBuffers{}
	for _, pos := range []world.ChunkPos{{X: 0, Z: -3}, {X: 0, Z: 2}, {X: 0, Z: -1}, {X: -1, Z: -1}} {
		chunks[pos.Key()] = &chunkBuffers{pos: pos}
	}

	visible := cullAndSort(nil, chunks, frustum, glm.Vec3f{})
	require.Len(t, visible, 3)

	// equal distances are ordered by position
	assert.Equal(t, world.ChunkPos{X: -1, Z: -1}, visible[0].pos)
	assert.Equal(t, world.ChunkPos{X: 0, Z: -1}, visible[1].pos)
	assert.Equal(t, world.ChunkPos{X: 0, Z: -3}, visible[2].pos)
}

func TestVoxelPassString(t *testing.T) {
	assert.Equal(t, "Solid", passSolid.String())
	assert.Equal(t, "TallGrass", passTallGrass.String())
	assert.Equal(t, "Water", passWater.String())
	assert.Equal(t, "voxelPass(9)", voxelPass(9).String())
}
