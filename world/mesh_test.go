package world

import (
	"testing"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(c *Chunk) Neighborhood {
	var n Neighborhood
	n[1][1] = c
	return n
}

func TestMeshSingleBlock(t *testing.T) {
	c := NewChunk(ChunkPos{X: 1, Z: -1})
	c.Set(4, 10, 5, Stone)

	mesh := BuildMesh(single(c))

	require.Len(t, mesh.Solid, 36)
	assert.Empty(t, mesh.Water)
	assert.Empty(t, mesh.Foliage)
	assert.Empty(t, mesh.TallGrass)

	// vertices are in world space
	for _, v := range mesh.Solid {
		assert.GreaterOrEqual(t, v.Position[0], float32(20))
		assert.LessOrEqual(t, v.Position[0], float32(21))
		assert.GreaterOrEqual(t, v.Position[2], float32(-11))
		assert.LessOrEqual(t, v.Position[2], float32(-10))
		assert.Equal(t, float32(LayerStone), v.Layer)
	}
}

func TestMeshFacesPointOutwards(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.Set(8, 0, 8, Dirt)

	mesh := BuildMesh(single(c))
	center := glm.Vec3f{8.5, 0.5, 8.5}

	for i := 0; i < len(mesh.Solid); i += 3 {
		a, b, d := mesh.Solid[i].Position, mesh.Solid[i+1].Position, mesh.Solid[i+2].Position

		normal := b.Sub(a).Cross(d.Sub(a))
		outwards := a.Sub(center)

		assert.Greater(t, normal.Dot(outwards), float32(0), "triangle %d is wound clockwise", i/3)
	}
}

func TestMeshShadingAndTint(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.Set(8, 0, 8, Grass)

	mesh := BuildMesh(single(c))

	colors := map[float32]glm.Vec3f{}
	for _, v := range mesh.Solid {
		colors[v.Layer] = v.Color
	}

	assert.Equal(t, colorGrass, colors[float32(LayerGrassTop)])
	assert.InDelta(t, 0.7, colors[float32(LayerDirt)][0], 1e-6)
	assert.InDelta(t, 0.85, colors[float32(LayerGrassSide)][1], 1e-6)
}

func TestMeshCullsHiddenFaces(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.Set(4, 10, 4, Stone)
	c.Set(5, 10, 4, Stone)

	mesh := BuildMesh(single(c))
	assert.Len(t, mesh.Solid, 10*6)
}

func TestMeshFluidsAndLeaves(t *testing.T) {
	c := NewChunk(ChunkPos{})

	c.Set(4, 10, 4, Water)
	c.Set(5, 10, 4, Water)

	c.Set(4, 20, 4, Leaves)
	c.Set(5, 20, 4, Leaves)

	// non opaque neighbours do not hide faces
	c.Set(8, 30, 8, Stone)
	c.Set(8, 31, 8, Leaves)

	mesh := BuildMesh(single(c))

	assert.Len(t, mesh.Water, 10*6)
	assert.Len(t, mesh.Foliage, 10*6+5*6)
	assert.Len(t, mesh.Solid, 6*6)
}

func TestMeshPlants(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.Set(1, 10, 1, PlantGrass)
	c.Set(2, 10, 2, PlantTallBottom)
	c.Set(2, 11, 2, PlantTallTop)

	mesh := BuildMesh(single(c))

	assert.Len(t, mesh.Foliage, 12)
	assert.Len(t, mesh.TallGrass, 24)
	assert.Empty(t, mesh.Solid)

	for _, v := range mesh.Foliage {
		assert.Equal(t, colorGrass, v.Color)
		assert.Equal(t, float32(LayerShortGrass), v.Layer)
	}
}

func TestCrossOffsetRange(t *testing.T) {
	for x := -20; x < 20; x++ {
		for z := -20; z < 20; z++ {
			offX, offZ := crossOffset(x, 70, z)
			assert.InDelta(t, 0, offX, 0.15+1e-6)
			assert.InDelta(t, 0, offZ, 0.15+1e-6)
		}
	}

	a, b := crossOffset(3, 4, 5)
	c, d := crossOffset(3, 4, 5)
	assert.Equal(t, a, c)
	assert.Equal(t, b, d)
}

func TestMeshBorderFaces(t *testing.T) {
	center := NewChunk(ChunkPos{})
	center.Set(15, 10, 0, Stone)
	center.Set(0, 20, 8, Water)

	// without neighbours the stone face towards +x is visible and the water
	// face towards -x is hidden
	mesh := BuildMesh(single(center))
	assert.Len(t, mesh.Solid, 36)
	assert.Len(t, mesh.Water, 30)

	east := NewChunk(ChunkPos{X: 1})
	east.Set(0, 10, 0, Stone)

	west := NewChunk(ChunkPos{X: -1})

	n := single(center)
	n[2][1] = east
	n[0][1] = west

	mesh = BuildMesh(n)
	assert.Len(t, mesh.Solid, 30)
	assert.Len(t, mesh.Water, 36)
}

func TestMeshTopAndBottomOfWorld(t *testing.T) {
	c := NewChunk(ChunkPos{})
	c.Set(0, MinY, 0, Stone)
	c.Set(0, MaxY-1, 0, Stone)

	mesh := BuildMesh(single(c))

	// blocks at the limits are open to the outside. The -x and -z faces
	// border missing chunks which count as air.
	assert.Len(t, mesh.Solid, 2*36)
}

func TestMeshEmptyChunk(t *testing.T) {
	mesh := BuildMesh(single(NewChunk(ChunkPos{X: 5, Z: 5})))
	assert.True(t, mesh.Empty())
	assert.Zero(t, mesh.VertexCount())
	assert.Equal(t, ChunkPos{X: 5, Z: 5}, mesh.Pos)
}
